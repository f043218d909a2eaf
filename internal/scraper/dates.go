package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"frontpages-collector/internal/observability"
)

var (
	dateLongRe  = regexp.MustCompile(`(\d{1,2})\s*/\s*(\d{1,2})\s*/\s*(\d{4})`)
	dateShortRe = regexp.MustCompile(`(\d{1,2})\s*/\s*(\d{1,2})`)
)

// DateChecker decides whether a scraped date fragment denotes the
// current day. Missing or unparseable dates pass: attaching a slightly
// stale page is the cheaper failure than silently dropping a valid one.
type DateChecker struct {
	logger *observability.Logger
	now    func() time.Time
}

func NewDateChecker(logger *observability.Logger) *DateChecker {
	return &DateChecker{
		logger: logger,
		now:    time.Now,
	}
}

// IsToday reports whether dateText contains a date equal to the current
// calendar day. The full D/M/YYYY shape is tried before the yearless
// D/M shape so an explicit year is never ignored.
func (dc *DateChecker) IsToday(dateText string) bool {
	text := strings.TrimSpace(dateText)
	if text == "" {
		return true
	}

	now := dc.now()

	var day, month, year int
	if m := dateLongRe.FindStringSubmatch(text); m != nil {
		day, month, year = atoi(m[1]), atoi(m[2]), atoi(m[3])
	} else if m := dateShortRe.FindStringSubmatch(text); m != nil {
		day, month = atoi(m[1]), atoi(m[2])
		year = now.Year()
		// A December page still on display during the first days of
		// January belongs to the previous year.
		if month == 12 && now.Month() == time.January {
			year--
		}
	} else {
		// No recognizable date on the listing is not evidence of
		// staleness.
		return true
	}

	// time.Date normalizes overflow (30/02 becomes March 1), so a
	// calendar-invalid date is detected by round-tripping. Like any
	// other parse failure it passes rather than dropping the paper.
	paperDate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	py, pm, pd := paperDate.Date()
	if py != year || int(pm) != month || pd != day {
		dc.logger.Warn("Implausible date in listing, treating as current",
			"date_text", text,
		)
		return true
	}

	ny, nm, nd := now.Date()
	return py == ny && pm == nm && pd == nd
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
