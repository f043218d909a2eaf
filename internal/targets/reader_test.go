package targets

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"frontpages-collector/internal/observability"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newspapers.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadKeepsOrder(t *testing.T) {
	path := writeCSV(t, "Code,NewspaperName\n1,Καθημερινή\n2,Το Βήμα\n3,Εστία\n")

	reader := NewReader("NewspaperName", 120, observability.NewLogger("", "error"))
	names, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}

	expected := []string{"Καθημερινή", "Το Βήμα", "Εστία"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("Read = %v, want %v", names, expected)
	}
}

func TestReadSkipsBlankAndOverlong(t *testing.T) {
	long := strings.Repeat("α", 20)
	path := writeCSV(t, "NewspaperName\nΚαθημερινή\n\n"+long+"\nΕστία\n")

	reader := NewReader("NewspaperName", 15, observability.NewLogger("", "error"))
	names, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}

	expected := []string{"Καθημερινή", "Εστία"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("Read = %v, want %v", names, expected)
	}
}

func TestReadMissingColumn(t *testing.T) {
	path := writeCSV(t, "Name\nΚαθημερινή\n")

	reader := NewReader("NewspaperName", 120, observability.NewLogger("", "error"))
	if _, err := reader.Read(path); err == nil {
		t.Errorf("Read should fail when the name column is missing")
	}
}

func TestReadMissingFile(t *testing.T) {
	reader := NewReader("NewspaperName", 120, observability.NewLogger("", "error"))
	if _, err := reader.Read(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Errorf("Read should fail for a missing file")
	}
}
