package assembler

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"os"
	"path/filepath"

	_ "image/png"

	"github.com/jung-kurt/gofpdf"

	"frontpages-collector/internal/observability"
)

const (
	pageDPI     = 300.0
	mmPerInch   = 25.4
	jpegQuality = 90
)

// Assembler combines the downloaded front pages into one PDF, one page
// per image, in download order.
type Assembler struct {
	logger *observability.Logger
}

func NewAssembler(logger *observability.Logger) *Assembler {
	return &Assembler{logger: logger}
}

// Assemble writes the combined document to outPath and returns it.
// An empty input and an input where every image is unreadable both
// produce no document and no error; the downloads already happened.
func (a *Assembler) Assemble(imagePaths []string, outPath string) (string, error) {
	if len(imagePaths) == 0 {
		a.logger.Warn("No images to assemble")
		return "", nil
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Papers", true)

	pages := 0
	for _, imgPath := range imagePaths {
		img, err := a.loadRGB(imgPath)
		if err != nil {
			a.logger.Warn("Skipping unreadable image",
				"file", filepath.Base(imgPath),
				"error", err.Error(),
			)
			continue
		}

		// Re-encode so every page carries the same color mode
		// regardless of what the site served.
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			a.logger.Warn("Skipping image that failed to re-encode",
				"file", filepath.Base(imgPath),
				"error", err.Error(),
			)
			continue
		}

		bounds := img.Bounds()
		wMM := float64(bounds.Dx()) / pageDPI * mmPerInch
		hMM := float64(bounds.Dy()) / pageDPI * mmPerInch

		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: wMM, Ht: hMM})
		name := filepath.Base(imgPath)
		pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "JPG"}, &buf)
		pdf.ImageOptions(name, 0, 0, wMM, hMM, false, gofpdf.ImageOptions{ImageType: "JPG"}, 0, "")
		pages++
	}

	if pages == 0 {
		a.logger.Error("All images failed to open, no document produced")
		return "", nil
	}
	if pdf.Err() {
		return "", fmt.Errorf("failed to build document: %w", pdf.Error())
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}

	a.logger.Info("Document assembled", "file", outPath, "pages", pages)
	return outPath, nil
}

// loadRGB decodes any supported format and redraws it onto an RGBA
// canvas, the common color mode for all pages.
func (a *Assembler) loadRGB(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, nil
}
