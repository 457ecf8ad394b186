// Package word renders clash records into a narrative DOCX report.
package word

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/units"
	"github.com/gomutex/godocx/docx"
	"kastelo.dev/clashreport"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Export extracts records from the XML at xmlPath and writes the document
// to outPath with default styling.
func Export(xmlPath, outPath string) error {
	recs, err := clashreport.ExtractFile(xmlPath)
	if err != nil {
		return err
	}
	return WriteReport(recs, xmlPath, outPath, clashreport.DefaultStyle())
}

// WriteReport renders records into a DOCX at outPath: a title, a source
// line, then one entry per record. Image trouble never aborts the export;
// the affected entry gets a placeholder line instead.
func WriteReport(records []clashreport.Record, xmlPath, outPath string, style clashreport.Style) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	doc.AddHeading("Clash Report", 0)
	doc.AddParagraph("Source: " + filepath.Base(xmlPath))

	for i, rec := range records {
		writeEntry(doc, rec, i+1, xmlPath, style)
	}

	if err := doc.SaveTo(outPath); err != nil {
		return &clashreport.WriteError{Path: outPath, Err: err}
	}
	return nil
}

func writeEntry(doc *docx.RootDoc, rec clashreport.Record, index int, xmlPath string, style clashreport.Style) {
	doc.AddEmptyParagraph().AddText(fmt.Sprintf("Clash %d", index)).Bold(true)
	doc.AddEmptyParagraph().AddText(fmt.Sprintf("Test: %s | Group: %s", rec.TestName, rec.GroupName)).Italic(true)
	doc.AddParagraph(rec.ClashName)

	if rec.Distance != "" {
		doc.AddParagraph("Distance: " + rec.Distance + "m")
	}
	if rec.Position != nil {
		doc.AddParagraph(fmt.Sprintf("%.3f, %.3f, %.3f", rec.Position.X, rec.Position.Y, rec.Position.Z))
	}
	if rec.Item1 != "" {
		doc.AddParagraph("Item 1: " + flatten(rec.Item1))
	}
	if rec.Item2 != "" {
		doc.AddParagraph("Item 2: " + flatten(rec.Item2))
	}

	if rec.ImageHref != "" {
		writeImage(doc, rec.ImageHref, xmlPath, style)
	}
}

// writeImage embeds the record's snapshot at a fixed display width, or a
// placeholder line when the image cannot be found or read.
func writeImage(doc *docx.RootDoc, href, xmlPath string, style clashreport.Style) {
	path, ok := clashreport.ResolveImage(href, xmlPath)
	if !ok {
		placeholder(doc, href)
		return
	}
	w, h, err := imageSize(path)
	if err != nil || w <= 0 {
		placeholder(doc, href)
		return
	}

	width := style.ImageWidth
	height := width * float64(h) / float64(w)
	if _, err := doc.AddPicture(path, units.Inch(width), units.Inch(height)); err != nil {
		placeholder(doc, href)
	}
}

func placeholder(doc *docx.RootDoc, href string) {
	doc.AddParagraph("[image unavailable: " + href + "]")
}

func imageSize(path string) (w, h int, err error) {
	fd, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer fd.Close()
	cfg, _, err := image.DecodeConfig(fd)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// flatten joins the multi-line item summary onto one line for paragraph
// text.
func flatten(s string) string {
	return strings.Join(strings.Split(s, "\n"), "; ")
}
