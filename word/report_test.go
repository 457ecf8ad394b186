package word

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kastelo.dev/clashreport"
)

func TestWriteReportContent(t *testing.T) {
	dir := t.TempDir()
	xmlPath := filepath.Join(dir, "report.xml")
	writeTestImage(t, filepath.Join(dir, "c1.png"))

	records := []clashreport.Record{
		{
			TestName:  "Pipes vs Structure",
			GroupName: "Zone A",
			ClashName: "C1",
			Distance:  "0.145",
			Position:  &clashreport.Position{X: 1, Y: 2, Z: 3},
			ImageHref: "c1.png",
			Item1:     "Item Name: Storm Pipe 01\nNetwork: Storm North",
		},
		{
			TestName:  "Pipes vs Structure",
			GroupName: "None",
			ClashName: "Clash2",
			Distance:  "N/A",
			ImageHref: "missing.png",
		},
	}

	out := filepath.Join(dir, "report.docx")
	if err := WriteReport(records, xmlPath, out, clashreport.DefaultStyle()); err != nil {
		t.Fatal(err)
	}

	paras := docParagraphs(t, out)

	for _, want := range []string{
		"Clash Report",
		"Source: report.xml",
		"Clash 1",
		"Test: Pipes vs Structure | Group: Zone A",
		"C1",
		"Distance: 0.145m",
		"1.000, 2.000, 3.000",
		"Item 1: Item Name: Storm Pipe 01; Network: Storm North",
		"Clash 2",
		"Test: Pipes vs Structure | Group: None",
		"[image unavailable: missing.png]",
	} {
		if !contains(paras, want) {
			t.Errorf("missing paragraph %q\nparagraphs: %q", want, paras)
		}
	}

	// The first record's image resolved, so exactly one placeholder.
	if n := count(paras, "[image unavailable: missing.png]"); n != 1 {
		t.Errorf("expected exactly one placeholder, got %d", n)
	}
	// Only the first record carries a coordinate line.
	if n := countCoords(paras); n != 1 {
		t.Errorf("expected exactly one coordinate line, got %d", n)
	}

	// Entries come out in record order.
	if idx(paras, "Clash 1") > idx(paras, "Clash 2") {
		t.Error("entries out of order")
	}
}

func TestWriteReportBadDestination(t *testing.T) {
	out := filepath.Join(t.TempDir(), "no", "such", "dir", "out.docx")
	err := WriteReport([]clashreport.Record{{ClashName: "C1"}}, "report.xml", out, clashreport.DefaultStyle())
	var writeErr *clashreport.WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected WriteError, got %v", err)
	}
}

func TestExportMissingInput(t *testing.T) {
	err := Export(filepath.Join(t.TempDir(), "absent.xml"), filepath.Join(t.TempDir(), "out.docx"))
	var inputErr *clashreport.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestExportRoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "flat.docx")
	if err := Export(filepath.Join("..", "testdata", "flat.xml"), out); err != nil {
		t.Fatal(err)
	}
	paras := docParagraphs(t, out)
	if !contains(paras, "Clash 3") {
		t.Errorf("expected three entries, got paragraphs %q", paras)
	}
}

// docParagraphs extracts the paragraph texts from a DOCX file. A DOCX is a
// ZIP archive with the document body at word/document.xml.
func docParagraphs(t *testing.T, path string) []string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		break
	}
	if len(docXML) == 0 {
		t.Fatal("word/document.xml not found")
	}

	var doc struct {
		Body struct {
			Paragraphs []struct {
				Runs []struct {
					Text string `xml:"t"`
				} `xml:"r"`
			} `xml:"p"`
		} `xml:"body"`
	}
	if err := xml.Unmarshal(docXML, &doc); err != nil {
		t.Fatal(err)
	}

	var paras []string
	for _, p := range doc.Body.Paragraphs {
		var b strings.Builder
		for _, r := range p.Runs {
			b.WriteString(r.Text)
		}
		paras = append(paras, b.String())
	}
	return paras
}

func contains(paras []string, s string) bool { return idx(paras, s) >= 0 }

func idx(paras []string, s string) int {
	for i, p := range paras {
		if p == s {
			return i
		}
	}
	return -1
}

func count(paras []string, s string) int {
	n := 0
	for _, p := range paras {
		if p == s {
			n++
		}
	}
	return n
}

func countCoords(paras []string) int {
	n := 0
	for _, p := range paras {
		if strings.Count(p, ", ") == 2 && strings.Contains(p, ".000") {
			n++
		}
	}
	return n
}

func writeTestImage(t *testing.T, path string) {
	t.Helper()
	fd, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()
	if err := png.Encode(fd, image.NewRGBA(image.Rect(0, 0, 8, 4))); err != nil {
		t.Fatal(err)
	}
}
