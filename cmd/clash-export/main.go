// Command clash-export converts a clash-detection XML report into an Excel
// workbook or a Word document.
package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kingpin"
	"github.com/fatih/color"
	"kastelo.dev/clashreport"
	"kastelo.dev/clashreport/excel"
	"kastelo.dev/clashreport/word"
)

func main() {
	cmdExcel := kingpin.Command("excel", "Export to an Excel workbook")
	cmdWord := kingpin.Command("word", "Export to a Word document")
	input := kingpin.Flag("input", "Clash XML file").Required().ExistingFile()
	output := kingpin.Flag("output", "Output file (default: <xml name> in the last used directory)").String()
	stylePath := kingpin.Flag("style", "TOML style override file").String()
	dirFile := kingpin.Flag("last-dir-file", "Where the last used directory is remembered").String()
	cmd := kingpin.Parse()

	if *dirFile != "" {
		lastDirFile = *dirFile
	}

	style := clashreport.DefaultStyle()
	if *stylePath != "" {
		s, err := clashreport.LoadStyle(*stylePath)
		if err != nil {
			slog.Error("Error loading style file", "path", *stylePath, "error", err)
			os.Exit(1)
		}
		style = s
	}

	ext := ".xlsx"
	if cmd == cmdWord.FullCommand() {
		ext = ".docx"
	}
	out := *output
	if out == "" {
		out = defaultOutput(*input, ext)
	}

	records, err := clashreport.ExtractFile(*input)
	if err != nil {
		fail(err)
	}

	switch cmd {
	case cmdExcel.FullCommand():
		err = excel.WriteReport(records, *input, out, style)
	case cmdWord.FullCommand():
		err = word.WriteReport(records, *input, out, style)
	}
	if err != nil {
		fail(err)
	}

	saveLastDir(filepath.Dir(out))
	color.Green("Saved: %s", out)
}

// fail reports input, parse and write failures distinctly, then exits.
func fail(err error) {
	var inputErr *clashreport.InputError
	var parseErr *clashreport.ParseError
	var writeErr *clashreport.WriteError
	switch {
	case errors.As(err, &inputErr):
		slog.Error("Cannot read input file", "path", inputErr.Path, "error", inputErr.Err)
	case errors.As(err, &parseErr):
		slog.Error("Input is not a clash report", "error", parseErr.Err)
	case errors.As(err, &writeErr):
		slog.Error("Cannot save report", "path", writeErr.Path, "error", writeErr.Err)
	default:
		slog.Error("Export failed", "error", err)
	}
	os.Exit(1)
}

// defaultOutput names the report after the XML file, in the last used
// directory if one is remembered, next to the XML otherwise.
func defaultOutput(xmlPath, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(xmlPath), filepath.Ext(xmlPath))
	dir := loadLastDir()
	if dir == "" {
		dir = filepath.Dir(xmlPath)
	}
	return filepath.Join(dir, stem+ext)
}
