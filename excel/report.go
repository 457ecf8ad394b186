// Package excel renders clash records into a styled XLSX workbook.
package excel

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/xuri/excelize/v2"
	"kastelo.dev/clashreport"
)

const sheetName = "Clash Report"

var headers = []string{"Test", "Group", "Clash", "X", "Y", "Z", "Image"}

// Widths are fixed rather than computed from content; the name columns
// wrap instead of growing.
var colWidths = []float64{32, 20, 26, 12, 12, 12, 10}

const headerRowHeight = 35

// Export extracts records from the XML at xmlPath and writes the workbook
// to outPath with default styling.
func Export(xmlPath, outPath string) error {
	recs, err := clashreport.ExtractFile(xmlPath)
	if err != nil {
		return err
	}
	return WriteReport(recs, xmlPath, outPath, clashreport.DefaultStyle())
}

// WriteReport renders records and writes the workbook to outPath. xmlPath
// is only used to resolve image references for the Image column.
func WriteReport(records []clashreport.Record, xmlPath, outPath string, style clashreport.Style) error {
	bs, err := ReportXLSX(records, xmlPath, style)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, bs, 0o644); err != nil {
		return &clashreport.WriteError{Path: outPath, Err: err}
	}
	return nil
}

// ReportXLSX renders records into workbook bytes: one header row, one data
// row per record.
func ReportXLSX(records []clashreport.Record, xmlPath string, style clashreport.Style) ([]byte, error) {
	xlsx := excelize.NewFile()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "kastelo.dev/clashreport",
		DocSecurity: 2,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	if err := writeSheet(xlsx, sheet, records, xmlPath, style); err != nil {
		return nil, err
	}
	_ = xlsx.SetSheetName(sheet, sheetName)

	// Increase size of window
	for i := range xlsx.WorkBook.BookViews.WorkBookView {
		xlsx.WorkBook.BookViews.WorkBookView[i].XWindow = "1000"
		xlsx.WorkBook.BookViews.WorkBookView[i].YWindow = "1000"
		xlsx.WorkBook.BookViews.WorkBookView[i].WindowWidth = 25000
		xlsx.WorkBook.BookViews.WorkBookView[i].WindowHeight = 25000 / 3 * 2
	}

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(xlsx *excelize.File, sheet string, records []clashreport.Record, xmlPath string, style clashreport.Style) error {
	for i, w := range colWidths {
		col := string(rune('A' + i))
		_ = xlsx.SetColWidth(sheet, col, col, w)
	}

	lastCol := rune('A' + len(headers) - 1)

	for i, hdr := range headers {
		_ = xlsx.SetCellValue(sheet, cell(rune('A'+i), 1), hdr)
	}
	_ = xlsx.SetRowHeight(sheet, 1, headerRowHeight)

	headerStyle, err := xlsx.NewStyle(mergeStyles(
		fontBold(),
		fontSize(style.HeaderFontSize),
		fontColor(style.HeaderFontColor),
		fill(style.HeaderFill),
		alignCenterWrap(),
	))
	if err != nil {
		return err
	}
	_ = xlsx.SetCellStyle(sheet, cell('A', 1), cell(lastCol, 1), headerStyle)

	_ = xlsx.SetPanes(sheet, &excelize.Panes{
		ActivePane:  "bottomLeft",
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
	})

	plainStyle, err := xlsx.NewStyle(mergeStyles(fontColor(style.DataFontColor), wrapTop()))
	if err != nil {
		return err
	}
	shadedStyle, err := xlsx.NewStyle(mergeStyles(fontColor(style.DataFontColor), wrapTop(), fill(style.AltRowFill)))
	if err != nil {
		return err
	}
	// The coordinate columns keep three decimals in the display, not
	// just in the stored value.
	plainNumStyle, err := xlsx.NewStyle(mergeStyles(fontColor(style.DataFontColor), wrapTop(), customNumberFormat()))
	if err != nil {
		return err
	}
	shadedNumStyle, err := xlsx.NewStyle(mergeStyles(fontColor(style.DataFontColor), wrapTop(), fill(style.AltRowFill), customNumberFormat()))
	if err != nil {
		return err
	}

	for i, rec := range records {
		row := i + 2

		_ = xlsx.SetCellValue(sheet, cell('A', row), rec.TestName)
		_ = xlsx.SetCellValue(sheet, cell('B', row), rec.GroupName)
		_ = xlsx.SetCellValue(sheet, cell('C', row), rec.ClashName)
		if rec.Position != nil {
			_ = xlsx.SetCellFloat(sheet, cell('D', row), rec.Position.X, 3, 64)
			_ = xlsx.SetCellFloat(sheet, cell('E', row), rec.Position.Y, 3, 64)
			_ = xlsx.SetCellFloat(sheet, cell('F', row), rec.Position.Z, 3, 64)
		}
		has := "No"
		if _, ok := clashreport.ResolveImage(rec.ImageHref, xmlPath); ok {
			has = "Yes"
		}
		_ = xlsx.SetCellValue(sheet, cell(lastCol, row), has)

		// Shading follows the absolute sheet row number, header
		// included as row 1: even rows get the fill.
		if row%2 == 0 {
			_ = xlsx.SetCellStyle(sheet, cell('A', row), cell(lastCol, row), shadedStyle)
			_ = xlsx.SetCellStyle(sheet, cell('D', row), cell('F', row), shadedNumStyle)
		} else {
			_ = xlsx.SetCellStyle(sheet, cell('A', row), cell(lastCol, row), plainStyle)
			_ = xlsx.SetCellStyle(sheet, cell('D', row), cell('F', row), plainNumStyle)
		}
	}

	return nil
}

func cell(col rune, row int) string {
	return fmt.Sprintf("%c%d", col, row)
}

func customNumberFormat() *excelize.Style {
	fmt := "0.000"
	return &excelize.Style{
		CustomNumFmt: &fmt,
	}
}

func fontBold() *excelize.Style {
	return &excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	}
}

func fontSize(size float64) *excelize.Style {
	return &excelize.Style{
		Font: &excelize.Font{
			Size: size,
		},
	}
}

func fontColor(color string) *excelize.Style {
	return &excelize.Style{
		Font: &excelize.Font{
			Color: color,
		},
	}
}

func fill(color string) *excelize.Style {
	return &excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{color},
			Pattern: 1,
		},
	}
}

func alignCenterWrap() *excelize.Style {
	return &excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	}
}

func wrapTop() *excelize.Style {
	return &excelize.Style{
		Alignment: &excelize.Alignment{
			Vertical: "top",
			WrapText: true,
		},
	}
}

func mergeStyles(ext ...*excelize.Style) *excelize.Style {
	if len(ext) == 0 {
		return nil
	}
	for _, e := range ext[1:] {
		_ = mergo.Merge(ext[0], e, mergo.WithOverride)
	}
	return ext[0]
}
