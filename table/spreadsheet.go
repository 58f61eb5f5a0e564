package table

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// SpreadsheetRecords returns the cells of the first sheet of an xlsx/xlsm (via
// excelize) or xls (via extrame/xls) workbook. Any other extension is treated
// as delimited text with the given delimiter.
func SpreadsheetRecords(name string, content []byte, comma rune) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return xlsxRecords(content)
	case ".xls":
		return xlsRecords(content)
	}

	return ParseRecords(content, comma)
}

func xlsxRecords(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) < 1 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, pfx.Err(err)
	}

	return rows, nil
}

func xlsRecords(content []byte) ([][]string, error) {
	spreadsheet, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		return nil, pfx.Err(err)
	}

	if spreadsheet.NumSheets() < 1 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	sheet := spreadsheet.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("sheet 0 was nil")
	}

	output := make([][]string, 0, int(sheet.MaxRow)+1)
	for rowID := 0; rowID <= int(sheet.MaxRow); rowID++ {
		row := sheet.Row(rowID)
		if row == nil {
			continue
		}

		cells := make([]string, 0, row.LastCol()+1)
		for colID := 0; colID <= row.LastCol(); colID++ {
			cells = append(cells, row.Col(colID))
		}
		output = append(output, cells)
	}

	return output, nil
}
