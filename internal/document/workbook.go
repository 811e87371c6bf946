package document

import (
	"fmt"
	"strings"

	"school_reports_backend/internal/util"

	"github.com/xuri/excelize/v2"
)

// Sheet is a table of labeled rows for a workbook.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(":", "-", "\\", "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")")

func sheetName(name string, i int) string {
	name = strings.TrimSpace(sheetNameReplacer.Replace(name))
	if name == "" {
		name = fmt.Sprintf("Hoja%d", i+1)
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

// WriteWorkbook writes every sheet into one XLSX file, header row in bold.
func WriteWorkbook(sheets ...Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, util.ErrNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, s := range sheets {
		name := sheetName(s.Name, i)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}

		if len(s.Header) > 0 {
			header := s.Header
			if err := f.SetSheetRow(name, "A1", &header); err != nil {
				return nil, err
			}
			last, err := excelize.CoordinatesToCellName(len(header), 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(name, "A1", last, bold); err != nil {
				return nil, err
			}
		}

		for r, row := range s.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, err
			}
			values := row
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return nil, fmt.Errorf("sheet %s row %d: %w", name, r+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
