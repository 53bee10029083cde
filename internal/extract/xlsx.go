package extract

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

func init() {
	Register(".xlsx", extractXLSX)
	Register(".xlsm", extractXLSX)
}

// extractXLSX produces one segment per non-empty sheet, locator being the
// 1-based sheet index. Each segment starts with a "Sheet: name" line followed
// by one "a | b | c" line per non-empty row.
func extractXLSX(f File, size int64) ([]Segment, error) {
	_ = size
	wb, err := excelize.OpenReader(f)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	var segments []Segment
	for idx, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		lines := []string{"Sheet: " + sheet}
		for _, row := range rows {
			cells := make([]string, 0, len(row))
			for _, cell := range row {
				if cell != "" {
					cells = append(cells, cell)
				}
			}
			if len(cells) == 0 {
				continue
			}
			lines = append(lines, strings.Join(cells, " | "))
		}
		if len(lines) == 1 {
			continue
		}
		segments = append(segments, Segment{Locator: idx + 1, Text: strings.Join(lines, "\n")})
	}
	return segments, nil
}
