package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Resonator/internal/calc/bowl"
	"github.com/xuri/excelize/v2"
)

var ErrEmptySheet = errors.New("empty sheet")

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type BowlImportResult struct {
	Count   int           `json:"count"`
	Results []bowl.Params `json:"results"`
	Errors  []RowError    `json:"errors,omitempty"`
}

// ImportBowl reads the first sheet of an xlsx workbook. Row 1 is a header;
// columns are metal, ratio (fraction or decimal, optional), selected_hz
// (optional). Bad rows are reported and skipped.
func ImportBowl(r io.Reader) (BowlImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return BowlImportResult{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return BowlImportResult{}, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return BowlImportResult{}, ErrEmptySheet
	}

	var out BowlImportResult
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		input, err := parseBowlRow(row)
		if err == nil {
			var res bowl.Params
			res, err = bowl.Calculate(input)
			if err == nil {
				out.Results = append(out.Results, res)
				continue
			}
		}
		out.Errors = append(out.Errors, RowError{Row: i + 1, Error: err.Error()})
	}
	out.Count = len(out.Results)
	return out, nil
}

func parseBowlRow(row []string) (bowl.Input, error) {
	in := bowl.Input{Metal: strings.TrimSpace(row[0])}
	if in.Metal == "" {
		return bowl.Input{}, fmt.Errorf("metal required")
	}
	if len(row) > 1 {
		in.Ratio = strings.TrimSpace(row[1])
	}
	if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
		hz, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return bowl.Input{}, fmt.Errorf("selected_hz: %w", err)
		}
		in.SelectedHz = &hz
	}
	return in, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
