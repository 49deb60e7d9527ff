// Package export writes a bowl's octave spectrum as an xlsx workbook.
package export

import (
	"fmt"
	"io"

	"Resonator/internal/calc/bowl"
	"github.com/xuri/excelize/v2"
)

const (
	ParamsSheet = "Parameters"
	OctaveSheet = "Octaves"
)

// Workbook builds a two-sheet workbook: the parameters of the selected
// frequency, and the dimensions at every available octave.
func Workbook(in bowl.Input) (*excelize.File, error) {
	metal, r, err := in.Resolve()
	if err != nil {
		return nil, err
	}
	c, err := bowl.New(metal, r)
	if err != nil {
		return nil, err
	}
	params, err := bowl.Calculate(in)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ParamsSheet); err != nil {
		f.Close()
		return nil, err
	}
	rows := [][]any{
		{"Parameter", "Value", "Display"},
		{"Metal", params.Metal, ""},
		{"Thickness ratio", params.ThicknessRatio, ""},
		{"Averaged radius (m)", params.AveragedRadiusM, bowl.FormatLength(params.AveragedRadiusM)},
		{"Fundamental wavelength (m)", params.FundamentalWavelengthM, bowl.FormatLength(params.FundamentalWavelengthM)},
		{"Fundamental (Hz)", params.FundamentalHz, bowl.FormatSI(params.FundamentalHz)},
		{"Normalized (Hz)", params.NormalizedHz, bowl.FormatFrequency(params.NormalizedHz)},
		{"Selected (Hz)", params.SelectedHz, bowl.FormatFrequency(params.SelectedHz)},
		{"Wavelength in metal (m)", params.WavelengthInMetalM, bowl.FormatLength(params.WavelengthInMetalM)},
		{"Wavelength in air (m)", params.WavelengthInAirM, bowl.FormatLength(params.WavelengthInAirM)},
		{"Inner diameter (m)", params.Dimensions.InnerDiameterM, bowl.FormatLength(params.Dimensions.InnerDiameterM)},
		{"Outer diameter (m)", params.Dimensions.OuterDiameterM, bowl.FormatLength(params.Dimensions.OuterDiameterM)},
		{"Thickness (m)", params.Dimensions.ThicknessM, bowl.FormatLength(params.Dimensions.ThicknessM)},
	}
	if err := writeRows(f, ParamsSheet, rows); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(OctaveSheet); err != nil {
		f.Close()
		return nil, err
	}
	rows = [][]any{{"Frequency (Hz)", "Inner diameter (m)", "Outer diameter (m)", "Thickness (m)", "Selected"}}
	for _, hz := range params.AvailableOctaves {
		d := c.Dimensions(hz)
		sel := ""
		if hz == params.SelectedHz {
			sel = "*"
		}
		rows = append(rows, []any{hz, d.InnerDiameterM, d.OuterDiameterM, d.ThicknessM, sel})
	}
	if err := writeRows(f, OctaveSheet, rows); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func Write(w io.Writer, in bowl.Input) error {
	f, err := Workbook(in)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
