package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"Resonator/internal/calc/bowl"
	"Resonator/internal/calc/profile"
	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Bowl    bowl.Input `json:"bowl"`
	Shape   string     `json:"shape"`
	Project string     `json:"project"`
	Author  string     `json:"author"`
	Title   string     `json:"title"`
	Notes   string     `json:"notes"`
}

// Sheet is a rendered design sheet ready to be written out.
type Sheet struct {
	ID     string
	Params bowl.Params
	pdf    *gofpdf.Fpdf
}

func (s *Sheet) Output(w io.Writer) error {
	return s.pdf.Output(w)
}

// Build computes the bowl and lays out a one-page A4 design sheet with the
// parameter table, the octave list and a cross-section drawing.
func Build(in Input, now time.Time) (*Sheet, error) {
	shape, err := profile.ParseShape(in.Shape)
	if err != nil {
		return nil, err
	}
	params, err := bowl.Calculate(in.Bowl)
	if err != nil {
		return nil, err
	}
	section, err := profile.Lathe(params.Dimensions, shape, profile.DefaultSteps)
	if err != nil {
		return nil, err
	}
	if in.Title == "" {
		in.Title = "Singing Bowl Design Sheet"
	}
	id := uuid.NewString()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(in.Title, true)
	pdf.SetAuthor(in.Author, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, in.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", in.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", in.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", now.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Cell(0, 5, "Sheet ID: "+id)
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Parameters")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range paramRows(params) {
		pdf.CellFormat(70, 6, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Available octaves")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for i, hz := range params.AvailableOctaves {
		label := bowl.FormatFrequency(hz)
		if hz == params.SelectedHz {
			label += " *"
		}
		ln := 0
		if i%4 == 3 || i == len(params.AvailableOctaves)-1 {
			ln = 1
		}
		pdf.CellFormat(45, 6, label, "", ln, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Cross-section (%s)", section.Shape))
	pdf.Ln(8)
	drawSection(pdf, section, 20, pdf.GetY(), 170, 60)

	if in.Notes != "" {
		pdf.SetY(pdf.GetY() + 64)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, in.Notes, "", "L", false)
	}
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	return &Sheet{ID: id, Params: params, pdf: pdf}, nil
}

func paramRows(p bowl.Params) [][2]string {
	return [][2]string{
		{"Metal", p.Metal},
		{"Thickness ratio", fmt.Sprintf("%.6f", p.ThicknessRatio)},
		{"Averaged atomic radius", bowl.FormatLength(p.AveragedRadiusM)},
		{"Fundamental wavelength", bowl.FormatLength(p.FundamentalWavelengthM)},
		{"Theoretical fundamental", bowl.FormatSI(p.FundamentalHz)},
		{"Selected frequency", bowl.FormatFrequency(p.SelectedHz)},
		{"Wavelength in metal", bowl.FormatLength(p.WavelengthInMetalM)},
		{"Wavelength in air", bowl.FormatLength(p.WavelengthInAirM)},
		{"Inner diameter", bowl.FormatLength(p.Dimensions.InnerDiameterM)},
		{"Outer diameter", bowl.FormatLength(p.Dimensions.OuterDiameterM)},
		{"Thickness", bowl.FormatLength(p.Dimensions.ThicknessM)},
	}
}

// drawSection mirrors both walls around the axis and scales them into the
// box at (x, y) of size w x h, keeping the aspect ratio.
func drawSection(pdf *gofpdf.Fpdf, s profile.Result, x, y, w, h float64) {
	var maxX, maxDepth float64
	for _, p := range s.Outer {
		maxX = math.Max(maxX, p.X)
		maxDepth = math.Max(maxDepth, -p.Y)
	}
	if maxX == 0 || maxDepth == 0 {
		return
	}
	scale := math.Min(w/(2*maxX), h/maxDepth)
	cx := x + w/2

	pdf.SetDrawColor(160, 160, 160)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	pdf.Line(cx, y, cx, y+maxDepth*scale)
	pdf.SetDashPattern([]float64{}, 0)

	for i, wall := range [][]profile.Point{s.Inner, s.Outer} {
		if i == 0 {
			pdf.SetDrawColor(60, 60, 60)
		} else {
			pdf.SetDrawColor(0, 0, 0)
		}
		for _, side := range []float64{-1, 1} {
			for j := 1; j < len(wall); j++ {
				a, b := wall[j-1], wall[j]
				pdf.Line(cx+side*a.X*scale, y-a.Y*scale, cx+side*b.X*scale, y-b.Y*scale)
			}
		}
	}
}
