package export

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"Resonator/internal/calc/bowl"
	"github.com/xuri/excelize/v2"
)

func TestWorkbook(t *testing.T) {
	f, err := Workbook(bowl.Input{Metal: "iron"})
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != ParamsSheet || got[1] != OctaveSheet {
		t.Fatalf("sheets = %v", got)
	}
	metal, _ := f.GetCellValue(ParamsSheet, "B2")
	if metal != "Iron" {
		t.Errorf("B2 = %q, want Iron", metal)
	}

	rows, err := f.GetRows(OctaveSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 11 {
		t.Fatalf("octave rows = %d, want header + 10", len(rows))
	}
	selected := 0
	prev := 0.0
	for _, row := range rows[1:] {
		hz, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			t.Fatalf("frequency cell %q: %v", row[0], err)
		}
		if hz <= prev {
			t.Errorf("octaves not ascending: %v after %v", hz, prev)
		}
		prev = hz
		if len(row) > 4 && row[4] == "*" {
			selected++
		}
	}
	if selected != 1 {
		t.Errorf("selected marks = %d, want 1", selected)
	}
}

func TestWorkbookMarksDisplayedSelection(t *testing.T) {
	hz := 4207.51
	f, err := Workbook(bowl.Input{Metal: "iron", SelectedHz: &hz})
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(OctaveSheet)
	if err != nil {
		t.Fatal(err)
	}
	row := rows[8]
	if len(row) < 5 || row[4] != "*" {
		t.Errorf("octave row 8 = %v, want it marked selected", row)
	}
}

func TestWorkbookInvalidInput(t *testing.T) {
	if _, err := Workbook(bowl.Input{Metal: "gold"}); err == nil {
		t.Error("unknown metal should fail")
	}
}

func TestHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	(&Handler{}).Generate(rec, httptest.NewRequest(http.MethodPost, "/api/tools/export/xlsx", strings.NewReader(`{"metal":"copper"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a workbook: %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue(ParamsSheet, "B2"); v != "Copper" {
		t.Errorf("B2 = %q, want Copper", v)
	}

	rec = httptest.NewRecorder()
	(&Handler{}).Generate(rec, httptest.NewRequest(http.MethodPost, "/api/tools/export/xlsx", strings.NewReader(`{"ratio":"x"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad ratio status = %d, want 400", rec.Code)
	}
}
