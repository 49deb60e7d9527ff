package bowl

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestCalculateDefaults(t *testing.T) {
	p, err := Calculate(Input{})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if p.Metal != "Iron" || p.ThicknessRatio != PythagoreanComma {
		t.Errorf("defaults = %s / %v, want Iron / Pythagorean comma", p.Metal, p.ThicknessRatio)
	}
}

func TestCalculateRatioSources(t *testing.T) {
	p, err := Calculate(Input{Metal: "copper", Ratio: "3/2", ThicknessRatio: ptr(9)})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if p.ThicknessRatio != 1.5 {
		t.Errorf("Ratio string should win: got %v", p.ThicknessRatio)
	}
	p, err = Calculate(Input{Metal: "copper", ThicknessRatio: ptr(1.25)})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if p.ThicknessRatio != 1.25 {
		t.Errorf("ThicknessRatio = %v, want 1.25", p.ThicknessRatio)
	}
}

func TestCalculateErrors(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want error
	}{
		{"unknown metal", Input{Metal: "gold"}, ErrUnknownMetal},
		{"zero denominator", Input{Ratio: "1/0"}, ErrInvalidRatio},
		{"negative ratio", Input{ThicknessRatio: ptr(-1)}, ErrInvalidRatio},
		{"zero ratio", Input{ThicknessRatio: ptr(0)}, ErrInvalidRatio},
		{"negative frequency", Input{SelectedHz: ptr(-440)}, ErrInvalidFrequency},
	}
	for _, tt := range tests {
		if _, err := Calculate(tt.in); !errors.Is(err, tt.want) {
			t.Errorf("%s: error = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestCalculateSelection(t *testing.T) {
	def, _ := Calculate(Input{Metal: "iron"})
	zero, _ := Calculate(Input{Metal: "iron", SelectedHz: ptr(0)})
	if zero.SelectedHz != def.NormalizedHz {
		t.Errorf("zero selection = %v, want normalized %v", zero.SelectedHz, def.NormalizedHz)
	}

	hz := def.AvailableOctaves[0]
	low, err := Calculate(Input{Metal: "iron", SelectedHz: &hz})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if low.SelectedHz != hz {
		t.Errorf("SelectedHz = %v, want %v", low.SelectedHz, hz)
	}

	// A value typed back from the two-decimal display selects the exact octave.
	for i, o := range def.AvailableOctaves {
		shown, _ := strconv.ParseFloat(fmt.Sprintf("%.2f", o), 64)
		got, err := Calculate(Input{Metal: "iron", SelectedHz: &shown})
		if err != nil {
			t.Fatalf("Calculate(%v): %v", shown, err)
		}
		if got.SelectedHz != o {
			t.Errorf("octave %d: displayed %v selected %v, want %v", i, shown, got.SelectedHz, o)
		}
		if got.Dimensions != mustNew(t, Iron, PythagoreanComma).Dimensions(o) {
			t.Errorf("octave %d: dimensions not computed at the exact octave", i)
		}
	}
	off := def.AvailableOctaves[7] + 0.01
	if got, _ := Calculate(Input{Metal: "iron", SelectedHz: &off}); got.SelectedHz != def.NormalizedHz {
		t.Errorf("selection 0.01 Hz off = %v, want reset to %v", got.SelectedHz, def.NormalizedHz)
	}

	// An octave of another metal resets to this metal's default.
	brass, _ := Calculate(Input{Metal: "brass"})
	switched, err := Calculate(Input{Metal: "iron", SelectedHz: &brass.NormalizedHz})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if switched.SelectedHz != def.NormalizedHz {
		t.Errorf("foreign selection = %v, want reset to %v", switched.SelectedHz, def.NormalizedHz)
	}
}

func TestHandlerCalc(t *testing.T) {
	h := &Handler{}
	req := httptest.NewRequest(http.MethodPost, "/api/bowl/calc", strings.NewReader(`{"metal":"titanium","ratio":"531441/524288"}`))
	rec := httptest.NewRecorder()
	h.Calc(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var p Params
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Metal != "Titanium" || len(p.AvailableOctaves) == 0 {
		t.Errorf("unexpected params %+v", p)
	}
}

func TestHandlerCalcBadRequests(t *testing.T) {
	h := &Handler{}
	for _, body := range []string{`{`, `{"metal":"gold"}`, `{"ratio":"0/1"}`} {
		rec := httptest.NewRecorder()
		h.Calc(rec, httptest.NewRequest(http.MethodPost, "/api/bowl/calc", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestHandlerMetals(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()
	h.Metals(rec, httptest.NewRequest(http.MethodGet, "/api/metals", nil))

	var entries []MetalEntry
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(entries))
	}
	if entries[0].Key != Iron || entries[0].SoundSpeedMS != 5120 || entries[0].Structure != BCC {
		t.Errorf("first entry = %+v", entries[0])
	}
}
