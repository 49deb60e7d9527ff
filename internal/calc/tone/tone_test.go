package tone

import (
	"encoding/binary"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/faiface/beep"
)

func TestStrikeEnvelope(t *testing.T) {
	sr := beep.SampleRate(8000)
	s := Strike(440, sr, time.Second)
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			if smp[0] != smp[1] {
				t.Fatalf("channels differ: %v", smp)
			}
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}
	if total != 8000 {
		t.Errorf("samples = %d, want 8000", total)
	}
	if peak > Amplitude || peak < Amplitude/2 {
		t.Errorf("peak = %v, want within (%v, %v]", peak, Amplitude/2, Amplitude)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := Write(f, 1051.88, Options{SampleRate: 8000, Duration: 500 * time.Millisecond}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data[:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatalf("not a WAV header: %q", data[:12])
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 8000 {
		t.Errorf("sample rate = %d, want 8000", rate)
	}
	if want := 44 + 4000*2; len(data) != want {
		t.Errorf("file size = %d, want %d", len(data), want)
	}
}

func TestWriteRejects(t *testing.T) {
	ok := Options{SampleRate: 8000, Duration: time.Second}
	tests := []struct {
		hz   float64
		opts Options
	}{
		{0, ok},
		{-1, ok},
		{4000, ok},
		{440, Options{SampleRate: 0, Duration: time.Second}},
		{440, Options{SampleRate: 8000}},
		{440, Options{SampleRate: 8000, Duration: time.Minute}},
	}
	for _, tt := range tests {
		f, _ := os.Create(filepath.Join(t.TempDir(), "x.wav"))
		if err := Write(f, tt.hz, tt.opts); !errors.Is(err, ErrInvalidTone) {
			t.Errorf("Write(%v, %+v) error = %v, want ErrInvalidTone", tt.hz, tt.opts, err)
		}
		f.Close()
	}
}

func TestPeak(t *testing.T) {
	tests := []struct {
		hz   float64
		opts Options
	}{
		{1051.88, Options{SampleRate: 8000, Duration: 500 * time.Millisecond}},
		{440, Options{SampleRate: 44100, Duration: 4 * time.Second}},
		{32.87, Options{SampleRate: 8000, Duration: time.Second}},
	}
	for _, tt := range tests {
		got, err := Peak(tt.hz, tt.opts)
		if err != nil {
			t.Fatalf("Peak(%v): %v", tt.hz, err)
		}
		d := min(tt.opts.Duration, time.Second)
		bin := 1 / d.Seconds()
		if math.Abs(got-tt.hz) > bin {
			t.Errorf("Peak(%v) = %v, want within %v Hz", tt.hz, got, bin)
		}
	}
	if _, err := Peak(5000, Options{SampleRate: 8000, Duration: time.Second}); !errors.Is(err, ErrInvalidTone) {
		t.Errorf("above Nyquist error = %v", err)
	}
}

func TestHandler(t *testing.T) {
	h := &Handler{SampleRate: 8000, Duration: time.Second}
	rec := httptest.NewRecorder()
	body := `{"bowl":{"metal":"brass"},"seconds":0.25}`
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/tools/tone/wav", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/wav" {
		t.Errorf("Content-Type = %q", ct)
	}
	if want := 44 + 2000*2; rec.Body.Len() != want {
		t.Errorf("body = %d bytes, want %d", rec.Body.Len(), want)
	}
	peak, err := strconv.ParseFloat(rec.Header().Get("X-Peak-Hz"), 64)
	if err != nil || math.Abs(peak-674.24) > 4 {
		t.Errorf("X-Peak-Hz = %q", rec.Header().Get("X-Peak-Hz"))
	}

	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/tools/tone/wav", strings.NewReader(`{"seconds":120}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("long tone status = %d, want 400", rec.Code)
	}
}
