package tone

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"Resonator/internal/calc/bowl"
)

type Input struct {
	Bowl    bowl.Input `json:"bowl"`
	Seconds float64    `json:"seconds"`
}

type Handler struct {
	SampleRate int
	Duration   time.Duration
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	params, err := bowl.Calculate(input.Bowl)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	opts := Options{SampleRate: h.SampleRate, Duration: h.Duration}
	if opts.SampleRate == 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if input.Seconds > 0 {
		opts.Duration = time.Duration(input.Seconds * float64(time.Second))
	}

	f, err := os.CreateTemp("", "bowl-*.wav")
	if err != nil {
		slog.Error("create temp wav", "error", err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if err := Write(f, params.SelectedHz, opts); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := f.Seek(0, 0); err != nil {
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	if peak, err := Peak(params.SelectedHz, opts); err == nil {
		w.Header().Set("X-Peak-Hz", strconv.FormatFloat(peak, 'f', 2, 64))
	} else {
		slog.Warn("tone peak analysis failed", "error", err)
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", "attachment; filename=\"bowl.wav\"")
	http.ServeContent(w, r, "bowl.wav", time.Time{}, f)
}
