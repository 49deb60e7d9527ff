package report

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	sheet, err := Build(input, time.Now())
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := sheet.Output(&buf); err != nil {
		slog.Error("render report", "id", sheet.ID, "error", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"bowl-"+sheet.ID+".pdf\"")
	w.Header().Set("X-Report-Id", sheet.ID)
	buf.WriteTo(w)
}
