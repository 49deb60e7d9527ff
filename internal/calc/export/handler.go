package export

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"Resonator/internal/calc/bowl"
)

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input bowl.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := Write(&buf, input); err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"bowl.xlsx\"")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("write workbook", "error", err)
	}
}
