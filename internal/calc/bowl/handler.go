package bowl

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, res)
}

type MetalEntry struct {
	Key Metal `json:"key"`
	Material
}

func (h *Handler) Metals(w http.ResponseWriter, r *http.Request) {
	entries := make([]MetalEntry, 0, len(metals))
	for _, m := range Metals() {
		mat, _ := m.Material()
		entries = append(entries, MetalEntry{Key: m, Material: mat})
	}
	writeJSON(w, entries)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
