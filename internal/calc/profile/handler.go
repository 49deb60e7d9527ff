package profile

import (
	"encoding/json"
	"net/http"

	"Resonator/internal/calc/bowl"
)

type Input struct {
	Bowl  bowl.Input `json:"bowl"`
	Shape string     `json:"shape"`
	Steps int        `json:"steps"`
}

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	shape, err := ParseShape(input.Shape)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, err := bowl.Calculate(input.Bowl)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	res, err := Lathe(params.Dimensions, shape, input.Steps)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
