package share

import (
	"encoding/json"
	"errors"
	"net/http"

	"Resonator/internal/calc/bowl"
	"github.com/gorilla/mux"
)

type Handler struct {
	Signer *Signer
}

type TokenResponse struct {
	Token string `json:"token"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input bowl.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	token, err := h.Signer.Sign(input)
	if errors.Is(err, ErrNoKey) {
		http.Error(w, "Sharing disabled", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(TokenResponse{Token: token})
}

// Open recomputes the design behind a token, so a link keeps working if
// the presentation changes.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	input, err := h.Signer.Verify(mux.Vars(r)["token"])
	if errors.Is(err, ErrNoKey) {
		http.Error(w, "Sharing disabled", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, "Invalid or expired link", http.StatusNotFound)
		return
	}
	params, err := bowl.Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(params)
}
