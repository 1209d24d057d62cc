package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type answerRequest struct {
	Query string `json:"query"`
}

// handleAnswer resolves one query. The resolver always produces an answer,
// so only malformed requests fail.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		jsonError(w, "query is required", http.StatusBadRequest)
		return
	}

	writeJSON(w, s.resolver.Resolve(r.Context(), req.Query))
}
