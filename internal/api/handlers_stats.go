package api

import "net/http"

func (s *Server) handleEmbedStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "embedding stats unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, map[string]any{
		"model": s.resolver.Base().Index.Model(),
		"stats": s.stats.Snapshot(),
	})
}
