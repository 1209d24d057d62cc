package api

import "net/http"

type sectionInfo struct {
	Heading  string `json:"heading"`
	BodySize int    `json:"body_chars"`
}

// handleSections lists section headings in document order.
func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	base := s.resolver.Base()
	sections := make([]sectionInfo, len(base.Sections))
	for i, sec := range base.Sections {
		sections[i] = sectionInfo{Heading: sec.Heading, BodySize: len([]rune(sec.Body))}
	}
	writeJSON(w, map[string]any{
		"document": base.Path,
		"sections": sections,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"summary": s.resolver.Summary()})
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"outline": s.resolver.Outline()})
}
