package server

import (
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Handler returns the routed API wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.home)
	mux.HandleFunc("/api/health", s.health)
	mux.HandleFunc("/api/analyze-image", s.analyzeHexes)
	mux.HandleFunc("/api/analyze", s.analyzeUpload)
	mux.HandleFunc("/api/analyze/latest", s.latestAnalysis)
	mux.HandleFunc("/api/analyze-url", s.analyzeURL)
	mux.HandleFunc("/api/name", s.nameColours)
	mux.HandleFunc("/api/palette", s.richPalette)
	mux.HandleFunc("/api/score", s.scorePlan)
	mux.HandleFunc("/api/best-plan", s.bestPlan)
	mux.HandleFunc("/api/palettes", s.palettesCollection)
	mux.HandleFunc("/api/palettes/{id}", s.paletteItem)
	mux.HandleFunc("/api/outfit-suggestion", s.outfitSuggestion)
	mux.HandleFunc("/api/stylist-chat", s.stylistChat)

	return s.logRequests(s.withCORS(mux))
}

var localhostPattern = regexp.MustCompile(`^localhost:\d+$`)

func cleanOrigin(origin string) string {
	cleaned := strings.TrimPrefix(origin, "https://")
	cleaned = strings.TrimPrefix(cleaned, "http://")
	if idx := strings.Index(cleaned, "/"); idx != -1 {
		cleaned = cleaned[:idx]
	}
	return cleaned
}

func (s *Server) isAllowedOrigin(origin string) bool {
	cleaned := cleanOrigin(origin)
	if localhostPattern.MatchString(cleaned) {
		return true
	}
	for _, allowed := range s.allowedOrigins {
		if allowed == "*" || cleanOrigin(allowed) == cleaned {
			return true
		}
	}
	return false
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !s.isAllowedOrigin(origin) {
			s.writeError(w, http.StatusForbidden, "Origin Not Allowed", "origin not allowed: "+cleanOrigin(origin), "Add the origin to STYLIST_ALLOWED_ORIGINS")
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, "+UserHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}
