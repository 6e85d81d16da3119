package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kalil1010/ai-stylist/internal/analysis"
	"github.com/kalil1010/ai-stylist/internal/colour"
	imageloader "github.com/kalil1010/ai-stylist/internal/image"
	"github.com/kalil1010/ai-stylist/internal/outfit"
	"github.com/kalil1010/ai-stylist/internal/recommend"
	"github.com/kalil1010/ai-stylist/internal/security"
	"github.com/kalil1010/ai-stylist/internal/version"
)

// maxJSONBytes caps JSON request bodies.
const maxJSONBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBytes)).Decode(dst); err != nil {
		s.badJSONRequest(w, r, err)
		return false
	}
	return true
}

// GET /
func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.notFound(w, r, fmt.Errorf("no route for %s", r.URL.Path))
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "Stylist API")
}

// GET /api/health
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, ErrGET, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  version.Short(),
		"palettes": s.palettes != nil,
		"stylist":  s.stylist != nil,
	})
}

type analyzeHexesRequest struct {
	DominantHexes []string `json:"dominantHexes"`
}

// POST /api/analyze-image
func (s *Server) analyzeHexes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, ErrPOST, http.MethodPost)
		return
	}

	var req analyzeHexesRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	res, err := analysis.FromHexes(req.DominantHexes)
	if err != nil {
		if errors.Is(err, analysis.ErrNoColours) {
			s.invalidColour(w, r, err)
			return
		}
		s.internalServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type analyzeURLRequest struct {
	URL string `json:"url"`
}

// POST /api/analyze-url
func (s *Server) analyzeURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, ErrPOST, http.MethodPost)
		return
	}

	var req analyzeURLRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := security.ValidateImageURL(req.URL); err != nil {
		s.badRequest(w, r, err)
		return
	}

	res, err := s.analyzer.AnalyzePath(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, security.ErrUnsafeURL) {
			s.badRequest(w, r, err)
			return
		}
		if errors.Is(err, imageloader.ErrDecode) {
			s.unsupportedImage(w, r, err)
			return
		}
		s.upstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
// POST /api/analyze
func (s *Server) analyzeUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, ErrPOST, http.MethodPost)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, _, err := r.FormFile("image")
	if err != nil {
		s.badRequest(w, r, fmt.Errorf("multipart field %q: %w", "image", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	analyze := func(ctx context.Context) (*analysis.Result, error) {
		return s.analyzer.AnalyzeBytes(ctx, data)
	}
	var res *analysis.Result
	// A signed-in user's newer upload supersedes one still in flight.
	if user := requestUser(r); user != "" {
		res, err = s.session(user).Run(r.Context(), analyze)
	} else {
		res, err = analyze(r.Context())
	}
	if err != nil {
		if errors.Is(err, analysis.ErrSuperseded) {
			s.writeError(w, http.StatusConflict, "Analysis Superseded", err.Error(), "Use the result of the newest upload")
			return
		}
		if errors.Is(err, imageloader.ErrDecode) {
			s.unsupportedImage(w, r, err)
			return
		}
		s.internalServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /api/analyze/latest
func (s *Server) latestAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, ErrGET, http.MethodGet)
		return
	}
	user := requestUser(r)
	if user == "" {
		s.userRequired(w, r, errors.New("a user is required to look up the latest analysis"))
		return
	}
	var res *analysis.Result
	if sess, ok := s.existingSession(user); ok {
		res = sess.Latest()
	}
	if res == nil {
		s.notFound(w, r, errors.New("no analysis yet"))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type nameRequest struct {
	Hexes []string `json:"hexes"`
	Text  string   `json:"text"`
}

type namedHex struct {
	Hex  string `json:"hex"`
	Name string `json:"name"`
}

// POST /api/name
func (s *Server) nameColours(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, ErrPOST, http.MethodPost)
		return
	}

	var req nameRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	names := make([]namedHex, 0, len(req.Hexes))
	for _, h := range req.Hexes {
		norm, err := colour.NormalizeHex(h)
		if err != nil {
			s.invalidColour(w, r, err)
			return
		}
		name, _ := colour.NameFor(norm)
		names = append(names, namedHex{Hex: norm, Name: name})
	}

	mentioned := make([]namedHex, 0)
	for _, c := range colour.FindInText(req.Text) {
		mentioned = append(mentioned, namedHex{Hex: c.Hex, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, map[string]any{"colors": names, "mentioned": mentioned})
}

// GET /api/palette?base=#RRGGBB
func (s *Server) richPalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, ErrGET, http.MethodGet)
		return
	}

	rich, err := colour.Rich(r.URL.Query().Get("base"))
	if err != nil {
		s.invalidColour(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rich)
}

type scoreRequest struct {
	Base string            `json:"base"`
	Plan map[string]string `json:"plan"`
}

// POST /api/score
func (s *Server) scorePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, ErrPOST, http.MethodPost)
		return
	}

	var req scoreRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	plan, err := outfit.PlanFromHexes(req.Plan)
	if err != nil {
		s.invalidColour(w, r, err)
		return
	}
	res, err := outfit.Score(req.Base, plan)
	if err != nil {
		s.invalidColour(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type bestPlanResponse struct {
	Plan    map[string]string  `json:"plan"`
	Total   int                `json:"total"`
	Result  outfit.Result      `json:"result"`
	Palette colour.RichPalette `json:"palette"`
}

// POST /api/best-plan
func (s *Server) bestPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, ErrPOST, http.MethodPost)
		return
	}

	var req scoreRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	rich, err := colour.Rich(req.Base)
	if err != nil {
		s.invalidColour(w, r, err)
		return
	}
	plan, total, err := outfit.Best(rich, req.Base)
	if err != nil {
		s.invalidColour(w, r, err)
		return
	}
	res, err := outfit.Score(req.Base, plan)
	if err != nil {
		s.internalServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bestPlanResponse{Plan: plan.Hexes(), Total: total, Result: res, Palette: rich})
}

// POST /api/outfit-suggestion
func (s *Server) outfitSuggestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, ErrPOST, http.MethodPost)
		return
	}
	if s.stylist == nil {
		s.unavailable(w, r, errors.New("outfit suggestions are not configured"))
		return
	}

	var req recommend.Request
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.badRequest(w, r, err)
		return
	}
	req.DominantHexes = analysis.SanitizeHexes(req.DominantHexes)

	suggestion, err := s.stylist.Suggest(r.Context(), req)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

// POST /api/stylist-chat
func (s *Server) stylistChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, ErrPOST, http.MethodPost)
		return
	}
	if s.stylist == nil {
		s.unavailable(w, r, errors.New("stylist chat is not configured"))
		return
	}

	var req recommend.ChatRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.badRequest(w, r, errors.New("message is required"))
		return
	}

	reply, err := s.stylist.Chat(r.Context(), req)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
