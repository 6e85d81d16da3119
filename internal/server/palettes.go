package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kalil1010/ai-stylist/internal/store"
)

// UserHeader carries the signed-in user's id. The "userId" query parameter
// is accepted as a fallback.
const UserHeader = "X-User-ID"

var errStoreDisabled = errors.New("saved palettes are not configured")

func requestUser(r *http.Request) string {
	if user := strings.TrimSpace(r.Header.Get(UserHeader)); user != "" {
		return user
	}
	return strings.TrimSpace(r.URL.Query().Get("userId"))
}

// GET, POST /api/palettes
func (s *Server) palettesCollection(w http.ResponseWriter, r *http.Request) {
	if s.palettes == nil {
		s.unavailable(w, r, errStoreDisabled)
		return
	}
	user := requestUser(r)
	if user == "" {
		s.userRequired(w, r, store.ErrUserRequired)
		return
	}

	switch r.Method {
	case http.MethodGet:
		list, err := s.palettes.ListForUser(r.Context(), user)
		if err != nil {
			s.internalServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var p store.SavedPalette
		if !s.decodeJSON(w, r, &p) {
			return
		}
		p.UserID = user
		saved, err := s.palettes.Save(r.Context(), p)
		if err != nil {
			s.storeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, saved)

	default:
		s.methodNotAllowed(w, r, ErrMethod, http.MethodGet, http.MethodPost)
	}
}

// GET, DELETE /api/palettes/{id}
func (s *Server) paletteItem(w http.ResponseWriter, r *http.Request) {
	if s.palettes == nil {
		s.unavailable(w, r, errStoreDisabled)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodDelete {
		s.methodNotAllowed(w, r, ErrMethod, http.MethodGet, http.MethodDelete)
		return
	}
	user := requestUser(r)
	if user == "" {
		s.userRequired(w, r, store.ErrUserRequired)
		return
	}

	p, err := s.palettes.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	// Other users' palettes are reported as missing.
	if p.UserID != user {
		s.notFound(w, r, store.ErrNotFound)
		return
	}

	if r.Method == http.MethodGet {
		writeJSON(w, http.StatusOK, p)
		return
	}
	if err := s.palettes.Delete(r.Context(), p.ID); err != nil {
		s.storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.notFound(w, r, err)
	case errors.Is(err, store.ErrUserRequired):
		s.userRequired(w, r, err)
	case errors.Is(err, store.ErrNotOwner):
		s.forbidden(w, r, err)
	case errors.Is(err, store.ErrInvalidPalette):
		s.badRequest(w, r, err)
	default:
		s.internalServerError(w, r, err)
	}
}
