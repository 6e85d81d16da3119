package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"
)

// HandlerError is the JSON body of every failed request.
type HandlerError struct {
	ErrorName        string `json:"errorName"`
	Description      string `json:"description"`
	PossibleSolution string `json:"possibleSolution"`
	CallerInfo       string `json:"callerInfo,omitempty"`
}

var (
	ErrGET    = fmt.Errorf("GET method required for this endpoint")
	ErrPOST   = fmt.Errorf("POST method required for this endpoint")
	ErrMethod = fmt.Errorf("unsupported method for this endpoint")
)

func getCallerInfo() string {
	_, file, line, ok := runtime.Caller(3)
	if !ok {
		return "[unknown]"
	}
	return fmt.Sprintf("[%s:%d]", filepath.Base(file), line)
}

func (s *Server) writeError(w http.ResponseWriter, status int, name, description, solution string) {
	herr := HandlerError{
		ErrorName:        name,
		Description:      description,
		PossibleSolution: solution,
	}
	if s.debug {
		herr.CallerInfo = getCallerInfo()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(herr)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request, err error, allow ...string) {
	for _, m := range allow {
		w.Header().Add("Allow", m)
	}
	s.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed",
		err.Error()+" you used: "+r.Method, "Use one of the allowed methods")
}

func (s *Server) badJSONRequest(w http.ResponseWriter, _ *http.Request, err error) {
	s.writeError(w, http.StatusBadRequest, "Error Parsing JSON", err.Error(), "Double check your JSON formatting")
}

func (s *Server) badRequest(w http.ResponseWriter, _ *http.Request, err error) {
	s.writeError(w, http.StatusBadRequest, "Bad Request", err.Error(), "Check your request parameters")
}

func (s *Server) invalidColour(w http.ResponseWriter, _ *http.Request, err error) {
	s.writeError(w, http.StatusBadRequest, "Invalid Colour", err.Error(), `Send colours as "#RRGGBB" hex strings`)
}

func (s *Server) unsupportedImage(w http.ResponseWriter, _ *http.Request, err error) {
	s.writeError(w, http.StatusUnsupportedMediaType, "Unsupported Image", err.Error(), "Upload a PNG, JPEG, GIF, WebP, BMP or TIFF photo")
}

func (s *Server) userRequired(w http.ResponseWriter, _ *http.Request, err error) {
	s.writeError(w, http.StatusUnauthorized, "User Required", err.Error(), "Send the user id in the "+UserHeader+" header")
}

func (s *Server) forbidden(w http.ResponseWriter, _ *http.Request, err error) {
	s.writeError(w, http.StatusForbidden, "Forbidden", err.Error(), "Only the owner can change this palette")
}

func (s *Server) notFound(w http.ResponseWriter, _ *http.Request, err error) {
	s.writeError(w, http.StatusNotFound, "Not Found", err.Error(), "Check the id and try again")
}

func (s *Server) unavailable(w http.ResponseWriter, _ *http.Request, err error) {
	s.writeError(w, http.StatusServiceUnavailable, "Feature Unavailable", err.Error(), "Ask the operator to configure this feature")
}

func (s *Server) upstreamError(w http.ResponseWriter, _ *http.Request, err error) {
	s.writeError(w, http.StatusBadGateway, "Stylist Unavailable", err.Error(), "Retry in a moment")
}

func (s *Server) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	s.writeError(w, http.StatusInternalServerError, "Internal Server Error", err.Error(), "Internal Server Error requiring support")
}
