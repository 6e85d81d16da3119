// Package server exposes colour analysis, outfit scoring and saved palettes
// over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/kalil1010/ai-stylist/internal/analysis"
	imageloader "github.com/kalil1010/ai-stylist/internal/image"
	"github.com/kalil1010/ai-stylist/internal/recommend"
	"github.com/kalil1010/ai-stylist/internal/store"
)

// DefaultMaxUploadBytes caps multipart image uploads.
const DefaultMaxUploadBytes = 10 << 20

// Stylist is the part of recommend.Client the server uses.
type Stylist interface {
	Suggest(ctx context.Context, r recommend.Request) (recommend.Suggestion, error)
	Chat(ctx context.Context, r recommend.ChatRequest) (string, error)
}

// Options configures a Server. Only Analyzer is required; palette routes
// answer 503 without a Palettes store and stylist routes without a Stylist.
type Options struct {
	Addr           string
	Analyzer       *analysis.Analyzer
	Palettes       *store.PaletteStore
	Stylist        Stylist
	AllowedOrigins []string
	MaxUploadBytes int64
	Logger         hclog.Logger
	// Debug adds the handler location to error bodies.
	Debug bool
}

// Server is the HTTP API.
type Server struct {
	addr           string
	analyzer       *analysis.Analyzer
	palettes       *store.PaletteStore
	stylist        Stylist
	allowedOrigins []string
	maxUpload      int64
	logger         hclog.Logger
	debug          bool

	mu       sync.Mutex
	sessions map[string]*analysis.Session
}

// New creates a Server.
func New(opts Options) *Server {
	s := &Server{
		addr:           opts.Addr,
		analyzer:       opts.Analyzer,
		palettes:       opts.Palettes,
		stylist:        opts.Stylist,
		allowedOrigins: opts.AllowedOrigins,
		maxUpload:      opts.MaxUploadBytes,
		logger:         opts.Logger,
		debug:          opts.Debug,
		sessions:       make(map[string]*analysis.Session),
	}
	if s.analyzer == nil {
		s.analyzer = analysis.New(analysis.Options{
			Loader: imageloader.NewSmartLoader().PublicOnly(),
			Logger: opts.Logger,
		})
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUploadBytes
	}
	if s.logger == nil {
		s.logger = hclog.NewNullLogger()
	}
	return s
}

// session returns the analysis session of user, creating it on first use.
// existingSession returns the user's session without creating one.
func (s *Server) existingSession(user string) (*analysis.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[user]
	return sess, ok
}

func (s *Server) session(user string) *analysis.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[user]
	if !ok {
		sess = analysis.NewSession()
		s.sessions[user] = sess
	}
	return sess
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("starting server", "addr", s.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownErr; err != nil {
		return err
	}
	s.logger.Info("stopped server", "addr", s.addr)
	return nil
}
