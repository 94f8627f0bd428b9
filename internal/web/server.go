// Package web serves the portfolio page, its live event endpoints and the
// admin area.
package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/anuptiwari/portfolio/internal/config"
	"github.com/anuptiwari/portfolio/internal/contact"
	"github.com/anuptiwari/portfolio/internal/content"
	"github.com/anuptiwari/portfolio/internal/live"
	"github.com/anuptiwari/portfolio/internal/store"
)

const (
	heartbeatInterval   = 15 * time.Second
	maintenanceInterval = 24 * time.Hour
	shutdownTimeout     = 10 * time.Second
)

// Deps are the collaborators a Server is built from. Store may be nil, in
// which case visitor tracking and the admin statistics are unavailable.
type Deps struct {
	Config  config.Config
	Content *content.Source
	Hub     *live.Hub
	Store   *store.Store
	// Sinks receive submissions from the stateless contact endpoint. Live
	// visits use the hub's own sinks.
	Sinks []contact.Sink
}

// Server is the HTTP front end.
type Server struct {
	cfg     config.Config
	content *content.Source
	hub     *live.Hub
	store   *store.Store
	sinks   []contact.Sink

	templates  *template.Template
	limiter    *clientLimiter
	salt       string
	sessionKey []byte
	heartbeat  time.Duration
	now        func() time.Time

	engine *gin.Engine
}

// New builds the server and registers its routes.
func New(d Deps) (*Server, error) {
	if d.Content == nil || d.Hub == nil {
		return nil, errors.New("web: content source and hub are required")
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}

	s := &Server{
		cfg:        d.Config,
		content:    d.Content,
		hub:        d.Hub,
		store:      d.Store,
		sinks:      d.Sinks,
		templates:  tmpl,
		limiter:    newClientLimiter(d.Config.RateLimit, d.Config.RateBurst),
		salt:       d.Config.HashSalt,
		sessionKey: []byte(d.Config.SessionSecret),
		heartbeat:  heartbeatInterval,
		now:        time.Now,
	}
	if s.salt == "" {
		s.salt = randomHex(16)
	}
	if len(s.sessionKey) == 0 {
		log.Println("WARNING: PORTFOLIO_SESSION_SECRET not set, admin sessions will not survive a restart.")
		s.sessionKey = []byte(randomHex(32))
	}

	s.engine = gin.Default()
	s.engine.SetHTMLTemplate(tmpl)
	s.routes()
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
	}

	// Streams never finish on their own; unmount them so Shutdown can drain.
	s.hub.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server shutdown")
	}
	return nil
}

// RunMaintenance evicts idle rate limiters and deletes visitor rows past
// their retention until ctx is done.
func (s *Server) RunMaintenance(ctx context.Context) error {
	go s.limiter.Run(ctx)

	cleanup := func() {
		if s.store == nil {
			return
		}
		n, err := s.store.CleanupVisitors(ctx, s.now().Add(-s.cfg.VisitorRetention))
		if err != nil {
			log.Printf("Error cleaning up visitor data: %v", err)
			return
		}
		if n > 0 {
			log.Printf("Cleaned up %d old visitor records", n)
		}
	}

	cleanup()
	ticker := time.NewTicker(maintenanceInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			cleanup()
		}
	}
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
