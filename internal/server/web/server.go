// Package web serves the dashboard over HTTP: event handlers mutate the
// caller's session and redirect, and a single render path turns the session
// into a page.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/aqidash/internal/chatbot"
	"github.com/dmitrijs2005/aqidash/internal/dataset"
	"github.com/dmitrijs2005/aqidash/internal/logging"
	"github.com/dmitrijs2005/aqidash/internal/server/config"
	"github.com/dmitrijs2005/aqidash/internal/server/models"
	"github.com/dmitrijs2005/aqidash/internal/server/sessions"
)

//go:embed templates/*.html
var templatesFS embed.FS

const shutdownTimeout = 5 * time.Second

// Authenticator is the credential logic the handlers depend on.
type Authenticator interface {
	Signup(ctx context.Context, email, password, confirmPassword string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// DatasetSource loads the dataset shown on the main screen.
type DatasetSource interface {
	Load(ctx context.Context) (*dataset.Table, error)
	Path() string
}

type HTTPServer struct {
	address         string
	logger          logging.Logger
	auth            Authenticator
	sessions        *sessions.Store
	data            DatasetSource
	chat            *chatbot.Responder
	tmpl            *template.Template
	jwtSecret       []byte
	sessionValidity time.Duration
	embedURL        string
	backgroundPath  string
}

func NewHTTPServer(c *config.Config, l logging.Logger, a Authenticator, st *sessions.Store, ds DatasetSource, chat *chatbot.Responder) (*HTTPServer, error) {
	tmpl, err := template.New("layout.html").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &HTTPServer{
		address:         c.EndpointAddrHTTP,
		logger:          l.With("module", "http_server"),
		auth:            a,
		sessions:        st,
		data:            ds,
		chat:            chat,
		tmpl:            tmpl,
		jwtSecret:       []byte(c.SecretKey),
		sessionValidity: c.SessionValidityDuration,
		embedURL:        c.EmbedURL,
		backgroundPath:  c.BackgroundImagePath,
	}, nil
}

// Handler returns the routed handler with middleware applied.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /assets/background", s.background)

	mux.Handle("GET /{$}", s.withSession(s.index))
	mux.Handle("POST /start", s.withSession(s.start))
	mux.Handle("POST /signup", s.withSession(s.signup))
	mux.Handle("POST /login", s.withSession(s.login))
	mux.Handle("POST /logout", s.withSession(s.logout))
	mux.Handle("POST /chat", s.withSession(s.chatMessage))
	mux.Handle("POST /feedback", s.withSession(s.feedback))

	return s.withLogging(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
