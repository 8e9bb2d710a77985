package web

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrijs2005/aqidash/internal/common"
	"github.com/dmitrijs2005/aqidash/internal/dataset"
	"github.com/dmitrijs2005/aqidash/internal/server/models"
)

const (
	msgSignupOK   = "Sign up successful! Please log in to continue."
	msgFeedbackOK = "Thank you for your feedback!"
)

func (s *HTTPServer) hasBackground() bool {
	if s.backgroundPath == "" {
		return false
	}
	info, err := os.Stat(s.backgroundPath)
	return err == nil && !info.IsDir()
}

// index renders the screen of the caller's session.
func (s *HTTPServer) index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)
	query := r.URL.Query()

	if sess.Screen() == models.PageAuth {
		switch mode := models.AuthMode(query.Get("mode")); mode {
		case models.AuthModeSignup, models.AuthModeLogin:
			sess.AuthMode = mode
		}
	}

	in := renderInput{
		Flashes:       sess.TakeFlashes(),
		HasBackground: s.hasBackground(),
		EmbedURL:      s.embedURL,
		DatasetPath:   s.data.Path(),
		Query:         query,
	}
	in.ChatInput, in.ChatReply = sess.TakeChat()
	s.saveSession(sess)
	in.Session = *sess

	if sess.Screen() == models.PageMain {
		var table *dataset.Table
		table, in.LoadErr = s.data.Load(ctx)
		if in.LoadErr != nil {
			s.logger.Error(ctx, "error loading dataset", "path", in.DatasetPath, "error", in.LoadErr)
		}
		in.Table = table
	}

	view := buildView(in)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "layout.html", view); err != nil {
		s.logger.Error(ctx, "error rendering page", "error", err)
	}
}

func (s *HTTPServer) start(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if sess.Start() {
		s.saveSession(sess)
	}
	redirectHome(w, r, "")
}

func (s *HTTPServer) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	if sess.Screen() != models.PageAuth {
		redirectHome(w, r, "")
		return
	}

	_, err := s.auth.Signup(ctx, r.PostFormValue("email"), r.PostFormValue("password"), r.PostFormValue("confirm_password"))
	if err != nil {
		s.logger.Info(ctx, "signup rejected", "error", err)
		f := flashFor(err)
		sess.AddFlash(f.Level, f.Text)
	} else {
		sess.AddFlash(models.FlashSuccess, msgSignupOK)
		sess.AuthMode = models.AuthModeLogin
	}

	s.saveSession(sess)
	redirectHome(w, r, "")
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	if sess.Screen() != models.PageAuth {
		redirectHome(w, r, "")
		return
	}

	u, err := s.auth.Login(ctx, r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		s.logger.Info(ctx, "login rejected", "error", err)
		f := flashFor(err)
		sess.AddFlash(f.Level, f.Text)
	} else {
		sess.LoginSucceeded(u.Email)
		sess.AddFlash(models.FlashSuccess, fmt.Sprintf("Welcome, %s!", u.Email))
		s.logger.Info(ctx, "user logged in", "email", u.Email)
	}

	s.saveSession(sess)
	redirectHome(w, r, "")
}

func (s *HTTPServer) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	user := sess.User
	if sess.Logout() {
		if err := s.rotateSession(w, r, sess); err != nil {
			s.logger.Error(ctx, "error rotating session", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.logger.Info(ctx, "user logged out", "email", user)
	}
	redirectHome(w, r, "")
}

func (s *HTTPServer) chatMessage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	if sess.Screen() == models.PageMain {
		input := r.PostFormValue("message")
		sess.ChatInput = input
		sess.ChatReply = s.chat.Respond(input)
		s.saveSession(sess)
	}
	redirectHome(w, r, r.URL.RawQuery)
}

func (s *HTTPServer) feedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	if sess.Screen() == models.PageMain {
		text := strings.TrimSpace(r.PostFormValue("feedback"))
		if text == "" {
			f := flashFor(common.ErrMissingFormFields)
			sess.AddFlash(f.Level, f.Text)
		} else {
			s.logger.Info(ctx, "feedback received", "email", sess.User, "length", len(text))
			sess.AddFlash(models.FlashSuccess, msgFeedbackOK)
		}
		s.saveSession(sess)
	}
	redirectHome(w, r, r.URL.RawQuery)
}

// background serves the configured page background image.
func (s *HTTPServer) background(w http.ResponseWriter, r *http.Request) {
	if !s.hasBackground() {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, s.backgroundPath)
}

func redirectHome(w http.ResponseWriter, r *http.Request, rawQuery string) {
	target := "/"
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
