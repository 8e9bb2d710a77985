// Package models holds the server-side records shared by repositories,
// services and the web layer.
package models

import "time"

// Page is the screen a session is on.
type Page string

const (
	PageLanding Page = "landing"
	PageAuth    Page = "auth"
	PageMain    Page = "main"
)

// AuthMode selects which form the auth screen shows.
type AuthMode string

const (
	AuthModeSignup AuthMode = "signup"
	AuthModeLogin  AuthMode = "login"
)

// FlashLevel drives how an inline message is styled.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashInfo    FlashLevel = "info"
	FlashWarning FlashLevel = "warning"
	FlashError   FlashLevel = "error"
)

// Flash is an inline message shown once on the next render.
type Flash struct {
	Level FlashLevel
	Text  string
}

// Session is one browser's navigation state. Handlers work on a copy and
// store it back, so a Session value never needs locking.
type Session struct {
	ID        string
	Page      Page
	User      string
	AuthMode  AuthMode
	Flashes   []Flash
	ChatInput string
	ChatReply string
	CreatedAt time.Time
}

// NewSession returns a session on the landing page with nobody logged in.
func NewSession(id string) Session {
	return Session{
		ID:        id,
		Page:      PageLanding,
		AuthMode:  AuthModeSignup,
		CreatedAt: time.Now(),
	}
}

// Authenticated reports whether a user is logged in.
func (s *Session) Authenticated() bool {
	return s.User != ""
}

// Screen is the page to render. A main page without a user falls back to
// landing.
func (s *Session) Screen() Page {
	if s.Page == PageMain && !s.Authenticated() {
		return PageLanding
	}
	return s.Page
}

// Start moves landing to auth. It returns false outside landing.
func (s *Session) Start() bool {
	if s.Screen() != PageLanding {
		return false
	}
	s.Page = PageAuth
	return true
}

// LoginSucceeded records the authenticated user and moves to main.
func (s *Session) LoginSucceeded(email string) {
	s.User = email
	s.Page = PageMain
}

// Logout clears the user and returns to landing. It returns false when
// nobody was logged in.
func (s *Session) Logout() bool {
	if !s.Authenticated() {
		return false
	}
	s.User = ""
	s.Page = PageLanding
	s.ChatInput = ""
	s.ChatReply = ""
	return true
}

// AddFlash queues an inline message.
func (s *Session) AddFlash(level FlashLevel, text string) {
	s.Flashes = append(s.Flashes, Flash{Level: level, Text: text})
}

// TakeFlashes returns queued messages and clears the queue.
func (s *Session) TakeFlashes() []Flash {
	f := s.Flashes
	s.Flashes = nil
	return f
}

// TakeChat returns the last chat exchange and clears it.
func (s *Session) TakeChat() (input, reply string) {
	input, reply = s.ChatInput, s.ChatReply
	s.ChatInput, s.ChatReply = "", ""
	return input, reply
}
