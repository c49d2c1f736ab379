package http

import (
	"context"
	"net/http"
	"strings"
)

const sessionCookie = "session"

type sessionKey struct{}

// sessionUser is the authenticated identity attached to the request
// context by requireUser.
type sessionUser struct {
	ID   int64
	Name string
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessions.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// requireUser gates a handler behind a valid session cookie,
// redirecting anonymous visitors to the login screen.
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		claims, err := s.sessions.Parse(cookie.Value)
		if err != nil {
			s.clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		user := sessionUser{ID: claims.UserID, Name: claims.Name}
		ctx := context.WithValue(r.Context(), sessionKey{}, user)
		next(w, r.WithContext(ctx))
	}
}

func userFrom(r *http.Request) sessionUser {
	user, _ := r.Context().Value(sessionKey{}).(sessionUser)
	return user
}

// isAdmin compares the session name against the configured admin,
// ignoring case and surrounding whitespace.
func (s *Server) isAdmin(user sessionUser) bool {
	return strings.ToLower(strings.TrimSpace(user.Name)) == s.adminName
}

// issueSession logs the user in by minting a token and setting the
// cookie.
func (s *Server) issueSession(w http.ResponseWriter, userID int64, name string) error {
	token, err := s.sessions.Issue(userID, name)
	if err != nil {
		return err
	}
	s.setSessionCookie(w, token)
	return nil
}
