package server

import (
	"context"
	"net/http"
	"strings"
)

// Role controls what a caller may change.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// Request headers carrying the caller identity. Authentication happens in
// front of this service; these headers are trusted as given.
const (
	HeaderUser = "X-User"
	HeaderRole = "X-Role"
)

// Session is the caller identity for one request.
type Session struct {
	User string `json:"user"`
	Role Role   `json:"role"`
}

// CanEdit reports whether the session may create or remove scenarios.
func (s Session) CanEdit() bool {
	return s.Role == RoleEditor || s.Role == RoleAdmin
}

// SessionFromRequest reads the identity headers. A missing or unknown role
// is treated as viewer.
func SessionFromRequest(r *http.Request) Session {
	sess := Session{
		User: strings.TrimSpace(r.Header.Get(HeaderUser)),
		Role: RoleViewer,
	}
	switch Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderRole)))) {
	case RoleEditor:
		sess.Role = RoleEditor
	case RoleAdmin:
		sess.Role = RoleAdmin
	}
	return sess
}

type sessionKey struct{}

// WithSession stores sess in ctx.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFrom returns the session stored by WithSession.
func SessionFrom(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(Session)
	return sess, ok
}

// requireEditor rejects anonymous callers with 401 and viewers with 403.
func (s *Server) requireEditor(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFrom(r.Context())
		if sess.User == "" {
			writeError(w, http.StatusUnauthorized, "identify yourself with the "+HeaderUser+" header")
			return
		}
		if !sess.CanEdit() {
			writeError(w, http.StatusForbidden, "role "+string(sess.Role)+" may not modify scenarios")
			return
		}
		next(w, r)
	}
}
