// Package viewer tracks the anonymous dashboard viewer. The browser original
// scoped settings and intervention records to the browser via localStorage;
// the service needs an equivalent owner key, so each browser gets a stable
// anonymous id in a signed session cookie. There are no accounts, roles, or
// credentials here.
package viewer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const idKey = "viewer_id"

type ctxKey string

const currentViewerKey ctxKey = "currentViewer"

// SessionManager issues and reads the viewer session cookie.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager. The key signs
// the cookie; secure controls the Secure flag and SameSite mode.
func NewSessionManager(sessionKey, cookieName, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("viewer: session key is empty; provide >=32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 365,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("viewer session store initialized",
		zap.Bool("secure", secure),
		zap.String("cookie", cookieName))

	return &SessionManager{store: store, name: cookieName, log: logger}, nil
}

// EnsureViewer assigns a viewer id on first contact and injects it into the
// request context on every request.
func (m *SessionManager) EnsureViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.store.Get(r, m.name)

		id, _ := sess.Values[idKey].(string)
		if id == "" {
			id = uuid.NewString()
			sess.Values[idKey] = id
			if err := sess.Save(r, w); err != nil {
				m.log.Warn("viewer session save failed", zap.Error(err))
			}
		}

		next.ServeHTTP(w, withViewer(r, id))
	})
}

// ID returns the viewer id from the request context, or "" when the
// middleware did not run.
func ID(r *http.Request) string {
	id, _ := r.Context().Value(currentViewerKey).(string)
	return id
}

// WithTestViewer injects a viewer id directly, bypassing the session
// middleware. Test helper.
func WithTestViewer(r *http.Request, id string) *http.Request {
	return withViewer(r, id)
}

func withViewer(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentViewerKey, id))
}
