package session

import (
	"net/http"
	"time"

	"sheenclassics/internal/logger"
	"sheenclassics/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager issues the sc_sid cookie and puts the session id on every request
// context.
type Manager struct {
	store  Store
	ttl    time.Duration
	secure bool
}

func NewManager(store Store, ttl time.Duration, secure bool) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, ttl: ttl, secure: secure}
}

func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := m.resolve(r)
		if sid.fresh {
			m.setCookie(w, sid.id)
		}
		ctx := utils.WithSessionID(r.Context(), sid.id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type resolved struct {
	id    string
	fresh bool
}

// resolve keeps a known cookie id and replaces anything else. When Redis is
// unreachable the visitor still gets an id; it just is not persisted.
func (m *Manager) resolve(r *http.Request) resolved {
	ctx := r.Context()
	log := logger.FromCtx(ctx).With(zap.String("layer", "session"))

	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		ok, err := m.store.Touch(ctx, c.Value)
		if err != nil {
			log.Warn("session store unavailable, keeping cookie id", zap.Error(err))
			return resolved{id: c.Value}
		}
		if ok {
			return resolved{id: c.Value}
		}
	}

	id, err := m.store.Create(ctx)
	if err != nil {
		log.Warn("failed to persist session, issuing transient id", zap.Error(err))
		id = uuid.NewString()
	}
	return resolved{id: id, fresh: true}
}

func (m *Manager) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Destroy drops the current session and expires its cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) {
	if sid := utils.GetSessionIDFromContext(r.Context()); sid != "" {
		if err := m.store.Delete(r.Context(), sid); err != nil {
			logger.FromCtx(r.Context()).Warn("failed to delete session", zap.Error(err))
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
