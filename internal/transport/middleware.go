package transport

import (
	"net/http"

	"github.com/rpggio/pulseboard/internal/auth"
)

// Identity headers set by the upstream auth proxy.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorName = "X-Actor-Name"
	HeaderActorRole = "X-Actor-Role"
	HeaderTeamID    = "X-Team-Id"
)

// ActorMiddleware turns the identity headers into a domain actor on the
// request context. Requests without a valid identity are rejected.
func ActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := auth.Actor{
			ID:     r.Header.Get(HeaderActorID),
			Name:   r.Header.Get(HeaderActorName),
			Role:   auth.Role(r.Header.Get(HeaderActorRole)),
			TeamID: r.Header.Get(HeaderTeamID),
		}
		if actor.ID == "" || !actor.Role.Valid() {
			http.Error(w, "missing or invalid identity", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
	})
}
