package middleware

import (
	"context"
	"fmt"
	"net/http"

	"authd/internal/app/service"
	"authd/internal/common"
	"authd/internal/common/security"
	"authd/internal/domain/model"

	"github.com/google/uuid"
)

type contextKey string

const userCtxKey contextKey = "user"

// Identity resolves the inbound request's credential (token query parameter
// first, session cookie second) to an account and stores it in the request
// context. An unresolvable or malformed credential is not an error here; the
// request simply proceeds unauthenticated and the authorization gate decides.
type Identity struct {
	sessions *service.SessionService
	tokens   *service.TokenService
}

func NewIdentity(sessions *service.SessionService, tokens *service.TokenService) *Identity {
	return &Identity{sessions: sessions, tokens: tokens}
}

func (m *Identity) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolve(r)
		if err != nil {
			common.RespondWithError(w, common.HTTPStatusFromError(err), common.ErrInternalServer.Error())
			return
		}
		if user != nil {
			ctx := context.WithValue(r.Context(), userCtxKey, user)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Identity) resolve(r *http.Request) (*model.User, error) {
	if value := r.URL.Query().Get("token"); value != "" {
		tokenID, err := uuid.Parse(value)
		if err != nil {
			return nil, nil
		}
		return m.tokens.Resolve(r.Context(), tokenID)
	}

	value := security.SessionIDFromRequest(r)
	if value == "" {
		return nil, nil
	}
	sessionID, err := uuid.Parse(value)
	if err != nil {
		return nil, nil
	}
	return m.sessions.Resolve(r.Context(), sessionID)
}

// UserFromContext returns the resolved account, or nil for an
// unauthenticated request.
func UserFromContext(ctx context.Context) *model.User {
	user, _ := ctx.Value(userCtxKey).(*model.User)
	return user
}

// WithUser injects a resolved account into ctx.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// Requirement declares what an operation demands of the caller: nothing,
// any authenticated account, or an account with a specific role.
type Requirement struct {
	authenticated bool
	role          string
}

var (
	None          = Requirement{}
	Authenticated = Requirement{authenticated: true}
)

func Role(role string) Requirement {
	return Requirement{authenticated: true, role: role}
}

// Authorize gates a route on its declared requirement. It runs strictly
// before the handler; a rejected request never reaches handler code.
func Authorize(req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !req.authenticated {
				next.ServeHTTP(w, r)
				return
			}

			user := UserFromContext(r.Context())
			if user == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "no authenticated user found")
				return
			}

			if req.role != "" && user.Role != req.role {
				msg := fmt.Sprintf("invalid user role %q (expected: %q)", user.Role, req.role)
				common.RespondWithError(w, http.StatusUnauthorized, msg)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
