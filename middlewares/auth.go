package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ray-remotestate/bistro/database"
	"github.com/ray-remotestate/bistro/models"
	"github.com/ray-remotestate/bistro/utils"
	"github.com/sirupsen/logrus"
)

const TokenCookieName = "token"

type ContextKey string

const (
	userContextKey ContextKey = "user"
)

type TokenVerifier interface {
	Verify(token string) (*utils.Claims, error)
}

type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthMiddleware reads the session token from the "token" cookie and puts
// the verified claims on the request context.
func AuthMiddleware(tokens TokenVerifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(TokenCookieName)
			if err != nil || cookie.Value == "" {
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorised Access")
				return
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorised Access")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, claims *utils.Claims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

func GetAuthenticatedUser(r *http.Request) (*utils.Claims, error) {
	claims, ok := r.Context().Value(userContextKey).(*utils.Claims)
	if !ok || claims == nil {
		return nil, errors.New("no user in context")
	}
	return claims, nil
}

// AdminMiddleware must run after AuthMiddleware. It loads the caller's user
// record on every request and lets only role "Admin" through.
func AdminMiddleware(users UserLookup) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := GetAuthenticatedUser(r)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorised Access")
				return
			}

			isAdmin, err := IsAdmin(r.Context(), users, claims.Email)
			if err != nil {
				logrus.WithError(err).WithField("email", claims.Email).Error("failed to look up user role")
				utils.RespondError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if !isAdmin {
				utils.RespondError(w, http.StatusForbidden, "forbidden access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IsAdmin reports whether the user with this email has the Admin role. A
// missing user is not an error, just not an admin.
func IsAdmin(ctx context.Context, users UserLookup, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	user, err := users.GetUserByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.Role.IsAdmin(), nil
}

// RequireSameEmail writes a 403 and returns false unless the authenticated
// caller owns email.
func RequireSameEmail(w http.ResponseWriter, r *http.Request, email string) bool {
	claims, err := GetAuthenticatedUser(r)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorised Access")
		return false
	}
	if claims.Email == "" || claims.Email != email {
		utils.RespondError(w, http.StatusForbidden, "forbidden access")
		return false
	}
	return true
}
