package middleware

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billed/internal/auth"
	"github.com/mmynk/billed/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
	// UserTypeKey is the context key for storing the authenticated user's type.
	UserTypeKey contextKey = "user_type"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// GetUser returns the session user stored in the context, or nil before authentication.
func GetUser(ctx context.Context) *models.User {
	userID := GetUserID(ctx)
	if userID == "" {
		return nil
	}
	userType, _ := ctx.Value(UserTypeKey).(models.UserType)
	return &models.User{ID: userID, Email: GetEmail(ctx), Type: userType}
}

// WithUser stores the session user in ctx.
func WithUser(ctx context.Context, user *models.User) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, user.ID)
	ctx = context.WithValue(ctx, EmailKey, user.Email)
	return context.WithValue(ctx, UserTypeKey, user.Type)
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

func authenticate(jwtManager *auth.JWTManager, header string) (*models.User, error) {
	token, err := bearerToken(header)
	if err != nil {
		return nil, err
	}
	claims, err := jwtManager.Validate(token)
	if err != nil {
		return nil, err
	}
	return claims.User(), nil
}

// RequireAuth returns an interceptor that validates JWT tokens and requires
// authentication for every procedure not listed in public. Public procedures
// still see the session user when a valid token is sent.
func RequireAuth(jwtManager *auth.JWTManager, public map[string]bool) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if public[req.Spec().Procedure] {
				if user, err := authenticate(jwtManager, req.Header().Get("Authorization")); err == nil {
					ctx = WithUser(ctx, user)
				}
				return next(ctx, req)
			}

			user, err := authenticate(jwtManager, req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithUser(ctx, user), req)
		}
	}
}

// RequireAuthHTTP is RequireAuth for plain HTTP handlers.
func RequireAuthHTTP(jwtManager *auth.JWTManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := authenticate(jwtManager, r.Header.Get("Authorization"))
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// BearerToken returns a client interceptor that sends token on every call.
func BearerToken(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token != "" && req.Spec().IsClient {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}
}
