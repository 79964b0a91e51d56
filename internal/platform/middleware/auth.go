package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"razeflow/internal/jwtauth"
	"razeflow/internal/workflow/models"
	id "razeflow/pkg/domain"
)

// JWTValidator is the slice of jwtauth.Service the middleware needs.
type JWTValidator interface {
	ValidateToken(tokenString string) (*jwtauth.Claims, error)
}

type contextKeyActor struct{}

// GetActor retrieves the authenticated caller from the context. The zero
// Actor means RequireAuth did not run, which is a wiring bug.
func GetActor(ctx context.Context) models.Actor {
	actor, ok := ctx.Value(contextKeyActor{}).(models.Actor)
	if !ok {
		return models.Actor{}
	}
	return actor
}

func writeJSONError(w http.ResponseWriter, status int, code, desc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + code + `","error_description":"` + desc + `"}`))
}

// RequireAuth validates the bearer token and places the caller's Actor in the
// context. The role claim must carry exactly one known role; everything else
// is rejected here, before any transition logic runs.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			role := models.Role(claims.Role)
			if !role.IsValid() {
				logger.WarnContext(ctx, "unauthorized access - unknown role",
					"role", claims.Role,
					"request_id", GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusForbidden, "forbidden", "Unknown role")
				return
			}

			userID, err := id.ParseUserID(claims.UserID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid subject")
				return
			}

			actor := models.Actor{UserID: userID, Role: role}
			if claims.SupervisorID != "" {
				supervisorID, err := id.ParseSupervisorID(claims.SupervisorID)
				if err != nil {
					writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid supervisor claim")
					return
				}
				actor.SupervisorID = supervisorID
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, contextKeyActor{}, actor)))
		})
	}
}
