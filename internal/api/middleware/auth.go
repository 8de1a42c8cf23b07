package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
	msgInvalidRole   = "некорректная роль пользователя, ожидается customer или stylist"
)

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	userRoleKey contextKey = "user_role"
)

// Auth извлекает ID и роль пользователя из заголовков.
// Без роли пользователь считается клиентом.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		role := domain.ActorCustomer
		if raw := r.Header.Get(HeaderUserRole); raw != "" {
			role = domain.ActorRole(raw)
			if role != domain.ActorCustomer && role != domain.ActorStylist {
				handlers.RespondBadRequest(w, msgInvalidRole)
				return
			}
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetUserRole возвращает роль пользователя из контекста
func GetUserRole(ctx context.Context) domain.ActorRole {
	if role, ok := ctx.Value(userRoleKey).(domain.ActorRole); ok {
		return role
	}
	return domain.ActorCustomer
}

// WithUser кладет пользователя в контекст. Используется в тестах хендлеров.
func WithUser(ctx context.Context, userID int64, role domain.ActorRole) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}
