// Package context переносит сведения о пользователе запроса через context.Context.
package context

import (
	"context"

	"github.com/nestjam/yap-sequencer/internal/domain"
)

type userKey struct{}

// User содержит информацию о пользователе, выполняющем запрос.
type User struct {
	ID    domain.UserID // идентификатор пользователя
	IsNew bool          // пользователь создан при обработке запроса и еще не владеет последовательностями
}

// NewUser создает экземпляр пользователя.
func NewUser(id domain.UserID, isNew bool) User {
	return User{
		ID:    id,
		IsNew: isNew,
	}
}

// SetUser возвращает контекст с добавленным пользователем.
func SetUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser получает пользователя из контекста, если пользователь добавлен в контекст.
func GetUser(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey{}).(User)
	return user, ok
}

// UserID возвращает идентификатор пользователя из контекста.
// Если пользователя нет, возвращается нулевой идентификатор, который не владеет ни одной последовательностью.
func UserID(ctx context.Context) domain.UserID {
	user, _ := GetUser(ctx)
	return user.ID
}
