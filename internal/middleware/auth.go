package middleware

import (
	"net/http"

	"github.com/nestjam/yap-sequencer/internal/auth"
	customctx "github.com/nestjam/yap-sequencer/internal/context"
	"github.com/nestjam/yap-sequencer/internal/domain"
)

const failedToIssueTokenMessage = "failed to issue token"

// Auth возвращает посредника, который добавляет пользователя в контекст запроса.
// Если запрос не содержит действительный токен, создается новый пользователь,
// и его токен передается в ответе в cookie и заголовке Authorization.
func Auth(a *auth.UserAuth) func(h http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			user, err := authenticate(w, r, a)
			if err != nil {
				http.Error(w, failedToIssueTokenMessage, http.StatusInternalServerError)
				return
			}

			h.ServeHTTP(w, r.WithContext(customctx.SetUser(r.Context(), user)))
		}
		return http.HandlerFunc(f)
	}
}

func authenticate(w http.ResponseWriter, r *http.Request, a *auth.UserAuth) (customctx.User, error) {
	if userID, err := a.GetUserID(r); err == nil {
		return customctx.NewUser(userID, false), nil
	}

	userID := domain.NewUserID()
	if err := a.SetToken(w, userID); err != nil {
		return customctx.User{}, err
	}

	return customctx.NewUser(userID, true), nil
}
