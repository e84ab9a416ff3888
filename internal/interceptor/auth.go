package interceptor

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/nestjam/yap-sequencer/internal/auth"
	"github.com/nestjam/yap-sequencer/internal/domain"

	customctx "github.com/nestjam/yap-sequencer/internal/context"
)

// AuthorizationKey задает ключ метаданных с токеном пользователя.
const AuthorizationKey = "authorization"

// AuthInterceptor добавляет пользователя из токена в контекст запроса.
// Если токена нет или он недействителен, в контекст добавляется новый пользователь.
type AuthInterceptor struct {
	userAuth *auth.UserAuth
}

// NewAuth создает перехватчик авторизации.
func NewAuth(userAuth *auth.UserAuth) *AuthInterceptor {
	return &AuthInterceptor{userAuth: userAuth}
}

// Handle обрабатывает унарный вызов.
//
//nolint:lll // default interceptor func type
func (i *AuthInterceptor) Handle(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	user := customctx.NewUser(domain.NewUserID(), true)

	if userID, ok := i.userFromMetadata(ctx); ok {
		user = customctx.NewUser(userID, false)
	}
	ctx = customctx.SetUser(ctx, user)

	resp, err = handler(ctx, req)
	if err != nil {
		err = errors.Wrap(err, "auth interceptor")
	}

	return
}

func (i *AuthInterceptor) userFromMetadata(ctx context.Context) (domain.UserID, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return domain.UserID{}, false
	}

	values := md.Get(AuthorizationKey)
	if len(values) == 0 {
		return domain.UserID{}, false
	}

	token := values[0]
	if bearer, ok := auth.ParseBearer(token); ok {
		token = bearer
	}

	userID, err := i.userAuth.ParseJWT(token)
	if err != nil {
		return domain.UserID{}, false
	}

	return userID, true
}
