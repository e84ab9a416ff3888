package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/nestjam/yap-sequencer/internal/domain"
)

const (
	userAuthCookieName  = "lightid_auth"
	AuthorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
	DefaultSecretKey    = "supersecretkey"
	TokenExp            = time.Hour * 24
)

// ErrNoToken возвращается, если запрос не содержит токен пользователя.
var ErrNoToken = errors.New("no auth token")

var errInvalidToken = errors.New("invalid token")

// Claims определяет зарегистрированные утверждения и данные пользователя.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID
}

// UserAuth выполняет аутентификацию пользователя.
type UserAuth struct {
	secret   string
	tokenExp time.Duration
}

// New создает экземпляр UserAuth с указанным секретом и временем жизни токена.
func New(secret string, tokenExp time.Duration) *UserAuth {
	return &UserAuth{
		secret:   secret,
		tokenExp: tokenExp,
	}
}

// GetUserID возвращает идентификатор пользователя из cookie или заголовка Authorization.
func (a *UserAuth) GetUserID(r *http.Request) (domain.UserID, error) {
	const op = "get user id from request"

	token, err := tokenFromRequest(r)
	if err != nil {
		return domain.UserID{}, errors.Wrap(err, op)
	}

	userID, err := a.ParseJWT(token)
	if err != nil {
		return domain.UserID{}, errors.Wrap(err, op)
	}

	return userID, nil
}

func tokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(userAuthCookieName); err == nil {
		return cookie.Value, nil
	}

	if token, ok := ParseBearer(r.Header.Get(AuthorizationHeader)); ok {
		return token, nil
	}

	return "", ErrNoToken
}

// ParseBearer извлекает токен из значения заголовка Authorization вида "Bearer <token>".
func ParseBearer(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}

// Bearer возвращает значение заголовка Authorization для токена.
func Bearer(token string) string {
	return bearerPrefix + token
}

// ParseJWT выполняет парсинг JWT и возвращает идентификатор пользователя в случае успеха.
func (a *UserAuth) ParseJWT(tokenString string) (domain.UserID, error) {
	const op = "parse jwt"
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(a.secret), nil
		})

	if err != nil {
		return domain.UserID{}, errors.Wrap(err, op)
	}

	if !token.Valid {
		return domain.UserID{}, errors.Wrap(errInvalidToken, op)
	}

	return domain.UserID(claims.UserID), nil
}

// CreateCookie возвращает Cookie с идентификатором пользователя.
func (a *UserAuth) CreateCookie(userID domain.UserID) (*http.Cookie, error) {
	const op = "create cookie"
	token, err := a.BuildJWT(userID)

	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	return a.cookie(token), nil
}

// SetToken передает в ответе токен нового пользователя: в cookie и в заголовке Authorization.
func (a *UserAuth) SetToken(w http.ResponseWriter, userID domain.UserID) error {
	const op = "set token"
	token, err := a.BuildJWT(userID)

	if err != nil {
		return errors.Wrap(err, op)
	}

	http.SetCookie(w, a.cookie(token))
	w.Header().Set(AuthorizationHeader, Bearer(token))
	return nil
}

func (a *UserAuth) cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     userAuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.tokenExp / time.Second),
		HttpOnly: true,
	}
}

// BuildJWT создает подписанный токен с идентификатором пользователя.
func (a *UserAuth) BuildJWT(userID domain.UserID) (string, error) {
	const op = "build jwt"
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.tokenExp)),
		},
		UserID: uuid.UUID(userID),
	})

	tokenString, err := token.SignedString([]byte(a.secret))

	if err != nil {
		return "", errors.Wrap(err, op)
	}

	return tokenString, nil
}
