package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestjam/yap-sequencer/internal/auth"
	customctx "github.com/nestjam/yap-sequencer/internal/context"
	"github.com/nestjam/yap-sequencer/internal/domain"
)

func TestAuth(t *testing.T) {
	known := domain.NewUserID()
	userAuth := auth.New(auth.DefaultSecretKey, auth.TokenExp)
	foreignAuth := auth.New("another key", auth.TokenExp)

	tests := []struct {
		name      string
		prepare   func(t *testing.T, r *http.Request)
		wantKnown bool
	}{
		{
			name:    "anonymous request",
			prepare: func(*testing.T, *http.Request) {},
		},
		{
			name: "cookie",
			prepare: func(t *testing.T, r *http.Request) {
				cookie, err := userAuth.CreateCookie(known)
				require.NoError(t, err)
				r.AddCookie(cookie)
			},
			wantKnown: true,
		},
		{
			name: "bearer token",
			prepare: func(t *testing.T, r *http.Request) {
				token, err := userAuth.BuildJWT(known)
				require.NoError(t, err)
				r.Header.Set(auth.AuthorizationHeader, auth.Bearer(token))
			},
			wantKnown: true,
		},
		{
			name: "cookie signed with another key",
			prepare: func(t *testing.T, r *http.Request) {
				cookie, err := foreignAuth.CreateCookie(known)
				require.NoError(t, err)
				r.AddCookie(cookie)
			},
		},
		{
			name: "malformed bearer token",
			prepare: func(_ *testing.T, r *http.Request) {
				r.Header.Set(auth.AuthorizationHeader, auth.Bearer("not a jwt"))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/sequences", nil)
			tt.prepare(t, request)
			response := httptest.NewRecorder()
			var (
				user customctx.User
				ok   bool
			)
			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				user, ok = customctx.GetUser(r.Context())
			})

			Auth(userAuth)(next).ServeHTTP(response, request)

			require.True(t, ok)
			if tt.wantKnown {
				assert.False(t, user.IsNew)
				assert.Equal(t, known, user.ID)
				assert.Empty(t, response.Header().Get(auth.AuthorizationHeader))
				return
			}
			assert.True(t, user.IsNew)
			assert.NotEqual(t, known, user.ID)
			assertIssuedToken(t, userAuth, user.ID, response)
		})
	}
}

func assertIssuedToken(t *testing.T, a *auth.UserAuth, want domain.UserID, w *httptest.ResponseRecorder) {
	t.Helper()

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	got, err := a.ParseJWT(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	token, ok := auth.ParseBearer(resp.Header.Get(auth.AuthorizationHeader))
	require.True(t, ok)
	assert.Equal(t, cookies[0].Value, token)
}
