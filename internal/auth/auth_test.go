package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestjam/yap-sequencer/internal/domain"
)

const secretKey = "supersecretkey"

func TestGetUserID(t *testing.T) {
	t.Run("token in cookie", func(t *testing.T) {
		sut := New(secretKey, TokenExp)
		want := domain.NewUserID()
		cookie, err := sut.CreateCookie(want)
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookie)

		got, err := sut.GetUserID(r)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("token in authorization header", func(t *testing.T) {
		sut := New(secretKey, TokenExp)
		want := domain.NewUserID()
		token, err := sut.BuildJWT(want)
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(AuthorizationHeader, Bearer(token))

		got, err := sut.GetUserID(r)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("no token", func(t *testing.T) {
		sut := New(secretKey, TokenExp)
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		_, err := sut.GetUserID(r)

		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("expired token", func(t *testing.T) {
		sut := New(secretKey, -time.Minute)
		token, err := sut.BuildJWT(domain.NewUserID())
		require.NoError(t, err)

		_, err = sut.ParseJWT(token)

		assert.Error(t, err)
	})

	t.Run("token signed with other secret", func(t *testing.T) {
		token, err := New("other", TokenExp).BuildJWT(domain.NewUserID())
		require.NoError(t, err)

		_, err = New(secretKey, TokenExp).ParseJWT(token)

		assert.Error(t, err)
	})
}

func TestSetToken(t *testing.T) {
	sut := New(secretKey, TokenExp)
	want := domain.NewUserID()
	w := httptest.NewRecorder()

	err := sut.SetToken(w, want)
	require.NoError(t, err)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	token, ok := ParseBearer(resp.Header.Get(AuthorizationHeader))
	require.True(t, ok)
	got, err := sut.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.Len(t, resp.Cookies(), 1)
	assert.Equal(t, token, resp.Cookies()[0].Value)
}

func TestParseBearer(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc", want: "abc", ok: true},
		{header: "Bearer ", ok: false},
		{header: "Basic abc", ok: false},
		{header: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := ParseBearer(tt.header)

		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}
