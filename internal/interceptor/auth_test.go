package interceptor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"

	"github.com/nestjam/yap-sequencer/internal/auth"
	"github.com/nestjam/yap-sequencer/internal/domain"

	customctx "github.com/nestjam/yap-sequencer/internal/context"
)

func TestAuthInterceptor(t *testing.T) {
	userAuth := auth.New(auth.DefaultSecretKey, auth.TokenExp)
	known := domain.NewUserID()
	token, err := userAuth.BuildJWT(known)
	require.NoError(t, err)
	foreign, err := auth.New("another key", auth.TokenExp).BuildJWT(known)
	require.NoError(t, err)

	tests := []struct {
		name      string
		md        metadata.MD
		wantKnown bool
	}{
		{name: "no metadata"},
		{name: "empty metadata", md: metadata.MD{}},
		{name: "raw token", md: metadata.Pairs(AuthorizationKey, token), wantKnown: true},
		{name: "bearer token", md: metadata.Pairs(AuthorizationKey, auth.Bearer(token)), wantKnown: true},
		{name: "token signed with another key", md: metadata.Pairs(AuthorizationKey, foreign)},
		{name: "garbage token", md: metadata.Pairs(AuthorizationKey, "garbage")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}
			var captured context.Context //nolint:containedctx //for test only
			handler := func(ctx context.Context, req any) (any, error) {
				captured = ctx
				return req, nil
			}

			resp, err := NewAuth(userAuth).Handle(ctx, "take", nil, handler)

			require.NoError(t, err)
			assert.Equal(t, "take", resp)
			user, ok := customctx.GetUser(captured)
			require.True(t, ok)
			assert.Equal(t, !tt.wantKnown, user.IsNew)
			if tt.wantKnown {
				assert.Equal(t, known, user.ID)
			} else {
				assert.NotEqual(t, known, user.ID)
			}
		})
	}

	t.Run("handler error is wrapped", func(t *testing.T) {
		want := errors.New("failed")
		handler := func(context.Context, any) (any, error) {
			return nil, want
		}

		_, err := NewAuth(userAuth).Handle(context.Background(), "take", nil, handler)

		assert.ErrorIs(t, err, want)
		assert.ErrorContains(t, err, "auth interceptor")
	})
}
