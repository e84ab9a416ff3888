package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestjam/yap-sequencer/internal/domain"
)

func TestUser(t *testing.T) {
	t.Run("set and get user", func(t *testing.T) {
		id := domain.NewUserID()
		ctx := SetUser(context.Background(), NewUser(id, true))

		got, ok := GetUser(ctx)

		require.True(t, ok)
		assert.Equal(t, id, got.ID)
		assert.True(t, got.IsNew)
		assert.Equal(t, id, UserID(ctx))
	})

	t.Run("context without user", func(t *testing.T) {
		_, ok := GetUser(context.Background())

		assert.False(t, ok)
		assert.Equal(t, domain.UserID{}, UserID(context.Background()))
	})
}
