package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nestjam/yap-sequencer/internal/domain"
	"github.com/nestjam/yap-sequencer/internal/persistance/inmemory"
)

func TestDeleteSequences(t *testing.T) {
	t.Run("delete sequences", func(t *testing.T) {
		ctx := context.Background()
		store := inmemory.New()
		user := domain.NewUserID()
		doneCh := make(chan struct{})
		defer close(doneCh)
		sut := NewSequenceRemover(ctx, doneCh, store, zap.NewNop())
		svc := New(store)
		svc.SetSequenceRemover(sut)

		for _, name := range []string{"a", "b"} {
			_, err := svc.Create(ctx, CreateRequest{Name: name}, user)
			require.NoError(t, err)
		}

		err := svc.Delete(ctx, []string{"a", "b"}, user)
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			sequences, err := store.GetUserSequences(ctx, user)
			return err == nil && len(sequences) == 0
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("delete after context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		store := inmemory.New()
		user := domain.NewUserID()
		doneCh := make(chan struct{})
		defer close(doneCh)
		sut := NewSequenceRemover(ctx, doneCh, store, zap.NewNop())
		svc := New(store)
		svc.SetSequenceRemover(sut)
		_, err := svc.Create(context.Background(), CreateRequest{Name: "a"}, user)
		require.NoError(t, err)

		cancel()
		err = svc.Delete(ctx, []string{"a"}, user)
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			_, err := store.GetSequence(context.Background(), "a")
			return errors.Is(err, domain.ErrSequenceNotFound)
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("error on delete sequences after closing", func(t *testing.T) {
		ctx := context.Background()
		store := inmemory.New()
		user := domain.NewUserID()
		doneCh := make(chan struct{})
		sut := NewSequenceRemover(ctx, doneCh, store, zap.NewNop())
		close(doneCh)

		err := sut.DeleteSequences([]string{"a"}, user)
		assert.ErrorIs(t, err, ErrRemoverClosed)
	})
}
