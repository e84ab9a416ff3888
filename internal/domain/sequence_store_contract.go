package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestjam/yap-sequencer/internal/sequence"
)

type SequenceStoreContract struct {
	NewSequenceStore func() (SequenceStore, func())
}

func (c SequenceStoreContract) Test(t *testing.T) {
	ctx := context.Background()

	t.Run("create sequence", func(t *testing.T) {
		sut, tearDown := c.NewSequenceStore()
		t.Cleanup(tearDown)
		want := newState("orders", "12", NewUserID())

		err := sut.CreateSequence(ctx, want)
		require.NoError(t, err)

		got, err := sut.GetSequence(ctx, want.Name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("count wider than uint64", func(t *testing.T) {
		sut, tearDown := c.NewSequenceStore()
		t.Cleanup(tearDown)
		want := newState("wide", "340282366920938463463374607431768211456", NewUserID())

		err := sut.CreateSequence(ctx, want)
		require.NoError(t, err)

		got, err := sut.GetSequence(ctx, want.Name)
		require.NoError(t, err)
		assert.Equal(t, want.Count, got.Count)
	})

	t.Run("sequence already exists", func(t *testing.T) {
		sut, tearDown := c.NewSequenceStore()
		t.Cleanup(tearDown)
		s := newState("orders", "0", NewUserID())
		require.NoError(t, sut.CreateSequence(ctx, s))

		err := sut.CreateSequence(ctx, newState("orders", "7", NewUserID()))

		var want *SequenceExistsError
		require.ErrorAs(t, err, &want)
		assert.Equal(t, "orders", want.Name())
		assert.ErrorIs(t, err, ErrSequenceExists)

		got, err := sut.GetSequence(ctx, s.Name)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	})

	t.Run("sequence not found", func(t *testing.T) {
		sut, tearDown := c.NewSequenceStore()
		t.Cleanup(tearDown)

		_, err := sut.GetSequence(ctx, "missing")

		assert.ErrorIs(t, err, ErrSequenceNotFound)
	})

	t.Run("update sequence", func(t *testing.T) {
		sut, tearDown := c.NewSequenceStore()
		t.Cleanup(tearDown)
		s := newState("orders", "0", NewUserID())
		require.NoError(t, sut.CreateSequence(ctx, s))

		s.Count = "100"
		s.Alphabet = "01"
		s.MinLength = 8
		err := sut.UpdateSequence(ctx, s)
		require.NoError(t, err)

		got, err := sut.GetSequence(ctx, s.Name)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	})

	t.Run("update missing sequence", func(t *testing.T) {
		sut, tearDown := c.NewSequenceStore()
		t.Cleanup(tearDown)

		err := sut.UpdateSequence(ctx, newState("missing", "1", NewUserID()))

		assert.ErrorIs(t, err, ErrSequenceNotFound)
	})

	t.Run("get user sequences", func(t *testing.T) {
		sut, tearDown := c.NewSequenceStore()
		t.Cleanup(tearDown)
		owner := NewUserID()
		want := []SequenceState{
			newState("a", "1", owner),
			newState("b", "2", owner),
		}
		require.NoError(t, sut.CreateSequence(ctx, want[1]))
		require.NoError(t, sut.CreateSequence(ctx, want[0]))
		require.NoError(t, sut.CreateSequence(ctx, newState("c", "3", NewUserID())))

		got, err := sut.GetUserSequences(ctx, owner)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("user has no sequences", func(t *testing.T) {
		sut, tearDown := c.NewSequenceStore()
		t.Cleanup(tearDown)

		got, err := sut.GetUserSequences(ctx, NewUserID())

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("delete sequences", func(t *testing.T) {
		sut, tearDown := c.NewSequenceStore()
		t.Cleanup(tearDown)
		owner := NewUserID()
		require.NoError(t, sut.CreateSequence(ctx, newState("a", "1", owner)))
		require.NoError(t, sut.CreateSequence(ctx, newState("b", "2", owner)))

		err := sut.DeleteSequences(ctx, []string{"a", "b", "missing"}, owner)
		require.NoError(t, err)

		_, err = sut.GetSequence(ctx, "a")
		assert.ErrorIs(t, err, ErrSequenceNotFound)

		got, err := sut.GetUserSequences(ctx, owner)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("name is free after delete", func(t *testing.T) {
		sut, tearDown := c.NewSequenceStore()
		t.Cleanup(tearDown)
		owner := NewUserID()
		require.NoError(t, sut.CreateSequence(ctx, newState("a", "1", owner)))
		require.NoError(t, sut.DeleteSequences(ctx, []string{"a"}, owner))

		err := sut.CreateSequence(ctx, newState("a", "5", owner))

		assert.NoError(t, err)
	})

	t.Run("sequences of other user are not deleted", func(t *testing.T) {
		sut, tearDown := c.NewSequenceStore()
		t.Cleanup(tearDown)
		s := newState("a", "1", NewUserID())
		require.NoError(t, sut.CreateSequence(ctx, s))

		err := sut.DeleteSequences(ctx, []string{s.Name}, NewUserID())
		require.NoError(t, err)

		got, err := sut.GetSequence(ctx, s.Name)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	})

	t.Run("get sequences and users count", func(t *testing.T) {
		sut, tearDown := c.NewSequenceStore()
		t.Cleanup(tearDown)
		owner := NewUserID()
		require.NoError(t, sut.CreateSequence(ctx, newState("a", "1", owner)))
		require.NoError(t, sut.CreateSequence(ctx, newState("b", "1", owner)))
		require.NoError(t, sut.CreateSequence(ctx, newState("c", "1", NewUserID())))

		sequences, users, err := sut.GetSequencesAndUsersCount(ctx)

		require.NoError(t, err)
		assert.Equal(t, 3, sequences)
		assert.Equal(t, 2, users)
	})

	t.Run("store is available", func(t *testing.T) {
		sut, tearDown := c.NewSequenceStore()
		t.Cleanup(tearDown)

		got := sut.IsAvailable(ctx)
		assert.True(t, got)
	})
}

func newState(name, count string, owner UserID) SequenceState {
	return SequenceState{
		State: sequence.State{
			Count:     count,
			Alphabet:  "abc",
			MinLength: 3,
		},
		Name:  name,
		Owner: owner,
	}
}
