package domain

import (
	"context"

	"github.com/nestjam/yap-sequencer/internal/sequence"
)

// SequenceState описывает сохраненную позицию именованной последовательности и ее владельца.
type SequenceState struct {
	sequence.State
	Name  string
	Owner UserID
}

type SequenceStore interface {
	CreateSequence(ctx context.Context, s SequenceState) error
	GetSequence(ctx context.Context, name string) (SequenceState, error)
	UpdateSequence(ctx context.Context, s SequenceState) error
	DeleteSequences(ctx context.Context, names []string, owner UserID) error
	GetUserSequences(ctx context.Context, owner UserID) ([]SequenceState, error)
	GetSequencesAndUsersCount(ctx context.Context) (sequences, users int, err error)
	IsAvailable(ctx context.Context) bool
}
