package domain

import (
	"context"
	"fmt"
)

// A SequenceStoreDelegate allows to extend the behavior of the test double for negative scenarios
// for SequenceStore consumers.
type SequenceStoreDelegate struct {
	CreateSequenceFunc            func(ctx context.Context, s SequenceState) error
	GetSequenceFunc               func(ctx context.Context, name string) (SequenceState, error)
	UpdateSequenceFunc            func(ctx context.Context, s SequenceState) error
	DeleteSequencesFunc           func(ctx context.Context, names []string, owner UserID) error
	GetUserSequencesFunc          func(ctx context.Context, owner UserID) ([]SequenceState, error)
	GetSequencesAndUsersCountFunc func(ctx context.Context) (int, int, error)
	IsAvailableFunc               func(ctx context.Context) bool
	delegate                      SequenceStore
}

func NewSequenceStoreDelegate(delegate SequenceStore) *SequenceStoreDelegate {
	return &SequenceStoreDelegate{delegate: delegate}
}

func (d *SequenceStoreDelegate) CreateSequence(ctx context.Context, s SequenceState) error {
	if d.CreateSequenceFunc != nil {
		return d.CreateSequenceFunc(ctx, s)
	}

	if err := d.delegate.CreateSequence(ctx, s); err != nil {
		return fmt.Errorf("create sequence in store delegate: %w", err)
	}

	return nil
}

func (d *SequenceStoreDelegate) GetSequence(ctx context.Context, name string) (SequenceState, error) {
	if d.GetSequenceFunc != nil {
		return d.GetSequenceFunc(ctx, name)
	}

	s, err := d.delegate.GetSequence(ctx, name)
	if err != nil {
		return SequenceState{}, fmt.Errorf("get sequence from store delegate: %w", err)
	}

	return s, nil
}

func (d *SequenceStoreDelegate) UpdateSequence(ctx context.Context, s SequenceState) error {
	if d.UpdateSequenceFunc != nil {
		return d.UpdateSequenceFunc(ctx, s)
	}

	if err := d.delegate.UpdateSequence(ctx, s); err != nil {
		return fmt.Errorf("update sequence in store delegate: %w", err)
	}

	return nil
}

func (d *SequenceStoreDelegate) DeleteSequences(ctx context.Context, names []string, owner UserID) error {
	if d.DeleteSequencesFunc != nil {
		return d.DeleteSequencesFunc(ctx, names, owner)
	}

	return d.delegate.DeleteSequences(ctx, names, owner)
}

func (d *SequenceStoreDelegate) GetUserSequences(ctx context.Context, owner UserID) ([]SequenceState, error) {
	if d.GetUserSequencesFunc != nil {
		return d.GetUserSequencesFunc(ctx, owner)
	}

	return d.delegate.GetUserSequences(ctx, owner)
}

func (d *SequenceStoreDelegate) GetSequencesAndUsersCount(ctx context.Context) (int, int, error) {
	if d.GetSequencesAndUsersCountFunc != nil {
		return d.GetSequencesAndUsersCountFunc(ctx)
	}

	return d.delegate.GetSequencesAndUsersCount(ctx)
}

func (d *SequenceStoreDelegate) IsAvailable(ctx context.Context) bool {
	if d.IsAvailableFunc != nil {
		return d.IsAvailableFunc(ctx)
	}

	return d.delegate.IsAvailable(ctx)
}
