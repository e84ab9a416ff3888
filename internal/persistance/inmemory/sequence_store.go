package inmemory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/nestjam/yap-sequencer/internal/domain"
)

type InmemorySequenceStore struct {
	m sync.Map
}

func New() *InmemorySequenceStore {
	return &InmemorySequenceStore{}
}

func (s *InmemorySequenceStore) CreateSequence(ctx context.Context, seq domain.SequenceState) error {
	if _, loaded := s.m.LoadOrStore(seq.Name, seq); loaded {
		return domain.NewSequenceExistsError(seq.Name, nil)
	}
	return nil
}

func (s *InmemorySequenceStore) GetSequence(ctx context.Context, name string) (domain.SequenceState, error) {
	value, ok := s.m.Load(name)

	if !ok {
		return domain.SequenceState{}, domain.ErrSequenceNotFound
	}

	seq, ok := value.(domain.SequenceState)

	if !ok {
		return domain.SequenceState{}, errors.New("failed type assertion")
	}

	return seq, nil
}

func (s *InmemorySequenceStore) UpdateSequence(ctx context.Context, seq domain.SequenceState) error {
	if _, ok := s.m.Load(seq.Name); !ok {
		return domain.ErrSequenceNotFound
	}

	s.m.Store(seq.Name, seq)
	return nil
}

// Put сохраняет последовательность, заменяя существующую с тем же именем.
func (s *InmemorySequenceStore) Put(seq domain.SequenceState) {
	s.m.Store(seq.Name, seq)
}

// Delete удаляет последовательность независимо от владельца.
func (s *InmemorySequenceStore) Delete(name string) {
	s.m.Delete(name)
}

func (s *InmemorySequenceStore) DeleteSequences(ctx context.Context, names []string, owner domain.UserID) error {
	for _, name := range names {
		value, ok := s.m.Load(name)

		if !ok {
			continue
		}

		seq, ok := value.(domain.SequenceState)

		if !ok || seq.Owner != owner {
			continue
		}

		s.m.CompareAndDelete(name, seq)
	}

	return nil
}

func (s *InmemorySequenceStore) GetUserSequences(ctx context.Context, owner domain.UserID) ([]domain.SequenceState, error) {
	var sequences []domain.SequenceState

	s.m.Range(func(key, value any) bool {
		seq, ok := value.(domain.SequenceState)

		if !ok || seq.Owner != owner {
			return true
		}

		sequences = append(sequences, seq)
		return true
	})

	sort.Slice(sequences, func(i, j int) bool {
		return sequences[i].Name < sequences[j].Name
	})

	return sequences, nil
}

func (s *InmemorySequenceStore) GetSequencesAndUsersCount(ctx context.Context) (sequences, users int, err error) {
	owners := make(map[domain.UserID]struct{})

	s.m.Range(func(key, value any) bool {
		seq, ok := value.(domain.SequenceState)

		if !ok {
			return true
		}

		sequences++
		owners[seq.Owner] = struct{}{}
		return true
	})

	return sequences, len(owners), nil
}

func (s *InmemorySequenceStore) IsAvailable(ctx context.Context) bool {
	return true
}
