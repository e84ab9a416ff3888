package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"github.com/nestjam/yap-sequencer/internal/domain"
	"github.com/nestjam/yap-sequencer/internal/persistance/inmemory"
	"github.com/nestjam/yap-sequencer/internal/sequence"
)

// ErrLocked возвращается, если файл хранилища открыт другим процессом.
var ErrLocked = errors.New("file storage is locked")

const lockRetryInterval = 50 * time.Millisecond

// Операции журнала.
const (
	opPut    = "put"
	opDelete = "delete"
)

type FileSequenceStore struct {
	encoder *json.Encoder
	s       *inmemory.InmemorySequenceStore
	mu      sync.Mutex
	file    io.Closer
	lock    *flock.Flock
}

// StoredSequence описывает запись журнала.
type StoredSequence struct {
	Op        string        `json:"op"`
	Name      string        `json:"name"`
	Count     string        `json:"count,omitempty"`
	Alphabet  string        `json:"alphabet,omitempty"`
	MinLength int           `json:"min_length,omitempty"`
	Owner     domain.UserID `json:"owner"`
}

// Open открывает журнал по пути path, захватывая файловую блокировку path.lock.
// Если блокировку не удалось получить до отмены ctx, возвращается ErrLocked.
func Open(ctx context.Context, path string) (*FileSequenceStore, error) {
	const op = "open file storage"

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil && ctx.Err() == nil {
		return nil, errors.Wrap(err, op)
	}
	if !locked {
		return nil, errors.Wrap(fmt.Errorf("%w: %s", ErrLocked, path), op)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		_ = lock.Unlock()
		return nil, errors.Wrap(err, op)
	}

	store, err := New(ctx, f)
	if err != nil {
		_ = f.Close()
		_ = lock.Unlock()
		return nil, errors.Wrap(err, op)
	}

	store.file = f
	store.lock = lock
	return store, nil
}

// New восстанавливает хранилище из журнала rw и дописывает в него новые записи.
func New(ctx context.Context, rw io.ReadWriter) (*FileSequenceStore, error) {
	const op = "new file storage"

	records, err := readSequences(rw)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	s := inmemory.New()
	for i := 0; i < len(records); i++ {
		rec := records[i]

		switch rec.Op {
		case opPut:
			s.Put(rec.state())
		case opDelete:
			s.Delete(rec.Name)
		default:
			return nil, errors.Wrap(fmt.Errorf("unknown operation %q in record %d", rec.Op, i), op)
		}
	}

	return &FileSequenceStore{
		encoder: json.NewEncoder(rw),
		s:       s,
	}, nil
}

func readSequences(r io.Reader) ([]StoredSequence, error) {
	dec := json.NewDecoder(r)
	var records []StoredSequence

	for dec.More() {
		var rec StoredSequence
		err := dec.Decode(&rec)

		if err != nil {
			return nil, fmt.Errorf("get sequences: %w", err)
		}

		records = append(records, rec)
	}

	return records, nil
}

func (rec StoredSequence) state() domain.SequenceState {
	return domain.SequenceState{
		State: sequence.State{
			Count:     rec.Count,
			Alphabet:  rec.Alphabet,
			MinLength: rec.MinLength,
		},
		Name:  rec.Name,
		Owner: rec.Owner,
	}
}

func putRecord(s domain.SequenceState) StoredSequence {
	return StoredSequence{
		Op:        opPut,
		Name:      s.Name,
		Count:     s.Count,
		Alphabet:  s.Alphabet,
		MinLength: s.MinLength,
		Owner:     s.Owner,
	}
}

// Close освобождает файл журнала и блокировку.
func (u *FileSequenceStore) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	var err error
	if u.file != nil {
		err = u.file.Close()
	}
	if u.lock != nil {
		if unlockErr := u.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

func (u *FileSequenceStore) CreateSequence(ctx context.Context, s domain.SequenceState) error {
	const op = "create sequence"

	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.s.CreateSequence(ctx, s); err != nil {
		return errors.Wrap(err, op)
	}

	if err := u.encoder.Encode(putRecord(s)); err != nil {
		u.s.Delete(s.Name)
		return errors.Wrap(err, op)
	}

	return nil
}

func (u *FileSequenceStore) GetSequence(ctx context.Context, name string) (domain.SequenceState, error) {
	const op = "get sequence"

	s, err := u.s.GetSequence(ctx, name)
	if err != nil {
		return domain.SequenceState{}, errors.Wrap(err, op)
	}

	return s, nil
}

func (u *FileSequenceStore) UpdateSequence(ctx context.Context, s domain.SequenceState) error {
	const op = "update sequence"

	u.mu.Lock()
	defer u.mu.Unlock()

	if _, err := u.s.GetSequence(ctx, s.Name); err != nil {
		return errors.Wrap(err, op)
	}

	if err := u.encoder.Encode(putRecord(s)); err != nil {
		return errors.Wrap(err, op)
	}

	u.s.Put(s)
	return nil
}

func (u *FileSequenceStore) DeleteSequences(ctx context.Context, names []string, owner domain.UserID) error {
	const op = "delete sequences"

	u.mu.Lock()
	defer u.mu.Unlock()

	for _, name := range names {
		s, err := u.s.GetSequence(ctx, name)
		if err != nil || s.Owner != owner {
			continue
		}

		rec := StoredSequence{Op: opDelete, Name: name, Owner: owner}
		if err := u.encoder.Encode(rec); err != nil {
			return errors.Wrap(err, op)
		}

		u.s.Delete(name)
	}

	return nil
}

func (u *FileSequenceStore) GetUserSequences(ctx context.Context, owner domain.UserID) ([]domain.SequenceState, error) {
	return u.s.GetUserSequences(ctx, owner)
}

func (u *FileSequenceStore) GetSequencesAndUsersCount(ctx context.Context) (int, int, error) {
	return u.s.GetSequencesAndUsersCount(ctx)
}

func (u *FileSequenceStore) IsAvailable(ctx context.Context) bool {
	return true
}
