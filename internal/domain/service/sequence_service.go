package service

import (
	"context"
	"hash/fnv"
	"math/big"
	"regexp"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"

	"github.com/nestjam/yap-sequencer/internal/domain"
	"github.com/nestjam/yap-sequencer/internal/numeral"
	"github.com/nestjam/yap-sequencer/internal/sequence"
	"github.com/nestjam/yap-sequencer/internal/switcher"
)

// Ошибки, связанные с запросами к последовательностям.
var (
	ErrInvalidName         = errors.New("invalid sequence name")                 // имя не соответствует шаблону
	ErrInvalidMinLength    = errors.New("min length is negative")                // отрицательная минимальная длина
	ErrInvalidTakeCount    = errors.New("invalid number of ids")                 // число идентификаторов вне допустимого диапазона
	ErrConflictingPosition = errors.New("both count and text position are set") // начальная позиция задана дважды
)

const (
	// DefaultTakeLimit ограничивает число идентификаторов, выдаваемых за один запрос.
	DefaultTakeLimit = 1000

	nameSymbols = "0123456789abcdefghijklmnopqrstuvwxyz"
	nameSize    = 12

	// lockStripes задает число мьютексов, между которыми распределяются имена последовательностей.
	lockStripes = 64
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

// Sequence описывает последовательность вместе с текущим идентификатором.
type Sequence struct {
	Name      string
	Current   string
	Count     *big.Int
	Alphabet  string
	MinLength int
	Owner     domain.UserID
}

// CreateRequest описывает параметры новой последовательности.
// Пустое имя заменяется случайным, пустой алфавит - алфавитом по умолчанию.
// Начальная позиция задается либо Count, либо Text.
type CreateRequest struct {
	Name      string
	Alphabet  string
	MinLength int
	Count     string
	Text      string
}

// ReconfigureRequest описывает изменение алфавита и минимальной длины. Пустые поля не меняются.
type ReconfigureRequest struct {
	Alphabet  *string
	MinLength *int
}

// ConvertRequest описывает перевод идентификатора между алфавитами.
type ConvertRequest struct {
	Source          string
	Target          string
	SourceMinLength int
	TargetMinLength int
	Text            string
	Reverse         bool
}

// SequenceService хранит именованные последовательности и выдает из них идентификаторы.
type SequenceService struct {
	store           domain.SequenceStore
	remover         *SequenceRemover
	locks           [lockStripes]sync.Mutex
	defaultAlphabet numeral.Alphabet
	takeLimit       int
}

// Option определяет опцию настройки сервиса.
type Option func(*SequenceService)

// WithTakeLimit задает наибольшее число идентификаторов в одном запросе Take.
func WithTakeLimit(n int) Option {
	return func(s *SequenceService) {
		if n > 0 {
			s.takeLimit = n
		}
	}
}

// WithDefaultAlphabet задает алфавит новых последовательностей, для которых он не указан.
func WithDefaultAlphabet(a numeral.Alphabet) Option {
	return func(s *SequenceService) {
		if !a.IsZero() {
			s.defaultAlphabet = a
		}
	}
}

// New создает сервис последовательностей.
func New(store domain.SequenceStore, options ...Option) *SequenceService {
	s := &SequenceService{
		store:           store,
		defaultAlphabet: numeral.DefaultAlphabet(),
		takeLimit:       DefaultTakeLimit,
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// SetSequenceRemover задает компонент, удаляющий последовательности.
func (s *SequenceService) SetSequenceRemover(remover *SequenceRemover) {
	s.remover = remover
}

// TakeLimit возвращает наибольшее число идентификаторов в одном запросе Take.
func (s *SequenceService) TakeLimit() int {
	return s.takeLimit
}

// Create создает последовательность, владельцем которой становится user.
func (s *SequenceService) Create(ctx context.Context, req CreateRequest, user domain.UserID) (Sequence, error) {
	const op = "create sequence"

	if req.Name == "" {
		name, err := gonanoid.Generate(nameSymbols, nameSize)
		if err != nil {
			return Sequence{}, errors.Wrap(err, op)
		}
		req.Name = name
	}

	if !namePattern.MatchString(req.Name) {
		return Sequence{}, errors.Wrap(ErrInvalidName, op)
	}

	if req.MinLength < 0 {
		return Sequence{}, errors.Wrap(ErrInvalidMinLength, op)
	}

	if req.Count != "" && req.Text != "" {
		return Sequence{}, errors.Wrap(ErrConflictingPosition, op)
	}

	options := []sequence.Option{
		sequence.WithAlphabet(s.defaultAlphabet),
		sequence.WithMinLength(req.MinLength),
	}
	if req.Alphabet != "" {
		options = append(options, sequence.WithSymbols(req.Alphabet))
	}
	if req.Count != "" {
		count, err := sequence.ParseCount(req.Count)
		if err != nil {
			return Sequence{}, errors.Wrap(err, op)
		}
		options = append(options, sequence.WithCount(count))
	}
	if req.Text != "" {
		options = append(options, sequence.WithText(req.Text))
	}

	g, err := sequence.New(options...)
	if err != nil {
		return Sequence{}, errors.Wrap(err, op)
	}

	state := domain.SequenceState{
		State: g.Snapshot(),
		Name:  req.Name,
		Owner: user,
	}

	if err := s.store.CreateSequence(ctx, state); err != nil {
		return Sequence{}, errors.Wrap(err, op)
	}

	return newSequence(state.Name, user, g), nil
}

// Get возвращает последовательность по имени.
func (s *SequenceService) Get(ctx context.Context, name string) (Sequence, error) {
	const op = "get sequence"

	state, err := s.store.GetSequence(ctx, name)
	if err != nil {
		return Sequence{}, errors.Wrap(err, op)
	}

	seq, err := fromState(state)
	if err != nil {
		return Sequence{}, errors.Wrap(err, op)
	}

	return seq, nil
}

// List возвращает последовательности пользователя, упорядоченные по имени.
func (s *SequenceService) List(ctx context.Context, user domain.UserID) ([]Sequence, error) {
	const op = "list sequences"

	states, err := s.store.GetUserSequences(ctx, user)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	sequences := make([]Sequence, 0, len(states))
	for _, state := range states {
		seq, err := fromState(state)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}
		sequences = append(sequences, seq)
	}

	return sequences, nil
}

// Take выдает n очередных идентификаторов последовательности.
func (s *SequenceService) Take(ctx context.Context, name string, n int, user domain.UserID) ([]string, error) {
	const op = "take ids"

	if n < 1 || n > s.takeLimit {
		return nil, errors.Wrap(ErrInvalidTakeCount, op)
	}

	var ids []string
	_, err := s.mutate(ctx, name, user, func(g *sequence.Generator) error {
		ids = g.TakeN(n)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	return ids, nil
}

// Advance сдвигает счетчик последовательности вперед на by.
func (s *SequenceService) Advance(ctx context.Context, name string, by uint64, user domain.UserID) (Sequence, error) {
	const op = "advance sequence"

	seq, err := s.mutate(ctx, name, user, func(g *sequence.Generator) error {
		g.Advance(by)
		return nil
	})
	if err != nil {
		return Sequence{}, errors.Wrap(err, op)
	}

	return seq, nil
}

// Retreat сдвигает счетчик последовательности назад на by, но не ниже нуля.
func (s *SequenceService) Retreat(ctx context.Context, name string, by uint64, user domain.UserID) (Sequence, error) {
	const op = "retreat sequence"

	seq, err := s.mutate(ctx, name, user, func(g *sequence.Generator) error {
		g.Retreat(by)
		return nil
	})
	if err != nil {
		return Sequence{}, errors.Wrap(err, op)
	}

	return seq, nil
}

// JumpTo устанавливает счетчик последовательности в значение count.
func (s *SequenceService) JumpTo(ctx context.Context, name string, count *big.Int, user domain.UserID) (Sequence, error) {
	const op = "jump to count"

	seq, err := s.mutate(ctx, name, user, func(g *sequence.Generator) error {
		g.JumpTo(count)
		return nil
	})
	if err != nil {
		return Sequence{}, errors.Wrap(err, op)
	}

	return seq, nil
}

// JumpToText устанавливает счетчик последовательности в значение идентификатора text.
func (s *SequenceService) JumpToText(ctx context.Context, name, text string, user domain.UserID) (Sequence, error) {
	const op = "jump to text"

	seq, err := s.mutate(ctx, name, user, func(g *sequence.Generator) error {
		return g.JumpToText(text)
	})
	if err != nil {
		return Sequence{}, errors.Wrap(err, op)
	}

	return seq, nil
}

// Reconfigure меняет алфавит и минимальную длину последовательности, сохраняя счетчик.
func (s *SequenceService) Reconfigure(ctx context.Context, name string, req ReconfigureRequest, user domain.UserID) (Sequence, error) {
	const op = "reconfigure sequence"

	if req.MinLength != nil && *req.MinLength < 0 {
		return Sequence{}, errors.Wrap(ErrInvalidMinLength, op)
	}

	seq, err := s.mutate(ctx, name, user, func(g *sequence.Generator) error {
		if req.Alphabet != nil {
			if err := g.SetSymbols(*req.Alphabet); err != nil {
				return err
			}
		}
		if req.MinLength != nil {
			g.SetMinLength(*req.MinLength)
		}
		return nil
	})
	if err != nil {
		return Sequence{}, errors.Wrap(err, op)
	}

	return seq, nil
}

// Delete удаляет последовательности пользователя. Чужие и отсутствующие имена пропускаются.
func (s *SequenceService) Delete(ctx context.Context, names []string, user domain.UserID) error {
	const op = "delete sequences"

	var err error
	if s.remover != nil {
		err = s.remover.DeleteSequences(names, user)
	} else {
		err = s.store.DeleteSequences(ctx, names, user)
	}

	if err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

// Convert переводит идентификатор из одного алфавита в другой.
// Пустой алфавит в запросе заменяется алфавитом по умолчанию.
func (s *SequenceService) Convert(req ConvertRequest) (string, error) {
	const op = "convert id"

	source, target := s.defaultAlphabet.String(), s.defaultAlphabet.String()
	if req.Source != "" {
		source = req.Source
	}
	if req.Target != "" {
		target = req.Target
	}

	if req.SourceMinLength < 0 || req.TargetMinLength < 0 {
		return "", errors.Wrap(ErrInvalidMinLength, op)
	}

	sw, err := switcher.NewFromSymbols(source, target,
		switcher.WithSourceMinLength(req.SourceMinLength),
		switcher.WithTargetMinLength(req.TargetMinLength),
	)
	if err != nil {
		return "", errors.Wrap(err, op)
	}

	direction := switcher.Forward
	if req.Reverse {
		direction = switcher.Reverse
	}

	converted, err := sw.Convert(req.Text, direction)
	if err != nil {
		return "", errors.Wrap(err, op)
	}

	return converted, nil
}

// Stats возвращает число последовательностей и их владельцев.
func (s *SequenceService) Stats(ctx context.Context) (sequences, users int, err error) {
	const op = "get stats"

	sequences, users, err = s.store.GetSequencesAndUsersCount(ctx)
	if err != nil {
		return 0, 0, errors.Wrap(err, op)
	}

	return sequences, users, nil
}

// IsAvailable возвращает true, если сервис доступен.
func (s *SequenceService) IsAvailable(ctx context.Context) bool {
	return s.store.IsAvailable(ctx)
}

// mutate загружает последовательность, применяет к ней fn и сохраняет результат.
// Изменения одной последовательности выполняются последовательно. Последовательности
// с разными именами могут делить мьютекс, поэтому их изменения иногда тоже упорядочиваются.
func (s *SequenceService) mutate(ctx context.Context, name string, user domain.UserID, fn func(*sequence.Generator) error) (Sequence, error) {
	mu := s.lock(name)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.store.GetSequence(ctx, name)
	if err != nil {
		return Sequence{}, err
	}

	if state.Owner != user {
		return Sequence{}, domain.ErrForbidden
	}

	g, err := sequence.FromState(state.State)
	if err != nil {
		return Sequence{}, err
	}

	if err := fn(g); err != nil {
		return Sequence{}, err
	}

	state.State = g.Snapshot()
	if err := s.store.UpdateSequence(ctx, state); err != nil {
		return Sequence{}, err
	}

	return newSequence(name, user, g), nil
}

func (s *SequenceService) lock(name string) *sync.Mutex {
	return &s.locks[lockStripe(name)]
}

func lockStripe(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32() % lockStripes)
}

func fromState(state domain.SequenceState) (Sequence, error) {
	g, err := sequence.FromState(state.State)
	if err != nil {
		return Sequence{}, err
	}
	return newSequence(state.Name, state.Owner, g), nil
}

func newSequence(name string, owner domain.UserID, g *sequence.Generator) Sequence {
	return Sequence{
		Name:      name,
		Current:   g.Current(),
		Count:     g.Count(),
		Alphabet:  g.Alphabet().String(),
		MinLength: g.MinLength(),
		Owner:     owner,
	}
}
