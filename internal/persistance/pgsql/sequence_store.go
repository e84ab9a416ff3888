package pgsql

import (
	"context"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/nestjam/yap-sequencer/internal/domain"
)

type SequenceStore struct {
	pool       *pgxpool.Pool
	connString string
}

func New(connString string) *SequenceStore {
	return &SequenceStore{
		connString: connString,
	}
}

// Init применяет миграции и открывает пул соединений.
func (s *SequenceStore) Init(ctx context.Context) error {
	const op = "init store"

	if err := NewSequenceStoreMigrator(s.connString).Up(); err != nil {
		return errors.Wrap(err, op)
	}

	pool, err := initPool(ctx, s.connString)
	if err != nil {
		return errors.Wrap(err, op)
	}

	s.pool = pool
	return nil
}

func (s *SequenceStore) Close() {
	if s.pool == nil {
		return
	}
	s.pool.Close()
}

func initPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	const op = "init connection pool"
	poolCfg, err := pgxpool.ParseConfig(connString)

	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)

	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, op)
	}

	return pool, nil
}

func (s *SequenceStore) CreateSequence(ctx context.Context, seq domain.SequenceState) error {
	const op = "create sequence"

	_, err := s.pool.Exec(ctx,
		`INSERT INTO sequences (name, count, alphabet, min_length, owner)
		VALUES ($1, $2::text::numeric, $3, $4, $5)`,
		seq.Name, seq.Count, seq.Alphabet, seq.MinLength, seq.Owner.String())

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.NewSequenceExistsError(seq.Name, err)
		}
		return errors.Wrap(err, op)
	}

	return nil
}

func (s *SequenceStore) GetSequence(ctx context.Context, name string) (domain.SequenceState, error) {
	const op = "get sequence"

	var (
		seq   = domain.SequenceState{Name: name}
		owner string
	)
	row := s.pool.QueryRow(ctx,
		`SELECT count::text, alphabet, min_length, owner FROM sequences WHERE name=$1`, name)
	err := row.Scan(&seq.Count, &seq.Alphabet, &seq.MinLength, &owner)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.SequenceState{}, domain.ErrSequenceNotFound
	}
	if err != nil {
		return domain.SequenceState{}, errors.Wrap(err, op)
	}

	if seq.Owner, err = domain.ParseUserID(owner); err != nil {
		return domain.SequenceState{}, errors.Wrap(err, op)
	}

	return seq, nil
}

func (s *SequenceStore) UpdateSequence(ctx context.Context, seq domain.SequenceState) error {
	const op = "update sequence"

	tag, err := s.pool.Exec(ctx,
		`UPDATE sequences SET count=$2::text::numeric, alphabet=$3, min_length=$4 WHERE name=$1`,
		seq.Name, seq.Count, seq.Alphabet, seq.MinLength)

	if err != nil {
		return errors.Wrap(err, op)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSequenceNotFound
	}

	return nil
}

func (s *SequenceStore) DeleteSequences(ctx context.Context, names []string, owner domain.UserID) error {
	const op = "delete sequences"

	_, err := s.pool.Exec(ctx,
		`DELETE FROM sequences WHERE name = ANY($1) AND owner=$2`,
		names, owner.String())

	if err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

func (s *SequenceStore) GetUserSequences(ctx context.Context, owner domain.UserID) ([]domain.SequenceState, error) {
	const op = "get user sequences"

	rows, err := s.pool.Query(ctx,
		`SELECT name, count::text, alphabet, min_length FROM sequences WHERE owner=$1 ORDER BY name`,
		owner.String())

	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	sequences, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SequenceState, error) {
		seq := domain.SequenceState{Owner: owner}
		err := row.Scan(&seq.Name, &seq.Count, &seq.Alphabet, &seq.MinLength)
		return seq, err
	})

	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	return sequences, nil
}

func (s *SequenceStore) GetSequencesAndUsersCount(ctx context.Context) (sequences, users int, err error) {
	const op = "get sequences and users count"

	row := s.pool.QueryRow(ctx, `SELECT COUNT(*), COUNT(DISTINCT owner) FROM sequences`)

	if err := row.Scan(&sequences, &users); err != nil {
		return 0, 0, errors.Wrap(err, op)
	}

	return sequences, users, nil
}

func (s *SequenceStore) IsAvailable(ctx context.Context) bool {
	if s.pool == nil {
		return false
	}

	return s.pool.Ping(ctx) == nil
}
