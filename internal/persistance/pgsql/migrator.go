package pgsql

import (
	"embed"

	"github.com/pkg/errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migration/*.sql
var migrationsDir embed.FS

type SequenceStoreMigrator struct {
	connString string
}

func NewSequenceStoreMigrator(connString string) *SequenceStoreMigrator {
	return &SequenceStoreMigrator{connString: connString}
}

func (m *SequenceStoreMigrator) Up() error {
	const op = "migrate up"
	mg, err := createMigrate(m.connString)

	if err != nil {
		return errors.Wrap(err, op)
	}

	defer closeMigrate(mg)

	if err := mg.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return errors.Wrap(err, op)
		}
	}

	return nil
}

func (m *SequenceStoreMigrator) Drop() error {
	const op = "drop"
	mg, err := createMigrate(m.connString)

	if err != nil {
		return errors.Wrap(err, op)
	}

	defer closeMigrate(mg)

	if err := mg.Drop(); err != nil {
		return errors.Wrap(err, op)
	}

	return nil
}

func createMigrate(connString string) (*migrate.Migrate, error) {
	const (
		op             = "create migrate"
		migrationsPath = "migration"
	)
	d, err := iofs.New(migrationsDir, migrationsPath)

	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, connString)

	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	return m, nil
}

func closeMigrate(m *migrate.Migrate) {
	_, _ = m.Close()
}
