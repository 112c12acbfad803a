package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                // needed
)

// Open returns a database handle that has answered a ping
func Open(dsn string) (*sql.DB, error) {
	dbh, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := dbh.Ping(); err != nil {
		_ = dbh.Close()
		return nil, err
	}

	return dbh, nil
}

// WaitFor retries Open until the database answers or the context is done
func WaitFor(ctx context.Context, logger logrus.FieldLogger, dsn string) (*sql.DB, error) {
	ticker := time.NewTicker(time.Millisecond * 500)
	defer ticker.Stop()

	for {
		dbh, err := Open(dsn)
		if err == nil {
			return dbh, nil
		}

		logger.WithError(err).Debug("database is not ready")
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("could not connect to database: %w", err)
		case <-ticker.C:
		}
	}
}

// Migrate runs the migrations found in migrationsPath
func Migrate(logger logrus.FieldLogger, dbh *sql.DB, migrationsPath string) error {
	logger.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(dbh, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// Scanner is an interface that sql should've provided
// No snark here...
type Scanner interface {
	Scan(...interface{}) error
}
