package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"casinotable/pkg/db"
	"github.com/sirupsen/logrus"
)

// Options selects and configures a Store
type Options struct {
	Driver         string
	Path           string
	PGDSN          string
	MigrationsPath string
}

// Open returns the configured store and a function that releases it
// The postgres driver waits for the database and applies migrations first.
func Open(ctx context.Context, logger logrus.FieldLogger, opts Options) (Store, func(), error) {
	noop := func() {}

	switch opts.Driver {
	case "", "memory":
		return NewMemory(), noop, nil
	case "file":
		if opts.Path == "" {
			return nil, nil, errors.New("the file driver needs a path")
		}

		return NewFile(opts.Path), noop, nil
	case "postgres":
		ctx, cancel := context.WithTimeout(ctx, time.Second*10)
		defer cancel()

		dbh, err := db.WaitFor(ctx, logger, opts.PGDSN)
		if err != nil {
			return nil, nil, err
		}

		if opts.MigrationsPath != "" {
			if err := db.Migrate(logger, dbh, opts.MigrationsPath); err != nil {
				_ = dbh.Close()
				return nil, nil, err
			}
		}

		return NewPostgres(dbh), func() { _ = dbh.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown stats driver: %q", opts.Driver)
}
