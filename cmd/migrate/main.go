package main

import (
	"context"
	"time"

	"casinotable/internal/config"
	"casinotable/pkg/db"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Instance()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	dbh, err := db.WaitFor(ctx, logrus.StandardLogger(), cfg.Stats.PGDSN)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}
	defer dbh.Close()

	if err := db.Migrate(logrus.StandardLogger(), dbh, cfg.Stats.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations are up to date")
}
