package main

import (
	"database/sql"
	"errors"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	server_config "github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/logging"
)

func main() {
	logging.SetupLogging()

	app := &cli.App{
		Name:  "db_migrations",
		Usage: "apply the ledger schema migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "source",
				Value: "file://migrations",
				Usage: "migration source URL",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply every pending migration",
				Action: func(c *cli.Context) error {
					return run(c.String("source"), func(m *migrate.Migrate) error { return m.Up() })
				},
			},
			{
				Name:  "down",
				Usage: "roll back the given number of migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1},
				},
				Action: func(c *cli.Context) error {
					return run(c.String("source"), func(m *migrate.Migrate) error { return m.Steps(-c.Int("steps")) })
				},
			},
			{
				Name:  "version",
				Usage: "print the applied version",
				Action: func(c *cli.Context) error {
					return run(c.String("source"), func(*migrate.Migrate) error { return nil })
				},
			},
		},
		DefaultCommand: "up",
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("db_migrations")
	}
}

func run(source string, step func(m *migrate.Migrate) error) error {
	env, err := server_config.ProcessDatabaseVariables()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", env.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return err
	}

	preMigrationVersion, err := version(m)
	if err != nil {
		return err
	}

	err = step(m)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	postMigrationVersion, err := version(m)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": postMigrationVersion,
	}).Info("Migration status")
	return nil
}

func version(m *migrate.Migrate) (uint, error) {
	v, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	return v, err
}
