// Package testinfra starts the Postgres that integration tests run against.
// Importing it is enough: the container is started once per test binary.
package testinfra

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/infra/db"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var Pool *pgxpool.Pool

func init() {
	Pool = SetupDB()
}

// SetupDB starts a throwaway postgres and applies the embedded migrations.
func SetupDB() *pgxpool.Pool {
	ctx := context.Background()

	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17.2-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_USER":     "postgres",
				"POSTGRES_DB":       "site_builder_test",
			},
			// postgres restarts once after initdb, so the second ready line is the real one
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		log.Panicf("start postgres: %v", err)
	}

	host, err := pgC.Host(ctx)
	if err != nil {
		log.Panicf("postgres host: %v", err)
	}
	port, err := pgC.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Panicf("postgres port: %v", err)
	}

	pool, err := dbs.NewPool(ctx, dbs.Config{
		Host:     host,
		Port:     port.Port(),
		User:     "postgres",
		Password: "password",
		Name:     "site_builder_test",
		SSLMode:  "disable",
		MaxConns: 8,
	})
	if err != nil {
		log.Panicf("connect test db: %v", err)
	}

	applied, err := db.Migrate(ctx, pool)
	if err != nil {
		log.Panicf("migrate: %v", err)
	}
	slog.Info("test database ready", "host", host, "port", port.Port(), "migrations", applied)

	return pool
}

// Reset empties the site tables and the outbox. Child rows go with their
// site through ON DELETE CASCADE.
func Reset(ctx context.Context) error {
	_, err := Pool.Exec(ctx, "TRUNCATE builder.outbox, builder.sites CASCADE")
	return err
}
