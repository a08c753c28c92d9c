package integration

import (
	"context"
	"os"
	"os/exec"
	"testing"

	"taskhub/internal/db"
	"taskhub/internal/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// dockerAvailable probes for the daemon up-front; testcontainers panics
// instead of erroring when Docker is missing.
func dockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

// testPool connects to DATABASE_URL when set, otherwise to a throwaway
// postgres container, and applies the migrations.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		if testing.Short() {
			t.Skip("DATABASE_URL not set and -short given")
		}
		if !dockerAvailable() {
			t.Skip("DATABASE_URL not set and Docker not available")
		}

		pg, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("taskhub"),
			postgres.WithUsername("taskhub"),
			postgres.WithPassword("taskhub"),
			postgres.BasicWaitStrategies(),
		)
		if err != nil {
			t.Skipf("failed to start postgres container: %v", err)
		}
		t.Cleanup(func() {
			if err := testcontainers.TerminateContainer(pg); err != nil {
				t.Logf("failed to terminate container: %s", err)
			}
		})

		dsn, err = pg.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			t.Fatalf("connection string: %v", err)
		}
	}

	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrations.Apply(ctx, pool, nil); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return pool
}
