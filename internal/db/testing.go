package db

import (
	"context"
	"os"

	"useradmin/internal/db/migrations"

	"github.com/jackc/pgx/v4/pgxpool"
)

func CreateTestPool() *pgxpool.Pool {
	connString := os.Getenv("TEST_POSTGRESQL_URL")
	if connString == "" {
		panic("TEST_POSTGRESQL_URL must be set.")
	}
	if err := migrations.Up(connString); err != nil {
		panic("Could not apply DB migrations.")
	}

	ctx := context.Background()
	pool, err := pgxpool.Connect(ctx, connString)
	if err != nil {
		panic("Could not connect to the database.")
	}

	return pool
}

func TruncateTables(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), "TRUNCATE \"user\", company")
	if err != nil {
		panic("Could not truncate DB tables.")
	}
}
