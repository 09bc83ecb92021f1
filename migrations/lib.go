package migrations

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

func tableExists(ctx context.Context, pool *pgxpool.Pool, name string) bool {
	var exists bool

	err := pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)", name).Scan(&exists)

	if err != nil {
		panic(err)
	}

	return exists
}

func mustExec(ctx context.Context, pool *pgxpool.Pool, sql string) {
	_, err := pool.Exec(ctx, sql)

	if err != nil {
		panic(err)
	}
}
