// Schema migrations, run on startup. Each migrator must be idempotent.
package migrations

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type migrator struct {
	name string
	fn   func(context.Context, *pgxpool.Pool)
}

var migs = []migrator{
	{
		name: "create users table",
		fn: func(ctx context.Context, pool *pgxpool.Pool) {
			if tableExists(ctx, pool, "users") {
				return
			}

			mustExec(ctx, pool, `CREATE TABLE users (
				user_id TEXT PRIMARY KEY,
				username TEXT NOT NULL,
				discriminator TEXT NOT NULL DEFAULT '0',
				api_token TEXT NOT NULL UNIQUE,
				role TEXT NOT NULL DEFAULT 'member',
				banned BOOLEAN NOT NULL DEFAULT false
			)`)
		},
	},
	{
		name: "create bots table",
		fn: func(ctx context.Context, pool *pgxpool.Pool) {
			if tableExists(ctx, pool, "bots") {
				return
			}

			mustExec(ctx, pool, `CREATE TABLE bots (
				bot_id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				prefix TEXT NOT NULL,
				owner TEXT NOT NULL,
				additional_owners TEXT[] NOT NULL DEFAULT '{}',
				tags TEXT[] NOT NULL,
				short TEXT NOT NULL,
				long TEXT NOT NULL DEFAULT '',
				is_html BOOLEAN NOT NULL DEFAULT false,
				library TEXT NOT NULL,
				website TEXT,
				support TEXT,
				invite TEXT,
				votes INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`)

			mustExec(ctx, pool, "CREATE INDEX bots_votes_idx ON bots (votes DESC, created_at DESC, bot_id ASC)")
			mustExec(ctx, pool, "CREATE INDEX bots_created_at_idx ON bots (created_at DESC, bot_id ASC)")
		},
	},
	{
		name: "create bot_voters table",
		fn: func(ctx context.Context, pool *pgxpool.Pool) {
			if tableExists(ctx, pool, "bot_voters") {
				return
			}

			mustExec(ctx, pool, `CREATE TABLE bot_voters (
				bot_id TEXT NOT NULL REFERENCES bots (bot_id) ON DELETE CASCADE,
				user_id TEXT NOT NULL,
				last_vote_at TIMESTAMPTZ NOT NULL,
				PRIMARY KEY (bot_id, user_id)
			)`)
		},
	},
}

func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.SugaredLogger) {
	for _, mig := range migs {
		logger.Info("Running migration: " + mig.name)
		mig.fn(ctx, pool)
	}
}
