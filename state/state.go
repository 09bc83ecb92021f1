package state

import (
	"context"
	"os"
	"time"

	"botdex/bots"
	"botdex/config"
	"botdex/migrations"
	"botdex/store"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/infinitybotlist/eureka/genconfig"
	"github.com/infinitybotlist/eureka/snippets"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	Logger    *zap.SugaredLogger
	Context   = context.Background()
	Validator = validator.New()

	Config *config.Config

	Bots *bots.Service
)

func Setup() {
	Logger = snippets.CreateZap().Sugar()

	Validator.RegisterValidation("notblank", validators.NotBlank)
	Validator.RegisterValidation("nospaces", snippets.ValidatorNoSpaces)
	Validator.RegisterValidation("https", snippets.ValidatorIsHttps)
	Validator.RegisterValidation("httporhttps", snippets.ValidatorIsHttpOrHttps)

	genconfig.GenConfig(config.Config{})

	cfg, err := os.ReadFile("config.yaml")

	if err != nil {
		panic(err)
	}

	err = yaml.Unmarshal(cfg, &Config)

	if err != nil {
		panic(err)
	}

	err = Validator.Struct(Config)

	if err != nil {
		panic("configError: " + err.Error())
	}

	Pool, err = pgxpool.New(Context, Config.Meta.PostgresURL)

	if err != nil {
		panic(err)
	}

	rOptions, err := redis.ParseURL(Config.Meta.RedisURL)

	if err != nil {
		panic(err)
	}

	Redis = redis.NewClient(rOptions)

	migrations.Migrate(Context, Pool, Logger)

	Bots = bots.New(store.NewPostgres(Pool), time.Duration(Config.Meta.VoteCooldownHours)*time.Hour)
}
