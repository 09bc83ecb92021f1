package config

type Config struct {
	Sites Sites `yaml:"sites" validate:"required"`
	Meta  Meta  `yaml:"meta" validate:"required"`
}

type Sites struct {
	Frontend string `yaml:"frontend" default:"https://botdex.app" comment:"Frontend URL" validate:"required"`
	API      string `yaml:"api" default:"https://api.botdex.app" comment:"API URL" validate:"required"`
}

type Meta struct {
	PostgresURL       string `yaml:"postgres_url" default:"postgresql:///botdex" comment:"Postgres database URL" validate:"required"`
	RedisURL          string `yaml:"redis_url" default:"redis://localhost:6379" comment:"Redis URL" validate:"required"`
	Port              string `yaml:"port" default:":8081" comment:"Port for the API to listen on" validate:"required"`
	VoteCooldownHours int    `yaml:"vote_cooldown_hours" default:"8" comment:"Hours a user must wait between two votes on the same bot" validate:"required,min=1"`
	IndexPageSize     int    `yaml:"index_page_size" default:"18" comment:"Bots per page on the index" validate:"required,min=1"`
}
