package types

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// The tags a bot may carry. A bot always has between 1 and 6 of these.
var BotTags = []string{
	"music",
	"moderation",
	"fun",
	"utility",
	"economy",
	"social",
	"games",
	"anime",
}

// The libraries a bot may be written with
var BotLibraries = []string{
	"discordgo",
	"discordjs",
	"discordpy",
	"eris",
	"serenity",
	"jda",
	"other",
}

// Bot represents a bot on the list.
//
// The `votes` column is a running total: it is incremented once per accepted
// vote and only ever zeroed by a full vote reset. Per-user vote timestamps
// live in the bot_voters table, not here.
type Bot struct {
	BotID            string      `db:"bot_id" json:"bot_id"`
	Name             string      `db:"name" json:"name"`
	Prefix           string      `db:"prefix" json:"prefix"`
	Owner            string      `db:"owner" json:"owner"`
	AdditionalOwners []string    `db:"additional_owners" json:"additional_owners"`
	Tags             []string    `db:"tags" json:"tags"`
	Short            string      `db:"short" json:"short"`
	Long             string      `db:"long" json:"long"`
	IsHTML           bool        `db:"is_html" json:"is_html"`
	Library          string      `db:"library" json:"library"`
	Website          pgtype.Text `db:"website" json:"website"`
	Support          pgtype.Text `db:"support" json:"support"`
	Invite           pgtype.Text `db:"invite" json:"invite"`
	Votes            int         `db:"votes" json:"votes"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
}

// IndexBot is the trimmed down bot returned by listing/search queries
type IndexBot struct {
	BotID     string    `db:"bot_id" json:"bot_id"`
	Name      string    `db:"name" json:"name"`
	Prefix    string    `db:"prefix" json:"prefix"`
	Owner     string    `db:"owner" json:"owner"`
	Tags      []string  `db:"tags" json:"tags"`
	Short     string    `db:"short" json:"short"`
	Library   string    `db:"library" json:"library"`
	Votes     int       `db:"votes" json:"votes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CreateBot is the payload for both adding and editing a bot.
//
// On create, bot_id must be empty (the list assigns one). On edit, bot_id
// identifies the bot being edited; ownership, votes and creation time are
// never touched by an edit.
type CreateBot struct {
	BotID            string   `json:"bot_id"`
	Name             string   `json:"name" validate:"required,min=1,max=100" msg:"Bot name must be between 1 and 100 characters"`
	Prefix           string   `json:"prefix" validate:"required,min=1,max=15" msg:"Prefix must be between 1 and 15 characters"`
	Tags             []string `json:"tags" validate:"required,unique,min=1,max=6,dive,oneof=music moderation fun utility economy social games anime" msg:"You must provide between 1 and 6 tags" amsg:"Each tag must be one of the supported tags"`
	Short            string   `json:"short" validate:"required,min=3,max=300" msg:"Short description must be between 3 and 300 characters"`
	Long             string   `json:"long" validate:"omitempty,max=100000" msg:"Long description is limited to 100000 characters"`
	IsHTML           bool     `json:"is_html"`
	Library          string   `json:"library" validate:"required,oneof=discordgo discordjs discordpy eris serenity jda other" msg:"Library must be one of the supported libraries"`
	Website          string   `json:"website" validate:"omitempty,httporhttps,max=255" msg:"Website must be a valid URL of at most 255 characters"`
	Support          string   `json:"support" validate:"omitempty,max=10" msg:"Support server invite code is limited to 10 characters"`
	Invite           string   `json:"invite" validate:"omitempty,httporhttps,max=255" msg:"Custom invite must be a valid URL of at most 255 characters"`
	AdditionalOwners []string `json:"additional_owners" validate:"omitempty,unique,max=5,dive,numeric" msg:"A bot can have at most 5 additional owners" amsg:"Additional owners must be user IDs"`
}
