package types

// This represents a botdex API Error
type ApiError struct {
	Context map[string]string `json:"context,omitempty" description:"Context of the error. Usually used for validation error contexts"`
	Message string            `json:"message" description:"Message of the error"`
}

// Returned by the index for `?type=count` queries
type BotCount struct {
	BotsCount int64 `json:"bots_count" description:"Total number of bots on the list"`
}

// Returned by DELETE /bots/{id}
type Deleted struct {
	Deleted bool `json:"deleted" description:"Whether or not the bot was deleted"`
}
