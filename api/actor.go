package api

import (
	"context"

	"botdex/bots"
	"botdex/perms"
	"botdex/state"
)

// GetActor resolves an authorized user id into the actor handed to the bot
// service, carrying the users role tier
func GetActor(ctx context.Context, userID string) (bots.Actor, error) {
	var role string

	err := state.Pool.QueryRow(ctx, "SELECT role FROM users WHERE user_id = $1", userID).Scan(&role)

	if err != nil {
		return bots.Actor{}, err
	}

	return bots.Actor{
		ID:   userID,
		Role: perms.ParseRole(role),
	}, nil
}
