package constants

const (
	ResourceNotFound    = "{\"message\":\"We couldn't find this bot anywhere on the list!\"}"
	NotFoundPage        = "{\"message\":\"This endpoint doesn't exist... maybe check the path?\"}"
	BadRequest          = "{\"message\":\"This request isn't quite right, check your input and try again!\"}"
	Forbidden           = "{\"message\":\"You do not have sufficient permission to do this!\"}"
	Unauthorized        = "{\"message\":\"You need a valid API token to do this... did you forget one?\"}"
	InternalServerError = "{\"message\":\"Something went wrong on our end, try again later!\"}"
	MethodNotAllowed    = "{\"message\":\"That method is not allowed for this endpoint!\"}"
	BodyRequired        = "{\"message\":\"A body is required for this endpoint!\"}"
	Success             = "{\"message\":\"Success!\"}"
)
