package ban

import "errors"

var (
	ErrValidation        = errors.New("invalid ban input")
	ErrDuplicateBan      = errors.New("player already has an active ban")
	ErrInvalidExpiration = errors.New("invalid expiration hours")
	ErrNotFound          = errors.New("ban not found")
)
