package models

import "errors"

// ErrInvalidMatchID is returned for a blank match id.
var ErrInvalidMatchID = errors.New("invalid match ID")
