package store

import "errors"

// ErrDuplicateID is returned by Create when the job id is already taken.
var ErrDuplicateID = errors.New("job id already exists")
