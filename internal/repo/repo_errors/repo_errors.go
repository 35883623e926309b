package repo_errors

import "errors"

var ErrNotFound = errors.New("requested row not found")
