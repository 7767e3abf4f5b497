package memory

import "errors"

var ErrAlreadyExists = errors.New("memory: item already exists")
