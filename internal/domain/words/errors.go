package words

import "errors"

// Sentinel kinds for word list errors.
var (
	ErrLoadList  = errors.New("load word list failed")
	ErrEmptyList = errors.New("word list is empty")
)
