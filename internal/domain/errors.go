package domain

import "errors"

var (
	ErrItemNotFound = errors.New("line item not found")
)
