package querybuilder

import "errors"

var (
	// ErrInvalidColumn is returned when a sort or search column does not exist on the primary table
	ErrInvalidColumn = errors.New("invalid column")
	// ErrInvalidParams is returned when the query string cannot be decoded
	ErrInvalidParams = errors.New("invalid query parameters")
)
