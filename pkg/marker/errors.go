package marker

import "errors"

// ErrInvalidEscapePattern is returned when the configured escape pattern does not compile.
var ErrInvalidEscapePattern = errors.New("invalid escape pattern")

// ErrInvalidEmptyAction is returned for an empty-span policy other than keep, remove or mark.
var ErrInvalidEmptyAction = errors.New("invalid empty action")

// ErrInvalidClassification is returned when a dictionary key is not a single letter a-z.
var ErrInvalidClassification = errors.New("invalid classification key")
