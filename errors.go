package flexmark

import "errors"

// ErrUnknownFormat is returned for an output format other than html, term or tree.
var ErrUnknownFormat = errors.New("unknown output format")
