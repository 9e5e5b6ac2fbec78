package utils

import "github.com/pkg/errors"

// Error kinds of the prediction pipeline. Call sites wrap these with
// errors.Wrapf so handlers can test the kind with errors.Is while the
// message still carries the cause.
var (
	ErrInputFormat = errors.New("malformed tabular input")
	ErrUpstream    = errors.New("ml service unavailable")
	ErrStorage     = errors.New("failed to persist student")
)
