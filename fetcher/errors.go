package fetcher

import "errors"

var (
	ErrSumsMismatch   = errors.New("checksum mismatch")
	ErrUnknownSource  = errors.New("unknown document source")
	ErrStatus         = errors.New("unexpected response status")
	ErrInvalidRef     = errors.New("invalid document reference")
	ErrDocumentTooBig = errors.New("document too large")
)
