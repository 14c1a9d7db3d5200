package preset

import "errors"

var (
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrPresetNotFound      = errors.New("preset not found")
)
