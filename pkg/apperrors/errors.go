package apperrors

import "errors"

var (
	ErrMissingDataset = errors.New("missing required field: 'dataset'")
	ErrNotATable      = errors.New("'dataset' must be a *dataset.Table")
	ErrEmptyDataset   = errors.New("'dataset' cannot be empty")
	ErrNoHeader       = errors.New("input has no header row")
	ErrNoRows         = errors.New("input has no data rows")
)
