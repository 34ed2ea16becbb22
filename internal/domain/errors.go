package domain

import "errors"

// Domain errors (no external dependencies). Field-level parse problems never
// surface here; those degrade to safe defaults inside the ingest and gst
// packages. Only structural failures reach the caller.
var (
	ErrDecode        = errors.New("upload could not be decoded as UTF-8 text")
	ErrInvalidConfig = errors.New("invoice configuration could not be parsed")
	ErrNoOrders      = errors.New("no valid orders found in the export")
	ErrInvalidInput  = errors.New("invalid input")
)
