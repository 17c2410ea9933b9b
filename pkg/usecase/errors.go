package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrNotionNotConfigured = errors.New("notion service is not configured")
)

// Context keys for error values
const (
	RiskIDKey = "risk_id"
	CursorKey = "cursor"
	IndexKey  = "index"
)
