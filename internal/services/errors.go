package services

import "errors"

var (
	// ErrProgressConflict is returned once bounded retries of a versioned progress update are exhausted.
	ErrProgressConflict = errors.New("progress update conflict")
	ErrEntryNotFound    = errors.New("journal entry not found")
	ErrSpeechDisabled   = errors.New("speech transcription is not configured")
	ErrInvalidTimezone  = errors.New("unknown timezone")
)
