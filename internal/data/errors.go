package data

import "errors"

// Shared sentinel errors for data-layer repositories. Lookup failures for
// unknown ids and cross-account access both surface as the same not-found
// sentinel so existence is never leaked across accounts.
var (
	ErrJobNotFound     = errors.New("job not found")
	ErrChannelNotFound = errors.New("notification channel not found")
	ErrSettingNotFound = errors.New("notification setting not found")
)
