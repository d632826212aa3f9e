package domain

import "errors"

// Sentinel errors for the one operation surface that signals lookup
// failure (entry update). All other category-keyed lookups are silent
// no-ops; see the service package.
var (
	ErrGroupNotFound = errors.New("group not found")
	ErrEntryNotFound = errors.New("entry not found")
)
