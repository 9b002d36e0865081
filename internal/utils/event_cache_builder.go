package utils

import "strings"

// BuildEventsSearchCacheKey normalises the keyword the same way the registry
// matches it, so "Tech" and " tech " share an entry.
func BuildEventsSearchCacheKey(keyword string) string {
	return "events:search:v1:q=" + strings.ToLower(strings.TrimSpace(keyword))
}
