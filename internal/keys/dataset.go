package keys

import (
	"fmt"
	"strings"
)

// sanitizeKey replaces spaces with hyphens and lowercases the string.
func sanitizeKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
}

// Dataset returns the canonical object key for a named services dataset.
func Dataset(name string) string {
	return fmt.Sprintf("data/%s.json", sanitizeKey(name))
}

// Services is the key of the default dataset.
var Services = Dataset("services")
