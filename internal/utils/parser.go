package utils

import (
	"fmt"
	"strings"
)

// ParseKeyValue splits a "key=value" pair as given on the command line.
// The key must be non-empty; the value may be empty ("key=").
func ParseKeyValue(pair string) (string, string, error) {
	key, value, found := strings.Cut(pair, "=")
	if !found {
		return "", "", fmt.Errorf("invalid key=value pair: %q (expected 'key=value')", pair)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", fmt.Errorf("invalid key=value pair: %q (empty key)", pair)
	}
	return key, value, nil
}

// ParseKeyValues parses a list of "key=value" pairs into a map.
// Later pairs override earlier ones, matching flag-repetition semantics.
func ParseKeyValues(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, err := ParseKeyValue(pair)
		if err != nil {
			return nil, err
		}
		result[key] = value
	}
	return result, nil
}

// SafeName converts a name to a filesystem-safe string by replacing "/" with "--".
func SafeName(name string) string {
	return strings.ReplaceAll(name, "/", "--")
}
