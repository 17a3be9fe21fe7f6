package registry

import "strings"

// NormalizeHandle strips a leading @ from a handle for use in outbound
// requests. Normalization is idempotent.
func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

// DisplayHandle returns the @-prefixed form shown back to callers.
func DisplayHandle(handle string) string {
	return "@" + NormalizeHandle(handle)
}
