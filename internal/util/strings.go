package util

// Truncate shortens s to at most max characters, replacing the tail with
// "..." when it is cut. For max <= 3 the ellipsis alone is returned.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return "..."
	}
	return s[:max-3] + "..."
}
