package utils

import "time"

// FormatUnixRFC3339 renders epoch seconds as RFC3339 UTC; zero renders as "".
func FormatUnixRFC3339(t int64) string {
	if t <= 0 {
		return ""
	}
	return time.Unix(t, 0).UTC().Format(time.RFC3339)
}
