package calculation

// limitStrings keeps at most n leading entries.
func limitStrings(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// plural picks the suffix for a count.
func plural(n int, one, many string) string {
	if n > 1 {
		return many
	}
	return one
}
