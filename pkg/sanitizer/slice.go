package sanitizer

func NormalizeStringSlice(items []string, normalizer func(string) string) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizer(item)

		if normalized == "" {
			continue
		}

		if seen[normalized] {
			continue
		}

		seen[normalized] = true
		result = append(result, normalized)
	}

	return result
}

// NormalizeFriends cleans a kid's friend-name list or a booking's
// friends-attending list: trimmed, deduplicated, empties dropped.
func NormalizeFriends(friends []string) []string {
	return NormalizeStringSlice(friends, NormalizeName)
}
