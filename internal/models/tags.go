package models

import "strings"

// ParseRelevanceTags splits free text on commas, trimming entries and
// discarding empty ones. Duplicates are kept.
func ParseRelevanceTags(raw string) []string {
	tags := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// JoinRelevanceTags renders tags back into the comma separated edit form.
func JoinRelevanceTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// NormalizeRelevanceTags trims every tag and drops empty ones.
func NormalizeRelevanceTags(tags []string) []string {
	return ParseRelevanceTags(strings.Join(tags, ","))
}
