// Package analytics aggregates activity snapshots for the dashboard charts.
// Every function is pure; callers pass a store snapshot.
package analytics

import (
	"sort"

	"github.com/samhotchkiss/sindicato-comms/internal/models"
)

// RecentLimit is how many activities the dashboard lists as recent.
const RecentLimit = 5

// CategoryCount is one bar of the per-category chart.
type CategoryCount struct {
	Category models.ActivityCategory `json:"name"`
	Count    int                     `json:"actividades"`
}

// SecretariatCount is one bar of the per-secretariat chart.
type SecretariatCount struct {
	Secretariat models.Secretariat `json:"name"`
	Count       int                `json:"actividades"`
}

// Summary bundles every aggregate the dashboard and analytics views show.
type Summary struct {
	TotalActivities   int                `json:"totalActivities"`
	PressReleaseCount int                `json:"pressReleaseCount"`
	ByCategory        []CategoryCount    `json:"byCategory"`
	BySecretariat     []SecretariatCount `json:"bySecretariat"`
	HasData           bool               `json:"hasData"`
	RecentActivities  []models.Activity  `json:"recentActivities"`
}

// CategoryCounts returns one entry per category in vocabulary order,
// including categories with no activities.
func CategoryCounts(activities []models.Activity) []CategoryCount {
	counts := make(map[models.ActivityCategory]int, len(activities))
	for _, activity := range activities {
		counts[activity.Category]++
	}

	categories := models.ActivityCategories()
	out := make([]CategoryCount, 0, len(categories))
	for _, category := range categories {
		out = append(out, CategoryCount{Category: category, Count: counts[category]})
	}
	return out
}

// SecretariatCounts returns one entry per secretariat sorted by count,
// highest first. Ties keep vocabulary order.
func SecretariatCounts(activities []models.Activity) []SecretariatCount {
	counts := make(map[models.Secretariat]int, len(activities))
	for _, activity := range activities {
		counts[activity.Secretariat]++
	}

	secretariats := models.Secretariats()
	out := make([]SecretariatCount, 0, len(secretariats))
	for _, secretariat := range secretariats {
		out = append(out, SecretariatCount{Secretariat: secretariat, Count: counts[secretariat]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Recent returns at most n activities from the front of the snapshot, which
// the store keeps newest first.
func Recent(activities []models.Activity, n int) []models.Activity {
	if n < 0 {
		n = 0
	}
	if n > len(activities) {
		n = len(activities)
	}
	out := make([]models.Activity, 0, n)
	for _, activity := range activities[:n] {
		out = append(out, activity.Clone())
	}
	return out
}

// Summarize builds the full summary.
func Summarize(activities []models.Activity, pressReleases []models.PressRelease) Summary {
	return Summary{
		TotalActivities:   len(activities),
		PressReleaseCount: len(pressReleases),
		ByCategory:        CategoryCounts(activities),
		BySecretariat:     SecretariatCounts(activities),
		HasData:           len(activities) > 0,
		RecentActivities:  Recent(activities, RecentLimit),
	}
}
