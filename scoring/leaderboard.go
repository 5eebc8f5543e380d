package scoring

import (
	"sort"

	"primetime-picks/models"
)

// BuildLeaderboard ranks rows by total points, accuracy and correct picks,
// all descending. Accuracy compares the exact correct/total ratio, not the
// rounded percentage. Rows tied on all three are ordered by user id so output
// is deterministic; ranks are 1-based positions. rows is not modified.
func BuildLeaderboard(rows []models.UserStats) []models.LeaderboardEntry {
	sorted := append([]models.UserStats(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if c := CompareAccuracy(a, b); c != 0 {
			return c > 0
		}
		if a.CorrectPicks != b.CorrectPicks {
			return a.CorrectPicks > b.CorrectPicks
		}
		return a.UserID < b.UserID
	})

	entries := make([]models.LeaderboardEntry, len(sorted))
	for i, row := range sorted {
		entries[i] = models.LeaderboardEntry{Rank: i + 1, UserStats: row}
	}
	return entries
}

// CompareAccuracy orders two rows by CorrectPicks/TotalPicks without
// rounding: 1 if a is more accurate, -1 if less, 0 if equal. No decided
// picks counts as 0%.
func CompareAccuracy(a, b models.UserStats) int {
	an, ad := ratio(a)
	bn, bd := ratio(b)
	switch l, r := an*bd, bn*ad; {
	case l > r:
		return 1
	case l < r:
		return -1
	}
	return 0
}

func ratio(s models.UserStats) (num, den int64) {
	if s.TotalPicks <= 0 {
		return 0, 1
	}
	return int64(s.CorrectPicks), int64(s.TotalPicks)
}

// Page slices an already ranked board. Out of range pages are empty.
func Page(entries []models.LeaderboardEntry, offset, limit int) []models.LeaderboardEntry {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(entries) {
		return []models.LeaderboardEntry{}
	}
	end := len(entries)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return entries[offset:end]
}
