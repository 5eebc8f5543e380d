package scoring

import (
	"math"
	"sort"

	"primetime-picks/models"
	"primetime-picks/primetime"
)

// Aggregator folds a pick history into a stats row. Primetime splits use the
// configured classifier.
type Aggregator struct {
	classifier *primetime.Classifier
}

func NewAggregator(classifier *primetime.Classifier) *Aggregator {
	if classifier == nil {
		classifier = primetime.Default()
	}
	return &Aggregator{classifier: classifier}
}

// Aggregate runs the default aggregator.
func Aggregate(userID, leagueID int, picks []models.Pick, games map[int]models.Game) models.UserStats {
	return NewAggregator(nil).Aggregate(userID, leagueID, picks, games)
}

// Aggregate recomputes stats from scratch. Pushes are excluded from
// TotalPicks and from the accuracy denominator, and leave both streaks
// untouched. games may be nil or partial; picks whose game is unknown never
// count as primetime. UpdatedAt is left for the caller to stamp.
func (a *Aggregator) Aggregate(userID, leagueID int, picks []models.Pick, games map[int]models.Game) models.UserStats {
	stats := models.UserStats{UserID: userID, LeagueID: leagueID}

	ordered := orderPicks(picks, games)
	for _, p := range ordered {
		if !p.IsResolved() {
			stats.PendingPicks++
			continue
		}
		switch p.Outcome {
		case models.PickOutcomeCorrect:
			stats.CorrectPicks++
		case models.PickOutcomeIncorrect:
			stats.IncorrectPicks++
		case models.PickOutcomePush:
			stats.Pushes++
		default:
			continue
		}
		stats.TotalPoints += p.Points

		if p.Outcome == models.PickOutcomePush {
			continue
		}
		if g, ok := games[p.GameID]; ok && a.classifier.ClassifyGame(&g).IsPrimetime {
			stats.PrimetimePicks++
			if p.Outcome == models.PickOutcomeCorrect {
				stats.PrimetimeCorrect++
			}
		}
	}

	stats.TotalPicks = stats.CorrectPicks + stats.IncorrectPicks
	stats.Accuracy = percentage(stats.CorrectPicks, stats.TotalPicks)
	stats.PrimetimeAccuracy = percentage(stats.PrimetimeCorrect, stats.PrimetimePicks)
	stats.CurrentStreak = currentStreak(ordered)
	stats.BestStreak = bestStreak(ordered)
	return stats
}

// orderPicks sorts oldest first by kickoff, then submission time, then game.
func orderPicks(picks []models.Pick, games map[int]models.Game) []models.Pick {
	ordered := append([]models.Pick(nil), picks...)
	kickoff := func(p models.Pick) int64 {
		if !p.GameStart.IsZero() {
			return p.GameStart.UnixNano()
		}
		if g, ok := games[p.GameID]; ok {
			return g.StartTime.UnixNano()
		}
		return 0
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		ki, kj := kickoff(ordered[i]), kickoff(ordered[j])
		if ki != kj {
			return ki < kj
		}
		if !ordered[i].SubmittedAt.Equal(ordered[j].SubmittedAt) {
			return ordered[i].SubmittedAt.Before(ordered[j].SubmittedAt)
		}
		return ordered[i].GameID < ordered[j].GameID
	})
	return ordered
}

// currentStreak walks newest first, skipping pending picks and pushes. The
// first decided pick sets the sign; the run ends at the first sign change.
func currentStreak(ordered []models.Pick) int {
	streak := 0
	for i := len(ordered) - 1; i >= 0; i-- {
		var sign int
		switch ordered[i].Outcome {
		case models.PickOutcomeCorrect:
			sign = 1
		case models.PickOutcomeIncorrect:
			sign = -1
		default:
			continue
		}
		if streak != 0 && (streak > 0) != (sign > 0) {
			break
		}
		streak += sign
	}
	return streak
}

// bestStreak is the longest run of correct picks, oldest first.
func bestStreak(ordered []models.Pick) int {
	run, best := 0, 0
	for _, p := range ordered {
		switch p.Outcome {
		case models.PickOutcomeCorrect:
			run++
			if run > best {
				best = run
			}
		case models.PickOutcomeIncorrect:
			run = 0
		}
	}
	return best
}

// percentage is part/whole*100 rounded to one decimal, 0 for an empty whole.
func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}
