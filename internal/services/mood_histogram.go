package services

import (
	"sort"

	"github.com/terraincognita07/ovira/internal/models"
)

type moodHistogram struct {
	counts map[models.Mood]int
	order  []models.Mood
}

func newMoodHistogram() moodHistogram {
	return moodHistogram{counts: make(map[models.Mood]int)}
}

func (histogram *moodHistogram) Add(mood models.Mood) {
	if _, seen := histogram.counts[mood]; !seen {
		histogram.order = append(histogram.order, mood)
	}
	histogram.counts[mood]++
}

func (histogram moodHistogram) Count(mood models.Mood) int {
	return histogram.counts[mood]
}

// Top returns up to n moods by descending frequency; ties keep first-seen order.
func (histogram moodHistogram) Top(n int) []models.Mood {
	if n <= 0 || len(histogram.order) == 0 {
		return []models.Mood{}
	}

	ranked := make([]models.Mood, len(histogram.order))
	copy(ranked, histogram.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return histogram.counts[ranked[i]] > histogram.counts[ranked[j]]
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
