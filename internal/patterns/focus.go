package patterns

import (
	"math"

	"github.com/runnerr0/recap/internal/activity"
)

// FocusScore measures how concentrated the day was on few topics:
// 1 - H/Hmax, where H is the Shannon entropy of the topic-frequency
// distribution and Hmax = log2 of the distinct-topic count. All events on
// one topic score 1; a uniform spread approaches 0; zero events score
// exactly 0.
func FocusScore(events []activity.StructuredEvent) float64 {
	counts := make(map[string]int)
	for _, ev := range events {
		for _, t := range ev.Topics {
			if t != "" {
				counts[t]++
			}
		}
	}
	return concentration(counts)
}

// ActivityConcentration is the same construction over the activity-type
// distribution instead of topics.
func ActivityConcentration(events []activity.StructuredEvent) float64 {
	counts := make(map[string]int)
	for _, ev := range events {
		if ev.ActivityType != "" {
			counts[ev.ActivityType]++
		}
	}
	return concentration(counts)
}

func concentration(counts map[string]int) float64 {
	if len(counts) == 0 {
		return 0
	}
	if len(counts) == 1 {
		return 1
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	var entropy float64
	for _, c := range counts {
		p := float64(c) / float64(total)
		entropy -= p * math.Log2(p)
	}

	maxEntropy := math.Log2(float64(len(counts)))
	return 1 - entropy/maxEntropy
}
