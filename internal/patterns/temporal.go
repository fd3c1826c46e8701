package patterns

import (
	"fmt"
	"sort"
	"strings"

	"github.com/runnerr0/recap/internal/activity"
)

// TemporalCluster is a contiguous span of same-activity-type events
// grouped by hour of day.
type TemporalCluster struct {
	HourStart    int      `json:"hour_start"`
	HourEnd      int      `json:"hour_end"`
	ActivityType string   `json:"activity_type"`
	EventCount   int      `json:"event_count"`
	Topics       []string `json:"topics"`
	Entities     []string `json:"entities,omitempty"`
	Intensity    float64  `json:"intensity"`
	Label        string   `json:"label"`
}

// ClusterByHour buckets events by hour of day and activity type, then
// merges buckets of the same type in the same or adjacent hours. A gap of
// two or more empty hours starts a new cluster. Clusters smaller than
// minSize are treated as noise and dropped.
func ClusterByHour(events []activity.StructuredEvent, minSize int) []TemporalCluster {
	if minSize <= 0 {
		minSize = DefaultMinClusterSize
	}

	type bucket struct {
		count    int
		topics   map[string]int
		entities map[string]int
	}

	// hour buckets per activity type
	byType := make(map[string]map[int]*bucket)
	for _, ev := range events {
		t, ok := eventTime(ev)
		if !ok {
			continue
		}
		hours := byType[ev.ActivityType]
		if hours == nil {
			hours = make(map[int]*bucket)
			byType[ev.ActivityType] = hours
		}
		b := hours[t.Hour()]
		if b == nil {
			b = &bucket{topics: make(map[string]int), entities: make(map[string]int)}
			hours[t.Hour()] = b
		}
		b.count++
		for _, topic := range ev.Topics {
			b.topics[topic]++
		}
		for _, e := range ev.Entities {
			b.entities[e]++
		}
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	var clusters []TemporalCluster
	for _, actType := range types {
		hours := byType[actType]
		hourList := make([]int, 0, len(hours))
		for h := range hours {
			hourList = append(hourList, h)
		}
		sort.Ints(hourList)

		start := hourList[0]
		prev := hourList[0]
		merged := []*bucket{hours[hourList[0]]}

		flush := func(end int) {
			count := 0
			topics := make(map[string]int)
			entities := make(map[string]int)
			for _, b := range merged {
				count += b.count
				for k, v := range b.topics {
					topics[k] += v
				}
				for k, v := range b.entities {
					entities[k] += v
				}
			}
			if count < minSize {
				return
			}
			span := end - start + 1
			topTopics := topN(topics, 3)
			clusters = append(clusters, TemporalCluster{
				HourStart:    start,
				HourEnd:      end,
				ActivityType: actType,
				EventCount:   count,
				Topics:       topTopics,
				Entities:     topN(entities, 3),
				Intensity:    float64(count) / float64(span),
				Label:        clusterLabel(actType, start, end, topTopics),
			})
		}

		for _, h := range hourList[1:] {
			if h-prev <= 1 {
				merged = append(merged, hours[h])
				prev = h
				continue
			}
			flush(prev)
			start, prev = h, h
			merged = []*bucket{hours[h]}
		}
		flush(prev)
	}

	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].HourStart != clusters[j].HourStart {
			return clusters[i].HourStart < clusters[j].HourStart
		}
		return clusters[i].ActivityType < clusters[j].ActivityType
	})
	return clusters
}

func clusterLabel(actType string, start, end int, topics []string) string {
	label := fmt.Sprintf("%s %02d:00-%02d:59", actType, start, end)
	if len(topics) > 0 {
		label += " (" + strings.Join(topics, ", ") + ")"
	}
	return label
}

// topN returns the n highest-count keys, count descending, name ascending
// on ties.
func topN(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
