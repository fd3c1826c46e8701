package patterns

import (
	"sort"
	"time"

	"github.com/runnerr0/recap/internal/activity"
)

// TopicCooccurrence is one undirected topic-pair edge. TopicA < TopicB
// lexically, so (A,B) and (B,A) are the same edge.
type TopicCooccurrence struct {
	TopicA       string  `json:"topic_a"`
	TopicB       string  `json:"topic_b"`
	Strength     float64 `json:"strength"` // in [0,1], normalized to the max pair count
	SharedEvents int     `json:"shared_events"`
	Window       string  `json:"window"`
}

// EntityRelation is one undirected entity-pair edge with the intent
// contexts it occurred under.
type EntityRelation struct {
	EntityA       string   `json:"entity_a"`
	EntityB       string   `json:"entity_b"`
	Cooccurrences int      `json:"cooccurrences"`
	Contexts      []string `json:"contexts"`
}

// minEntityCooccurrences is the floor below which an entity pair is noise.
const minEntityCooccurrences = 3

// entityBearingCategories gates which events contribute entities to
// relation extraction. Titles from the noise categories are place and
// product names; pairing them produces spurious relations.
var entityBearingCategories = map[activity.Category]bool{
	activity.CategoryWork:      true,
	activity.CategoryDev:       true,
	activity.CategoryResearch:  true,
	activity.CategoryEducation: true,
	activity.CategoryAITools:   true,
	activity.CategoryPKM:       true,
	activity.CategoryWriting:   true,
}

type pairKey struct{ a, b string }

func makePair(a, b string) (pairKey, bool) {
	if a == b || a == "" || b == "" {
		return pairKey{}, false
	}
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}, true
}

// TopicCooccurrences counts every unordered pair of distinct topics seen
// within the sliding window, then normalizes each pair's count by the
// maximum observed pair count in the batch.
func TopicCooccurrences(events []activity.StructuredEvent, window time.Duration) []TopicCooccurrence {
	if window <= 0 {
		window = DefaultCooccurrenceWindow
	}

	timed := timedEvents(events)
	counts := make(map[pairKey]int)

	for i := range timed {
		// pairs within a single event's topic list
		countPairs(counts, timed[i].ev.Topics, timed[i].ev.Topics, true)
		for j := i + 1; j < len(timed); j++ {
			if timed[j].t.Sub(timed[i].t) > window {
				break
			}
			countPairs(counts, timed[i].ev.Topics, timed[j].ev.Topics, false)
		}
	}

	if len(counts) == 0 {
		return nil
	}

	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}

	out := make([]TopicCooccurrence, 0, len(counts))
	for k, c := range counts {
		out = append(out, TopicCooccurrence{
			TopicA:       k.a,
			TopicB:       k.b,
			Strength:     float64(c) / float64(max),
			SharedEvents: c,
			Window:       window.String(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SharedEvents != out[j].SharedEvents {
			return out[i].SharedEvents > out[j].SharedEvents
		}
		if out[i].TopicA != out[j].TopicA {
			return out[i].TopicA < out[j].TopicA
		}
		return out[i].TopicB < out[j].TopicB
	})
	return out
}

// countPairs increments the counter for each unordered pair across the two
// label sets. When self is true both sets are the same event's labels and
// each pair counts once.
func countPairs(counts map[pairKey]int, as, bs []string, self bool) {
	seen := make(map[pairKey]bool)
	for i, a := range as {
		start := 0
		if self {
			start = i + 1
		}
		for _, b := range bs[start:] {
			k, ok := makePair(a, b)
			if !ok || seen[k] {
				continue
			}
			seen[k] = true
			counts[k]++
		}
	}
}

// EntityRelations pairs entities from category-gated events within the
// sliding window. Pairs need at least minEntityCooccurrences hits, and a
// pair whose every context is unknown is dropped.
func EntityRelations(events []activity.StructuredEvent, window time.Duration) []EntityRelation {
	if window <= 0 {
		window = DefaultCooccurrenceWindow
	}

	// Zero out entities from noise-category events before pairing.
	gated := make([]activity.StructuredEvent, 0, len(events))
	for _, ev := range events {
		if !entityBearingCategories[ev.Category] {
			ev.Entities = nil
		}
		gated = append(gated, ev)
	}

	timed := timedEvents(gated)
	counts := make(map[pairKey]int)
	contexts := make(map[pairKey]map[string]bool)

	record := func(k pairKey, ctxs ...string) {
		counts[k]++
		set := contexts[k]
		if set == nil {
			set = make(map[string]bool)
			contexts[k] = set
		}
		for _, c := range ctxs {
			if c == "" {
				c = "unknown"
			}
			set[c] = true
		}
	}

	for i := range timed {
		a := timed[i].ev
		for ai, ea := range a.Entities {
			for _, eb := range a.Entities[ai+1:] {
				if k, ok := makePair(ea, eb); ok {
					record(k, a.Intent)
				}
			}
		}
		for j := i + 1; j < len(timed); j++ {
			if timed[j].t.Sub(timed[i].t) > window {
				break
			}
			b := timed[j].ev
			seen := make(map[pairKey]bool)
			for _, ea := range a.Entities {
				for _, eb := range b.Entities {
					k, ok := makePair(ea, eb)
					if !ok || seen[k] {
						continue
					}
					seen[k] = true
					record(k, a.Intent, b.Intent)
				}
			}
		}
	}

	var out []EntityRelation
	for k, c := range counts {
		if c < minEntityCooccurrences {
			continue
		}
		ctxs := setToSorted(contexts[k])
		if allUnknown(ctxs) {
			continue
		}
		out = append(out, EntityRelation{
			EntityA:       k.a,
			EntityB:       k.b,
			Cooccurrences: c,
			Contexts:      ctxs,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cooccurrences != out[j].Cooccurrences {
			return out[i].Cooccurrences > out[j].Cooccurrences
		}
		if out[i].EntityA != out[j].EntityA {
			return out[i].EntityA < out[j].EntityA
		}
		return out[i].EntityB < out[j].EntityB
	})
	return out
}

type timedEvent struct {
	t  time.Time
	ev activity.StructuredEvent
}

// timedEvents filters to events with parseable timestamps, sorted
// ascending. Events without a timestamp cannot participate in windowed
// operations.
func timedEvents(events []activity.StructuredEvent) []timedEvent {
	out := make([]timedEvent, 0, len(events))
	for _, ev := range events {
		if t, ok := eventTime(ev); ok {
			out = append(out, timedEvent{t: t, ev: ev})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].t.Before(out[j].t) })
	return out
}

func setToSorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func allUnknown(contexts []string) bool {
	for _, c := range contexts {
		if c != "unknown" {
			return false
		}
	}
	return true
}
