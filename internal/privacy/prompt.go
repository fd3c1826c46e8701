package privacy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/runnerr0/recap/internal/activity"
	"github.com/runnerr0/recap/internal/patterns"
)

// BuildPrompt projects a day's events and analysis into text appropriate
// for the destination tier. Lower tiers see per-event detail; classified
// drops entities and summaries; deidentified sees statistical aggregates
// and pattern labels only. Section ordering is deterministic so the
// validator and tests are stable.
func BuildPrompt(tier Tier, events []activity.StructuredEvent, analysis patterns.PatternAnalysis) string {
	switch tier {
	case TierDeidentified:
		return buildAggregatePrompt(analysis)
	case TierClassified:
		return buildTopicPrompt(events, analysis)
	default:
		return buildEventPrompt(tier, events, analysis)
	}
}

// buildEventPrompt renders per-event detail for the standard and rag
// tiers.
func buildEventPrompt(tier Tier, events []activity.StructuredEvent, analysis patterns.PatternAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily activity (%d events, tier %s)\n\n", len(events), tier)

	b.WriteString("## Events\n")
	for _, ev := range events {
		hour := "--:--"
		if len(ev.Timestamp) >= 16 {
			hour = ev.Timestamp[11:16]
		}
		fmt.Fprintf(&b, "- [%s] %s/%s topics=%s", hour, ev.Source, ev.ActivityType, strings.Join(ev.Topics, ","))
		if len(ev.Entities) > 0 {
			fmt.Fprintf(&b, " entities=%s", strings.Join(ev.Entities, ","))
		}
		if ev.Summary != "" {
			fmt.Fprintf(&b, " — %s", ev.Summary)
		}
		b.WriteByte('\n')
	}

	writePatternSections(&b, analysis, true)
	return b.String()
}

// buildTopicPrompt renders the classified tier: topics, activity types,
// and cluster structure, with no entities and no per-event summaries.
func buildTopicPrompt(events []activity.StructuredEvent, analysis patterns.PatternAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily activity overview (%d events)\n\n", len(events))

	topicCounts := make(map[string]int)
	for _, ev := range events {
		for _, t := range ev.Topics {
			topicCounts[t]++
		}
	}
	b.WriteString("## Topics\n")
	for _, t := range sortedKeys(topicCounts) {
		fmt.Fprintf(&b, "- %s (%d)\n", t, topicCounts[t])
	}

	writePatternSections(&b, analysis, false)
	return b.String()
}

// buildAggregatePrompt renders the deidentified tier from PatternAnalysis
// aggregates only.
func buildAggregatePrompt(analysis patterns.PatternAnalysis) string {
	var b strings.Builder
	b.WriteString("Activity pattern summary\n\n")
	fmt.Fprintf(&b, "Focus score: %.2f\n", analysis.FocusScore)
	fmt.Fprintf(&b, "Activity concentration: %.2f\n", analysis.ActivityConcentrationScore)
	fmt.Fprintf(&b, "Event count: %d\n", analysis.EventCount)

	if len(analysis.PeakHours) > 0 {
		hours := make([]string, len(analysis.PeakHours))
		for i, h := range analysis.PeakHours {
			hours[i] = fmt.Sprintf("%02d:00", h)
		}
		fmt.Fprintf(&b, "Peak hours: %s\n", strings.Join(hours, ", "))
	}
	if len(analysis.TopActivityTypes) > 0 {
		fmt.Fprintf(&b, "Dominant activity: %s\n", strings.Join(analysis.TopActivityTypes, ", "))
	}

	if len(analysis.Recurrence) > 0 {
		b.WriteString("\n## Recurrence trends\n")
		for _, sig := range analysis.Recurrence {
			fmt.Fprintf(&b, "- %s topic, seen %d days (%s)\n", sig.Trend, sig.DayCount, deidentifyLabel(sig.Topic))
		}
	}
	if len(analysis.Clusters) > 0 {
		b.WriteString("\n## Activity blocks\n")
		for _, cl := range analysis.Clusters {
			fmt.Fprintf(&b, "- %02d:00-%02d:59 %s, %d events, intensity %.1f\n",
				cl.HourStart, cl.HourEnd, cl.ActivityType, cl.EventCount, cl.Intensity)
		}
	}
	return b.String()
}

// writePatternSections appends the shared pattern sections. Entities are
// included only when withEntities is set.
func writePatternSections(b *strings.Builder, analysis patterns.PatternAnalysis, withEntities bool) {
	if len(analysis.Clusters) > 0 {
		b.WriteString("\n## Temporal clusters\n")
		for _, cl := range analysis.Clusters {
			fmt.Fprintf(b, "- %s: %d events, intensity %.1f\n", cl.Label, cl.EventCount, cl.Intensity)
		}
	}
	if len(analysis.Cooccurrences) > 0 {
		b.WriteString("\n## Topic associations\n")
		for _, co := range analysis.Cooccurrences {
			fmt.Fprintf(b, "- %s + %s (strength %.2f)\n", co.TopicA, co.TopicB, co.Strength)
		}
	}
	if withEntities && len(analysis.EntityRelations) > 0 {
		b.WriteString("\n## Entity relations\n")
		for _, rel := range analysis.EntityRelations {
			fmt.Fprintf(b, "- %s + %s (%d co-occurrences)\n", rel.EntityA, rel.EntityB, rel.Cooccurrences)
		}
	}
	if len(analysis.Recurrence) > 0 {
		b.WriteString("\n## Recurrence\n")
		for _, sig := range analysis.Recurrence {
			fmt.Fprintf(b, "- %s: %s (day %d)\n", sig.Topic, sig.Trend, sig.DayCount)
		}
	}
	fmt.Fprintf(b, "\nFocus score: %.2f\n", analysis.FocusScore)
}

// deidentifyLabel suppresses topic labels that name tools or products;
// the deidentified tier only reports that a trend exists.
func deidentifyLabel(topic string) string {
	lower := strings.ToLower(topic)
	for _, name := range toolNames {
		if strings.Contains(lower, name) {
			return "redacted"
		}
	}
	return topic
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
