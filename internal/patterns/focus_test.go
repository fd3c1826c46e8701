package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runnerr0/recap/internal/activity"
)

func topicEvents(topics ...string) []activity.StructuredEvent {
	out := make([]activity.StructuredEvent, len(topics))
	for i, topic := range topics {
		out[i] = activity.StructuredEvent{Topics: []string{topic}, ActivityType: "development"}
	}
	return out
}

func TestFocusScore_Empty(t *testing.T) {
	assert.Equal(t, 0.0, FocusScore(nil))
}

func TestFocusScore_SingleTopic(t *testing.T) {
	assert.Equal(t, 1.0, FocusScore(topicEvents("golang", "golang", "golang")))
}

func TestFocusScore_UniformSpreadApproachesZero(t *testing.T) {
	score := FocusScore(topicEvents("a", "b", "c", "d"))
	assert.InDelta(t, 0.0, score, 0.001)
}

func TestFocusScore_SkewedDistribution(t *testing.T) {
	// Nine events on one topic, one stray: focused but not perfectly.
	topics := make([]string, 0, 10)
	for i := 0; i < 9; i++ {
		topics = append(topics, "golang")
	}
	topics = append(topics, "cooking")

	score := FocusScore(topicEvents(topics...))
	assert.Greater(t, score, 0.4)
	assert.Less(t, score, 1.0)
}

func TestFocusScore_Bounds(t *testing.T) {
	cases := [][]string{
		{"a"},
		{"a", "a", "b"},
		{"a", "b", "c", "a", "a", "d"},
	}
	for _, topics := range cases {
		score := FocusScore(topicEvents(topics...))
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestFocusScore_MoreFocusedScoresHigher(t *testing.T) {
	focused := FocusScore(topicEvents("a", "a", "a", "a", "b"))
	scattered := FocusScore(topicEvents("a", "b", "c", "d", "e"))
	assert.Greater(t, focused, scattered)
}

func TestActivityConcentration_SingleType(t *testing.T) {
	events := []activity.StructuredEvent{
		{ActivityType: "development"},
		{ActivityType: "development"},
	}
	assert.Equal(t, 1.0, ActivityConcentration(events))
}

func TestActivityConcentration_EvenSplit(t *testing.T) {
	events := []activity.StructuredEvent{
		{ActivityType: "development"},
		{ActivityType: "media"},
	}
	assert.InDelta(t, 0.0, ActivityConcentration(events), 0.001)
}

func TestFocusScore_IgnoresEmptyTopics(t *testing.T) {
	events := []activity.StructuredEvent{
		{Topics: []string{"golang"}},
		{Topics: []string{""}},
	}
	assert.Equal(t, 1.0, FocusScore(events))
}

func TestFocusScore_SkewedBeatsHalf(t *testing.T) {
	// 9:1 over two topics: entropy well below the one-bit maximum.
	topics := make([]string, 0, 10)
	for i := 0; i < 9; i++ {
		topics = append(topics, "golang")
	}
	topics = append(topics, "cooking")
	assert.Greater(t, FocusScore(topicEvents(topics...)), 0.5)
}
