package patterns

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/recap/internal/activity"
)

func devEvent(hhmm string, topics ...string) activity.StructuredEvent {
	return activity.StructuredEvent{
		Timestamp:    "2026-03-02T" + hhmm + ":00Z",
		Source:       activity.SourceBrowser,
		ActivityType: activity.ActivityDevelopment,
		Topics:       topics,
		Category:     activity.CategoryDev,
	}
}

func TestClusterByHour_AdjacentHoursMerge(t *testing.T) {
	events := []activity.StructuredEvent{
		devEvent("09:10", "dev"),
		devEvent("09:40", "dev"),
		devEvent("10:15", "dev"),
		devEvent("11:05", "dev"),
	}

	clusters := ClusterByHour(events, 2)
	require.Len(t, clusters, 1)
	assert.Equal(t, 9, clusters[0].HourStart)
	assert.Equal(t, 11, clusters[0].HourEnd)
	assert.Equal(t, 4, clusters[0].EventCount)
}

func TestClusterByHour_GapSplits(t *testing.T) {
	events := []activity.StructuredEvent{
		devEvent("09:10", "dev"),
		devEvent("09:40", "dev"),
		// two empty hours
		devEvent("12:05", "dev"),
		devEvent("12:30", "dev"),
	}

	clusters := ClusterByHour(events, 2)
	require.Len(t, clusters, 2)
	assert.Equal(t, 9, clusters[0].HourStart)
	assert.Equal(t, 9, clusters[0].HourEnd)
	assert.Equal(t, 12, clusters[1].HourStart)
}

func TestClusterByHour_MinSizeDropsNoise(t *testing.T) {
	events := []activity.StructuredEvent{
		devEvent("09:10", "dev"),
		devEvent("14:10", "dev"),
		devEvent("14:20", "dev"),
	}

	clusters := ClusterByHour(events, 2)
	require.Len(t, clusters, 1)
	assert.Equal(t, 14, clusters[0].HourStart)
}

func TestClusterByHour_SeparateTypes(t *testing.T) {
	events := []activity.StructuredEvent{
		devEvent("09:10", "dev"),
		devEvent("09:20", "dev"),
		{
			Timestamp:    "2026-03-02T09:30:00Z",
			ActivityType: activity.ActivityMedia,
			Topics:       []string{"media"},
		},
		{
			Timestamp:    "2026-03-02T09:45:00Z",
			ActivityType: activity.ActivityMedia,
			Topics:       []string{"media"},
		},
	}

	clusters := ClusterByHour(events, 2)
	require.Len(t, clusters, 2)
	types := []string{clusters[0].ActivityType, clusters[1].ActivityType}
	assert.Contains(t, types, activity.ActivityDevelopment)
	assert.Contains(t, types, activity.ActivityMedia)
}

func TestClusterByHour_Intensity(t *testing.T) {
	events := []activity.StructuredEvent{
		devEvent("09:00", "dev"),
		devEvent("09:10", "dev"),
		devEvent("09:20", "dev"),
		devEvent("10:30", "dev"),
	}

	clusters := ClusterByHour(events, 2)
	require.Len(t, clusters, 1)
	// 4 events over the 2-hour span 09:00-10:59.
	assert.InDelta(t, 2.0, clusters[0].Intensity, 0.001)
}

func TestClusterByHour_Label(t *testing.T) {
	events := []activity.StructuredEvent{
		devEvent("09:10", "dev"),
		devEvent("09:40", "dev"),
	}

	clusters := ClusterByHour(events, 2)
	require.Len(t, clusters, 1)
	assert.Equal(t, "development 09:00-09:59 (dev)", clusters[0].Label)
}

func TestClusterByHour_SkipsUntimedEvents(t *testing.T) {
	events := []activity.StructuredEvent{
		devEvent("09:10", "dev"),
		devEvent("09:20", "dev"),
		{ActivityType: activity.ActivityDevelopment, Topics: []string{"dev"}},
	}

	clusters := ClusterByHour(events, 2)
	require.Len(t, clusters, 1)
	assert.Equal(t, 2, clusters[0].EventCount)
}

func TestClusterByHour_Empty(t *testing.T) {
	assert.Empty(t, ClusterByHour(nil, 2))
}

func TestTopN(t *testing.T) {
	counts := map[string]int{"a": 1, "b": 3, "c": 2, "d": 3}
	assert.Equal(t, []string{"b", "d", "c"}, topN(counts, 3))
}

func TestTopActivityTypes(t *testing.T) {
	var events []activity.StructuredEvent
	for i := 0; i < 3; i++ {
		events = append(events, devEvent(fmt.Sprintf("09:0%d", i), "dev"))
	}
	events = append(events, activity.StructuredEvent{
		Timestamp:    "2026-03-02T10:00:00Z",
		ActivityType: activity.ActivityMedia,
	})

	top := topActivityTypes(events, 3)
	require.NotEmpty(t, top)
	assert.Equal(t, activity.ActivityDevelopment, top[0])
}
