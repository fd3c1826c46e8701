package classify

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/recap/internal/activity"
)

func TestNewLLMClassifier_Defaults(t *testing.T) {
	c := NewLLMClassifier(nil, "gpt-4o-mini", 0, nil)
	assert.Equal(t, DefaultLLMBatchSize, c.batchSize)
	assert.NotNil(t, c.logger)

	c = NewLLMClassifier(nil, "gpt-4o-mini", 5, nil)
	assert.Equal(t, 5, c.batchSize)
}

func TestRefine_NilClientKeepsRuleLabels(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewLLMClassifier(nil, "gpt-4o-mini", 2, logger)

	events := []activity.StructuredEvent{
		{Source: "shell", ActivityType: "development", Topics: []string{"version-control"}, Confidence: RuleConfidence},
		{Source: "browser", ActivityType: "browsing", Topics: []string{"media"}, Confidence: RuleConfidence},
		{Source: "search", ActivityType: "research", Topics: []string{"programming"}, Confidence: RuleConfidence},
	}

	out := c.Refine(context.Background(), events)

	// Every batch fails without a client; rule labels survive untouched.
	require.Len(t, out, 3)
	assert.Equal(t, events, out)
	for _, ev := range out {
		assert.Equal(t, RuleConfidence, ev.Confidence)
	}
}

func TestRefine_DoesNotMutateInput(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewLLMClassifier(nil, "", 1, logger)

	events := []activity.StructuredEvent{
		{Source: "shell", ActivityType: "development"},
	}
	out := c.Refine(context.Background(), events)
	out[0].ActivityType = "changed"
	assert.Equal(t, "development", events[0].ActivityType)
}

func TestRefine_EmptyInput(t *testing.T) {
	c := NewLLMClassifier(nil, "gpt-4o-mini", 10, nil)
	out := c.Refine(context.Background(), nil)
	assert.Empty(t, out)
}

func TestBuildBatchInput(t *testing.T) {
	batch := []activity.StructuredEvent{
		{Source: "browser", ActivityType: "development", Topics: []string{"dev", "golang"}, Summary: "Development activity on github.com"},
		{Source: "shell", ActivityType: "development", Topics: []string{"version-control"}, Summary: "Ran a version-control command"},
	}

	input := buildBatchInput(batch)
	assert.Contains(t, input, "0. source=browser type=development topics=dev,golang")
	assert.Contains(t, input, "1. source=shell type=development topics=version-control")
}

func TestLabelSchema_Shape(t *testing.T) {
	require.NotNil(t, labelSchema)
	assert.Equal(t, "object", labelSchema["type"])

	props, ok := labelSchema["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "labels")
}
