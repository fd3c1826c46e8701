package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"

	"github.com/runnerr0/recap/internal/activity"
)

// DefaultLLMBatchSize bounds how many events are labeled per call.
const DefaultLLMBatchSize = 25

// llmLabel is the structured output for one event. The model only ever
// sees the rule classifier's sanitized semantic fields, never raw text.
type llmLabel struct {
	Index        int      `json:"index"`
	ActivityType string   `json:"activity_type"`
	Topics       []string `json:"topics"`
	Intent       string   `json:"intent"`
}

type llmLabelBatch struct {
	Labels []llmLabel `json:"labels"`
}

const llmInstructions = `You label personal activity events. For each input event, return a refined
activity_type, up to three short topic labels, and a one-word intent.
Return labels for every index. Never copy input text verbatim into a label.`

// LLMClassifier refines rule-classified events with a model, in bounded
// batches. Any batch failure falls back to the rule labels for that batch;
// a run is never aborted by the model path.
type LLMClassifier struct {
	client    *openai.Client
	model     string
	batchSize int
	logger    *slog.Logger
}

// NewLLMClassifier wires the model path. batchSize <= 0 uses the default.
func NewLLMClassifier(client *openai.Client, model string, batchSize int, logger *slog.Logger) *LLMClassifier {
	if batchSize <= 0 {
		batchSize = DefaultLLMBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMClassifier{client: client, model: model, batchSize: batchSize, logger: logger}
}

var labelSchema = generateSchema[llmLabelBatch]()

// Refine sends rule-classified events to the model batch by batch and
// applies the returned labels at LLMConfidence. Events keep their rule
// labels (and RuleConfidence) whenever a batch fails.
func (l *LLMClassifier) Refine(ctx context.Context, events []activity.StructuredEvent) []activity.StructuredEvent {
	out := make([]activity.StructuredEvent, len(events))
	copy(out, events)

	for start := 0; start < len(out); start += l.batchSize {
		end := start + l.batchSize
		if end > len(out) {
			end = len(out)
		}
		if err := l.refineBatch(ctx, out[start:end]); err != nil {
			l.logger.Warn("llm classification batch failed, keeping rule labels",
				"start", start, "size", end-start, "error", err)
		}
	}
	return out
}

func (l *LLMClassifier) refineBatch(ctx context.Context, batch []activity.StructuredEvent) error {
	if l.client == nil {
		return fmt.Errorf("llm classifier: client is nil")
	}
	if l.model == "" {
		return fmt.Errorf("llm classifier: model is empty")
	}

	input := buildBatchInput(batch)
	params := responses.ResponseNewParams{
		Model:           l.model,
		MaxOutputTokens: openai.Int(2000),
		Instructions:    openai.String(llmInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(input, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   "EventLabels",
					Schema: labelSchema,
					Strict: openai.Bool(true),
					Type:   "json_schema",
				},
			},
		},
	}

	resp, err := l.client.Responses.New(ctx, params)
	if err != nil {
		return fmt.Errorf("llm call: %w", err)
	}

	var parsed llmLabelBatch
	if err := json.Unmarshal([]byte(resp.OutputText()), &parsed); err != nil {
		return fmt.Errorf("decode llm labels: %w", err)
	}

	for _, label := range parsed.Labels {
		if label.Index < 0 || label.Index >= len(batch) {
			continue
		}
		ev := &batch[label.Index]
		if label.ActivityType != "" {
			ev.ActivityType = label.ActivityType
		}
		if len(label.Topics) > 0 {
			ev.Topics = label.Topics
		}
		if label.Intent != "" {
			ev.Intent = label.Intent
		}
		ev.Confidence = LLMConfidence
	}
	return nil
}

// buildBatchInput renders the semantic fields of each event, one line per
// event. Summaries are already sanitized semantic labels.
func buildBatchInput(batch []activity.StructuredEvent) string {
	var b strings.Builder
	for i, ev := range batch {
		fmt.Fprintf(&b, "%d. source=%s type=%s topics=%s summary=%s\n",
			i, ev.Source, ev.ActivityType, strings.Join(ev.Topics, ","), ev.Summary)
	}
	return b.String()
}

func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	data, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return out
}
