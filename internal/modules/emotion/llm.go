package emotion

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/emolit-backend/internal/platform/openai"
)

type llmEmotion struct {
	Label      string  `json:"label" jsonschema:"enum=joy,enum=love,enum=optimism,enum=sadness,enum=anger,enum=fear,enum=disgust,enum=surprise,enum=neutral"`
	Confidence float64 `json:"confidence" jsonschema:"description=Confidence between 0 and 1"`
}

type llmSentiment struct {
	Label      string  `json:"label" jsonschema:"enum=positive,enum=negative,enum=neutral"`
	Confidence float64 `json:"confidence" jsonschema:"description=Confidence between 0 and 1"`
}

type llmClassification struct {
	PrimaryEmotion    llmEmotion   `json:"primary_emotion"`
	SecondaryEmotions []llmEmotion `json:"secondary_emotions" jsonschema:"description=Up to two further emotions ordered strongest first"`
	Sentiment         llmSentiment `json:"sentiment"`
	Crisis            bool         `json:"crisis" jsonschema:"description=True only if the writer signals intent or risk of self-harm"`
}

var llmClassificationSchema = openai.GenerateSchema[llmClassification]()

const classifyInstructions = `You label the emotional content of short personal journal entries.
Return the single strongest emotion, up to two secondary emotions and the overall sentiment polarity.
Confidences are numbers between 0 and 1.
Set crisis to true only when the writer expresses intent, plans or strong risk of harming themselves.
Do not infer diagnoses. Label only what the text expresses.`

// LLMClassifier classifies text with a structured-output model call.
type LLMClassifier struct {
	client openai.Client
}

func NewLLMClassifier(client openai.Client) *LLMClassifier {
	return &LLMClassifier{client: client}
}

func (c *LLMClassifier) Name() string { return "openai" }

func (c *LLMClassifier) Classify(ctx context.Context, text string, uc *UserContext) (*Classification, error) {
	if c.client == nil {
		return nil, fmt.Errorf("openai client not configured")
	}
	var out llmClassification
	if err := c.client.GenerateJSON(ctx, classifyInstructions, buildClassifyInput(text, uc), "EmotionClassification", llmClassificationSchema, &out); err != nil {
		return nil, err
	}
	cls := &Classification{
		Primary:   Score(out.PrimaryEmotion),
		Sentiment: Score(out.Sentiment),
		Crisis:    out.Crisis,
	}
	for _, s := range out.SecondaryEmotions {
		cls.Secondary = append(cls.Secondary, Score(s))
	}
	return cls, nil
}

func buildClassifyInput(text string, uc *UserContext) string {
	var b strings.Builder
	b.WriteString("Journal entry:\n")
	b.WriteString(text)
	if uc != nil && len(uc.RecentEmotions) > 0 {
		b.WriteString("\n\nEmotions noticed in the writer's recent entries (context only): ")
		b.WriteString(strings.Join(uc.RecentEmotions, ", "))
	}
	return b.String()
}
