package emotion

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/emolit-backend/internal/platform/logger"
	"github.com/yungbote/emolit-backend/internal/platform/openai"
)

type ResponseType string

const (
	ResponseSupportive ResponseType = "supportive"
	ResponseCrisis     ResponseType = "supportive-crisis"
	ResponseFallback   ResponseType = "fallback"
)

type EmergencyResource struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// DefaultEmergencyResources is keyed by ISO country code.
var DefaultEmergencyResources = map[string]EmergencyResource{
	"US": {Name: "988 Suicide & Crisis Lifeline", Contact: "Call or text 988"},
	"UK": {Name: "Samaritans", Contact: "Call 116 123"},
	"GB": {Name: "Samaritans", Contact: "Call 116 123"},
	"IN": {Name: "AASRA", Contact: "Call 9152987821"},
}

type Reflection struct {
	Text        string             `json:"response"`
	Type        ResponseType       `json:"response_type"`
	Suggestions []string           `json:"suggestions"`
	RiskLevel   RiskLevel          `json:"risk_level"`
	Resource    *EmergencyResource `json:"resource,omitempty"`
}

const crisisMessage = "It sounds like things may feel especially heavy right now. " +
	"You don't have to face this alone.\n\n" +
	"If you feel open to it, reaching out to someone who can support you right now could make a difference."

var crisisSuggestions = []string{
	"Consider reaching out to someone you trust",
	"Pause and focus on slow, steady breathing",
}

var supportiveSuggestions = []string{
	"Take a moment to notice what this feeling is asking for",
	"You might find it helpful to write a few more lines about this",
	"Be gentle with yourself today",
}

const reflectionInstructions = `You are a calm emotional literacy companion for a journaling app.
Help the writer notice and name their feelings without labeling or diagnosing them.
Use tentative language such as "it seems", "it sounds like", "this may be".
Never state emotions as facts and never claim authority over the writer's experience.
Do not give therapeutic advice and do not use "should" or "must".
Keep the reply under 120 words.`

// Reflector writes a short supportive reflection for an analyzed entry.
// High-risk analyses always get the fixed crisis response; the model is never consulted for them.
type Reflector struct {
	log       *logger.Logger
	client    openai.Client
	resources map[string]EmergencyResource
}

// NewReflector accepts a nil client, in which case reflections use fixed text.
func NewReflector(log *logger.Logger, client openai.Client, resources map[string]EmergencyResource) *Reflector {
	if log == nil {
		log = logger.Nop()
	}
	if resources == nil {
		resources = DefaultEmergencyResources
	}
	return &Reflector{log: log.With("service", "Reflector"), client: client, resources: resources}
}

func (r *Reflector) Reflect(ctx context.Context, text string, a Analysis, uc *UserContext) Reflection {
	if a.RiskLevel == RiskHigh {
		return r.crisis(uc)
	}
	mood := DescribeMood(a.MoodScore)
	out := Reflection{
		Type:        ResponseSupportive,
		Suggestions: append([]string(nil), supportiveSuggestions...),
		RiskLevel:   a.RiskLevel,
	}
	if r.client == nil {
		out.Text = fallbackReflection(mood)
		return out
	}
	reply, err := r.client.GenerateText(ctx, reflectionInstructions, buildReflectionPrompt(text, a, mood, uc))
	if err != nil {
		r.log.Warn("reflection generation failed; using fallback text", "error", err)
		out.Text = fallbackReflection(mood)
		out.Type = ResponseFallback
		return out
	}
	out.Text = reply
	return out
}

func (r *Reflector) crisis(uc *UserContext) Reflection {
	out := Reflection{
		Text:        crisisMessage,
		Type:        ResponseCrisis,
		Suggestions: append([]string(nil), crisisSuggestions...),
		RiskLevel:   RiskHigh,
	}
	if uc != nil {
		if res, ok := r.resources[strings.ToUpper(strings.TrimSpace(uc.Country))]; ok {
			out.Text += fmt.Sprintf("\n\n%s: %s", res.Name, res.Contact)
			out.Resource = &res
		}
	}
	return out
}

// DescribeMood gives a qualitative band for a mood score.
func DescribeMood(score int) string {
	switch {
	case score >= 7:
		return "generally positive or lighter"
	case score <= 3:
		return "heavy or emotionally difficult"
	default:
		return "mixed or neutral"
	}
}

func fallbackReflection(mood string) string {
	return fmt.Sprintf("It sounds like your emotional state right now feels %s. "+
		"Thank you for taking the time to reflect and share this.", mood)
}

func buildReflectionPrompt(text string, a Analysis, mood string, uc *UserContext) string {
	excerpt := []rune(text)
	if len(excerpt) > 500 {
		excerpt = excerpt[:500]
	}
	labels := make([]string, 0, 3)
	for _, e := range a.Emotions {
		if len(labels) == 3 {
			break
		}
		labels = append(labels, e.Label)
	}
	emotions := strings.Join(labels, ", ")
	if emotions == "" {
		emotions = "mixed or unclear"
	}
	wheel := strings.Join(a.WheelEmotions, ", ")
	if wheel == "" {
		wheel = "varied"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Journal entry:\n%s\n\n", string(excerpt))
	fmt.Fprintf(&b, "Emotional signals:\n- Tone appears %s\n- Emotions that may be present: %s\n- Categories: %s\n", mood, emotions, wheel)
	if ctx := profileContext(uc); ctx != "" {
		fmt.Fprintf(&b, "\nWriter context: %s\n", ctx)
	}
	b.WriteString("\nReflect without judging. Do not ask the writer questions.")
	return b.String()
}

func profileContext(uc *UserContext) string {
	if uc == nil {
		return ""
	}
	parts := []string{}
	if uc.UsageGoal != "" {
		parts = append(parts, "using the journal for "+uc.UsageGoal)
	}
	if uc.ExperienceLevel != "" {
		parts = append(parts, "experience level "+uc.ExperienceLevel)
	}
	return strings.Join(parts, "; ")
}
