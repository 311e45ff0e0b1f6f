package emotion

type RiskLevel string

const (
	RiskLow       RiskLevel = "low"
	RiskLowMedium RiskLevel = "low-medium"
	RiskMedium    RiskLevel = "medium"
	RiskHigh      RiskLevel = "high"
	RiskUnknown   RiskLevel = "unknown"
)

const (
	MinMood     = 1
	MaxMood     = 10
	NeutralMood = 5
)

// Sentiment polarity labels.
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

// Analysis sources.
const (
	SourceCrisisGate = "crisis_gate"
	SourceRules      = "rules"
	SourceFallback   = "fallback"
	sourceBackend    = "backend:"
)

type Score struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Analysis is the advisory signal set derived from one piece of text.
type Analysis struct {
	Emotions               []Score   `json:"emotions"`
	Sentiment              []Score   `json:"sentiment"`
	RiskLevel              RiskLevel `json:"risk_level"`
	MoodScore              int       `json:"mood_score"`
	WheelEmotions          []string  `json:"wheel_emotions"`
	DetectedCrisisKeywords []string  `json:"detected_crisis_keywords"`
	WordCount              int       `json:"word_count"`
	Source                 string    `json:"source"`
}

// Primary returns the highest-confidence emotion label, or "".
func (a Analysis) Primary() string {
	if len(a.Emotions) == 0 {
		return ""
	}
	return a.Emotions[0].Label
}

func (a Analysis) IsCrisis() bool { return a.RiskLevel == RiskHigh }

// NeutralAnalysis is returned when analysis itself fails.
func NeutralAnalysis(wordCount int) Analysis {
	return Analysis{
		Emotions:               []Score{},
		Sentiment:              []Score{},
		RiskLevel:              RiskUnknown,
		MoodScore:              NeutralMood,
		WheelEmotions:          []string{},
		DetectedCrisisKeywords: []string{},
		WordCount:              wordCount,
		Source:                 SourceFallback,
	}
}

var crisisWheel = []string{"sad", "fearful"}

func crisisAnalysis(keywords []string, wordCount int) Analysis {
	if keywords == nil {
		keywords = []string{}
	}
	return Analysis{
		Emotions:               []Score{},
		Sentiment:              []Score{},
		RiskLevel:              RiskHigh,
		MoodScore:              MinMood,
		WheelEmotions:          append([]string(nil), crisisWheel...),
		DetectedCrisisKeywords: keywords,
		WordCount:              wordCount,
		Source:                 SourceCrisisGate,
	}
}
