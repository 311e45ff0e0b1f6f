package emotion

import "testing"

func TestAssessRisk(t *testing.T) {
	cases := []struct {
		name     string
		crisis   []string
		emotions []Score
		want     RiskLevel
	}{
		{"crisis wins", []string{"want to die"}, []Score{{"joy", 0.99}}, RiskHigh},
		{"medium", nil, []Score{{"sadness", 0.5}, {"fear", 0.3}}, RiskMedium},
		{"low-medium", nil, []Score{{"anger", 0.6}}, RiskLowMedium},
		{"low", nil, []Score{{"sadness", 0.59}}, RiskLow},
		{"positive ignored", nil, []Score{{"joy", 0.9}, {"disgust", 0.1}}, RiskLow},
		{"case insensitive", nil, []Score{{"Sadness", 0.85}}, RiskMedium},
		{"empty", nil, nil, RiskLow},
	}
	for _, tc := range cases {
		if got := AssessRisk(tc.crisis, tc.emotions); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
}

func TestMoodScore(t *testing.T) {
	cases := []struct {
		name      string
		emotions  []Score
		sentiment []Score
		want      int
	}{
		{"neutral", nil, nil, 5},
		{"joy positive", []Score{{"joy", 0.9}}, []Score{{Positive, 0.9}}, 10},
		{"sadness negative", []Score{{"sadness", 0.9}}, []Score{{Negative, 0.95}}, 1},
		{"optimism mild", []Score{{"optimism", 0.6}}, []Score{{Positive, 0.4}}, 7},
		{"rounding half up", []Score{{"fear", 0.5}}, []Score{{Negative, 0.5}}, 2},
		{"unmapped emotion", []Score{{"surprise", 0.9}}, []Score{{Neutral, 0.9}}, 5},
		{"primary only counts", []Score{{"anger", 0.5}, {"joy", 0.4}}, nil, 3},
		{"confidence clamped", []Score{{"love", 1}}, []Score{{Positive, 7}}, 10},
	}
	for _, tc := range cases {
		if got := MoodScore(tc.emotions, tc.sentiment); got != tc.want {
			t.Fatalf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}
}
