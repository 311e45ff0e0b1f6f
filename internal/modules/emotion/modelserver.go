package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/yungbote/emolit-backend/internal/pkg/httpx"
)

// ModelServerClassifier calls a local inference server hosting text-classification models.
//
// POST {base}/classify {"text": "..."} returns
// {"emotions":[{"label":"joy","score":0.9}], "sentiment":[{"label":"positive","score":0.8}]}.
type ModelServerClassifier struct {
	baseURL string
	http    *http.Client
}

func NewModelServerClassifier(baseURL string, timeout time.Duration) *ModelServerClassifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ModelServerClassifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *ModelServerClassifier) Name() string { return "modelserver" }

type modelLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type modelResponse struct {
	Emotions  []modelLabel `json:"emotions"`
	Sentiment []modelLabel `json:"sentiment"`
}

func (c *ModelServerClassifier) Classify(ctx context.Context, text string, _ *UserContext) (*Classification, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &httpx.StatusError{Code: resp.StatusCode, Body: string(raw)}
	}
	var mr modelResponse
	if err := json.Unmarshal(raw, &mr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedClassification, err)
	}
	return mr.toClassification()
}

func (mr modelResponse) toClassification() (*Classification, error) {
	if len(mr.Emotions) == 0 || len(mr.Sentiment) == 0 {
		return nil, fmt.Errorf("%w: empty model output", ErrMalformedClassification)
	}
	emos := append([]modelLabel(nil), mr.Emotions...)
	sort.SliceStable(emos, func(i, j int) bool { return emos[i].Score > emos[j].Score })
	sent := append([]modelLabel(nil), mr.Sentiment...)
	sort.SliceStable(sent, func(i, j int) bool { return sent[i].Score > sent[j].Score })

	cls := &Classification{
		Primary:   Score{Label: emos[0].Label, Confidence: emos[0].Score},
		Sentiment: Score{Label: sentimentLabel(sent[0].Label), Confidence: sent[0].Score},
	}
	for _, e := range emos[1:] {
		if len(cls.Secondary) == maxSecondary {
			break
		}
		cls.Secondary = append(cls.Secondary, Score{Label: e.Label, Confidence: e.Score})
	}
	return cls, nil
}

// sentimentLabel maps the three-way LABEL_n convention (0 negative, 1 neutral, 2 positive).
func sentimentLabel(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "label_0", "negative", "neg":
		return Negative
	case "label_1", "neutral", "neu":
		return Neutral
	case "label_2", "positive", "pos":
		return Positive
	default:
		return label
	}
}
