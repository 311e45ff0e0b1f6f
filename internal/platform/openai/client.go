package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"golang.org/x/time/rate"

	"github.com/yungbote/emolit-backend/internal/pkg/httpx"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

// Client is the subset of the OpenAI Responses API used by the engine.
type Client interface {
	// GenerateJSON runs a strict json_schema structured output call and decodes it into out.
	GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any, out any) error
	GenerateText(ctx context.Context, system, user string) (string, error)
}

type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	MaxOutputTokens int64
	MaxRetries      int
	RetryBase       time.Duration
	RatePerSecond   float64
	Burst           int
}

type client struct {
	log     *logger.Logger
	api     *sdk.Client
	model   string
	maxOut  int64
	retries   int
	retryBase time.Duration
	limiter   *rate.Limiter
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 800
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 500 * time.Millisecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	api := sdk.NewClient(opts...)

	return &client{
		log:       log.With("client", "OpenAI", "model", cfg.Model),
		api:       &api,
		model:     cfg.Model,
		maxOut:    cfg.MaxOutputTokens,
		retries:   cfg.MaxRetries,
		retryBase: cfg.RetryBase,
		limiter:   rate.NewLimiter(limit, cfg.Burst),
	}, nil
}

func (c *client) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any, out any) error {
	params := c.params(system, user)
	params.Text = responses.ResponseTextConfigParam{
		Format: responses.ResponseFormatTextConfigUnionParam{
			OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
				Name:   schemaName,
				Schema: schema,
				Strict: sdk.Bool(true),
				Type:   "json_schema",
			},
		},
	}
	resp, err := c.call(ctx, params)
	if err != nil {
		return err
	}
	if err := DecodeModelJSON(resp.OutputText(), out); err != nil {
		return fmt.Errorf("decode %s: %w", schemaName, err)
	}
	return nil
}

func (c *client) GenerateText(ctx context.Context, system, user string) (string, error) {
	resp, err := c.call(ctx, c.params(system, user))
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.OutputText())
	if text == "" {
		return "", errors.New("empty model output")
	}
	return text, nil
}

func (c *client) params(system, user string) responses.ResponseNewParams {
	return responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: sdk.Int(c.maxOut),
		Instructions:    sdk.String(system),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(user, responses.EasyInputMessageRoleUser),
			},
		},
	}
}

// call retries transient failures (timeouts, 408/429/5xx) with exponential backoff. The SDK's
// own retries are disabled so the rate limiter sees every attempt.
func (c *client) call(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryBase
	b.MaxInterval = 10 * c.retryBase

	attempt := 0
	return backoff.Retry(ctx, func() (*responses.Response, error) {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}
		start := time.Now()
		resp, err := c.api.Responses.New(ctx, params)
		if err == nil {
			c.log.Debug("responses call ok", "attempt", attempt, "duration_ms", time.Since(start).Milliseconds())
			return resp, nil
		}
		err = wrapAPIError(err)
		if ctx.Err() != nil || !httpx.IsRetryableError(err) {
			return nil, backoff.Permanent(err)
		}
		c.log.Warn("responses call failed", "attempt", attempt, "error", err)
		return nil, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(c.retries+1)))
}

type statusError struct {
	code int
	err  error
}

func (e *statusError) Error() string       { return e.err.Error() }
func (e *statusError) Unwrap() error       { return e.err }
func (e *statusError) HTTPStatusCode() int { return e.code }

func wrapAPIError(err error) error {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		return &statusError{code: apiErr.StatusCode, err: err}
	}
	return err
}
