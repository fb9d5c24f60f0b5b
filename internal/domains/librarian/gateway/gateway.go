package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"smartlibrary-backend/internal/domains/library/model"
	"smartlibrary-backend/internal/infrastructure/metrics"
	"smartlibrary-backend/pkg/logger"
)

const (
	OperationRecommend = "recommend"
	OperationSummarize = "summarize"

	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 30 * time.Second

	breakerName = "completion"
)

// Config tunes the gateway's resilience
type Config struct {
	Model           string
	Timeout         time.Duration
	OutboundQPS     float64
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

func (c *Config) applyDefaults() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = 5
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = 30 * time.Second
	}
}

// Gateway builds prompts and calls the completion service.
// Calls are bounded by Timeout, paced by an outbound limiter and guarded by
// a circuit breaker. Failures come back as *CompletionError.
type Gateway struct {
	client  CompletionClient
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[string]
}

func New(client CompletionClient, cfg Config) *Gateway {
	cfg.applyDefaults()

	limit := rate.Inf
	burst := 1
	if cfg.OutboundQPS > 0 {
		limit = rate.Limit(cfg.OutboundQPS)
		burst = max(1, int(cfg.OutboundQPS))
	}

	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetBreakerState(name, int(to))
			logger.Warn("completion circuit breaker state changed", map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
	metrics.SetBreakerState(breakerName, int(gobreaker.StateClosed))

	return &Gateway{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		limiter: rate.NewLimiter(limit, burst),
		breaker: breaker,
	}
}

// Recommend asks for 1-3 catalog recommendations matching query
func (g *Gateway) Recommend(ctx context.Context, query string, books []model.Book) (string, error) {
	return g.complete(ctx, OperationRecommend, BuildRecommendPrompt(query, books))
}

// Summarize asks for a short summary of a book
func (g *Gateway) Summarize(ctx context.Context, title, author string) (string, error) {
	return g.complete(ctx, OperationSummarize, BuildSummaryPrompt(title, author))
}

// BreakerState reports the circuit breaker state
func (g *Gateway) BreakerState() gobreaker.State {
	return g.breaker.State()
}

func (g *Gateway) complete(ctx context.Context, operation, prompt string) (string, error) {
	start := time.Now()
	text, err := g.call(ctx, prompt)
	metrics.RecordCompletion(operation, err, time.Since(start))

	if err != nil {
		logger.Error(fmt.Sprintf("completion %s failed", operation), err)
		return "", &CompletionError{Operation: operation, Err: err}
	}
	return text, nil
}

func (g *Gateway) call(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("outbound rate limit: %w", err)
	}

	return g.breaker.Execute(func() (string, error) {
		text, err := g.client.Complete(ctx, g.model, prompt)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", ErrEmptyReply
		}
		return text, nil
	})
}
