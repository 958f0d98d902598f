package llm

import (
	"context"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/ratelimit"
)

// limitedClient wraps a Client so every generation call goes through the
// shared process-wide limiter. The limiter slot is held only for the
// duration of the service call.
type limitedClient struct {
	inner   Client
	limiter *ratelimit.Limiter
}

// WithLimiter returns a Client whose calls are gated by limiter. A nil
// limiter returns the client unchanged.
func WithLimiter(c Client, limiter *ratelimit.Limiter) Client {
	if limiter == nil {
		return c
	}
	return &limitedClient{inner: c, limiter: limiter}
}

func (c *limitedClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier, temperature float32) (string, error) {
	var out string
	err := c.limiter.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = c.inner.GenerateContent(ctx, prompt, tier, temperature)
		return err
	})
	return out, err
}

func (c *limitedClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	var out string
	err := c.limiter.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = c.inner.GenerateJSON(ctx, prompt, tier)
		return err
	})
	return out, err
}

func (c *limitedClient) Close() error {
	return c.inner.Close()
}
