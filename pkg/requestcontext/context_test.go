package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessorsDefaultToZeroValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))
	assert.Empty(t, Actor(ctx))
}

func TestRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")
	ctx = WithActor(ctx, "analyst-7")

	assert.Equal(t, "req-42", RequestID(ctx))
	assert.Equal(t, "analyst-7", Actor(ctx))
}

func TestNowPrefersInjectedTime(t *testing.T) {
	fixed := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	ctx := WithTime(context.Background(), fixed)

	assert.Equal(t, fixed, Now(ctx))
	assert.WithinDuration(t, time.Now(), Now(context.Background()), time.Minute)
}
