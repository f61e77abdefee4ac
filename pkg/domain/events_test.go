package domain_test

import (
	"context"
	"testing"

	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestCombineHooks(t *testing.T) {
	var calls []string
	combined := domain.CombineHooks(
		domain.LifecycleHooks{
			OnQuery: func(ctx context.Context, e *domain.QueryEvent) { calls = append(calls, "a:query") },
		},
		domain.LifecycleHooks{},
		domain.LifecycleHooks{
			OnQuery: func(ctx context.Context, e *domain.QueryEvent) { calls = append(calls, "c:query") },
			OnStore: func(ctx context.Context, e *domain.StoreEvent) { calls = append(calls, "c:store") },
		},
	)

	combined.OnQuery(context.Background(), &domain.QueryEvent{})
	combined.OnStore(context.Background(), &domain.StoreEvent{})

	assert.Equal(t, []string{"a:query", "c:query", "c:store"}, calls)
}
