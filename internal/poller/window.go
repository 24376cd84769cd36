package poller

import (
	"context"

	"github.com/maxbolgarin/prpatrol/internal/model"
)

// windowStrategy is one way of discovering the time window that bounds
// request discovery. Strategies are evaluated in order; the first one that
// reports ok wins.
type windowStrategy struct {
	name     string
	discover func(ctx context.Context) (model.TimeWindow, bool)
}

// buildWindowStrategies returns the ordered discovery chain. The chain always
// ends with the unbounded window, so discovery never fails outright: when the
// provider has no active iteration or milestone, every open request is
// considered.
func buildWindowStrategies(provider model.CodeProvider) []windowStrategy {
	return []windowStrategy{
		{
			name: "active_iteration",
			discover: func(ctx context.Context) (model.TimeWindow, bool) {
				window, err := provider.CurrentActiveWindow(ctx)
				if err != nil || window.IsZero() {
					return model.TimeWindow{}, false
				}
				return window, true
			},
		},
		{
			name: "unbounded",
			discover: func(ctx context.Context) (model.TimeWindow, bool) {
				return model.TimeWindow{}, true
			},
		},
	}
}

// discoverWindow walks the strategy chain and returns the first window found
// together with the name of the strategy that produced it.
func discoverWindow(ctx context.Context, strategies []windowStrategy) (model.TimeWindow, string) {
	for _, s := range strategies {
		if window, ok := s.discover(ctx); ok {
			return window, s.name
		}
	}
	return model.TimeWindow{}, "unbounded"
}
