package domain

import "context"

// Filter keeps only the members whose referenced URL validates, preserving
// relative order. Members whose check failed or timed out drop out silently
func Filter[T any](ctx context.Context, c CheckerPort, items []T, urlOf func(T) string) []T {
	if len(items) == 0 {
		return []T{}
	}
	urls := make([]string, len(items))
	for i, it := range items {
		urls[i] = urlOf(it)
	}
	verdicts := c.ValidateMany(ctx, urls)

	out := make([]T, 0, len(items))
	for i, it := range items {
		if verdicts[urls[i]] {
			out = append(out, it)
		}
	}
	return out
}
