package apiproxy

import (
	"context"
)

// Invoker performs a planned request, or passes it to the next interceptor.
type Invoker func(ctx context.Context, plan RequestPlan) (Outcome, error)

// Interceptor wraps the dispatch of every proxy call.
//
//	func timing(ctx context.Context, plan apiproxy.RequestPlan, next apiproxy.Invoker) (apiproxy.Outcome, error) {
//	    start := time.Now()
//	    out, err := next(ctx, plan)
//	    log.Printf("%s took %v", plan.Method, time.Since(start))
//	    return out, err
//	}
//
// Interceptors can:
//   - Inspect the plan before calling next
//   - Inspect or replace the outcome after calling next
//   - Short-circuit by returning without calling next
//   - Derive a new context, e.g. to add a deadline
type Interceptor func(ctx context.Context, plan RequestPlan, next Invoker) (Outcome, error)

// chainInterceptors combines multiple interceptors into a single one.
// The first interceptor in the slice is the outer-most one (runs first).
func chainInterceptors(interceptors []Interceptor) Interceptor {
	if len(interceptors) == 0 {
		return nil
	}
	if len(interceptors) == 1 {
		return interceptors[0]
	}
	return func(ctx context.Context, plan RequestPlan, next Invoker) (Outcome, error) {
		// Chain: i[0] -> i[1] -> ... -> next
		chain := next
		for i := len(interceptors) - 1; i >= 0; i-- {
			current := interceptors[i]
			inner := chain
			chain = func(ctx context.Context, plan RequestPlan) (Outcome, error) {
				return current(ctx, plan, inner)
			}
		}
		return chain(ctx, plan)
	}
}
