package apiproxy

import (
	"context"
	"errors"
	"testing"
)

func TestChainInterceptors_Empty(t *testing.T) {
	if chain := chainInterceptors(nil); chain != nil {
		t.Error("expected nil chain for empty interceptors")
	}
}

func TestChainInterceptors_Single(t *testing.T) {
	called := false
	interceptor := func(ctx context.Context, plan RequestPlan, next Invoker) (Outcome, error) {
		called = true
		return next(ctx, plan)
	}

	chain := chainInterceptors([]Interceptor{interceptor})
	if chain == nil {
		t.Fatal("expected non-nil chain")
	}

	next := func(ctx context.Context, plan RequestPlan) (Outcome, error) {
		return Outcome{Status: 200, Body: []byte(plan.URI)}, nil
	}

	out, err := chain(context.Background(), RequestPlan{URI: "a/b"}, next)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if string(out.Body) != "a/b" {
		t.Errorf("expected body a/b, got %q", out.Body)
	}
	if !called {
		t.Error("expected interceptor to be called")
	}
}

func TestChainInterceptors_Order(t *testing.T) {
	var order []string
	mk := func(name string) Interceptor {
		return func(ctx context.Context, plan RequestPlan, next Invoker) (Outcome, error) {
			order = append(order, "before-"+name)
			out, err := next(ctx, plan)
			order = append(order, "after-"+name)
			return out, err
		}
	}

	chain := chainInterceptors([]Interceptor{mk("1"), mk("2")})
	next := func(ctx context.Context, plan RequestPlan) (Outcome, error) {
		order = append(order, "dispatch")
		return Outcome{Status: 200}, nil
	}

	if _, err := chain(context.Background(), RequestPlan{}, next); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"before-1", "before-2", "dispatch", "after-2", "after-1"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestChainInterceptors_ShortCircuit(t *testing.T) {
	errBlocked := errors.New("blocked")
	block := func(ctx context.Context, plan RequestPlan, next Invoker) (Outcome, error) {
		return Outcome{}, errBlocked
	}
	dispatched := false
	chain := chainInterceptors([]Interceptor{block, block})
	_, err := chain(context.Background(), RequestPlan{}, func(ctx context.Context, plan RequestPlan) (Outcome, error) {
		dispatched = true
		return Outcome{}, nil
	})
	if err != errBlocked {
		t.Errorf("expected errBlocked, got %v", err)
	}
	if dispatched {
		t.Error("dispatch should not run when an interceptor short-circuits")
	}
}
