package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/broady/apiproxy"
)

var testPlan = apiproxy.RequestPlan{
	Verb:   apiproxy.VerbGet,
	URI:    "organizations/42",
	Method: "SampleService.ListAllIds",
}

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func TestLoggingInterceptor_Success(t *testing.T) {
	var buf bytes.Buffer
	interceptor := LoggingInterceptor(newLogger(&buf))

	next := func(ctx context.Context, plan apiproxy.RequestPlan) (apiproxy.Outcome, error) {
		return apiproxy.Outcome{Status: http.StatusOK, Body: []byte(`{"id":"42"}`)}, nil
	}

	out, err := interceptor(context.Background(), testPlan, next)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if out.Status != http.StatusOK {
		t.Errorf("expected status 200, got %d", out.Status)
	}

	logOutput := buf.String()
	if !strings.Contains(logOutput, "request started") {
		t.Error("expected 'request started' in log output")
	}
	if !strings.Contains(logOutput, "request completed") {
		t.Error("expected 'request completed' in log output")
	}
	if !strings.Contains(logOutput, "SampleService.ListAllIds") {
		t.Error("expected method name in log output")
	}
	if !strings.Contains(logOutput, "organizations/42") {
		t.Error("expected uri in log output")
	}
}

func TestLoggingInterceptor_Error(t *testing.T) {
	var buf bytes.Buffer
	interceptor := LoggingInterceptor(newLogger(&buf))

	testErr := errors.New("test error")
	next := func(ctx context.Context, plan apiproxy.RequestPlan) (apiproxy.Outcome, error) {
		return apiproxy.Outcome{}, testErr
	}

	_, err := interceptor(context.Background(), testPlan, next)
	if err != testErr {
		t.Errorf("expected test error, got %v", err)
	}

	logOutput := buf.String()
	if !strings.Contains(logOutput, "request failed") {
		t.Error("expected 'request failed' in log output")
	}
	if !strings.Contains(logOutput, "test error") {
		t.Error("expected error message in log output")
	}
}

func TestLoggingInterceptor_NonSuccessStatus(t *testing.T) {
	var buf bytes.Buffer
	interceptor := LoggingInterceptor(newLogger(&buf))

	next := func(ctx context.Context, plan apiproxy.RequestPlan) (apiproxy.Outcome, error) {
		return apiproxy.Outcome{Status: http.StatusNotFound}, nil
	}

	out, err := interceptor(context.Background(), testPlan, next)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != http.StatusNotFound {
		t.Errorf("outcome should pass through unchanged, got status %d", out.Status)
	}

	logOutput := buf.String()
	if !strings.Contains(logOutput, "request failed") {
		t.Error("expected 'request failed' in log output")
	}
	if !strings.Contains(logOutput, `"status":404`) {
		t.Errorf("expected status in log output, got %s", logOutput)
	}
}

func TestLoggingInterceptor_NilLogger(t *testing.T) {
	interceptor := LoggingInterceptor(nil)
	if interceptor == nil {
		t.Fatal("expected non-nil interceptor")
	}

	next := func(ctx context.Context, plan apiproxy.RequestPlan) (apiproxy.Outcome, error) {
		return apiproxy.Outcome{Status: http.StatusNoContent}, nil
	}
	if _, err := interceptor(context.Background(), testPlan, next); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
