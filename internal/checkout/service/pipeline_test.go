package service

import (
	"context"
	"errors"
	"testing"

	"tripdesk/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func TestRunPipelineAllStepsSucceed(t *testing.T) {
	var order []string

	steps := []pipelineStep{
		{name: "one", run: func(ctx context.Context) error { order = append(order, "one"); return nil }},
		{name: "two", run: func(ctx context.Context) error { order = append(order, "two"); return nil }},
	}

	failed, err := runPipeline(context.Background(), testLogger(), steps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failed != "" {
		t.Errorf("expected no failed step, got %q", failed)
	}
	if len(order) != 2 || order[0] != "one" || order[1] != "two" {
		t.Errorf("unexpected execution order: %v", order)
	}
}

func TestRunPipelineCompensatesInReverse(t *testing.T) {
	var compensated []string
	boom := errors.New("provider down")

	steps := []pipelineStep{
		{
			name:       "redeem",
			run:        func(ctx context.Context) error { return nil },
			compensate: func(ctx context.Context) { compensated = append(compensated, "redeem") },
		},
		{
			name:       "capture",
			run:        func(ctx context.Context) error { return nil },
			compensate: func(ctx context.Context) { compensated = append(compensated, "capture") },
		},
		{
			name: "confirm",
			run:  func(ctx context.Context) error { return boom },
		},
	}

	failed, err := runPipeline(context.Background(), testLogger(), steps)
	if !errors.Is(err, boom) {
		t.Fatalf("expected pipeline error, got %v", err)
	}
	if failed != "confirm" {
		t.Errorf("expected failed step confirm, got %q", failed)
	}
	if len(compensated) != 2 || compensated[0] != "capture" || compensated[1] != "redeem" {
		t.Errorf("expected reverse compensation [capture redeem], got %v", compensated)
	}
}

func TestRunPipelineFirstStepFailureCompensatesNothing(t *testing.T) {
	var compensated int

	steps := []pipelineStep{
		{
			name:       "redeem",
			run:        func(ctx context.Context) error { return errors.New("card exhausted") },
			compensate: func(ctx context.Context) { compensated++ },
		},
		{
			name: "capture",
			run:  func(ctx context.Context) error { t.Fatal("capture must not run"); return nil },
		},
	}

	failed, err := runPipeline(context.Background(), testLogger(), steps)
	if err == nil {
		t.Fatal("expected an error")
	}
	if failed != "redeem" {
		t.Errorf("expected failed step redeem, got %q", failed)
	}
	if compensated != 0 {
		t.Errorf("expected no compensation for the failing step itself, got %d", compensated)
	}
}

func TestRunPipelineSkipsNilCompensation(t *testing.T) {
	steps := []pipelineStep{
		{name: "no-compensate", run: func(ctx context.Context) error { return nil }},
		{name: "fail", run: func(ctx context.Context) error { return errors.New("nope") }},
	}

	// Must not panic on the nil compensate of the completed step.
	if _, err := runPipeline(context.Background(), testLogger(), steps); err == nil {
		t.Fatal("expected an error")
	}
}
