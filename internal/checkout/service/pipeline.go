package service

import (
	"context"

	"tripdesk/pkg/logger"
)

// pipelineStep is one leg of the payment pipeline. Compensate unwinds the
// leg's effect and is only invoked after run succeeded and a later leg
// failed.
type pipelineStep struct {
	name       string
	run        func(ctx context.Context) error
	compensate func(ctx context.Context)
}

// runPipeline executes the steps in order. On failure it compensates every
// completed step in reverse order, then reports the failing step and error.
// Compensation is not allowed to fail the pipeline further; steps log their
// own compensation problems.
func runPipeline(ctx context.Context, log *logger.Logger, steps []pipelineStep) (failedStep string, err error) {
	completed := make([]pipelineStep, 0, len(steps))

	for _, step := range steps {
		if stepErr := step.run(ctx); stepErr != nil {
			log.Warn("Pipeline step failed, compensating",
				"step", step.name,
				"completed_steps", len(completed),
				"error", stepErr,
			)
			for i := len(completed) - 1; i >= 0; i-- {
				if completed[i].compensate != nil {
					completed[i].compensate(ctx)
				}
			}
			return step.name, stepErr
		}
		completed = append(completed, step)
	}

	return "", nil
}
