// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package services

import "context"

// Runner is a component that blocks in Run until ctx is canceled.
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerService names a Runner for the supervisor.
type RunnerService struct {
	runner Runner
	name   string
}

// NewRunnerService creates a new runner service wrapper.
func NewRunnerService(name string, runner Runner) *RunnerService {
	return &RunnerService{
		runner: runner,
		name:   name,
	}
}

// Serve implements suture.Service.
func (s *RunnerService) Serve(ctx context.Context) error {
	return s.runner.Run(ctx)
}

// String implements fmt.Stringer for logging.
func (s *RunnerService) String() string {
	return s.name
}
