// Package provider wraps the third-party generation vendors behind a
// submit/poll gateway. Implementations hold no state about generations;
// transport problems come back as errors, a job the vendor reports as
// failed comes back as a terminal Status.
package provider

import (
	"context"
	"fmt"
)

type State string

const (
	StateRunning State = "running"
	StateDone    State = "done"
	StateFailed  State = "failed"
)

// Job carries everything a vendor needs to start a generation. Which fields
// are consulted depends on the vendor model being addressed.
type Job struct {
	Model                string
	Prompt               string
	AspectRatio          string
	ImageURLs            []string
	VideoURLs            []string
	DurationSecs         int
	Mode                 string
	CharacterOrientation string
	OutputFormat         string
}

// Status is a snapshot of a submitted job. FailReason is only meaningful in
// StateFailed, ResultURLs only in StateDone.
type Status struct {
	State      State
	ResultURLs []string
	FailReason string
}

type Provider interface {
	Name() string
	Submit(ctx context.Context, job Job) (taskID string, err error)
	Poll(ctx context.Context, taskID string) (Status, error)
}

// Registry resolves a Provider by the catalog's provider name.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("no provider registered for %q", name)
	}
	return p, nil
}
