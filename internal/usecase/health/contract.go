package health

import "context"

// Pipeline is the readiness surface of a request pipeline.
type Pipeline interface {
	Ready() bool
}

// CachePinger is the optional cache connectivity probe.
type CachePinger interface {
	Ping(ctx context.Context) error
}
