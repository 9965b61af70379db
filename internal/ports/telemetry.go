package ports

import "time"

type UpstreamObserver interface {
	ObserveUpstream(provider, operation, outcome string, elapsed time.Duration)
}

type NoopObserver struct{}

func (NoopObserver) ObserveUpstream(string, string, string, time.Duration) {}
