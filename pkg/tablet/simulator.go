package tablet

import (
	"context"
	"fmt"
)

// ReadHook lets a test supply samples on demand instead of queueing them.
type ReadHook func() (Sample, error)

// SimTablet is an in-memory adapter useful for unit tests and the --sim
// CLI flows. Samples are served from a queue, or from OnRead when set.
type SimTablet struct {
	InfoData TabletInfo

	OnRead ReadHook

	queue  []Sample
	reads  int
	closed bool
}

// NewSimTablet constructs a simulator configured with the provided TabletInfo.
func NewSimTablet(info TabletInfo) *SimTablet {
	return &SimTablet{InfoData: info}
}

// Queue appends samples to be served by subsequent ReadSample calls.
func (s *SimTablet) Queue(samples ...Sample) {
	s.queue = append(s.queue, samples...)
}

// ReadCount reports how many samples have been served.
func (s *SimTablet) ReadCount() int {
	return s.reads
}

func (s *SimTablet) Info() (TabletInfo, error) {
	if s.closed {
		return TabletInfo{}, fmt.Errorf("tablet: adapter closed")
	}
	return s.InfoData, nil
}

func (s *SimTablet) ReadSample(ctx context.Context) (Sample, error) {
	if s.closed {
		return Sample{}, fmt.Errorf("tablet: adapter closed")
	}
	select {
	case <-ctx.Done():
		return Sample{}, ctx.Err()
	default:
	}

	if s.OnRead != nil {
		s.reads++
		return s.OnRead()
	}
	if len(s.queue) == 0 {
		return Sample{}, ErrNoSample
	}
	out := s.queue[0]
	s.queue = s.queue[1:]
	s.reads++
	return out, nil
}

func (s *SimTablet) Close() error {
	s.closed = true
	return nil
}
