package sched

import (
	"context"

	"github.com/decibelcooper/hfplot/hfevent"
)

// Events is an in-memory Source.
type Events struct {
	Label  string
	Events []hfevent.Event
}

func (s *Events) Name() string { return s.Label }

func (s *Events) Scan(ctx context.Context, events chan<- hfevent.Event) error {
	for _, evt := range s.Events {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case events <- evt:
		}
	}
	return nil
}
