// Package proioaod reads charm analysis events from proio files written
// with the eic data model.
//
// A 3-prong candidate is an eic.Particle tagged Charm3Prong whose vertex is
// the secondary vertex and whose three children are the reconstructed
// eic.Track prongs, kaon second. Generator-level particles are the
// eic.Particle entries tagged MCParticles; a prong is labelled with the
// generated particle that left most of its hits. The reconstructed primary
// vertex and the generator header are the vertices of the eic.Particle
// entries tagged PrimaryVertex and MCHeader.
package proioaod

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/proio-org/go-proio"

	"github.com/decibelcooper/hfplot/hfevent"
)

// Source is a proio file.
type Source struct {
	path string
}

func NewSource(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Name() string { return s.path }

// Scan sends every event of the file to events.
func (s *Source) Scan(ctx context.Context, events chan<- hfevent.Event) error {
	reader, err := proio.Open(s.path)
	if err != nil {
		return fmt.Errorf("proioaod: could not open %s: %w", s.path, err)
	}
	defer reader.Close()

	// nothing reads the file once Scan returns
	for ievt := int64(0); ; ievt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		event, err := reader.Next()
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("proioaod: could not read event %d of %s: %w", ievt, s.path, err)
		case event == nil:
			return nil
		}

		rec := Convert(event)
		rec.Number = ievt

		select {
		case <-ctx.Done():
			return ctx.Err()
		case events <- rec:
		}
	}
}
