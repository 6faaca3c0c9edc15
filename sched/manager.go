// Package sched drives analysis tasks over event sources.
package sched

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/decibelcooper/hfplot/accum"
	"github.com/decibelcooper/hfplot/hfevent"
)

// Task is an analysis driven by a Manager.
type Task interface {
	Init() error
	CreateOutputObjects() *accum.Container
	BeginEvent(ievt int64)
	Exec(evt hfevent.Event)
	Terminate(out *accum.Container)
}

// Source delivers events. Scan sends every event of the source to events
// and returns when the source is exhausted or ctx is done.
type Source interface {
	Name() string
	Scan(ctx context.Context, events chan<- hfevent.Event) error
}

// Manager runs one task over a set of sources. Sources are read
// concurrently but the task only ever sees one event at a time.
type Manager struct {
	// NThreads is the maximum number of sources read at once.
	NThreads int

	// MaxEvents stops the loop after that many events when positive.
	MaxEvents int64

	// OutputDir, if set, is where the output container is written at the
	// end of the loop. The task is then terminated with the container read
	// back from there.
	OutputDir string

	// Post, if set, is called with the output container after every event.
	Post func(out *accum.Container, ievt int64)

	// Progress is the number of events between progress messages.
	Progress int64

	Log *log.Logger

	slot *accum.Container
}

func (m *Manager) logger() *log.Logger {
	if m.Log == nil {
		m.Log = log.New(os.Stderr, "sched: ", 0)
	}
	return m.Log
}

// Output returns the container last posted by the task.
func (m *Manager) Output() *accum.Container {
	return m.slot
}

// Run initializes the task, feeds it every event of srcs and terminates it.
func (m *Manager) Run(ctx context.Context, task Task, srcs ...Source) error {
	msg := m.logger()

	err := task.Init()
	if err != nil {
		return fmt.Errorf("sched: could not initialize task: %w", err)
	}
	out := task.CreateOutputObjects()
	m.slot = out

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan hfevent.Event)
	grp, gctx := errgroup.WithContext(ctx)
	if m.NThreads > 0 {
		grp.SetLimit(m.NThreads)
	}
	scanErr := make(chan error, 1)
	go func() {
		for _, src := range srcs {
			src := src
			grp.Go(func() error {
				err := src.Scan(gctx, events)
				if err != nil {
					return fmt.Errorf("sched: could not read %s: %w", src.Name(), err)
				}
				return nil
			})
		}
		scanErr <- grp.Wait()
		close(events)
	}()

	var (
		ievt    int64
		stopped bool
	)
	for evt := range events {
		if stopped {
			continue
		}
		if m.MaxEvents > 0 && ievt >= m.MaxEvents {
			stopped = true
			cancel()
			continue
		}

		task.BeginEvent(ievt)
		task.Exec(evt)
		m.slot = out
		if m.Post != nil {
			m.Post(out, ievt)
		}

		ievt++
		if m.Progress > 0 && ievt%m.Progress == 0 {
			msg.Printf("processed %d events...", ievt)
		}
	}

	err = <-scanErr
	if err != nil && !(stopped && errors.Is(err, context.Canceled)) {
		return err
	}
	msg.Printf("processed %d events", ievt)

	return m.terminate(task)
}

func (m *Manager) terminate(task Task) error {
	if m.OutputDir == "" || m.slot == nil {
		task.Terminate(m.slot)
		return nil
	}

	err := m.slot.Save(m.OutputDir)
	if err != nil {
		return fmt.Errorf("sched: could not save output: %w", err)
	}

	out, err := accum.Load(m.OutputDir)
	if err != nil {
		m.logger().Printf("could not read back output from %s: %+v", m.OutputDir, err)
		out = nil
	}
	task.Terminate(out)
	return nil
}
