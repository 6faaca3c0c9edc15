package sched

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/hfplot/accum"
	"github.com/decibelcooper/hfplot/dplus"
	"github.com/decibelcooper/hfplot/hfevent"
	"github.com/decibelcooper/hfplot/vertexing"
)

type fakeTask struct {
	initErr error
	objs    []accum.Object

	out        *accum.Container
	begins     []int64
	execs      int
	inExec     bool
	reentered  bool
	terminated bool
	final      *accum.Container
}

func (f *fakeTask) Init() error { return f.initErr }

func (f *fakeTask) CreateOutputObjects() *accum.Container {
	f.out = accum.NewContainer()
	for _, obj := range f.objs {
		f.out.Add(obj)
	}
	return f.out
}

func (f *fakeTask) BeginEvent(ievt int64) { f.begins = append(f.begins, ievt) }

func (f *fakeTask) Exec(evt hfevent.Event) {
	if f.inExec {
		f.reentered = true
	}
	f.inExec = true
	f.execs++
	f.inExec = false
}

func (f *fakeTask) Terminate(out *accum.Container) {
	f.terminated = true
	f.final = out
}

func records(n int) []hfevent.Event {
	evts := make([]hfevent.Event, n)
	for i := range evts {
		evts[i] = &hfevent.Record{Number: int64(i)}
	}
	return evts
}

func quiet() *log.Logger {
	return log.New(new(bytes.Buffer), "", 0)
}

func TestRun(t *testing.T) {
	task := &fakeTask{}
	posts := 0
	m := &Manager{
		NThreads: 2,
		Log:      quiet(),
		Post: func(out *accum.Container, ievt int64) {
			assert.Same(t, task.out, out)
			assert.Equal(t, int64(posts), ievt)
			posts++
		},
	}

	err := m.Run(context.Background(), task,
		&Events{Label: "a", Events: records(5)},
		&Events{Label: "b", Events: records(7)},
		&Events{Label: "c"},
	)
	require.NoError(t, err)

	assert.Equal(t, 12, task.execs)
	assert.Equal(t, 12, posts)
	assert.False(t, task.reentered)
	for i, ievt := range task.begins {
		assert.Equal(t, int64(i), ievt)
	}
	assert.True(t, task.terminated)
	assert.Same(t, task.out, task.final)
	assert.Same(t, task.out, m.Output())
}

func TestRunMaxEvents(t *testing.T) {
	task := &fakeTask{}
	m := &Manager{NThreads: 1, MaxEvents: 4, Log: quiet()}

	err := m.Run(context.Background(), task,
		&Events{Label: "a", Events: records(10)},
		&Events{Label: "b", Events: records(10)},
	)
	require.NoError(t, err)
	assert.Equal(t, 4, task.execs)
	assert.True(t, task.terminated)
}

var errBoom = errors.New("boom")

type failing struct{}

func (failing) Name() string { return "failing" }

func (failing) Scan(context.Context, chan<- hfevent.Event) error { return errBoom }

func TestRunSourceError(t *testing.T) {
	task := &fakeTask{}
	m := &Manager{Log: quiet()}

	err := m.Run(context.Background(), task, &Events{Label: "a", Events: records(3)}, failing{})
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "failing")
	assert.False(t, task.terminated)
}

func TestRunInitError(t *testing.T) {
	task := &fakeTask{initErr: errBoom}
	m := &Manager{Log: quiet()}

	err := m.Run(context.Background(), task, &Events{Label: "a", Events: records(3)})
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, task.execs)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := &fakeTask{}
	m := &Manager{Log: quiet()}
	err := m.Run(ctx, task, &Events{Label: "a", Events: records(3)})
	assert.ErrorIs(t, err, context.Canceled)
}

func dplusEvent(labels ...int) hfevent.Event {
	d := &vertexing.Decay3Prong{
		Prongs: [3]vertexing.Prong{
			{P: [3]float64{0.8, 0.1, 0.5}, Charge: +1, Label: labels[0]},
			{P: [3]float64{0.7, -0.2, 0.4}, Charge: -1, Label: labels[1]},
			{P: [3]float64{0.9, 0.3, 0.6}, Charge: +1, Label: labels[2]},
		},
		Secondary: vertexing.Vertex{X: 0.1, Z: 0.05, Dispersion: 0.01},
	}
	return &hfevent.Record{
		Charm3Prong: hfevent.Has([]hfevent.Candidate{d}),
		Primary:     &vertexing.Vertex{},
		MC: hfevent.Has(vertexing.MCParticles{
			{PdgCode: 411, Mother: -1},
			{PdgCode: 211, Mother: 0},
			{PdgCode: -321, Mother: 0},
			{PdgCode: 211, Mother: 0},
		}),
		Header: hfevent.Has(&hfevent.MCHeader{}),
	}
}

func TestRunDplusThroughOutputDir(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "cuts.toml")
	require.NoError(t, writeFile(cfg, "[dplus]\nmass_window = 10.0\npt_kaon_min = 0.0\npt_pion_min = 0.0\ncos_pointing_min = -1.0\n"))

	task := dplus.New("dplus", cfg)
	task.SetLogger(quiet())

	m := &Manager{
		NThreads:  2,
		OutputDir: filepath.Join(t.TempDir(), "out"),
		Log:       quiet(),
	}
	err := m.Run(context.Background(), task,
		&Events{Label: "a", Events: []hfevent.Event{dplusEvent(1, 2, 3), dplusEvent(1, -1, 3)}},
		&Events{Label: "b", Events: []hfevent.Event{dplusEvent(1, 2, 3), &hfevent.Record{}}},
	)
	require.NoError(t, err)

	final := task.Output()
	require.NotNil(t, final)
	assert.NotSame(t, m.Output(), final)
	assert.Equal(t, m.Output().ID(), final.ID())

	sum := task.Summary()
	assert.Equal(t, int64(3), sum.Entries)
	assert.Equal(t, int64(2), sum.Signal)
	assert.Equal(t, int64(1), sum.Background)
	assert.Equal(t, 2, sum.SignalRows)
	assert.Equal(t, 1, sum.BackgroundRows)
}

func TestRunOutputDirWithNaNRow(t *testing.T) {
	nt := accum.NewNtuple("ntDplus", "D +", "InvMass", "PointingAngle")
	require.NoError(t, nt.Fill(1.87, math.NaN()))
	task := &fakeTask{objs: []accum.Object{nt}}

	m := &Manager{
		OutputDir: filepath.Join(t.TempDir(), "out"),
		Log:       quiet(),
	}
	err := m.Run(context.Background(), task, &Events{Label: "a", Events: records(2)})
	require.NoError(t, err)

	require.True(t, task.terminated)
	require.NotNil(t, task.final)
	gnt := task.final.Ntuple("ntDplus")
	require.NotNil(t, gnt)
	require.Equal(t, 1, gnt.Entries())
	assert.Equal(t, 1.87, gnt.Row(0)[0])
	assert.True(t, math.IsNaN(gnt.Row(0)[1]))
}
