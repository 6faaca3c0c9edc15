package hfevent

import "github.com/decibelcooper/hfplot/vertexing"

// Branch is a per-event collection that may be absent from the event.
type Branch[T any] struct {
	Value   T
	Present bool
}

// Has returns a present branch holding v.
func Has[T any](v T) Branch[T] {
	return Branch[T]{Value: v, Present: true}
}

// Record is an in-memory event.
type Record struct {
	Number int64

	Charm3Prong Branch[[]Candidate]
	Primary     *vertexing.Vertex
	MC          Branch[vertexing.MCParticles]
	Header      Branch[*MCHeader]
}

func (r *Record) Candidates3Prong() ([]Candidate, bool) {
	return r.Charm3Prong.Value, r.Charm3Prong.Present
}

func (r *Record) PrimaryVertex() *vertexing.Vertex {
	return r.Primary
}

func (r *Record) MCParticles() (vertexing.MCParticles, bool) {
	return r.MC.Value, r.MC.Present
}

func (r *Record) MCHeader() (*MCHeader, bool) {
	if r.Header.Value == nil {
		return nil, false
	}
	return r.Header.Value, r.Header.Present
}
