package proioaod

import (
	"sort"

	"github.com/proio-org/go-proio"
	"github.com/proio-org/go-proio-pb/model/eic"

	"github.com/decibelcooper/hfplot/hfevent"
	"github.com/decibelcooper/hfplot/vertexing"
)

// Convert maps a proio event onto the branches of a charm analysis event.
// The candidate branch is always present, possibly empty; the generator
// branches are present only if the event has entries with their tags.
func Convert(event *proio.Event) *hfevent.Record {
	rec := &hfevent.Record{}

	labels := mcLabels(event)
	if len(labels) > 0 {
		rec.MC = hfevent.Has(mcParticles(event, labels))
	}

	if ids := event.TaggedEntries(hfevent.MCHeaderBranch); len(ids) > 0 {
		hdr := &hfevent.MCHeader{}
		if part, ok := event.GetEntry(ids[0]).(*eic.Particle); ok {
			vtx := vertexOf(part)
			hdr.VtxX, hdr.VtxY, hdr.VtxZ = vtx.X, vtx.Y, vtx.Z
		}
		rec.Header = hfevent.Has(hdr)
	}

	for _, id := range event.TaggedEntries(hfevent.PrimaryVertexBranch) {
		part, ok := event.GetEntry(id).(*eic.Particle)
		if !ok {
			continue
		}
		vtx := vertexOf(part)
		rec.Primary = &vtx
		break
	}

	var cands []hfevent.Candidate
	for _, id := range event.TaggedEntries(hfevent.Charm3ProngBranch) {
		comp, ok := event.GetEntry(id).(*eic.Particle)
		if !ok {
			continue
		}
		d, ok := decay3Prong(event, comp, labels)
		if !ok {
			continue
		}
		cands = append(cands, d)
	}
	rec.Charm3Prong = hfevent.Has(cands)

	return rec
}

// mcLabels numbers the generated particles of the event in tag order.
func mcLabels(event *proio.Event) map[uint64]int {
	labels := make(map[uint64]int)
	for _, id := range event.TaggedEntries(hfevent.MCParticlesBranch) {
		if _, ok := event.GetEntry(id).(*eic.Particle); !ok {
			continue
		}
		labels[id] = len(labels)
	}
	return labels
}

func mcParticles(event *proio.Event, labels map[uint64]int) vertexing.MCParticles {
	mc := make(vertexing.MCParticles, len(labels))
	for id, lab := range labels {
		part := event.GetEntry(id).(*eic.Particle)

		mother := -1
		if parents := part.GetParent(); len(parents) > 0 {
			if mlab, ok := labels[parents[0]]; ok {
				mother = mlab
			}
		}

		vtx := vertexOf(part)
		mc[lab] = vertexing.MCParticle{
			PdgCode: int(part.GetPdg()),
			Mother:  mother,
			P: [3]float64{
				float64(part.GetP().GetX()),
				float64(part.GetP().GetY()),
				float64(part.GetP().GetZ()),
			},
			Xv: vtx.X,
			Yv: vtx.Y,
			Zv: vtx.Z,
		}
	}
	return mc
}

func vertexOf(part *eic.Particle) vertexing.Vertex {
	pos := part.GetVertex()
	return vertexing.Vertex{
		X: float64(pos.GetX()),
		Y: float64(pos.GetY()),
		Z: float64(pos.GetZ()),
	}
}

func decay3Prong(event *proio.Event, comp *eic.Particle, labels map[uint64]int) (*vertexing.Decay3Prong, bool) {
	children := comp.GetChild()
	if len(children) != 3 {
		return nil, false
	}

	d := &vertexing.Decay3Prong{Secondary: vertexOf(comp)}
	for i, id := range children {
		track, ok := event.GetEntry(id).(*eic.Track)
		if !ok || len(track.GetSegment()) == 0 {
			return nil, false
		}

		seg := track.GetSegment()[0]
		q := int(seg.GetChargesign())
		sign := float64(q)
		if q == 0 {
			sign = 1
		}
		d.Prongs[i] = vertexing.Prong{
			P: [3]float64{
				sign * seg.GetPoq().GetX(),
				sign * seg.GetPoq().GetY(),
				sign * seg.GetPoq().GetZ(),
			},
			Charge: q,
			Label:  truthLabel(event, track, labels),
		}
	}
	return d, true
}

// truthLabel returns the label of the generated particle that left most of
// the hits of track, or -1.
func truthLabel(event *proio.Event, track *eic.Track, labels map[uint64]int) int {
	counts := make(map[uint64]uint64)
	for _, obsID := range track.GetObservation() {
		eDep, ok := event.GetEntry(obsID).(*eic.EnergyDep)
		if !ok {
			continue
		}

		for _, sourceID := range eDep.GetSource() {
			simHit, ok := event.GetEntry(sourceID).(*eic.SimHit)
			if !ok {
				continue
			}

			counts[simHit.GetParticle()]++
		}
	}

	partID, ok := majority(counts)
	if !ok {
		return -1
	}
	lab, ok := labels[partID]
	if !ok {
		return -1
	}
	return lab
}

// majority returns the key with the highest count, the lowest key winning
// ties.
func majority(counts map[uint64]uint64) (uint64, bool) {
	ids := make([]uint64, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var (
		best  uint64
		count uint64
	)
	for _, id := range ids {
		if counts[id] > count {
			best = id
			count = counts[id]
		}
	}
	return best, count > 0
}
