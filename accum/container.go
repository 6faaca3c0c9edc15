// Package accum holds the objects an analysis accumulates over an event
// loop: histograms and flat tuples, grouped in a container that can be
// written out and read back by name.
package accum

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go-hep.org/x/hep/hbook"
)

var ErrDuplicate = errors.New("accum: duplicate object name")

// Object is anything a Container can hold.
type Object interface {
	Name() string
}

// Container is an ordered set of uniquely named objects.
type Container struct {
	id   uuid.UUID
	objs []Object
}

func NewContainer() *Container {
	return &Container{id: uuid.New()}
}

// ID identifies the container. It survives Save and Load.
func (c *Container) ID() uuid.UUID {
	return c.id
}

func (c *Container) Add(obj Object) error {
	if c.FindObject(obj.Name()) != nil {
		return fmt.Errorf("%w: %q", ErrDuplicate, obj.Name())
	}
	c.objs = append(c.objs, obj)
	return nil
}

// FindObject returns the object called name, or nil.
func (c *Container) FindObject(name string) Object {
	for _, obj := range c.objs {
		if obj.Name() == name {
			return obj
		}
	}
	return nil
}

// H1D returns the histogram called name, or nil if there is no such object
// or it is not a histogram.
func (c *Container) H1D(name string) *hbook.H1D {
	h, _ := c.FindObject(name).(*hbook.H1D)
	return h
}

// Ntuple returns the tuple called name, or nil if there is no such object
// or it is not a tuple.
func (c *Container) Ntuple(name string) *Ntuple {
	nt, _ := c.FindObject(name).(*Ntuple)
	return nt
}

func (c *Container) Len() int {
	return len(c.objs)
}

func (c *Container) Names() []string {
	names := make([]string, len(c.objs))
	for i, obj := range c.objs {
		names[i] = obj.Name()
	}
	return names
}

// NewH1D returns a named, titled histogram.
func NewH1D(name, title string, nbins int, xmin, xmax float64) *hbook.H1D {
	h := hbook.NewH1D(nbins, xmin, xmax)
	annotate(h, name, title)
	return h
}

func annotate(h *hbook.H1D, name, title string) {
	ann := h.Annotation()
	ann["name"] = name
	ann["title"] = title
}

// Title returns the title of a histogram created by NewH1D.
func Title(h *hbook.H1D) string {
	title, _ := h.Annotation()["title"].(string)
	return title
}
