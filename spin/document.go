package spin

import (
	"image"
	"slices"
	"sync"
)

// Surface is a fixed-size drawable area.
type Surface interface {
	Size() image.Point
	Clear()
	DrawScaled(img image.Image)
	// Snapshot returns a copy of the current content.
	Snapshot() image.Image
}

// Document holds the named containers viewers can be mounted into.
type Document struct {
	locker     sync.Locker
	containers map[string]*Container
}

func NewDocument() *Document {
	return &Document{
		locker:     &sync.Mutex{},
		containers: make(map[string]*Container),
	}
}

// CreateContainer returns the existing container when id is already taken.
func (d *Document) CreateContainer(id string) *Container {
	d.locker.Lock()
	defer d.locker.Unlock()

	if c, ok := d.containers[id]; ok {
		return c
	}

	c := &Container{
		ID:     id,
		locker: &sync.Mutex{},
	}
	d.containers[id] = c
	return c
}

func (d *Document) Container(id string) (*Container, bool) {
	d.locker.Lock()
	defer d.locker.Unlock()
	c, ok := d.containers[id]
	return c, ok
}

type Container struct {
	ID string

	locker   sync.Locker
	surfaces []Surface
}

func (c *Container) Append(s Surface) {
	c.locker.Lock()
	defer c.locker.Unlock()
	c.surfaces = append(c.surfaces, s)
}

func (c *Container) Remove(s Surface) {
	c.locker.Lock()
	defer c.locker.Unlock()
	c.surfaces = slices.DeleteFunc(c.surfaces, func(item Surface) bool {
		return item == s
	})
}

func (c *Container) Surfaces() []Surface {
	c.locker.Lock()
	defer c.locker.Unlock()
	return slices.Clone(c.surfaces)
}
