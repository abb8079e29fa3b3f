package box

import (
	"errors"
	"fmt"
)

// Errors returned by registry operations.
var (
	// ErrInvalidHandle indicates a box or slot index outside the allocated range.
	ErrInvalidHandle = errors.New("invalid handle")

	// ErrCapacityExceeded indicates a bounded registry or slot table is full.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrGeometryTooSmall indicates a box below the 3x3 minimum.
	ErrGeometryTooSmall = errors.New("geometry too small")
)

// Registry is an append-only store of box geometries indexed by Handle.
// It is not safe for concurrent use.
type Registry struct {
	capacity int
	boxes    []Geometry
}

// NewRegistry creates a registry holding at most capacity boxes.
// A capacity of zero or less means unbounded.
func NewRegistry(capacity int) *Registry {
	if capacity < 0 {
		capacity = 0
	}
	return &Registry{capacity: capacity}
}

// Create validates and appends g, returning its new handle.
func (r *Registry) Create(g Geometry) (Handle, error) {
	if err := g.Validate(); err != nil {
		return -1, err
	}
	if r.capacity > 0 && len(r.boxes) >= r.capacity {
		return -1, fmt.Errorf("%w: registry holds %d boxes", ErrCapacityExceeded, r.capacity)
	}
	r.boxes = append(r.boxes, g)
	return Handle(len(r.boxes) - 1), nil
}

// Get returns the geometry registered under h.
func (r *Registry) Get(h Handle) (Geometry, error) {
	if h < 0 || int(h) >= len(r.boxes) {
		return Geometry{}, fmt.Errorf("%w: box %d", ErrInvalidHandle, h)
	}
	return r.boxes[h], nil
}

// Corner returns one coordinate of a corner of box h.
func (r *Registry) Corner(h Handle, c Corner, a Axis) (int, error) {
	g, err := r.Get(h)
	if err != nil {
		return 0, err
	}
	return g.Corner(c, a)
}

// Len returns the number of registered boxes.
func (r *Registry) Len() int {
	return len(r.boxes)
}

// Capacity returns the bound, or zero when unbounded.
func (r *Registry) Capacity() int {
	return r.capacity
}

// All returns a copy of every registered geometry in handle order.
func (r *Registry) All() []Geometry {
	out := make([]Geometry, len(r.boxes))
	copy(out, r.boxes)
	return out
}
