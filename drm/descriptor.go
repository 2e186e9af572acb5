// descriptor.go defines FrameDescriptor, the layout of a DRM PRIME frame.

package drm

import (
	"fmt"
)

// MaxPlanes matches AV_DRM_MAX_PLANES.
const MaxPlanes = 4

// Object is a single DMA buffer.
type Object struct {
	FD       int
	Size     uint64
	Modifier Modifier
}

// Plane is a region of an Object.
type Plane struct {
	ObjectIndex int
	Offset      int64
	Pitch       int64
}

// Layer is a set of planes forming an image of a single format.
type Layer struct {
	Format FourCC
	Planes []Plane
}

// FrameDescriptor describes a decoded frame stored in one or more DMA
// buffers. It does not own the file descriptors: they stay valid for as
// long as the decoder frame that exported the descriptor is referenced.
type FrameDescriptor struct {
	Objects []Object
	Layers  []Layer
}

func (d *FrameDescriptor) String() string {
	if d == nil {
		return "<nil>"
	}
	if len(d.Layers) == 0 {
		return fmt.Sprintf("FrameDescriptor(objects:%d, layers:0)", len(d.Objects))
	}
	return fmt.Sprintf("FrameDescriptor(objects:%d, layers:%d, format:%s, planes:%d)",
		len(d.Objects), len(d.Layers), d.Layers[0].Format, len(d.Layers[0].Planes))
}

// Layer returns the first layer, which is the only one drmprime samples.
func (d *FrameDescriptor) Layer() *Layer {
	if d == nil || len(d.Layers) == 0 {
		return nil
	}
	return &d.Layers[0]
}

// PlaneObject returns the object the i-th plane of the first layer lives in.
func (d *FrameDescriptor) PlaneObject(i int) (*Object, error) {
	layer := d.Layer()
	if layer == nil {
		return nil, fmt.Errorf("no layers")
	}
	if i < 0 || i >= len(layer.Planes) {
		return nil, fmt.Errorf("plane index %d is out of range [0, %d)", i, len(layer.Planes))
	}
	idx := layer.Planes[i].ObjectIndex
	if idx < 0 || idx >= len(d.Objects) {
		return nil, fmt.Errorf("plane #%d refers to object #%d, but there are only %d objects", i, idx, len(d.Objects))
	}
	return &d.Objects[idx], nil
}

// Validate checks the descriptor is internally consistent and that the
// plane count of the first layer matches its format.
func (d *FrameDescriptor) Validate() error {
	if d == nil {
		return fmt.Errorf("descriptor is nil")
	}
	if len(d.Objects) == 0 {
		return fmt.Errorf("no objects")
	}
	layer := d.Layer()
	if layer == nil {
		return fmt.Errorf("no layers")
	}
	if len(layer.Planes) > MaxPlanes {
		return fmt.Errorf("too many planes: %d > %d", len(layer.Planes), MaxPlanes)
	}
	expected := layer.Format.PlaneCount()
	if expected == 0 {
		return fmt.Errorf("unknown format %s", layer.Format)
	}
	if len(layer.Planes) != expected {
		return fmt.Errorf("format %s has %d planes, but the descriptor has %d", layer.Format, expected, len(layer.Planes))
	}
	for i := range layer.Planes {
		if _, err := d.PlaneObject(i); err != nil {
			return err
		}
	}
	return nil
}
