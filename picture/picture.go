// picture.go defines Picture, a reference-counted frame slot.

// Package picture provides reference-counted pictures, their opaque
// contexts and a fixed-size picture pool.
package picture

import (
	"errors"
	"fmt"

	"github.com/xaionaro-go/drmprime/types"
	"go.uber.org/atomic"
)

var ErrContextAttached = errors.New("the picture already has a context attached")

// Picture is a decodable/renderable frame slot.
type Picture struct {
	Format types.VideoFormat

	// Sys is the backing store set by the allocator of the picture.
	Sys any

	context     Context
	refs        atomic.Int32
	destroyFunc func(*Picture)
	pool        *Pool
}

// New returns a picture with a single hold. destroyFunc is called when the
// last hold is released (or, for a pooled picture, when its pool frees it).
func New(
	format types.VideoFormat,
	sys any,
	destroyFunc func(*Picture),
) *Picture {
	p := &Picture{
		Format:      format,
		Sys:         sys,
		destroyFunc: destroyFunc,
	}
	p.refs.Store(1)
	return p
}

func (p *Picture) String() string {
	return fmt.Sprintf("Picture(%p, %s, refs:%d)", p, p.Format, p.refs.Load())
}

func (p *Picture) Context() Context {
	return p.context
}

// SetContext attaches c to the picture. The picture destroys the context
// when it is recycled or destroyed.
func (p *Picture) SetContext(c Context) {
	p.context = c
}

// Refs returns the current amount of holds.
func (p *Picture) Refs() int32 {
	return p.refs.Load()
}

func (p *Picture) Hold() *Picture {
	p.refs.Inc()
	return p
}

// Release drops a hold. Releasing the last one returns a pooled picture to
// its pool, or destroys a standalone one.
func (p *Picture) Release() {
	refs := p.refs.Dec()
	if refs > 0 {
		return
	}
	if refs < 0 {
		panic(fmt.Sprintf("%s released more times than held", p))
	}
	if p.pool != nil {
		p.pool.recycle(p)
		return
	}
	p.destroy()
}

func (p *Picture) resetContext() {
	c := p.context
	if c == nil {
		return
	}
	p.context = nil
	c.Destroy()
}

func (p *Picture) destroy() {
	p.resetContext()
	if p.destroyFunc != nil {
		p.destroyFunc(p)
	}
}
