// pool.go implements a fixed-size pool of preallocated objects.

// Package pool provides a fixed-size pool of preallocated objects with
// reset and free hooks.
package pool

import (
	"context"

	"github.com/xaionaro-go/drmprime/logger"
	"github.com/xaionaro-go/xsync"
)

// Pool hands out objects allocated up front. An object returned with Put
// is reset and made available again; once the pool is closed, idle
// objects are freed immediately and outstanding ones are freed on Put.
type Pool[T any] struct {
	locker    xsync.Mutex
	size      int
	idle      []*T
	closed    bool
	ResetFunc func(*T)
	FreeFunc  func(*T)
}

func New[T any](
	items []*T,
	resetFunc func(*T),
	freeFunc func(*T),
) *Pool[T] {
	idle := make([]*T, len(items))
	copy(idle, items)
	return &Pool[T]{
		size:      len(items),
		idle:      idle,
		ResetFunc: resetFunc,
		FreeFunc:  freeFunc,
	}
}

// Size returns the amount of objects the pool was created with.
func (p *Pool[T]) Size() int {
	return p.size
}

// Get returns an idle object, or nil if all of them are in use or the pool
// is closed.
func (p *Pool[T]) Get(ctx context.Context) *T {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &p.locker, func() *T {
		if p.closed || len(p.idle) == 0 {
			return nil
		}
		item := p.idle[len(p.idle)-1]
		p.idle[len(p.idle)-1] = nil
		p.idle = p.idle[:len(p.idle)-1]
		return item
	})
}

func (p *Pool[T]) Put(ctx context.Context, item *T) {
	if p.ResetFunc != nil {
		p.ResetFunc(item)
	}
	closed := xsync.DoR1(xsync.WithNoLogging(ctx, true), &p.locker, func() bool {
		if p.closed {
			return true
		}
		p.idle = append(p.idle, item)
		return false
	})
	if closed {
		logger.Tracef(ctx, "the pool is closed, freeing %p", item)
		p.free(item)
	}
}

// IdleCount returns the amount of objects available for Get.
func (p *Pool[T]) IdleCount(ctx context.Context) int {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &p.locker, func() int {
		return len(p.idle)
	})
}

// Close frees the idle objects; the objects still in use are freed when
// they are Put back.
func (p *Pool[T]) Close(ctx context.Context) {
	idle := xsync.DoR1(ctx, &p.locker, func() []*T {
		if p.closed {
			return nil
		}
		p.closed = true
		idle := p.idle
		p.idle = nil
		return idle
	})
	logger.Debugf(ctx, "closing the pool: freeing %d of %d objects now", len(idle), p.size)
	for _, item := range idle {
		p.free(item)
	}
}

func (p *Pool[T]) free(item *T) {
	if p.FreeFunc != nil {
		p.FreeFunc(item)
	}
}
