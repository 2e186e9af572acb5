package picture

import (
	"context"

	"github.com/xaionaro-go/drmprime/logger"
	"github.com/xaionaro-go/drmprime/pool"
)

// Pool is a fixed-size set of pictures. A picture taken with Get goes back
// to the pool when its last hold is released; its context is destroyed at
// that moment.
type Pool struct {
	ctx  context.Context
	pool *pool.Pool[Picture]
}

// NewPool takes the ownership of pics: each of them must have exactly the
// single hold returned by New.
func NewPool(
	ctx context.Context,
	pics []*Picture,
) *Pool {
	p := &Pool{ctx: ctx}
	for _, pic := range pics {
		pic.pool = p
		pic.refs.Store(0)
	}
	p.pool = pool.New(
		pics,
		(*Picture).resetContext,
		(*Picture).destroy,
	)
	logger.Debugf(ctx, "created a picture pool of %d pictures", len(pics))
	return p
}

func (p *Pool) Size() int {
	return p.pool.Size()
}

// Get returns a picture with a single hold, or nil if the pool is
// exhausted or closed.
func (p *Pool) Get(ctx context.Context) *Picture {
	pic := p.pool.Get(ctx)
	if pic == nil {
		logger.Debugf(ctx, "the picture pool is exhausted")
		return nil
	}
	pic.refs.Store(1)
	return pic
}

func (p *Pool) IdleCount(ctx context.Context) int {
	return p.pool.IdleCount(ctx)
}

// Close destroys the idle pictures; the pictures still held are destroyed
// when their last hold is released.
func (p *Pool) Close(ctx context.Context) {
	p.pool.Close(ctx)
}

func (p *Pool) recycle(pic *Picture) {
	logger.Tracef(p.ctx, "recycling %s", pic)
	p.pool.Put(p.ctx, pic)
}
