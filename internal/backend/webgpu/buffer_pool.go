package webgpu

import "sync"

// sizeClass buckets buffers so small requests never scan large buffers.
type sizeClass int

const (
	smallBuffer sizeClass = iota // < 4KB
	mediumBuffer                 // 4KB-1MB
	largeBuffer                  // > 1MB
)

const (
	smallThreshold  = 4 * 1024
	mediumThreshold = 1024 * 1024
	maxPooled       = 64 // Max idle buffers per class and usage.
)

func classify(size uint64) sizeClass {
	switch {
	case size < smallThreshold:
		return smallBuffer
	case size < mediumThreshold:
		return mediumBuffer
	default:
		return largeBuffer
	}
}

type releaser interface {
	Release()
}

type poolKey[U comparable] struct {
	class sizeClass
	usage U
}

type pooledBuffer[B releaser] struct {
	buf  B
	size uint64
}

// PoolStats reports buffer pool activity.
type PoolStats struct {
	Allocated uint64 // Buffers created because no idle one fit.
	Reused    uint64 // Requests served from the pool.
	Dropped   uint64 // Buffers released instead of pooled: bucket full or discarded.
	Idle      int    // Buffers currently waiting for reuse.
}

// bufferPool recycles the scratch buffers each kernel needs for its result
// and readback, keyed by size class and usage flags.
type bufferPool[B releaser, U comparable] struct {
	mu    sync.Mutex
	alloc func(size uint64, usage U) B
	idle  map[poolKey[U]][]pooledBuffer[B]
	stats PoolStats
}

func newBufferPool[B releaser, U comparable](alloc func(size uint64, usage U) B) *bufferPool[B, U] {
	return &bufferPool[B, U]{
		alloc: alloc,
		idle:  make(map[poolKey[U]][]pooledBuffer[B]),
	}
}

// acquire returns a buffer of at least size bytes and its actual capacity,
// which must be passed back to put.
func (p *bufferPool[B, U]) acquire(size uint64, usage U) (B, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := poolKey[U]{class: classify(size), usage: usage}
	free := p.idle[key]
	for i, pb := range free {
		if pb.size >= size {
			p.idle[key] = append(free[:i], free[i+1:]...)
			p.stats.Reused++
			p.stats.Idle--
			return pb.buf, pb.size
		}
	}

	p.stats.Allocated++
	return p.alloc(size, usage), size
}

// put returns a buffer for reuse, releasing it when its bucket is full.
func (p *bufferPool[B, U]) put(buf B, size uint64, usage U) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := poolKey[U]{class: classify(size), usage: usage}
	if len(p.idle[key]) >= maxPooled {
		p.stats.Dropped++
		buf.Release()
		return
	}
	p.idle[key] = append(p.idle[key], pooledBuffer[B]{buf: buf, size: size})
	p.stats.Idle++
}

// discard releases an acquired buffer that is no longer safe to reuse.
func (p *bufferPool[B, U]) discard(buf B) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.Dropped++
	buf.Release()
}

// clear releases every idle buffer.
func (p *bufferPool[B, U]) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, free := range p.idle {
		for _, pb := range free {
			pb.buf.Release()
		}
		delete(p.idle, key)
	}
	p.stats.Idle = 0
}

func (p *bufferPool[B, U]) snapshot() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
