package optimize

import (
	"sync"
)

// BytePool is a pool of fixed-size byte slices used as copy buffers in
// the stream pipeline, so every concurrent transfer does not allocate
// its own buffer.
type BytePool struct {
	pool sync.Pool
	size int
}

// NewBytePool creates a new byte pool with specified buffer size
func NewBytePool(size int) *BytePool {
	return &BytePool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]byte, size)
			},
		},
	}
}

// Get gets a byte slice from the pool
func (p *BytePool) Get() []byte {
	return p.pool.Get().([]byte)
}

// Put returns a byte slice to the pool
func (p *BytePool) Put(b []byte) {
	// Only put back buffers that still have the pool's size
	if cap(b) >= p.size {
		p.pool.Put(b[:p.size])
	}
}

// Size returns the buffer size this pool hands out
func (p *BytePool) Size() int {
	return p.size
}
