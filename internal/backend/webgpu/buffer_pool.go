//go:build windows

package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// maxPooledPerKey bounds how many idle buffers are kept per (size, usage).
const maxPooledPerKey = 8

type poolKey struct {
	size  uint64
	usage wgpu.BufferUsage
}

// scratchPool recycles output buffers between LRN invocations. Buffers are
// matched exactly by size and usage, since one kernel sees few distinct
// tensor sizes.
type scratchPool struct {
	device *wgpu.Device

	mu   sync.Mutex
	idle map[poolKey][]*wgpu.Buffer

	hits, misses uint64
}

func newScratchPool(device *wgpu.Device) *scratchPool {
	return &scratchPool{
		device: device,
		idle:   make(map[poolKey][]*wgpu.Buffer),
	}
}

// acquire returns an idle buffer of the exact size and usage or creates one.
func (p *scratchPool) acquire(size uint64, usage wgpu.BufferUsage) *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := poolKey{size: size, usage: usage}
	if list := p.idle[key]; len(list) > 0 {
		buffer := list[len(list)-1]
		p.idle[key] = list[:len(list)-1]
		p.hits++
		return buffer
	}

	p.misses++
	return p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: usage,
		Size:  size,
	})
}

// release returns a buffer to the pool, or frees it when the key is full.
func (p *scratchPool) release(buffer *wgpu.Buffer, size uint64, usage wgpu.BufferUsage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := poolKey{size: size, usage: usage}
	if len(p.idle[key]) >= maxPooledPerKey {
		buffer.Release()
		return
	}
	p.idle[key] = append(p.idle[key], buffer)
}

// clear frees every idle buffer.
func (p *scratchPool) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, list := range p.idle {
		for _, buffer := range list {
			buffer.Release()
		}
		delete(p.idle, key)
	}
}

// stats returns pool hits, misses and the number of idle buffers.
func (p *scratchPool) stats() (hits, misses uint64, idle int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, list := range p.idle {
		idle += len(list)
	}
	return p.hits, p.misses, idle
}
