// Package pool implements the fixed-size-class byte buffer allocator
// ("pool64") that spec.md §6 lists as a collaborator the core consumes:
// out-of-line Str buffers (length > 16 bytes) are drawn from here instead
// of going through a fresh heap allocation per string.
//
// There is no teacher file for this exact shape (pocketpy's pool64 is C++
// and not in the retrieved pack); the free-list-per-size-class design
// below follows the same growth/ceiling discipline the teacher uses for
// its VM operand stack (internal/vm/vm_stack_manager.go's StackManager):
// classes grow by doubling, a hard ceiling bounds runaway memory, and
// buffers are zeroed before reuse is the caller's job, not the pool's.
package pool

import "pkvm/internal/pkerr"

const (
	minClass = 32          // smallest size class, in bytes
	maxClass = 1 << 20     // 1MiB: buffers larger than this bypass the pool
	numClass = 16          // minClass * 2^(numClass-1) >= maxClass
)

// Pool64 is a fixed-size-class byte buffer allocator. The zero value is
// ready to use.
type Pool64 struct {
	classes [numClass][][]byte
	allocs  int
	reuses  int
}

// classFor returns the size-class index and its byte capacity for n.
func classFor(n int) (idx, capacity int) {
	capacity = minClass
	idx = 0
	for capacity < n && idx < numClass-1 {
		capacity *= 2
		idx++
	}
	return idx, capacity
}

// Alloc returns a buffer with length n. Buffers larger than maxClass are
// allocated directly and never pooled.
func (p *Pool64) Alloc(n int) []byte {
	if n < 0 {
		pkerr.Bug("pool: negative allocation size %d", n)
	}
	if n > maxClass {
		return make([]byte, n)
	}
	idx, capacity := classFor(n)
	free := p.classes[idx]
	if len(free) == 0 {
		p.allocs++
		return make([]byte, n, capacity)
	}
	buf := free[len(free)-1]
	p.classes[idx] = free[:len(free)-1]
	p.reuses++
	return buf[:n]
}

// Dealloc returns buf to its size class for reuse. Buffers whose capacity
// does not match a known class (including anything larger than maxClass)
// are simply dropped for the garbage collector to reclaim.
func (p *Pool64) Dealloc(buf []byte) {
	capacity := cap(buf)
	if capacity < minClass || capacity > maxClass {
		return
	}
	idx, classCap := classFor(capacity)
	if classCap != capacity {
		return
	}
	p.classes[idx] = append(p.classes[idx], buf[:0:capacity])
}

// Stats reports allocator pressure, mirroring the growth/usage counters
// the teacher's StackManager.Stats exposes for its own pool.
func (p *Pool64) Stats() (allocs, reuses int) {
	return p.allocs, p.reuses
}

// Default is the process-wide pool instance used by internal/pystr. It is
// a package-level variable, created when the package is initialized.
var Default = &Pool64{}
