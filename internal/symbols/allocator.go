package symbols

// Allocator hands out flat byte offsets. One allocator serves the whole
// program, so offsets never depend on lexical nesting.
type Allocator struct {
	next uint64
}

// Alloc reserves size bytes and returns their starting offset.
func (a *Allocator) Alloc(size uint64) uint64 {
	off := a.next
	a.next += size
	return off
}

// Used reports how many bytes were handed out so far.
func (a *Allocator) Used() uint64 { return a.next }
