// Package wirebuf provides a borrowed, cursor-based view over a byte slice
// for constructing and consuming wire-format records without copying.
//
// Neither View type owns its backing storage; the caller guarantees the
// slice outlives the view. This mirrors the split ReadBuffer/WriteBuffer
// pair the query-file encoder was originally built on.
package wirebuf

// ReadView is a read cursor over a borrowed byte slice.
type ReadView struct {
	base []byte
	pos  int
}

// NewReadView wraps b for sequential reads starting at offset 0.
func NewReadView(b []byte) ReadView {
	return ReadView{base: b}
}

// Size returns the total length of the backing slice.
func (v ReadView) Size() int { return len(v.base) }

// Position returns the current cursor offset.
func (v ReadView) Position() int { return v.pos }

// Available returns the number of unread bytes remaining.
func (v ReadView) Available() int { return len(v.base) - v.pos }

// Reset moves the cursor back to the start of the view.
func (v *ReadView) Reset() { v.pos = 0 }

// Read advances the cursor by n and returns the consumed sub-slice. It
// panics if n exceeds the bytes available — a read past the end is a
// programming error, not a recoverable condition.
func (v *ReadView) Read(n int) []byte {
	if n < 0 || n > v.Available() {
		panic("wirebuf: read past end of view")
	}
	b := v.base[v.pos : v.pos+n]
	v.pos += n
	return b
}

// WriteView is a write cursor over a borrowed byte slice.
type WriteView struct {
	base []byte
	pos  int
}

// NewWriteView wraps b for sequential writes starting at offset 0.
func NewWriteView(b []byte) WriteView {
	return WriteView{base: b}
}

// Size returns the total capacity of the backing slice.
func (v WriteView) Size() int { return len(v.base) }

// Position returns the current cursor offset, i.e. the number of bytes
// written so far.
func (v WriteView) Position() int { return v.pos }

// Available returns the number of unwritten bytes remaining.
func (v WriteView) Available() int { return len(v.base) - v.pos }

// Reset moves the cursor back to the start of the view.
func (v *WriteView) Reset() { v.pos = 0 }

// Reserve advances the cursor by n and returns the writable sub-slice. It
// panics if n exceeds the bytes available.
func (v *WriteView) Reserve(n int) []byte {
	if n < 0 || n > v.Available() {
		panic("wirebuf: reserve past end of view")
	}
	b := v.base[v.pos : v.pos+n]
	v.pos += n
	return b
}

// Written returns the portion of the backing slice written so far.
func (v WriteView) Written() []byte {
	return v.base[:v.pos]
}
