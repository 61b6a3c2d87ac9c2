package wire

// Sink is the append-only serialization buffer specified in spec §4.A and
// §6's "Ordered sequence of T" container contract: push primitives and raw
// blocks, track logical size, and clear. Sink never shrinks its backing
// array on Clear so repeated encode passes on one connection reuse the
// same allocation, the same way the teacher's bufpool avoids per-message
// allocation churn.
type Sink struct {
	buf []byte
}

// NewSink returns an empty Sink. capacityHint pre-reserves space the way a
// caller that knows its typical message size would, to avoid the first few
// growth reallocations.
func NewSink(capacityHint int) *Sink {
	return &Sink{buf: make([]byte, 0, capacityHint)}
}

// Len returns the number of bytes written so far.
func (s *Sink) Len() int { return len(s.buf) }

// Bytes returns the written bytes. The slice is owned by the Sink; copy it
// before the Sink is reused or cleared if the caller needs to retain it.
func (s *Sink) Bytes() []byte { return s.buf }

// Clear resets the sink to empty without releasing its backing array.
func (s *Sink) Clear() { s.buf = s.buf[:0] }

// WriteByte appends a single byte.
func (s *Sink) WriteByte(b byte) error {
	s.buf = append(s.buf, b)
	return nil
}

// Write appends a raw block of n bytes in a single copy — the bulk path
// spec §4.D's "raw blocks" and §4.E's fast-path memcpy both funnel through.
func (s *Sink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

// ReserveFromCurrentOffset grows the backing array by n zero bytes and
// returns the offset at which they start, satisfying the Walker contract's
// reserve_from_current_offset (spec §6), for callers that reserve a slot
// before the value it will hold is known.
func (s *Sink) ReserveFromCurrentOffset(n int) int {
	start := len(s.buf)
	s.buf = append(s.buf, make([]byte, n)...)
	return start
}

// Overwrite replaces the n bytes starting at offset, used together with
// ReserveFromCurrentOffset.
func (s *Sink) Overwrite(offset int, data []byte) {
	copy(s.buf[offset:offset+len(data)], data)
}
