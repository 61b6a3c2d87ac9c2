package wire

import "github.com/marmos91/csp/pkg/status"

// Source is the cursored deserialization buffer specified in spec §4.A and
// §6's "Cursored sequence of T" (Walker) contract: tell, seek, read a
// primitive or raw block, and query remaining size.
type Source struct {
	buf []byte
	pos int
}

// NewSource wraps b for reading. b is not copied; the caller must not
// mutate it while the Source is in use.
func NewSource(b []byte) *Source {
	return &Source{buf: b}
}

// Tell returns the current read offset.
func (s *Source) Tell() int { return s.pos }

// Len returns the total length of the wrapped buffer.
func (s *Source) Len() int { return len(s.buf) }

// Remaining returns the number of unread bytes.
func (s *Source) Remaining() int { return len(s.buf) - s.pos }

// Seek repositions the read cursor to an absolute offset. Seeking past the
// end of the buffer is permitted (a subsequent read will fail with
// ErrOverflow); seeking to a negative offset is an argument error.
func (s *Source) Seek(offset int) error {
	if offset < 0 {
		return status.New(status.ErrInvalidArgument, "seek to negative offset")
	}
	s.pos = offset
	return nil
}

// ReadByte reads and returns a single byte, advancing the cursor.
func (s *Source) ReadByte() (byte, error) {
	if s.Remaining() < 1 {
		return 0, status.New(status.ErrOverflow, "read past end of buffer")
	}
	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

// ReadN reads and returns exactly n bytes, advancing the cursor. The
// returned slice aliases the Source's backing array; callers that need to
// retain it across further reads must copy it.
func (s *Source) ReadN(n int) ([]byte, error) {
	if n < 0 {
		return nil, status.New(status.ErrInvalidArgument, "negative read length")
	}
	if s.Remaining() < n {
		return nil, status.New(status.ErrOverflow, "read past end of buffer")
	}
	b := s.buf[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

// PeekN returns the next n bytes without advancing the cursor.
func (s *Source) PeekN(n int) ([]byte, error) {
	if s.Remaining() < n {
		return nil, status.New(status.ErrOverflow, "peek past end of buffer")
	}
	return s.buf[s.pos : s.pos+n], nil
}

// Clone returns an independent Source over the same backing buffer,
// positioned at the given offset. Multicast dispatch (spec §4.I: "multiple
// entries may share a structId") gives each handler its own cursor over
// the same bytes rather than serializing handlers against a shared one.
func (s *Source) Clone(at int) *Source {
	return &Source{buf: s.buf, pos: at}
}
