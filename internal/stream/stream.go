// Package stream provides the backtrackable input cursor shared by the lexer
// and the parser. A Stream owns a fully materialized sequence and represents
// the read head as a plain integer, which makes arbitrary lookahead and
// rollback O(1) at the cost of holding the whole input in memory.
package stream

// Stream is a randomly seekable reader over a fixed sequence of T.
//
// The underlying sequence is never mutated after construction; every
// operation only moves the position or reads at it. Reads outside the
// sequence return the zero value of T instead of failing (soft EOF), so
// callers can probe past the end without bounds checks on every request.
//
// The position is clamped into [0, len] by every mutating operation. This
// keeps overrun arithmetic well-defined: after advancing far past the end,
// a single Backup lands on the last element rather than somewhere in the
// void. Exhausted reports whether the next read would yield a zero value.
type Stream[T any] struct {
	seq []T
	pos int
}

// New constructs a Stream over seq. The Stream takes ownership of the slice;
// callers must not mutate it afterwards.
func New[T any](seq []T) *Stream[T] {
	return &Stream[T]{seq: seq}
}

// Get returns the element at the current position and advances by one.
// Out of range it returns the zero value of T and does not move.
func (s *Stream[T]) Get() T {
	if s.pos >= len(s.seq) {
		var zero T
		return zero
	}

	v := s.seq[s.pos]
	s.pos++
	return v
}

// Peek returns the element at the current position without advancing.
// Out of range it returns the zero value of T.
func (s *Stream[T]) Peek() T {
	if s.pos >= len(s.seq) {
		var zero T
		return zero
	}
	return s.seq[s.pos]
}

// Skip advances the position by one without producing a value.
func (s *Stream[T]) Skip() {
	s.Advance(1)
}

// Seek moves the position to the absolute index p, clamped into [0, len].
// Seeking out of range is legal; subsequent reads yield zero values until
// the position returns in range.
func (s *Stream[T]) Seek(p int) {
	s.pos = s.clamp(p)
}

// Advance moves the position forward by n (n >= 0) relative to the current
// position. Negative n is ignored.
func (s *Stream[T]) Advance(n int) {
	if n < 0 {
		return
	}
	s.pos = s.clamp(s.pos + n)
}

// Backup moves the position back by one. Used by the parser to retry an
// alternative production after a failed lookahead.
func (s *Stream[T]) Backup() {
	s.pos = s.clamp(s.pos - 1)
}

// Exhausted reports whether the next read would return a zero value.
func (s *Stream[T]) Exhausted() bool {
	return s.pos >= len(s.seq)
}

// Pos returns the current position.
func (s *Stream[T]) Pos() int {
	return s.pos
}

// Len returns the length of the underlying sequence.
func (s *Stream[T]) Len() int {
	return len(s.seq)
}

func (s *Stream[T]) clamp(p int) int {
	if p < 0 {
		return 0
	}
	if p > len(s.seq) {
		return len(s.seq)
	}
	return p
}
