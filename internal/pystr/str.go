// Package pystr implements the pooled byte string substrate of the
// interpreter core (spec.md §4.A): an immutable byte buffer with a small
// buffer optimization for sizes <= 16, UTF-8 aware queries, and the
// comparison/slicing operations identifiers and string values need.
//
// A Str is always held by pointer: it plays the role of a value that
// pocketpy passes around through a shared_ptr-like handle (PyVar), so a
// single Str struct is the single owner of its buffer for its whole
// lifetime, and there is never a second live copy of its fields to keep
// in sync. This sidesteps the move-vs-copy hazard spec.md §9 flags for
// languages without move semantics: because Str is immutable, aliasing
// the same *Str value everywhere it is referenced is always safe.
package pystr

import (
	"fmt"
	"strings"

	"pkvm/internal/pkerr"
	"pkvm/internal/pool"
)

// inlineCap is the small-buffer-optimization threshold from spec.md §3.
const inlineCap = 16

// Str is an immutable, owned byte string.
type Str struct {
	small  [inlineCap]byte
	big    []byte // nil when inlined
	length int
	ascii  bool
	cstr   []byte // lazily populated NUL-terminated duplicate
}

func computeASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// New constructs a Str from a Go string, computing is_ascii by scanning.
func New(s string) *Str { return NewBytes([]byte(s)) }

// NewBytes constructs a Str from a byte slice. The bytes are copied into
// the inline array or a pooled buffer, so b stays the caller's.
func NewBytes(b []byte) *Str {
	return newWithASCII(b, computeASCII(b))
}

// NewAssumeASCII constructs a Str without scanning, for callers that
// already know the content is pure ASCII (e.g. the assembler emitting
// mnemonics). Matches the C++ constructor family that lets the caller
// assert is_ascii.
func NewAssumeASCII(b []byte) *Str {
	return newWithASCII(b, true)
}

func newWithASCII(b []byte, ascii bool) *Str {
	s := &Str{length: len(b), ascii: ascii}
	if len(b) <= inlineCap {
		copy(s.small[:], b)
		return s
	}
	s.big = pool.Default.Alloc(len(b))
	copy(s.big, b)
	return s
}

// Reserve allocates a Str of the given size with uninitialized content,
// for callers (Concat, Stream) that know the final length up
// front and want to fill it in place without an intermediate copy.
func Reserve(size int, isASCII bool) *Str {
	s := &Str{length: size, ascii: isASCII}
	if size <= inlineCap {
		return s
	}
	s.big = pool.Default.Alloc(size)
	return s
}

func (s *Str) bytes() []byte {
	if s.big != nil {
		return s.big
	}
	return s.small[:s.length]
}

// mutBytes exposes the backing buffer for writers that just Reserve'd it.
// Not part of the public API: Str is immutable once observed by callers.
func (s *Str) mutBytes() []byte { return s.bytes() }

// IsInlined reports whether the buffer lives inside the Str itself.
func (s *Str) IsInlined() bool { return s.big == nil }

// Bytes returns the string's raw bytes. Callers must not mutate the
// returned slice.
func (s *Str) Bytes() []byte { return s.bytes() }

// String implements fmt.Stringer.
func (s *Str) String() string { return string(s.bytes()) }

// Length returns the length in bytes (same as Size).
func (s *Str) Length() int { return s.length }

// Size returns the length in bytes (same as Length).
func (s *Str) Size() int { return s.length }

// IsASCII reports whether every byte is < 0x80.
func (s *Str) IsASCII() bool { return s.ascii }

// ByteAt returns the byte at index i.
func (s *Str) ByteAt(i int) byte {
	if i < 0 || i >= s.length {
		pkerr.Bug("pystr: byte index %d out of range [0,%d)", i, s.length)
	}
	return s.bytes()[i]
}

// Slice returns the byte range [start, stop) as a new Str.
func (s *Str) Slice(start, stop int) *Str {
	if start < 0 || stop > s.length || start > stop {
		pkerr.Bug("pystr: byte slice [%d,%d) out of range for length %d", start, stop, s.length)
	}
	region := s.bytes()[start:stop]
	return newWithASCII(region, s.ascii || computeASCII(region))
}

// Equal reports bytewise equality (spec.md §4.A "Ordering").
func (s *Str) Equal(other *Str) bool {
	if s.length != other.length {
		return false
	}
	return string(s.bytes()) == string(other.bytes())
}

// Compare returns <0, 0, >0 per lexicographic byte order with a
// length tiebreak, matching str.cpp's operator< / operator>.
func (s *Str) Compare(other *Str) int {
	a, b := s.bytes(), other.bytes()
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func (s *Str) Less(other *Str) bool    { return s.Compare(other) < 0 }
func (s *Str) LessEq(other *Str) bool  { return s.Compare(other) <= 0 }
func (s *Str) Greater(other *Str) bool { return s.Compare(other) > 0 }
func (s *Str) GreaterEq(other *Str) bool {
	return s.Compare(other) >= 0
}

// CompareString compares s against a raw Go string by the same rule as
// Compare, matching str.cpp's operator<(std::string_view, ...) family that
// lets pocketpy order a Str against a literal without allocating one.
func (s *Str) CompareString(other string) int {
	a := s.bytes()
	n := len(a)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if a[i] != other[i] {
			if a[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(other):
		return -1
	case len(a) > len(other):
		return 1
	default:
		return 0
	}
}

func (s *Str) EqualString(other string) bool   { return s.CompareString(other) == 0 }
func (s *Str) LessString(other string) bool    { return s.CompareString(other) < 0 }
func (s *Str) LessEqString(other string) bool  { return s.CompareString(other) <= 0 }
func (s *Str) GreaterString(other string) bool { return s.CompareString(other) > 0 }
func (s *Str) GreaterEqString(other string) bool {
	return s.CompareString(other) >= 0
}

// Concat produces a new Str of size a.Size()+b.Size(), ASCII iff both are.
func Concat(a, b *Str) *Str {
	ret := Reserve(a.length+b.length, a.ascii && b.ascii)
	buf := ret.mutBytes()
	copy(buf, a.bytes())
	copy(buf[a.length:], b.bytes())
	return ret
}

// CStr returns a cached NUL-terminated duplicate for interop, lazily
// populated on first use per spec.md §4.A.
func (s *Str) CStr() []byte {
	if s.cstr == nil {
		buf := make([]byte, s.length+1)
		copy(buf, s.bytes())
		s.cstr = buf
	}
	return s.cstr
}

// isASCIISpace matches str.cpp's lstrip/strip predicate: space, tab,
// CR, LF only (not the full Unicode whitespace set).
func isASCIISpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// LStrip removes leading ASCII whitespace.
func (s *Str) LStrip() *Str {
	b := s.bytes()
	i := 0
	for i < len(b) && isASCIISpace(b[i]) {
		i++
	}
	return newWithASCII(b[i:], s.ascii)
}

// Strip removes ASCII whitespace from both ends.
func (s *Str) Strip() *Str {
	b := s.bytes()
	i, j := 0, len(b)
	for i < j && isASCIISpace(b[i]) {
		i++
	}
	for j > i && isASCIISpace(b[j-1]) {
		j--
	}
	return newWithASCII(b[i:j], s.ascii)
}

// Lower returns a lowercased copy (strings.ToLower, so non-ASCII letters
// are lowercased too).
func (s *Str) Lower() *Str { return NewBytes([]byte(strings.ToLower(string(s.bytes())))) }

// Upper returns an uppercased copy (strings.ToUpper, so non-ASCII letters
// are uppercased too).
func (s *Str) Upper() *Str { return NewBytes([]byte(strings.ToUpper(string(s.bytes())))) }

// Index returns the byte index of the first occurrence of sub at or after
// start, or -1.
func (s *Str) Index(sub *Str, start int) int {
	if start < 0 || start > s.length {
		pkerr.Bug("pystr: index start %d out of range for length %d", start, s.length)
	}
	i := strings.Index(string(s.bytes()[start:]), string(sub.bytes()))
	if i < 0 {
		return -1
	}
	return i + start
}

// Replace returns a new Str with occurrences of old replaced by new_,
// left-to-right. count = -1 replaces all occurrences.
func (s *Str) Replace(old, new_ *Str, count int) *Str {
	var stream Stream
	start := 0
	for {
		i := s.Index(old, start)
		if i == -1 {
			break
		}
		stream.Write(s.Slice(start, i))
		stream.Write(new_)
		start = i + old.length
		if count != -1 {
			count--
			if count == 0 {
				break
			}
		}
	}
	stream.Write(s.Slice(start, s.length))
	return stream.Str()
}

// Escape returns the string wrapped in quotes with \\, \n, \r, \t, \xHH
// escapes, matching str.cpp's escape().
func (s *Str) Escape(singleQuote bool) string {
	var sb strings.Builder
	quote := byte('"')
	if singleQuote {
		quote = '\''
	}
	sb.WriteByte(quote)
	for _, c := range s.bytes() {
		switch c {
		case '"':
			if !singleQuote {
				sb.WriteByte('\\')
			}
			sb.WriteByte('"')
		case '\'':
			if singleQuote {
				sb.WriteByte('\\')
			}
			sb.WriteByte('\'')
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if c <= 0x1f {
				fmt.Fprintf(&sb, `\x%02x`, c)
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}
