package pystr

import "pkvm/internal/pkerr"

// utf8Len returns the byte length of the UTF-8 code point whose leading
// byte is c, per spec.md §4.A: 1 if c < 0x80, else the position of the
// highest zero bit in the top nibble (2..6). If suppress is true, an
// invalid leading byte yields 0 instead of an error. U8Length does not go
// through this function; it counts non-continuation bytes directly.
func utf8Len(c byte, suppress bool) (int, error) {
	switch {
	case c&0b10000000 == 0:
		return 1, nil
	case c&0b11100000 == 0b11000000:
		return 2, nil
	case c&0b11110000 == 0b11100000:
		return 3, nil
	case c&0b11111000 == 0b11110000:
		return 4, nil
	case c&0b11111100 == 0b11111000:
		return 5, nil
	case c&0b11111110 == 0b11111100:
		return 6, nil
	}
	if suppress {
		return 0, nil
	}
	return 0, pkerr.New(pkerr.Decode, "invalid utf8 leading byte: 0x%02x", c)
}

// U8Length returns the number of UTF-8 code points.
func (s *Str) U8Length() int {
	if s.ascii {
		return s.length
	}
	return s.byteIndexToUnicode(s.length)
}

func (s *Str) byteIndexToUnicode(n int) int {
	if s.ascii {
		return n
	}
	b := s.bytes()
	count := 0
	for i := 0; i < n; i++ {
		if b[i]&0xC0 != 0x80 {
			count++
		}
	}
	return count
}

func (s *Str) unicodeIndexToByte(i int) int {
	if s.ascii {
		return i
	}
	b := s.bytes()
	j := 0
	for i > 0 {
		n, err := utf8Len(b[j], false)
		if err != nil {
			pkerr.Bug("pystr: %v", err)
		}
		j += n
		i--
	}
	return j
}

// U8GetItem returns the i'th UTF-8 code point as a one-code-point Str.
func (s *Str) U8GetItem(i int) *Str {
	byteIdx := s.unicodeIndexToByte(i)
	if byteIdx < 0 || byteIdx >= s.length {
		pkerr.Bug("pystr: u8 index %d out of range", i)
	}
	n, err := utf8Len(s.bytes()[byteIdx], false)
	if err != nil {
		pkerr.Bug("pystr: %v", err)
	}
	return s.Slice(byteIdx, byteIdx+n)
}

// U8Slice returns the UTF-8 code-point range [start, stop) stepped by
// step, which may be negative.
func (s *Str) U8Slice(start, stop, step int) *Str {
	if step == 0 {
		pkerr.Bug("pystr: u8_slice step must not be 0")
	}
	var stream Stream
	if s.ascii {
		b := s.bytes()
		if step > 0 {
			for i := start; i < stop; i += step {
				stream.Write(newWithASCII(b[i:i+1], true))
			}
		} else {
			for i := start; i > stop; i += step {
				stream.Write(newWithASCII(b[i:i+1], true))
			}
		}
		return stream.Str()
	}
	if step > 0 {
		for i := start; i < stop; i += step {
			stream.Write(s.U8GetItem(i))
		}
	} else {
		for i := start; i > stop; i += step {
			stream.Write(s.U8GetItem(i))
		}
	}
	return stream.Str()
}
