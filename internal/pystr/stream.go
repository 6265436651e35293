package pystr

// Stream is the concatenation accumulator of spec.md §4.E (FastStrStream
// in pocketpy): it collects references to strings and, on Str(), allocates
// a single result buffer sized to the total and copies each part in
// order, propagating the ASCII flag by conjunction. This avoids the
// quadratic reallocation of naive += concatenation where many short
// fragments are joined; Replace and U8Slice use it.
type Stream struct {
	parts []*Str
}

// Write appends a part to the stream.
func (fs *Stream) Write(s *Str) *Stream {
	fs.parts = append(fs.parts, s)
	return fs
}

// Str finalizes the stream into a single Str.
func (fs *Stream) Str() *Str {
	total := 0
	ascii := true
	for _, p := range fs.parts {
		total += p.length
		ascii = ascii && p.ascii
	}
	result := Reserve(total, ascii)
	buf := result.mutBytes()
	offset := 0
	for _, p := range fs.parts {
		copy(buf[offset:], p.bytes())
		offset += p.length
	}
	return result
}
