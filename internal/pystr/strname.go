package pystr

import "sync"

// StrName is the compact 16-bit interned-name handle of spec.md §4.B.
// Handle 0 is the null/empty sentinel and never appears in the table.
type StrName uint16

// Table is a two-way interning table. Default is the process-wide
// instance; NewTable lets an embedder construct an isolated table instead
// of sharing the global one.
type Table struct {
	mu       sync.Mutex
	forward  map[string]StrName
	reverse  []*Str // reverse[h-1] is the Str for handle h
}

// NewTable constructs an empty, isolated interning table.
func NewTable() *Table {
	return &Table{forward: make(map[string]StrName)}
}

// Get returns the handle for s, interning it if this is the first time
// this table has seen that byte sequence.
func (t *Table) Get(s string) StrName {
	t.mu.Lock()
	defer t.mu.Unlock()
	if h, ok := t.forward[s]; ok {
		return h
	}
	h := StrName(len(t.reverse) + 1)
	t.forward[s] = h
	t.reverse = append(t.reverse, New(s))
	return h
}

// GetStr interns the contents of a *Str.
func (t *Table) GetStr(s *Str) StrName { return t.Get(s.String()) }

// IsValid reports whether h indexes a live entry: 0 < h <= N.
func (t *Table) IsValid(h StrName) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return h > 0 && int(h) <= len(t.reverse)
}

// Sv returns the interned string view for h. Panics if h is invalid,
// since this is a contract violation per spec.md §7.
func (t *Table) Sv(h StrName) *Str {
	t.mu.Lock()
	defer t.mu.Unlock()
	if h == 0 || int(h) > len(t.reverse) {
		panic("pystr: invalid StrName handle")
	}
	return t.reverse[h-1]
}

// Escape returns the quoted/escaped form of the interned string for h.
func (t *Table) Escape(h StrName) string {
	return t.Sv(h).Escape(false)
}

// Default is the process-wide interning table. It is created when the
// package is initialized, not on first use, and is never torn down.
var Default = NewTable()
