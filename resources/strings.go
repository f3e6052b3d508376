package resources

import (
	"github.com/daedaleanai/xdlrc/interchange"
)

// StringIdx is an interned name handle.
type StringIdx = interchange.StringIdx

// StringTable resolves interned names in both directions. It is built once
// and never grows.
type StringTable struct {
	strs  []string
	index map[string]StringIdx
}

// NewStringTable indexes strs. When a text appears more than once the first
// occurrence is its handle.
func NewStringTable(strs []string) *StringTable {
	t := &StringTable{
		strs:  strs,
		index: make(map[string]StringIdx, len(strs)),
	}
	for i, s := range strs {
		if _, ok := t.index[s]; !ok {
			t.index[s] = StringIdx(i)
		}
	}
	return t
}

// Get returns the text of id.
func (t *StringTable) Get(id StringIdx) string {
	return t.strs[id]
}

// Index returns the handle of s.
func (t *StringTable) Index(s string) (StringIdx, bool) {
	id, ok := t.index[s]
	return id, ok
}

// Len returns the number of handles.
func (t *StringTable) Len() int {
	return len(t.strs)
}
