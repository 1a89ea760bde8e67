package resource

import (
	"sort"

	"github.com/wippyai/gameres/errors"
)

// Entry is one reference section record: the pointer slot at Site refers
// to the resource identified by Key.
type Entry struct {
	Site int64
	Key  Key
}

// Table maps pointer slot positions to the resources they refer to.
// A Table is immutable once constructed; all methods are safe for
// concurrent use.
type Table struct {
	bySite  map[int64]Key
	entries []Entry
}

// NewTable builds a table from entries. Entries are sorted by site;
// two entries with the same site are rejected.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{
		bySite:  make(map[int64]Key, len(entries)),
		entries: make([]Entry, len(entries)),
	}
	copy(t.entries, entries)
	sort.Slice(t.entries, func(i, j int) bool { return t.entries[i].Site < t.entries[j].Site })

	for _, e := range t.entries {
		if _, dup := t.bySite[e.Site]; dup {
			return nil, errors.New(errors.PhaseDecode, errors.KindDuplicate).
				Path("references").
				Value(e.Site).
				Detail("duplicate reference entry at %#x", e.Site).
				Build()
		}
		t.bySite[e.Site] = e.Key
	}
	return t, nil
}

// Lookup returns the key referenced from site.
func (t *Table) Lookup(site int64) (Key, bool) {
	if t == nil {
		return Key{}, false
	}
	k, ok := t.bySite[site]
	return k, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the entries ordered by site.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Keys returns the distinct referenced keys in first-seen site order.
func (t *Table) Keys() []Key {
	if t == nil {
		return nil
	}
	seen := make(map[Key]struct{}, len(t.entries))
	var keys []Key
	for _, e := range t.entries {
		if _, ok := seen[e.Key]; ok {
			continue
		}
		seen[e.Key] = struct{}{}
		keys = append(keys, e.Key)
	}
	return keys
}
