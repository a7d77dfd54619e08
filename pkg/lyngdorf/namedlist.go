package lyngdorf

import (
	"sort"
	"strings"
)

// Entry is one item of a device-supplied enumeration such as the source
// list or the RoomPerfect position list.
type Entry struct {
	Index int
	Name  string
}

// namedList accumulates a counted enumeration. The device first announces
// how many entries to expect, then sends one frame per entry; once the list
// is full the same frame shape means a selection instead.
//
// Not safe for concurrent use; the Receiver guards it with its own mutex.
type namedList struct {
	count int
	names map[int]string
}

// setCount resets the list for a fresh enumeration of n entries.
func (l *namedList) setCount(n int) {
	l.count = n
	l.names = make(map[int]string, n)
}

func (l *namedList) add(index int, name string) {
	if l.names == nil {
		l.names = make(map[int]string)
	}
	l.names[index] = name
}

// full reports whether every announced entry has arrived. A list with no
// pending count is full, so indexed frames that arrive before any COUNT
// carry the current selection rather than an entry.
func (l *namedList) full() bool {
	return len(l.names) >= l.count
}

// indexOf resolves a name to its device index, case-insensitively.
func (l *namedList) indexOf(name string) (int, bool) {
	for i, n := range l.names {
		if strings.EqualFold(n, name) {
			return i, true
		}
	}
	return 0, false
}

// entries returns the list ordered by device index.
func (l *namedList) entries() []Entry {
	out := make([]Entry, 0, len(l.names))
	for i, n := range l.names {
		out = append(out, Entry{Index: i, Name: n})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Index < out[b].Index })
	return out
}

func (l *namedList) reset() {
	l.count = 0
	l.names = nil
}
