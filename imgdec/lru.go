package imgdec

// lruList is an intrusive doubly-linked list of retained entries. The head
// is the most recently released entry, the tail the next eviction victim.
type lruList struct {
	head, tail *Entry
	bytes      int
}

// pushFront inserts e as the most recently used entry.
func (l *lruList) pushFront(e *Entry) {
	if e.inLRU {
		l.remove(e)
	}
	e.prev = nil
	e.next = l.head
	if l.head != nil {
		l.head.prev = e
	}
	l.head = e
	if l.tail == nil {
		l.tail = e
	}
	e.inLRU = true
	l.bytes += e.size
}

// remove unlinks e. Entries not in the list are ignored.
func (l *lruList) remove(e *Entry) {
	if !e.inLRU {
		return
	}
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev, e.next = nil, nil
	e.inLRU = false
	l.bytes -= e.size
}

// oldest returns the least recently used entry, or nil.
func (l *lruList) oldest() *Entry {
	return l.tail
}
