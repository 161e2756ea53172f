package frame

// StashLater detaches the content of f into a new parentless frame and
// leaves f in its slot as a void with its rectangle unchanged, so the
// on-screen partition keeps every leaf at its minimum size or above. The
// detached frame gets a zero rectangle until it is restored. Returns nil
// when there was nothing worth keeping (f already was a void).
func (l *Layout) StashLater(f *Frame) *Frame {
	if f == nil || f.IsVoid() {
		return nil
	}
	detached := &Frame{}
	takeContent(detached, f)
	l.notify(f)
	return detached
}

// LinkIntoStash pushes f onto the stash; the most recent push is popped
// first. Nil, attached and already stashed frames are ignored.
func (l *Layout) LinkIntoStash(f *Frame) {
	if f == nil || f.stashed {
		return
	}
	if f.Parent != nil || l.IsOnScreen(f) {
		l.logger.Warn("refusing to stash an attached frame", "window", f.Window)
		return
	}
	f.stashNext = l.stash
	f.stashed = true
	l.stash = f
}

// UnlinkFromStash removes f from anywhere in the stash. Reports whether f
// was found.
func (l *Layout) UnlinkFromStash(f *Frame) bool {
	if f == nil || !f.stashed {
		return false
	}
	var prev *Frame
	for s := l.stash; s != nil; s = s.stashNext {
		if s != f {
			prev = s
			continue
		}
		if prev == nil {
			l.stash = s.stashNext
		} else {
			prev.stashNext = s.stashNext
		}
		s.stashNext = nil
		s.stashed = false
		return true
	}
	return false
}

// PopStashed removes and returns the most recently stashed frame, or nil
// when the stash is empty.
func (l *Layout) PopStashed() *Frame {
	f := l.stash
	if f == nil {
		return nil
	}
	l.stash = f.stashNext
	f.stashNext = nil
	f.stashed = false
	return f
}

// Stash detaches the content of f and pushes it onto the stash in one go.
func (l *Layout) Stash(f *Frame) *Frame {
	detached := l.StashLater(f)
	l.LinkIntoStash(detached)
	return detached
}

// FillVoidWithStash pops the most recent stash entry into the void f and
// lays it out in f's rectangle. It does nothing when f is not a void, the
// stash is empty or the entry does not fit.
func (l *Layout) FillVoidWithStash(f *Frame) bool {
	if f == nil || !f.IsVoid() || l.stash == nil {
		return false
	}
	w, h := l.MinimumSize(l.stash)
	if w > f.Width || h > f.Height {
		return false
	}
	popped := l.PopStashed()
	number := f.Number
	takeContent(f, popped)
	if f.Number == 0 {
		f.Number = number
	}
	l.relayout(f)
	return true
}

// Stashed returns the stash entries, most recent first.
func (l *Layout) Stashed() []*Frame {
	var out []*Frame
	for s := l.stash; s != nil; s = s.stashNext {
		out = append(out, s)
	}
	return out
}

// StashCount returns the number of stash entries.
func (l *Layout) StashCount() int {
	n := 0
	for s := l.stash; s != nil; s = s.stashNext {
		n++
	}
	return n
}
