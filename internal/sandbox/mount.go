// SPDX-License-Identifier: MPL-2.0

package sandbox

import "strings"

// Mount is a single bind mount in a creation specification.
type Mount struct {
	// Source is the host path.
	Source string
	// Dest is the in-container path.
	Dest string
	// Options are mount options (ro, rslave, ...) in emission order.
	Options []string
}

// String renders the mount in the engine's "source:dest[:options]" format.
func (m Mount) String() string {
	s := m.Source + ":" + m.Dest
	if len(m.Options) > 0 {
		s += ":" + strings.Join(m.Options, ",")
	}
	return s
}

// mountList accumulates mounts in a fixed emission order while rejecting
// duplicate destinations. The first mount of a destination wins; a later
// overlapping mount must not contradict it.
type mountList struct {
	mounts []Mount
	dests  map[string]struct{}
}

func newMountList() *mountList {
	return &mountList{dests: make(map[string]struct{})}
}

// add appends the mount unless its destination is already claimed.
func (l *mountList) add(m Mount) {
	if _, dup := l.dests[m.Dest]; dup {
		return
	}
	l.dests[m.Dest] = struct{}{}
	l.mounts = append(l.mounts, m)
}
