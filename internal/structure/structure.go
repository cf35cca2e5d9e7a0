// Package structure classifies bullet lines by how deep their subtree goes.
package structure

import (
	"github.com/zjrosen/bulletdash/internal/bullet"
	"github.com/zjrosen/bulletdash/internal/log"
)

// Role is the structural classification of a bullet line.
type Role int

const (
	Leaf        Role = iota // no deeper bullet follows
	Parent                  // has a child
	Grandparent             // has a grandchild
)

func (r Role) String() string {
	switch r {
	case Leaf:
		return "leaf"
	case Parent:
		return "parent"
	case Grandparent:
		return "grandparent"
	default:
		return "unknown"
	}
}

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Assignment maps 1-based line numbers to roles. Only bullet lines appear.
type Assignment map[int]Role

// Role returns the role for line, defaulting to Leaf for unknown lines.
func (a Assignment) Role(line int) Role {
	if r, ok := a[line]; ok {
		return r
	}
	return Leaf
}

// entry is one bullet line seen during the scan.
type entry struct {
	line  int
	width int
}

// Analyze scans text and assigns a role to every bullet line.
//
// For each bullet, the following bullets are visited in order until one at
// the same or a shallower width ends the subtree. Any deeper bullet is a
// child; a child immediately followed by a bullet deeper than itself makes
// the current line a grandparent. Non-bullet lines never participate.
func Analyze(text string) Assignment {
	var entries []entry
	bullet.Lines(text, func(number, _ int, line string) {
		if b, ok := bullet.Parse(line); ok {
			entries = append(entries, entry{line: number, width: b.Width()})
		}
	})

	roles := make(Assignment, len(entries))
	for i, cur := range entries {
		roles[cur.line] = classify(entries, i, cur)
	}

	log.Debug(log.CatAnalyze, "analyzed structure", "bullets", len(entries))
	return roles
}

func classify(entries []entry, i int, cur entry) Role {
	hasChild := false
	for j := i + 1; j < len(entries); j++ {
		next := entries[j]
		if next.width <= cur.width {
			break
		}
		hasChild = true
		// The inner scan stops at the first line after the child either way:
		// deeper means a grandchild, same-or-shallower ends the child's subtree.
		if j+1 < len(entries) && entries[j+1].width > next.width {
			return Grandparent
		}
	}
	if hasChild {
		return Parent
	}
	return Leaf
}

// Counts tallies roles, mainly for logging and summaries.
func (a Assignment) Counts() map[Role]int {
	counts := make(map[Role]int, 3)
	for _, r := range a {
		counts[r]++
	}
	return counts
}
