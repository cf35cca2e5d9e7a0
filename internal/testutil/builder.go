// Package testutil builds markdown outlines for tests.
package testutil

import (
	"strings"
)

// Builder accumulates outline lines and joins them into a document.
type Builder struct {
	lines []lineData
}

// NewBuilder creates an empty outline.
func NewBuilder() *Builder {
	return &Builder{}
}

// Bullet adds a bullet at depth levels of indentation.
func (b *Builder) Bullet(depth int, text string, opts ...LineOption) *Builder {
	line := lineData{bullet: true, depth: depth, text: text, marker: '-'}
	for _, opt := range opts {
		opt(&line)
	}
	b.lines = append(b.lines, line)
	return b
}

// Prose adds a non-bullet line at depth levels of indentation.
func (b *Builder) Prose(depth int, text string) *Builder {
	b.lines = append(b.lines, lineData{depth: depth, text: text})
	return b
}

// Blank adds an empty line.
func (b *Builder) Blank() *Builder {
	b.lines = append(b.lines, lineData{})
	return b
}

// Len returns the number of lines added so far.
func (b *Builder) Len() int {
	return len(b.lines)
}

// String joins the lines without a trailing newline.
func (b *Builder) String() string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = l.render()
	}
	return strings.Join(out, "\n")
}

// Lines returns each rendered line.
func (b *Builder) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = l.render()
	}
	return out
}

func (l lineData) render() string {
	if !l.bullet && l.text == "" {
		return ""
	}
	indent := strings.Repeat("  ", l.depth)
	if l.tabs {
		indent = strings.Repeat("\t", l.depth)
	}
	if !l.bullet {
		return indent + l.text
	}
	return indent + string(l.marker) + " " + l.text
}
