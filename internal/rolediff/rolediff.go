// Package rolediff reports how bullet roles change between two versions of a
// document. Lines are aligned with a line-mode diff so an insertion does not
// shift every later line into a false change.
package rolediff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/bulletdash/internal/bullet"
	"github.com/zjrosen/bulletdash/internal/structure"
)

// Kind classifies a reported change.
type Kind string

const (
	KindRetagged Kind = "retagged" // same line, different role
	KindAdded    Kind = "added"    // bullet only in the new version
	KindRemoved  Kind = "removed"  // bullet only in the old version
)

// Change is one bullet whose role differs between versions. Line numbers are
// 1-based; a side the bullet does not exist on is 0 and its role is nil.
type Change struct {
	Kind    Kind            `json:"kind"`
	OldLine int             `json:"oldLine,omitempty"`
	NewLine int             `json:"newLine,omitempty"`
	Text    string          `json:"text"`
	From    *structure.Role `json:"from,omitempty"`
	To      *structure.Role `json:"to,omitempty"`
}

// Report lists changes in new-document order.
type Report struct {
	Changes []Change `json:"changes"`
}

// Count returns how many changes are of kind k.
func (r Report) Count(k Kind) int {
	n := 0
	for _, c := range r.Changes {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// Empty reports whether no bullet changed role.
func (r Report) Empty() bool {
	return len(r.Changes) == 0
}

// Compare analyzes both versions and aligns their lines.
func Compare(oldText, newText string) Report {
	oldRoles := structure.Analyze(oldText)
	newRoles := structure.Analyze(newText)

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(terminate(oldText), terminate(newText))
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	report := Report{Changes: []Change{}}
	oldLine, newLine := 1, 1
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			_, isBullet := bullet.Parse(line)
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				if isBullet {
					from, to := oldRoles.Role(oldLine), newRoles.Role(newLine)
					if from != to {
						report.Changes = append(report.Changes, Change{
							Kind: KindRetagged, OldLine: oldLine, NewLine: newLine,
							Text: line, From: &from, To: &to,
						})
					}
				}
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				if isBullet {
					from := oldRoles.Role(oldLine)
					report.Changes = append(report.Changes, Change{
						Kind: KindRemoved, OldLine: oldLine, Text: line, From: &from,
					})
				}
				oldLine++
			case diffmatchpatch.DiffInsert:
				if isBullet {
					to := newRoles.Role(newLine)
					report.Changes = append(report.Changes, Change{
						Kind: KindAdded, NewLine: newLine, Text: line, To: &to,
					})
				}
				newLine++
			}
		}
	}
	return report
}

// terminate makes the last line comparable whether or not it ends in '\n'.
func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// splitLines splits diff text into lines without their terminators.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
