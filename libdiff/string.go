// Package libdiff computes and formats line diffs between generated seed
// files and the files on disk.
package libdiff

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Lines diffs from and to line by line. Each returned diff holds whole
// lines.
func Lines(from, to string) []diffpatch.Diff {
	diffCfg := diffpatch.New()
	a, b, lines := diffCfg.DiffLinesToChars(from, to)
	diffs := diffCfg.DiffMain(a, b, false)
	return diffCfg.DiffCharsToLines(diffs, lines)
}

func Changed(diffs []diffpatch.Diff) bool {
	for i := range diffs {
		if diffs[i].Type != diffpatch.DiffEqual {
			return true
		}
	}
	return false
}

// Stat counts inserted and deleted lines.
func Stat(diffs []diffpatch.Diff) (ins, del int) {
	for _, l := range explode(diffs) {
		switch l.op {
		case diffpatch.DiffInsert:
			ins++
		case diffpatch.DiffDelete:
			del++
		}
	}
	return
}

type line struct {
	op   diffpatch.Operation
	text string // without the trailing newline
	eol  bool
}

func explode(diffs []diffpatch.Diff) []line {
	var res []line
	for _, d := range diffs {
		text := d.Text
		for text != "" {
			l := line{op: d.Type}
			i := strings.IndexByte(text, '\n')
			if i == -1 {
				l.text, text = text, ""
			} else {
				l.text, l.eol, text = text[:i], true, text[i+1:]
			}
			res = append(res, l)
		}
	}
	return res
}

// Format renders diffs as unified diff hunks with ContextLines lines of
// context, colored when useColor is set.
func Format(diffs []diffpatch.Diff, useColor bool) string {
	lines := explode(diffs)
	del, ins, hunk := color.New(color.FgRed), color.New(color.FgGreen), color.New(color.FgCyan)
	if useColor {
		del.EnableColor()
		ins.EnableColor()
		hunk.EnableColor()
	} else {
		del.DisableColor()
		ins.DisableColor()
		hunk.DisableColor()
	}
	// line numbers before lines[i]
	oldNo := make([]int, len(lines)+1)
	newNo := make([]int, len(lines)+1)
	for i, l := range lines {
		oldNo[i+1], newNo[i+1] = oldNo[i], newNo[i]
		if l.op != diffpatch.DiffInsert {
			oldNo[i+1]++
		}
		if l.op != diffpatch.DiffDelete {
			newNo[i+1]++
		}
	}
	var buf strings.Builder
	for s := 0; s < len(lines); {
		c := s
		for c < len(lines) && lines[c].op == diffpatch.DiffEqual {
			c++
		}
		if c == len(lines) {
			break
		}
		start := max(s, c-ContextLines)
		end := c
		for {
			for end < len(lines) && lines[end].op != diffpatch.DiffEqual {
				end++
			}
			next := end
			for next < len(lines) && lines[next].op == diffpatch.DiffEqual {
				next++
			}
			if next == len(lines) || next-end > 2*ContextLines {
				end = min(end+ContextLines, next)
				break
			}
			end = next
		}
		buf.WriteString(hunk.Sprintf("@@ -%s +%s @@", span(oldNo[start], oldNo[end]), span(newNo[start], newNo[end])))
		buf.WriteByte('\n')
		for _, l := range lines[start:end] {
			switch l.op {
			case diffpatch.DiffDelete:
				buf.WriteString(del.Sprint(DeletePrefix + l.text))
			case diffpatch.DiffInsert:
				buf.WriteString(ins.Sprint(InsertPrefix + l.text))
			default:
				buf.WriteString(EqualPrefix + l.text)
			}
			buf.WriteByte('\n')
			if !l.eol {
				buf.WriteString(NoNewlineNote + "\n")
			}
		}
		s = end
	}
	return buf.String()
}

func span(from, to int) string {
	n := to - from
	if n == 0 {
		return fmt.Sprintf("%d,0", from)
	}
	if n == 1 {
		return fmt.Sprintf("%d", from+1)
	}
	return fmt.Sprintf("%d,%d", from+1, n)
}
