package service

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

const truncatedMarker = "\n...(diff truncated)\n"

// applySedTransform runs the rule set over text.
func applySedTransform(text string, rules *RuleSet) (string, []RuleStat) {
	if rules == nil || rules.Len() == 0 {
		return text, nil
	}
	return rules.Apply(text)
}

// applySedPreview diffs before and after line by line and returns the number of changed hunks
// and a patch-text rendering of at most maxEdits hunks (0 means all), capped at diffCap bytes.
func applySedPreview(before, after string, maxEdits int, diffCap int) (int, string) {
	if before == after {
		return 0, ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	patches := dmp.PatchMake(before, diffs)
	edits := len(patches)
	if maxEdits > 0 && len(patches) > maxEdits {
		patches = patches[:maxEdits]
	}
	diff := dmp.PatchToText(patches)
	if diffCap > 0 && len(diff) > diffCap {
		diff = diff[:diffCap] + truncatedMarker
	}
	return edits, diff
}
