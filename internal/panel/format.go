package panel

import (
	"fmt"
	"strings"
)

// Header lines that split a panel into selectable sections.
const (
	HeaderUntracked = "Untracked files"
	HeaderStaging   = "Staging files"
	HeaderBranches  = "Branches"

	currentBranchPrefix = "Current branch = "
)

const statusTemplate = `
help

branches : 1
add / restore from staging : a
commit : c
push : p
pull : u
refresh : r
exit : q

` + currentBranchPrefix + `%s

` + HeaderUntracked + `
%s

` + HeaderStaging + `
%s
`

const branchTemplate = `
help

git status : 1
switch : i
merge : m
delete branch : d
make branch : a
refresh : r
exit : q

` + currentBranchPrefix + `%s

` + HeaderBranches + `
%s
%s
`

// Template returns the three-slot template of a panel kind: current branch,
// first list, second list.
func Template(kind Kind) string {
	if kind == KindBranch {
		return branchTemplate
	}
	return statusTemplate
}

// Format renders a panel body. It is pure: identical inputs give identical
// lines. Leading and trailing blank lines are dropped and the text is split
// into the line-addressed form the buffer stores.
func Format(kind Kind, branch string, listA, listB []string) []string {
	text := fmt.Sprintf(Template(kind), branch, strings.Join(listA, "\n"), strings.Join(listB, "\n"))
	return trimBlankLines(strings.Split(text, "\n"))
}

func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
