package git

import (
	"bufio"
	"strings"

	"github.com/autogit/autogit/internal/models"
)

// parseBranches parses `git branch -a` output into tagged entries.
// Symbolic refs ("remotes/origin/HEAD -> origin/main") and the detached HEAD
// line are not branches and are skipped.
func parseBranches(output string) []models.Branch {
	var branches []models.Branch
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || len(line) < 3 {
			continue
		}

		branch := models.Branch{}

		// Check if current branch (marked with *)
		if line[0] == '*' {
			branch.IsCurrent = true
		}

		// First two columns are markers: "* ", "+ " (other worktree) or "  ".
		name := strings.TrimSpace(line[2:])
		if strings.Contains(name, " -> ") || strings.HasPrefix(name, "(") {
			continue
		}

		if rest, ok := strings.CutPrefix(name, "remotes/"); ok {
			remote, short, found := strings.Cut(rest, "/")
			if !found || short == "" {
				continue
			}
			branch.Kind = models.BranchRemote
			branch.Remote = remote
			branch.Name = short
		} else {
			branch.Kind = models.BranchLocal
			branch.Name = name
		}

		branches = append(branches, branch)
	}

	return branches
}
