package git

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/autogit/autogit/internal/models"
)

// parseShortStatus parses `git status --short` output.
// Format: XY PATH
// X = index status, Y = worktree status
//
// Only lines with a worktree change (Y != ' ') are returned. Index-only
// changes are listed by `git diff --cached` instead.
func parseShortStatus(output string) []models.FileEntry {
	var files []models.FileEntry
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 4 {
			continue
		}

		indexChar := models.StatusCode(line[0])
		worktreeChar := models.StatusCode(line[1])
		if worktreeChar == models.StatusUnmodified {
			continue
		}

		raw := line[3:]
		path := raw

		// Handle renames (format: "R  old -> new")
		if indexChar == models.StatusRenamed || indexChar == models.StatusCopied {
			if _, to, ok := strings.Cut(raw, " -> "); ok {
				path = to // Use new name
			}
		}

		files = append(files, models.FileEntry{
			Path:     unquotePath(path),
			Raw:      raw,
			Kind:     models.FileUntracked,
			Index:    indexChar,
			Worktree: worktreeChar,
		})
	}

	return files
}

// parseNameOnly parses `git diff --name-only` output.
func parseNameOnly(output string) []models.FileEntry {
	var files []models.FileEntry
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		files = append(files, models.FileEntry{
			Path: unquotePath(line),
			Raw:  line,
			Kind: models.FileStaged,
		})
	}

	return files
}

// unquotePath undoes git's C-style quoting of unusual paths.
func unquotePath(path string) string {
	if len(path) < 2 || !strings.HasPrefix(path, `"`) || !strings.HasSuffix(path, `"`) {
		return path
	}
	unquoted, err := strconv.Unquote(path)
	if err != nil {
		return path
	}
	return unquoted
}
