package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autogit/autogit/internal/models"
)

func TestParseBranches(t *testing.T) {
	out := `* main
  dev
+ worktree-branch
  remotes/origin/HEAD -> origin/main
  remotes/origin/dev
  remotes/upstream/feature/login
`

	branches := parseBranches(out)
	require.Len(t, branches, 5)

	assert.Equal(t, models.Branch{Name: "main", Kind: models.BranchLocal, IsCurrent: true}, branches[0])
	assert.Equal(t, models.Branch{Name: "dev", Kind: models.BranchLocal}, branches[1])
	assert.Equal(t, models.Branch{Name: "worktree-branch", Kind: models.BranchLocal}, branches[2])
	assert.Equal(t, models.Branch{Name: "dev", Remote: "origin", Kind: models.BranchRemote}, branches[3])
	assert.Equal(t, models.Branch{Name: "feature/login", Remote: "upstream", Kind: models.BranchRemote}, branches[4])
}

func TestParseBranchesSkipsDetachedHead(t *testing.T) {
	out := "* (HEAD detached at 1a2b3c4)\n  main\n"

	branches := parseBranches(out)
	require.Len(t, branches, 1)
	assert.Equal(t, "main", branches[0].Name)
	assert.False(t, branches[0].IsCurrent)
}
