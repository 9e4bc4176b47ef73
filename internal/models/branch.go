package models

// BranchKind tags a branch as local or remote-tracking.
type BranchKind int

const (
	BranchLocal BranchKind = iota
	BranchRemote
)

func (k BranchKind) String() string {
	if k == BranchRemote {
		return "remote"
	}
	return "local"
}

type Branch struct {
	Name      string // short name, "dev" for both "dev" and "remotes/origin/dev"
	Remote    string // e.g. "origin", empty for local branches
	Kind      BranchKind
	IsCurrent bool
}

func (b Branch) IsRemote() bool {
	return b.Kind == BranchRemote
}

// RefName returns the name as `git branch -a` lists it.
func (b Branch) RefName() string {
	if b.IsRemote() {
		return "remotes/" + b.Remote + "/" + b.Name
	}
	return b.Name
}

// Display returns the panel line: a two character marker column followed by
// the ref name.
func (b Branch) Display() string {
	if b.IsCurrent {
		return "* " + b.RefName()
	}
	return "  " + b.RefName()
}
