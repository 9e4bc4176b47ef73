package models

// StatusCode is one column of git's two-column short status.
type StatusCode byte

const (
	StatusUnmodified StatusCode = ' '
	StatusModified   StatusCode = 'M'
	StatusTypeChange StatusCode = 'T'
	StatusAdded      StatusCode = 'A'
	StatusDeleted    StatusCode = 'D'
	StatusRenamed    StatusCode = 'R'
	StatusCopied     StatusCode = 'C'
	StatusUpdated    StatusCode = 'U' // Updated but unmerged
	StatusUntracked  StatusCode = '?'
	StatusIgnored    StatusCode = '!'
)

// FileKind tags which panel section a file entry belongs to.
type FileKind int

const (
	// FileUntracked is a file with changes not yet staged for commit.
	FileUntracked FileKind = iota
	// FileStaged is a file with changes in the index.
	FileStaged
)

func (k FileKind) String() string {
	switch k {
	case FileUntracked:
		return "untracked"
	case FileStaged:
		return "staged"
	default:
		return "unknown"
	}
}

// FileEntry is one file line of the status panel.
type FileEntry struct {
	// Path is the unquoted path handed to git on the command line.
	Path string
	// Raw is the path text exactly as git printed it (possibly quoted,
	// possibly "old -> new" for renames).
	Raw  string
	Kind FileKind

	// Index and Worktree are the X and Y columns of `git status --short`.
	// Staged entries read from `git diff --cached` leave them zero.
	Index    StatusCode
	Worktree StatusCode
}

// Code returns the two-column status code, e.g. "??" or " M".
func (f FileEntry) Code() string {
	index, worktree := f.Index, f.Worktree
	if index == 0 {
		index = StatusUnmodified
	}
	if worktree == 0 {
		worktree = StatusUnmodified
	}
	return string([]byte{byte(index), byte(worktree)})
}

func (f FileEntry) IsUntracked() bool {
	return f.Index == StatusUntracked && f.Worktree == StatusUntracked
}

// Display returns the line shown in the panel. Untracked entries keep git's
// "XY " decoration, staged entries are bare paths.
func (f FileEntry) Display() string {
	if f.Kind == FileStaged {
		return f.Raw
	}
	return f.Code() + " " + f.Raw
}
