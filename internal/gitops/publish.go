package gitops

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
)

// DefaultCommitMessage is used when committing regenerated documents
const DefaultCommitMessage = "docs: regenerate supported devices and Home Assistant integration"

// PublishResult represents the outcome of committing generated documents
type PublishResult struct {
	Committed bool
	Hash      string
	Files     []string
}

// CommitDocuments stages the given document paths and commits them when any
// of them differs from HEAD. It refuses to run when other changes are
// already staged, so the commit only ever contains generated documents.
func (r *Repository) CommitDocuments(paths []string, message string, author Signature) (PublishResult, error) {
	var result PublishResult

	rels := make([]string, 0, len(paths))
	own := make(map[string]bool, len(paths))
	for _, p := range paths {
		rel, err := r.RelPath(p)
		if err != nil {
			return result, err
		}
		rels = append(rels, rel)
		own[rel] = true
	}

	status, err := r.GetStatus()
	if err != nil {
		return result, fmt.Errorf("failed to check repository status: %w", err)
	}
	if foreign := stagedOutside(status, own); len(foreign) > 0 {
		return result, fmt.Errorf("cannot commit documents: index has other staged changes (%s). Please commit or unstage them first", strings.Join(foreign, ", "))
	}

	if err := r.Add(rels...); err != nil {
		return result, err
	}

	status, err = r.GetStatus()
	if err != nil {
		return result, fmt.Errorf("failed to check repository status: %w", err)
	}
	for _, rel := range rels {
		if fs, ok := status[rel]; ok && isStaged(fs.Staging) {
			result.Files = append(result.Files, rel)
		}
	}
	if len(result.Files) == 0 {
		return result, nil
	}

	if message == "" {
		message = DefaultCommitMessage
	}

	hash, err := r.Commit(message, author)
	if err != nil {
		return result, err
	}

	result.Committed = true
	result.Hash = hash
	return result, nil
}

func stagedOutside(status git.Status, own map[string]bool) []string {
	var foreign []string
	for path, fs := range status {
		if own[path] {
			continue
		}
		if isStaged(fs.Staging) {
			foreign = append(foreign, path)
		}
	}
	sort.Strings(foreign)
	return foreign
}

func isStaged(code git.StatusCode) bool {
	return code != git.Unmodified && code != git.Untracked
}
