package gitops_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luismrgarcia/zigbee2mqtt/internal/gitops"
)

var testAuthor = gitops.Signature{Name: "Docs Bot", Email: "docs@example.com"}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestOpenRepository_FromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := gitops.InitRepository(dir)
	require.NoError(t, err)

	sub := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(sub, 0755))

	repo, err := gitops.OpenRepository(sub)
	require.NoError(t, err)

	rel, err := repo.RelPath(filepath.Join(sub, "Supported-devices.md"))
	require.NoError(t, err)
	assert.Equal(t, "docs/Supported-devices.md", rel)

	_, err = repo.RelPath(filepath.Join(filepath.Dir(dir), "elsewhere.md"))
	assert.Error(t, err)
}

func TestOpenRepository_NotARepository(t *testing.T) {
	_, err := gitops.OpenRepository(t.TempDir())
	assert.Error(t, err)
}

func TestCommitDocuments(t *testing.T) {
	dir := t.TempDir()
	repo, err := gitops.InitRepository(dir)
	require.NoError(t, err)

	catalog := filepath.Join(dir, "docs", "Supported-devices.md")
	guide := filepath.Join(dir, "docs", "Integrating-with-Home-Assistant.md")
	writeFile(t, catalog, "catalog v1\n")
	writeFile(t, guide, "guide v1\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "untracked, not committed\n")

	result, err := repo.CommitDocuments([]string{catalog, guide}, "", testAuthor)
	require.NoError(t, err)
	assert.True(t, result.Committed)
	assert.NotEmpty(t, result.Hash)
	assert.ElementsMatch(t, []string{"docs/Supported-devices.md", "docs/Integrating-with-Home-Assistant.md"}, result.Files)

	head, err := repo.HeadCommit()
	require.NoError(t, err)
	assert.Equal(t, gitops.DefaultCommitMessage, strings.TrimSpace(head.Message))
	assert.Equal(t, "Docs Bot", head.Author.Name)

	status, err := repo.GetStatus()
	require.NoError(t, err)
	notes, ok := status["notes.txt"]
	require.True(t, ok)
	assert.Equal(t, byte('?'), byte(notes.Staging))

	// nothing changed: no commit
	result, err = repo.CommitDocuments([]string{catalog, guide}, "", testAuthor)
	require.NoError(t, err)
	assert.False(t, result.Committed)
	assert.Empty(t, result.Files)

	// one document changed
	writeFile(t, catalog, "catalog v2\n")
	result, err = repo.CommitDocuments([]string{catalog, guide}, "update catalog", testAuthor)
	require.NoError(t, err)
	assert.True(t, result.Committed)
	assert.Equal(t, []string{"docs/Supported-devices.md"}, result.Files)

	head, err = repo.HeadCommit()
	require.NoError(t, err)
	assert.Equal(t, "update catalog", strings.TrimSpace(head.Message))
}

func TestCommitDocuments_RefusesForeignStagedChanges(t *testing.T) {
	dir := t.TempDir()
	repo, err := gitops.InitRepository(dir)
	require.NoError(t, err)

	other := filepath.Join(dir, "README.md")
	writeFile(t, other, "readme\n")
	require.NoError(t, repo.Add("README.md"))

	doc := filepath.Join(dir, "Supported-devices.md")
	writeFile(t, doc, "catalog\n")

	_, err = repo.CommitDocuments([]string{doc}, "", testAuthor)
	assert.ErrorContains(t, err, "README.md")
}

func TestCurrentBranchAndRoot(t *testing.T) {
	dir := t.TempDir()
	repo, err := gitops.InitRepository(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, repo.Root())

	// an unborn branch has no HEAD yet
	_, err = repo.CurrentBranch()
	assert.Error(t, err)

	doc := filepath.Join(dir, "Supported-devices.md")
	writeFile(t, doc, "catalog\n")
	_, err = repo.CommitDocuments([]string{doc}, "", testAuthor)
	require.NoError(t, err)

	branch, err := repo.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "master", branch)
}
