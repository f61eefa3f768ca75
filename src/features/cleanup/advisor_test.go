package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/contre95/soulkeep/src/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockStore is an in-memory implementation of history.Store.
type MockStore struct {
	records map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{records: make(map[string]string)}
}

func (m *MockStore) Upsert(ctx context.Context, identifier, originPath string) error {
	m.records[identifier] = originPath
	return nil
}

func (m *MockStore) Lookup(ctx context.Context, identifier string) (string, bool, error) {
	origin, ok := m.records[identifier]
	return origin, ok, nil
}

func (m *MockStore) Remove(ctx context.Context, identifier string) error {
	delete(m.records, identifier)
	return nil
}

func (m *MockStore) ListAll(ctx context.Context) ([]history.Record, error) {
	records := []history.Record{}
	for id, origin := range m.records {
		records = append(records, history.Record{Identifier: id, OriginPath: origin})
	}
	return records, nil
}

func (m *MockStore) FindByPathPrefix(ctx context.Context, prefix string) ([]history.Record, error) {
	records := []history.Record{}
	for id, origin := range m.records {
		if history.UnderDir(origin, prefix) && origin != prefix {
			records = append(records, history.Record{Identifier: id, OriginPath: origin})
		}
	}
	return records, nil
}

func (m *MockStore) Count(ctx context.Context) (int, error) {
	return len(m.records), nil
}

// ScriptedPrompter replays canned answers and records how often it was asked.
type ScriptedPrompter struct {
	answers []rune
	asked   int
	shown   []string
}

func (p *ScriptedPrompter) next() rune {
	if p.asked >= len(p.answers) {
		panic("prompter asked more questions than scripted")
	}
	answer := p.answers[p.asked]
	p.asked++
	return answer
}

func (p *ScriptedPrompter) YesNo(question string) (bool, error) {
	return p.next() == 'y', nil
}

func (p *ScriptedPrompter) Choose(question string, choices []Choice, def rune) (rune, error) {
	return p.next(), nil
}

func (p *ScriptedPrompter) Show(text string) {
	p.shown = append(p.shown, text)
}

func newAdvisor(store history.Store, answers ...rune) (*Advisor, *ScriptedPrompter) {
	prompter := &ScriptedPrompter{answers: answers}
	return NewAdvisor(store, nil, prompter, nil), prompter
}

func TestSuggestSkipsWithoutIdentifier(t *testing.T) {
	advisor, prompter := newAdvisor(NewMockStore())

	outcome, err := advisor.Suggest(context.Background(), history.NewSession(), history.RemovedItem{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkip, outcome)
	assert.Zero(t, prompter.asked)
}

func TestSuggestSkipsWithoutRecord(t *testing.T) {
	advisor, prompter := newAdvisor(NewMockStore())

	outcome, err := advisor.Suggest(context.Background(), history.NewSession(), history.RemovedItem{
		AlbumID: "rel-1", Path: "/library/a.mp3",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkip, outcome)
	assert.Zero(t, prompter.asked)
}

func TestSuggestAlreadyGoneEvictsWithoutPrompt(t *testing.T) {
	store := NewMockStore()
	store.records["rel-1"] = filepath.Join(t.TempDir(), "vanished")
	advisor, prompter := newAdvisor(store)

	outcome, err := advisor.Suggest(context.Background(), history.NewSession(), history.RemovedItem{
		AlbumID: "rel-1", Path: "/library/a.mp3",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyGone, outcome)
	assert.Zero(t, prompter.asked)
	assert.NotContains(t, store.records, "rel-1")
}

func TestSuggestDirectoryYesDeletesAndEvicts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "AlbumFoo")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "a.mp3"), []byte("x"), 0644))

	store := NewMockStore()
	store.records["rel-1"] = dir
	advisor, _ := newAdvisor(store, 'y')

	outcome, err := advisor.Suggest(context.Background(), history.NewSession(), history.RemovedItem{
		AlbumID: "rel-1", Path: "/library/a.mp3",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeletedDir, outcome)
	assert.NoDirExists(t, dir)
	assert.NotContains(t, store.records, "rel-1")
}

func TestSuggestDirectoryNoKeepsFilesystemButEvicts(t *testing.T) {
	dir := t.TempDir()
	store := NewMockStore()
	store.records["rel-1"] = dir
	advisor, _ := newAdvisor(store, 'n')

	outcome, err := advisor.Suggest(context.Background(), history.NewSession(), history.RemovedItem{
		AlbumID: "rel-1", Path: "/library/a.mp3",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeKept, outcome)
	assert.DirExists(t, dir)
	assert.NotContains(t, store.records, "rel-1")
}

func TestSuggestFileDelete(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.mp3")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	store := NewMockStore()
	store.records["rel-1"] = file
	advisor, _ := newAdvisor(store, 'd')

	outcome, err := advisor.Suggest(context.Background(), history.NewSession(), history.RemovedItem{
		AlbumID: "rel-1", Path: "/library/a.mp3",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeletedFile, outcome)
	assert.NoFileExists(t, file)
	assert.NotContains(t, store.records, "rel-1")
}

func TestSuggestRecursiveDeletesParent(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "AlbumFoo")
	require.NoError(t, os.MkdirAll(parent, 0755))
	file := filepath.Join(parent, "a.mp3")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "b.mp3"), []byte("x"), 0644))

	store := NewMockStore()
	store.records["rel-1"] = file
	store.records["rel-2"] = filepath.Join(parent, "b.mp3")
	advisor, prompter := newAdvisor(store, 'r', 'y')

	outcome, err := advisor.Suggest(context.Background(), history.NewSession(), history.RemovedItem{
		AlbumID: "rel-1", Path: "/library/a.mp3",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeletedDirRecursive, outcome)
	assert.NoDirExists(t, parent)
	assert.NotContains(t, store.records, "rel-1")
	// The collateral record was shown to the operator before confirming.
	assert.Contains(t, prompter.shown, Warn(filepath.Join(parent, "b.mp3")))
}

func TestSuggestRecursiveAbortPreservesRecord(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "AlbumFoo")
	require.NoError(t, os.MkdirAll(parent, 0755))
	file := filepath.Join(parent, "a.mp3")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	store := NewMockStore()
	store.records["rel-1"] = file
	advisor, _ := newAdvisor(store, 'r', 'n')

	outcome, err := advisor.Suggest(context.Background(), history.NewSession(), history.RemovedItem{
		AlbumID: "rel-1", Path: "/library/a.mp3",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAborted, outcome)
	assert.FileExists(t, file)
	assert.Contains(t, store.records, "rel-1")
}

func TestSuggestRecursiveFileOnly(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "AlbumFoo")
	require.NoError(t, os.MkdirAll(parent, 0755))
	file := filepath.Join(parent, "a.mp3")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	other := filepath.Join(parent, "b.mp3")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))

	store := NewMockStore()
	store.records["rel-1"] = file
	advisor, _ := newAdvisor(store, 'r', 'f')

	outcome, err := advisor.Suggest(context.Background(), history.NewSession(), history.RemovedItem{
		AlbumID: "rel-1", Path: "/library/a.mp3",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeletedFile, outcome)
	assert.NoFileExists(t, file)
	assert.FileExists(t, other)
	assert.NotContains(t, store.records, "rel-1")
}

func TestSuggestSuppressionSilencesFutureRemovals(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.mp3")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	store := NewMockStore()
	store.records["rel-1"] = file
	advisor, prompter := newAdvisor(store, 's')
	session := history.NewSession()

	outcome, err := advisor.Suggest(context.Background(), session, history.RemovedItem{
		AlbumID: "rel-1", Path: "/library/a.mp3",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuppressed, outcome)
	assert.FileExists(t, file)

	// A second removal for the same album in the same run never prompts.
	outcome, err = advisor.Suggest(context.Background(), session, history.RemovedItem{
		AlbumID: "rel-1", Path: "/library/b.mp3", SourcePath: file,
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkip, outcome)
	assert.Equal(t, 1, prompter.asked)
}

func TestSuggestUsesLegacySourcePathAttribute(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.mp3")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	advisor, _ := newAdvisor(NewMockStore(), 'd')

	outcome, err := advisor.Suggest(context.Background(), history.NewSession(), history.RemovedItem{
		AlbumID: "rel-1", Path: "/library/a.mp3", SourcePath: file,
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeletedFile, outcome)
	assert.NoFileExists(t, file)
}
