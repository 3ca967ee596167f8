package mood

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{
		"happy", "tired", "bored", "anxious", "motivated",
		"sad", "stressed", "overwhelmed", "confused", "inspired",
	}, c.Names())

	for _, m := range c.Moods() {
		assert.NotEmpty(t, m.Emoji, m.Name)
		assert.NotEmpty(t, m.Reaction, m.Name)
		assert.NotEmpty(t, m.Categories, m.Name)
	}

	happy, ok := c.Lookup("  HAPPY ")
	require.True(t, ok)
	assert.Equal(t, "Happy", happy.Title())
	assert.Equal(t, "Happy 😊", happy.Label())
	_, ok = happy.Category("Energize")
	assert.True(t, ok)
}

func TestSuggest(t *testing.T) {
	c := Default().WithSeed(7)

	got, err := c.Suggest("tired", "", 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultSuggestions)
	assert.Len(t, uniq(got), len(got), "suggestions must be distinct")

	tired, _ := c.Lookup("tired")
	restore, ok := tired.Category("restore_body")
	require.True(t, ok)

	got, err = c.Suggest("tired", "restore_body", 100)
	require.NoError(t, err)
	assert.ElementsMatch(t, restore.Tasks, got)

	got, err = c.Suggest("tired", "no-such-category", 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	for _, task := range got {
		assert.Contains(t, tired.Tasks(), task)
	}
}

func TestSuggestDoesNotMutateCatalog(t *testing.T) {
	c := Default().WithSeed(1)
	happy, _ := c.Lookup("happy")
	before := append([]string(nil), happy.Categories[0].Tasks...)

	_, err := c.Suggest("happy", happy.Categories[0].Name, 3)
	require.NoError(t, err)

	after, _ := c.Lookup("happy")
	assert.Equal(t, before, after.Categories[0].Tasks)
}

func TestUnknownMood(t *testing.T) {
	c := Default()
	_, err := c.Suggest("grumpy", "", 3)
	require.ErrorIs(t, err, ErrUnknownMood)
	_, err = c.Random("")
	require.ErrorIs(t, err, ErrUnknownMood)
}

func TestRandom(t *testing.T) {
	c := Default().WithSeed(42)
	task, err := c.Random("inspired")
	require.NoError(t, err)
	inspired, _ := c.Lookup("inspired")
	assert.Contains(t, inspired.Tasks(), task)
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	tests := map[string]string{
		"empty":     `moods: []`,
		"no name":   "moods:\n  - emoji: x\n    categories: [{name: a, tasks: [t]}]",
		"no tasks":  "moods:\n  - name: calm\n    categories: [{name: a, tasks: []}]",
		"duplicate": "moods:\n  - name: calm\n    categories: [{name: a, tasks: [t]}]\n  - name: Calm\n    categories: [{name: a, tasks: [t]}]",
		"not yaml":  "moods: [",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadCustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moods.yaml")
	src := `moods:
  - name: Calm
    emoji: "🌊"
    reaction: "Stay with it."
    categories:
      - name: Rest
        tasks: ["Sit by a window", "Make tea"]
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"calm"}, c.Names())

	got, err := c.Suggest("calm", "rest", 5)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Sit by a window", "Make tea"}, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	def, err := Load("")
	require.NoError(t, err)
	assert.Len(t, def.Names(), 10)
}

func uniq(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		out[s] = struct{}{}
	}
	return out
}
