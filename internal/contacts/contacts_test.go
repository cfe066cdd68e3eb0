package contacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "New Orleans, LA.txt", "Ada Martin — met at jazz fest\n\nBen Ng\n")
	writeFile(t, dir, "Austin, TX.txt", "Casey Roy — old roommate\n")
	writeFile(t, dir, "notes.md", "not a contacts file\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.txt"), 0o755))

	d, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []string{"austin, tx", "new orleans, la"}, d.Keys())

	city, ok := d.Get("new orleans, la")
	require.True(t, ok)
	assert.Equal(t, "New Orleans, LA", city.Display)
	require.Len(t, city.Contacts, 2)
	assert.Equal(t, Contact{Name: "Ada Martin", Note: "met at jazz fest"}, city.Contacts[0])
	assert.Equal(t, Contact{Name: "Ben Ng", Note: ""}, city.Contacts[1])
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestParseLine(t *testing.T) {
	assert.Equal(t, Contact{Name: "Ada", Note: "likes coffee"}, parseLine("Ada — likes coffee"))
	assert.Equal(t, Contact{Name: "Ada", Note: ""}, parseLine("Ada"))
	assert.Equal(t, Contact{Name: "Ada", Note: ""}, parseLine("Ada — "))
}
