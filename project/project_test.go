package project

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huti-dev/huti/pathutil"
)

const fixture = `[build-system]
requires = ["setuptools"]
build-backend = "setuptools.build_meta"

[project]
name = "huti"
version = "0.1.2"
dependencies = [
    "beautifulsoup4",
    "requests >= 2.28",
]

[project.optional-dependencies]
dev = ["ipython", "requests >= 2.28"]
docs = ["sphinx"]
tests = ["pytest"]
`

func writeFixture(t *testing.T, dir pathutil.Path) pathutil.Path {
	t.Helper()
	file := dir.Join(FileName)
	require.NoError(t, file.WriteText(fixture))
	return file
}

func TestLoad(t *testing.T) {
	file := writeFixture(t, pathutil.Path(t.TempDir()))

	p, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "huti", p.Name)
	assert.Equal(t, "0.1.2", p.Version)
	assert.Equal(t, []string{"beautifulsoup4", "requests >= 2.28"}, p.Requires)
	assert.Equal(t, []string{"sphinx"}, p.Optional["docs"])

	deps := p.Dependencies()
	assert.Contains(t, deps["dependencies"], "beautifulsoup4")
	assert.Contains(t, deps["dev"], "ipython")
	assert.Contains(t, deps["tests"], "pytest")

	assert.Equal(t,
		[]string{"beautifulsoup4", "ipython", "pytest", "requests >= 2.28", "sphinx"},
		p.Requirements())
}

func TestLoad_Invalid(t *testing.T) {
	dir := pathutil.Path(t.TempDir())
	file := dir.Join(FileName)
	require.NoError(t, file.WriteText("project = [unclosed"))

	_, err := Load(file)
	assert.Error(t, err)

	_, err = Load(dir.Join("missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFind(t *testing.T) {
	root := pathutil.Path(t.TempDir())
	writeFixture(t, root)
	nested := root.Join("src", "huti")
	require.NoError(t, os.MkdirAll(string(nested), 0o755))

	p, err := Find(nested.Join("main.py"))
	require.NoError(t, err)
	assert.Equal(t, "huti", p.Name)
	assert.Equal(t, root.Join(FileName), p.File)

	_, err = Find(pathutil.Path(t.TempDir()).Join("x"))
	assert.ErrorIs(t, err, ErrNoProject)
}
