package archive

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huti-dev/huti/pathutil"
)

func TestTarDirUntar(t *testing.T) {
	work, restore, err := pathutil.TempCd("archive")
	require.NoError(t, err)
	t.Cleanup(restore)

	src := work.Join("payload")
	require.NoError(t, os.MkdirAll(string(src.Join("nested")), 0o755))
	require.NoError(t, src.Join("test.txt").WriteText("hello\n"))
	require.NoError(t, src.Join("nested", "deep.txt").WriteText("deep\n"))

	compressed, err := TarDir(src)
	require.NoError(t, err)
	assert.Equal(t, "payload.tar.gz", compressed.Name())
	assert.True(t, compressed.IsFile())

	dest := work.Join("out")
	require.NoError(t, os.MkdirAll(string(dest), 0o755))
	extracted, err := Untar(compressed, dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", extracted.Name())
	assert.True(t, extracted.IsDir())

	text, err := extracted.Join("test.txt").ReadText()
	require.NoError(t, err)
	assert.Equal(t, "hello\n", text)
	assert.True(t, extracted.Join("nested", "deep.txt").IsFile())
}

func TestTarDir_Errors(t *testing.T) {
	work, restore, err := pathutil.TempCd("archive")
	require.NoError(t, err)
	t.Cleanup(restore)

	_, err = TarDir(work.Join("missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = TarDir(work)
	assert.ErrorIs(t, err, ErrCompressCwd)
}

// entry is a hand-built archive member for extraction hardening tests. An
// empty link makes a regular file, otherwise a symlink to link.
type entry struct {
	name string
	link string
}

// writeArchive builds a .tar.gz with the given entries.
func writeArchive(t *testing.T, path pathutil.Path, entries ...entry) {
	t.Helper()
	f, err := os.Create(string(path))
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		if e.link != "" {
			require.NoError(t, tw.WriteHeader(&tar.Header{
				Name: e.name, Mode: 0o777, Linkname: e.link, Typeflag: tar.TypeSymlink,
			}))
			continue
		}
		body := []byte("x")
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: e.name, Mode: 0o644, Size: int64(len(body)), Typeflag: tar.TypeReg,
		}))
		_, err = tw.Write(body)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

func TestUntar_RejectsTraversal(t *testing.T) {
	dir := pathutil.Path(t.TempDir())
	archive := dir.Join("evil.tar.gz")
	writeArchive(t, archive, entry{name: "../escape.txt"})

	_, err := Untar(archive, dir.Join("out"))
	assert.ErrorIs(t, err, ErrUnsafePath)
}

func TestUntar_RejectsSymlinkedParent(t *testing.T) {
	outside := pathutil.Path(t.TempDir())
	dir := pathutil.Path(t.TempDir())
	archive := dir.Join("evil.tar.gz")
	writeArchive(t, archive,
		entry{name: "top/link", link: string(outside)},
		entry{name: "top/link/pwned.txt"},
	)

	_, err := Untar(archive, dir.Join("out"))
	assert.ErrorIs(t, err, ErrUnsafePath)
	assert.False(t, outside.Join("pwned.txt").Exists())
}

func TestUntar_ReplacesSymlinkTarget(t *testing.T) {
	outside := pathutil.Path(t.TempDir())
	victim := outside.Join("victim.txt")
	require.NoError(t, victim.WriteText("original"))

	dir := pathutil.Path(t.TempDir())
	archive := dir.Join("evil.tar.gz")
	writeArchive(t, archive,
		entry{name: "top/file", link: string(victim)},
		entry{name: "top/file"},
	)

	dest := dir.Join("out")
	extracted, err := Untar(archive, dest)
	require.NoError(t, err)

	// The second entry replaced the symlink instead of writing through it.
	text, err := victim.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "original", text)
	assert.False(t, extracted.Join("file").IsSymlink())
	assert.True(t, extracted.Join("file").IsFile())
}

func TestUntar_Empty(t *testing.T) {
	dir := pathutil.Path(t.TempDir())
	archive := dir.Join("empty.tar.gz")
	writeArchive(t, archive)

	_, err := Untar(archive, dir)
	assert.ErrorIs(t, err, ErrEmptyArchive)
}
