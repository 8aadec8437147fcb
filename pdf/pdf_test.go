package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huti-dev/huti/cmdexec"
	"github.com/huti-dev/huti/pathutil"
)

// minimalPDF is the smallest well-formed single-page document the tools
// accept.
const minimalPDF = `%PDF-1.4
1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj
2 0 obj << /Type /Pages /Kids [3 0 R] /Count 1 >> endobj
3 0 obj << /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >> endobj
trailer << /Root 1 0 R >>
%%EOF
`

func writePDF(t *testing.T) pathutil.Path {
	t.Helper()
	file := pathutil.Path(t.TempDir()).Join("doc.pdf")
	require.NoError(t, file.WriteText(minimalPDF))
	return file
}

func requireTool(t *testing.T, name string) {
	t.Helper()
	if cmdexec.Which(name) == "" {
		t.Skipf("%s not installed", name)
	}
}

func TestLinearize(t *testing.T) {
	requireTool(t, "qpdf")
	file := writePDF(t)
	require.NoError(t, Linearize(context.Background(), file))
	assert.True(t, file.IsFile())
}

func TestLinearize_MissingTool(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	err := Linearize(context.Background(), "whatever.pdf")
	assert.ErrorIs(t, err, cmdexec.ErrCommandNotFound)
}

func TestReplace(t *testing.T) {
	dir := pathutil.Path(t.TempDir())
	tmp := dir.Join("tmp.pdf")
	file := dir.Join("final.pdf")
	require.NoError(t, tmp.WriteText("rewritten"))
	require.NoError(t, file.WriteText("old"))

	require.NoError(t, replace(tmp, file))
	text, err := file.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "rewritten", text)
	assert.False(t, tmp.Exists())

	// The copy path taken when rename cannot cross filesystems.
	require.NoError(t, tmp.WriteText("copied"))
	require.NoError(t, copyOver(tmp, file))
	text, err = file.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "copied", text)
}

func TestReduce_BelowThreshold(t *testing.T) {
	file := writePDF(t)
	before, err := file.Checksum()
	require.NoError(t, err)

	// Tiny file stays untouched, no gs needed.
	require.NoError(t, Reduce(context.Background(), file, LevelScreen, ReduceThreshold))

	after, err := file.Checksum()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestReduce_Forced(t *testing.T) {
	requireTool(t, "gs")
	file := writePDF(t)
	require.NoError(t, Reduce(context.Background(), file, LevelScreen, -1))
	assert.True(t, file.IsFile())
}

func TestScan(t *testing.T) {
	requireTool(t, "convert")
	file := writePDF(t)

	dest, err := Scan(context.Background(), file, "")
	require.NoError(t, err)
	assert.Equal(t, ScanPrefix+"doc.pdf", dest.Name())
	assert.True(t, dest.IsFile())

	out := pathutil.Path(t.TempDir()).Join("generated")
	dest, err = Scan(context.Background(), file, out)
	require.NoError(t, err)
	assert.Equal(t, out.Join(ScanPrefix+"doc.pdf"), dest)
}

func TestToImage(t *testing.T) {
	requireTool(t, "pdftoppm")
	file := writePDF(t)

	image, err := ToImage(context.Background(), file, 72, JPEG)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", image.Suffix())
	assert.True(t, image.IsFile())
}

func TestStripMetadata_MissingTool(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	err := StripMetadata(context.Background(), "whatever.pdf")
	assert.ErrorIs(t, err, cmdexec.ErrCommandNotFound)
}

func TestScanRotation(t *testing.T) {
	for i := 0; i < 100; i++ {
		r := scanRotation()
		mag := r
		if mag < 0 {
			mag = -mag
		}
		assert.GreaterOrEqual(t, mag, 0.5)
		assert.LessOrEqual(t, mag, 0.9)
	}
}

func TestDiff(t *testing.T) {
	dir := pathutil.Path(t.TempDir())
	a := dir.Join("a.pdf")
	b := dir.Join("b.pdf")
	require.NoError(t, a.WriteText(minimalPDF))
	require.NoError(t, b.WriteText(minimalPDF))

	equal, err := Equal(a, b)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestDiff_Different(t *testing.T) {
	dir := pathutil.Path(t.TempDir())
	a := dir.Join("a.pdf")
	b := dir.Join("b.pdf")
	require.NoError(t, a.WriteText(minimalPDF))
	require.NoError(t, b.WriteText(minimalPDF+"tail\n"))

	diff, err := Diff(a, b)
	require.NoError(t, err)
	assert.Contains(t, diff, "+tail")

	equal, err := Equal(a, b)
	require.NoError(t, err)
	assert.False(t, equal)
}
