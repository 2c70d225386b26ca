package bundle

import (
	"archive/tar"
	"archive/zip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

var sampleFiles = []File{
	{Name: "cards.pdf", Data: []byte("%PDF-cards")},
	{Name: "caller.pdf", Data: []byte("%PDF-caller")},
}

func TestWriteZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.zip")
	m, err := Write(path, "Fruit", sampleFiles)
	require.NoError(t, err)
	_, err = uuid.Parse(m.RunID)
	require.NoError(t, err)
	require.Len(t, m.Files, 2)
	require.Equal(t, Digest([]byte("%PDF-cards")), m.Files[0].Blake3)

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	got := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		got[f.Name] = data
	}
	require.Equal(t, []byte("%PDF-caller"), got["caller.pdf"])

	var decoded Manifest
	require.NoError(t, json.Unmarshal(got[ManifestName], &decoded))
	require.Equal(t, m.RunID, decoded.RunID)
	require.Equal(t, "Fruit", decoded.Title)
}

func TestWriteTarXZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tar.xz")
	_, err := Write(path, "", sampleFiles)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	xr, err := xz.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(xr)
	var names []string
	for {
		h, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, h.Name)
	}
	require.Equal(t, []string{ManifestName, "cards.pdf", "caller.pdf"}, names)
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	_, err := Write(filepath.Join(t.TempDir(), "out.rar"), "", sampleFiles)
	require.Error(t, err)
}

func TestWriteRejectsReservedName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.zip")
	_, err := Write(path, "", []File{{Name: ManifestName, Data: []byte("{}")}})
	require.Error(t, err)
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestDigestIsStable(t *testing.T) {
	require.Equal(t, Digest([]byte("bingo")), Digest([]byte("bingo")))
	require.NotEqual(t, Digest([]byte("bingo")), Digest([]byte("bingo!")))
	require.Len(t, Digest(nil), 64)
}
