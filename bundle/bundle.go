// Package bundle packs generated PDFs into a single archive with a manifest.
package bundle

import (
	"archive/tar"
	"archive/zip"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

// ManifestName is the archive entry holding the manifest.
const ManifestName = "manifest.json"

// File is one archive entry.
type File struct {
	Name string
	Data []byte
}

// Manifest describes the archive contents.
type Manifest struct {
	RunID     string          `json:"run_id"`
	CreatedAt time.Time       `json:"created_at"`
	Title     string          `json:"title,omitempty"`
	Files     []ManifestEntry `json:"files"`
}

// ManifestEntry records the size and BLAKE3 digest of an entry.
type ManifestEntry struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	Blake3 string `json:"blake3"`
}

// Format 由输出路径的扩展名决定。
type Format string

const (
	FormatZip   Format = "zip"
	FormatTarXZ Format = "tar.xz"
)

// DetectFormat returns the archive format for path.
func DetectFormat(path string) (Format, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip, nil
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return FormatTarXZ, nil
	default:
		return "", fmt.Errorf("不支持的归档格式: %s（支持 .zip / .tar.xz）", path)
	}
}

// Digest returns the hex BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NewManifest builds the manifest for files.
func NewManifest(title string, files []File) Manifest {
	m := Manifest{
		RunID:     uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Title:     title,
		Files:     make([]ManifestEntry, 0, len(files)),
	}
	for _, f := range files {
		m.Files = append(m.Files, ManifestEntry{Name: f.Name, Size: int64(len(f.Data)), Blake3: Digest(f.Data)})
	}
	return m
}

// Write writes files and manifest.json into the archive at path.
func Write(path, title string, files []File) (Manifest, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Manifest{}, err
	}
	for _, f := range files {
		if f.Name == "" || f.Name == ManifestName {
			return Manifest{}, fmt.Errorf("无效的归档条目名 %q", f.Name)
		}
	}
	manifest := NewManifest(title, files)
	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to serialize manifest: %w", err)
	}
	entries := append([]File{{Name: ManifestName, Data: manifestData}}, files...)

	out, err := os.Create(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to create archive: %w", err)
	}
	switch format {
	case FormatZip:
		err = writeZip(out, entries, manifest.CreatedAt)
	default:
		err = writeTarXZ(out, entries, manifest.CreatedAt)
	}
	if cerr := out.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return Manifest{}, fmt.Errorf("写入归档 %s 失败: %w", path, err)
	}
	return manifest, nil
}

func writeZip(w io.Writer, entries []File, modified time.Time) error {
	zw := zip.NewWriter(w)
	for _, e := range entries {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: e.Name, Method: zip.Deflate, Modified: modified})
		if err != nil {
			return err
		}
		if _, err := fw.Write(e.Data); err != nil {
			return err
		}
	}
	return zw.Close()
}

func writeTarXZ(w io.Writer, entries []File, modified time.Time) error {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	tw := tar.NewWriter(xw)
	for _, e := range entries {
		header := &tar.Header{
			Name:    e.Name,
			Mode:    0o644,
			Size:    int64(len(e.Data)),
			ModTime: modified,
		}
		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if _, err := tw.Write(e.Data); err != nil {
			return err
		}
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return xw.Close()
}
