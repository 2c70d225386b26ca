package fonts

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltin(t *testing.T) {
	for _, name := range []string{Regular, Bold} {
		data, err := Load("embed:" + name)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%s) returned no data", name)
		}
	}
	if !bytes.Equal(Fallback(), builtin[Regular]) {
		t.Fatalf("fallback should be the regular face")
	}
}

func TestLoadUnknownBuiltin(t *testing.T) {
	if _, err := Load("embed:missing"); err == nil {
		t.Fatalf("expected error for unknown builtin font")
	}
}

func TestLoadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.ttf")
	if err := os.WriteFile(path, []byte("ttf"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := Load(path)
	if err != nil || string(data) != "ttf" {
		t.Fatalf("Load(path) = %q, %v", data, err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "nope.ttf")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
