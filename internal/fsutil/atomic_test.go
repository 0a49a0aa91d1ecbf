package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomicNoTmpLeftBehind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "taxonomy.yml")
	if err := WriteFileAtomic(path, []byte("version: 1\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected tmp file to be removed, got %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "version: 1\n" {
		t.Fatalf("unexpected content %q", string(data))
	}
}

func TestWriteFileAtomicPreservesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.yml")
	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("new")); err != nil {
		t.Fatalf("write: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestLockRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yml")
	unlock, err := Lock(path)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	unlock()
	unlock, err = Lock(path)
	if err != nil {
		t.Fatalf("relock: %v", err)
	}
	unlock()
}
