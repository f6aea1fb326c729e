package dictionary

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInsertDedup(t *testing.T) {
	d := New()
	if !d.Insert("hello") {
		t.Error("expected first insert to return true")
	}
	if d.Insert("hello") {
		t.Error("expected duplicate insert to return false")
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}
}

func TestFlushOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	d := New()
	d.Insert("zeta")
	d.Insert("alpha")
	if err := d.Flush(path, FlushOverwrite); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "alpha\nzeta\n" {
		t.Errorf("got %q, want sorted alpha\\nzeta\\n", data)
	}

	d2 := New()
	d2.Insert("only")
	if err := d2.Flush(path, FlushOverwrite); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "only\n" {
		t.Errorf("overwrite should replace contents, got %q", data)
	}
}

func TestFlushAppendUnionsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(path, []byte("existing\nalpha\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d := New()
	d.Insert("alpha")
	d.Insert("newword")
	if err := d.Flush(path, FlushAppend); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "alpha\nexisting\nnewword\n"
	if string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}

func TestFlushNoWriteDoesNotCreateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	d := New()
	d.Insert("word")
	if err := d.Flush(path, FlushNoWrite); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected no file to be created in no_write mode")
	}
}

func TestFlushAppendMissingFileIsNotError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.txt")

	d := New()
	d.Insert("word")
	if err := d.Flush(path, FlushAppend); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}
