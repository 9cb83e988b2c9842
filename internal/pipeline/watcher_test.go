package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsEdit(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pinout.csv")
	if err := os.WriteFile(file, []byte("pin,name\n1,VCC\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(file)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(file, []byte("pin,name\n1,VCC\n2,GND\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case change := <-w.Changes:
		if change.Removed {
			t.Errorf("change = %+v, want a non-removal edit", change)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported within 5s")
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pinout.csv")
	if err := os.WriteFile(file, []byte("pin,name\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(file)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case change := <-w.Changes:
		t.Errorf("unexpected change for sibling file: %+v", change)
	case <-time.After(300 * time.Millisecond):
	}
}
