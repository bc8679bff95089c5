package garland

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWatchPhotosReportsNewImages(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var seen []string
	pw, err := WatchPhotos(dir, nil, func(path string) {
		mu.Lock()
		seen = append(seen, path)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("WatchPhotos: %v", err)
	}
	defer pw.Close()

	img := filepath.Join(dir, "family.png")
	if err := os.WriteFile(img, []byte("not a real png"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Non-image files in the same folder are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(seen)
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 {
		t.Fatalf("saw %d paths %v, want exactly the png", len(seen), seen)
	}
	if seen[0] != img {
		t.Errorf("saw %q, want %q", seen[0], img)
	}
}

func TestWatchPhotosMissingDir(t *testing.T) {
	if _, err := WatchPhotos(filepath.Join(t.TempDir(), "missing"), nil, func(string) {}); err == nil {
		t.Error("expected error for missing directory")
	}
}
