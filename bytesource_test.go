package gettext

import (
	"bytes"
	"os"
	"path"
	"testing"
)

func checkSource(t *testing.T, src byteSource, content []byte) {
	t.Helper()
	if src.length() != int64(len(content)) {
		t.Fatalf("length mismatch: %d != %d", src.length(), len(content))
	}

	got, err := src.readExact(4)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content[:4]) {
		t.Fatalf("unexpected data %q", got)
	}
	// reads advance the cursor
	got, err = src.readExact(2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content[4:6]) {
		t.Fatalf("unexpected data %q", got)
	}

	// absolute seeks reposition it
	if err := src.seek(1); err != nil {
		t.Fatal(err)
	}
	got, err = src.readExact(3)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content[1:4]) {
		t.Fatalf("unexpected data %q", got)
	}

	// out of bounds seeks and reads fail without moving anything
	if err := src.seek(int64(len(content)) + 1); err == nil {
		t.Fatal("seek past the end unexpectedly succeeded")
	}
	if err := src.seek(-1); err == nil {
		t.Fatal("negative seek unexpectedly succeeded")
	}
	if err := src.seek(int64(len(content)) - 2); err != nil {
		t.Fatal(err)
	}
	if _, err := src.readExact(3); err == nil {
		t.Fatal("read past the end unexpectedly succeeded")
	}
	got, err = src.readExact(2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content[len(content)-2:]) {
		t.Fatalf("unexpected data %q", got)
	}
}

func TestMemSource(t *testing.T) {
	content := []byte("Hello world!")
	src := newMemSource(content)
	defer src.Close()
	checkSource(t, src, content)
}

func TestFileSource(t *testing.T) {
	content := []byte("Hello world!")
	filename := path.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(filename, content, 0666); err != nil {
		t.Fatal(err)
	}

	src, err := openFileSource(filename)
	if err != nil {
		t.Fatal(err)
	}
	checkSource(t, src, content)
	if err := src.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFileSourceMissing(t *testing.T) {
	_, err := openFileSource(path.Join(t.TempDir(), "nowhere.bin"))
	if err == nil {
		t.Fatal("open of missing file unexpectedly succeeded")
	}
}

func TestPreloadedSource(t *testing.T) {
	content := []byte("Hello world!")
	filename := path.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(filename, content, 0666); err != nil {
		t.Fatal(err)
	}

	src, err := openPreloadedSource(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	checkSource(t, src, content)

	// The preloaded source is independent of the file once opened
	if err := os.Remove(filename); err != nil {
		t.Fatal(err)
	}
	if err := src.seek(0); err != nil {
		t.Fatal(err)
	}
	got, err := src.readExact(len(content))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("unexpected data %q", got)
	}
}
