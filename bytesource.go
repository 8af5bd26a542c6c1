package gettext

import (
	"fmt"
	"io"
	"os"
)

// byteSource is a random-access view of a fixed byte sequence. It keeps a
// single read cursor: Seek positions it, readExact consumes from it. A
// byteSource is not safe for concurrent use; see the package documentation.
type byteSource interface {
	// readExact returns the n bytes at the current position and advances
	// past them. Short sources fail the read rather than truncating it.
	readExact(n int) ([]byte, error)
	// seek moves the cursor to an absolute offset within the source.
	seek(offset int64) error
	// length is the total byte count of the source.
	length() int64

	io.Closer
}

// memSource serves reads out of an in-memory buffer.
type memSource struct {
	data []byte
	pos  int64
}

func newMemSource(data []byte) *memSource {
	return &memSource{data: data}
}

func (s *memSource) readExact(n int) ([]byte, error) {
	if n < 0 || s.pos+int64(n) > int64(len(s.data)) {
		return nil, fmt.Errorf("read of %d bytes at offset %d exceeds source size %d", n, s.pos, len(s.data))
	}
	b := s.data[s.pos : s.pos+int64(n)]
	s.pos += int64(n)
	return b, nil
}

func (s *memSource) seek(offset int64) error {
	if offset < 0 || offset > int64(len(s.data)) {
		return fmt.Errorf("seek to offset %d exceeds source size %d", offset, len(s.data))
	}
	s.pos = offset
	return nil
}

func (s *memSource) length() int64 {
	return int64(len(s.data))
}

func (s *memSource) Close() error {
	return nil
}

// fileSource serves reads from an open file via positioned reads. The
// handle is held for the lifetime of the source and released by Close.
type fileSource struct {
	f    *os.File
	size int64
	pos  int64
}

func openFileSource(path string) (*fileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &fileSource{f: f, size: fi.Size()}, nil
}

func (s *fileSource) readExact(n int) ([]byte, error) {
	if n < 0 || s.pos+int64(n) > s.size {
		return nil, fmt.Errorf("read of %d bytes at offset %d exceeds source size %d", n, s.pos, s.size)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(io.NewSectionReader(s.f, s.pos, int64(n)), b); err != nil {
		return nil, err
	}
	s.pos += int64(n)
	return b, nil
}

func (s *fileSource) seek(offset int64) error {
	if offset < 0 || offset > s.size {
		return fmt.Errorf("seek to offset %d exceeds source size %d", offset, s.size)
	}
	s.pos = offset
	return nil
}

func (s *fileSource) length() int64 {
	return s.size
}

func (s *fileSource) Close() error {
	return s.f.Close()
}

// openPreloadedSource reads the whole file up front and serves lookups from
// memory. Same contract as fileSource, traded for a single read at open.
func openPreloadedSource(path string) (*memSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return newMemSource(data), nil
}
