//go:build windows

package csvspan

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// mappedCursor on Windows: a PAGE_READONLY file mapping cannot be declared
// larger than the file it maps (that would extend the file, which needs
// write access), and there is no POSIX-style zero-fill past end-of-file, so
// there is no zero-copy way to grow the mapped view far enough to also cover
// the mandatory sentinel tail. OpenMapped still opens a real
// CreateFileMapping/MapViewOfFile section to read the file's bytes, then
// copies that view once into an owned buffer sized for the tail and
// releases the section immediately; every byte after that is served
// straight out of the owned buffer like any other cursor. This replaces
// entreya-csvquery's own Windows path, which skips the mapping APIs
// entirely and falls back to io.ReadAll.
type mappedCursor struct {
	data []byte
	size int
	pos  int
}

// OpenMapped memory-maps the file at path, copies its content into an
// owned buffer with the mandatory sentinel tail appended, and returns a
// StreamCursor exposing it as a single read-only window.
func OpenMapped(path string) (StreamCursor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &IoError{Err: err}
	}
	size := int(info.Size())

	data := make([]byte, size+sentinelTail)
	if size > 0 {
		h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY, 0, 0, nil)
		if err != nil {
			return nil, &IoError{Err: err}
		}
		addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ, 0, 0, uintptr(size))
		if err != nil {
			windows.CloseHandle(h)
			return nil, &IoError{Err: err}
		}
		view := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
		copy(data, view)
		windows.UnmapViewOfFile(addr)
		windows.CloseHandle(h)
	}

	return &mappedCursor{data: data, size: size}, nil
}

func (c *mappedCursor) Peek() ([]byte, int, error) {
	return c.data[c.pos:], c.size - c.pos, nil
}

func (c *mappedCursor) Advance(n int) {
	if n < 0 || c.pos+n > c.size {
		panic("csvspan: Advance past valid data")
	}
	c.pos += n
}

// Refill never has more to give: the whole file is already resident.
func (c *mappedCursor) Refill() (bool, error) {
	return false, nil
}

func (c *mappedCursor) Close() error {
	return nil
}
