//go:build !windows

package csvspan

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// mappedCursor is the Mapped StreamCursor variant: it maps a file once and
// serves the whole thing as a single contiguous window. POSIX only
// zero-fills the *partial* last page of a file-backed mapping (the tail of
// the page that already holds file data); a whole page requested past that
// is backed by nothing at all and SIGBUSes on first touch. That rules out
// simply asking mmap for a length longer than the file.
//
// OpenMapped instead reserves address space first with an anonymous
// MAP_PRIVATE mapping sized to cover the file plus the sentinel tail, then
// overlays the real file on the leading portion of that reservation with a
// MAP_FIXED mapping. The trailing page(s) of the reservation are left as
// anonymous, kernel-zeroed memory and serve as the sentinel tail; the
// overlay never disturbs them. This is the same two-mapping shape
// csvmonkey's own tail handling relies on, built here with
// golang.org/x/sys/unix instead of a vendored syscall wrapper.
type mappedCursor struct {
	file *os.File
	data []byte // reserved region: data[:size] is file content, data[size:] is zero-filled tail
	size int    // logical file size (excludes the zero tail)
	pos  int
}

// roundUp rounds n up to the next multiple of mult (mult must be a power of two).
func roundUp(n, mult int) int {
	return (n + mult - 1) &^ (mult - 1)
}

// OpenMapped memory-maps the file at path and returns a StreamCursor
// exposing it as a single read-only window with the mandatory sentinel
// tail.
func OpenMapped(path string) (StreamCursor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Err: err}
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &IoError{Err: err}
	}
	size := int(info.Size())

	pageSize := unix.Getpagesize()
	reserveLen := roundUp(size+sentinelTail, pageSize)

	// Reserve the full span as anonymous, zero-filled memory first. This
	// fixes the address we'll overlay the file onto and guarantees the
	// tail past size stays backed (by the zero page) even when size lands
	// exactly on a page boundary.
	reservation, err := unix.Mmap(-1, 0, reserveLen, unix.PROT_READ, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		f.Close()
		return nil, &IoError{Err: err}
	}

	if size > 0 {
		addr := uintptr(unsafe.Pointer(&reservation[0]))
		// MAP_FIXED overlays the file on the leading size bytes of the
		// reservation at its exact address, replacing that portion of the
		// anonymous mapping in place; the reservation's trailing page(s)
		// are left untouched and keep serving as the zero-filled tail.
		_, _, errno := unix.Syscall6(unix.SYS_MMAP, addr, uintptr(size),
			uintptr(unix.PROT_READ), uintptr(unix.MAP_PRIVATE|unix.MAP_FIXED),
			uintptr(f.Fd()), 0)
		if errno != 0 {
			unix.Munmap(reservation)
			f.Close()
			return nil, &IoError{Err: errno}
		}
	}

	return &mappedCursor{file: f, data: reservation, size: size}, nil
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

// Refill never has more to give: the whole file is already mapped.
func (c *mappedCursor) Refill() (bool, error) {
	return false, nil
}

func (c *mappedCursor) Close() error {
	err := unix.Munmap(c.data)
	if cerr := c.file.Close(); err == nil {
		err = cerr
	}
	return err
}
