package csvspan

import (
	"io"
)

// bufferedDefaultSize is the default read-ahead chunk size, matching the
// 256 KiB default for OpenBuffered.
const bufferedDefaultSize = 256 * 1024

// compactionThreshold: once the already-consumed prefix (readPos) reaches
// this fraction of the filled region (writeEnd), Refill compacts by
// sliding the unread bytes to the front before it reads more.
const compactionThreshold = 0.5

// bufferedCursor owns a growable byte buffer fed from an io.Reader. It
// maintains the sentinelTail invariant after every Refill, growing and
// compacting the way a preallocated buffer grows incrementally on demand,
// adapted here to read lazily, row at a time, rather than eagerly
// slurping the whole source up front.
type bufferedCursor struct {
	src      io.Reader
	chunk    int
	buf      []byte // logical content is buf[:writeEnd]; buf[writeEnd:writeEnd+sentinelTail] is always zero
	readPos  int
	writeEnd int
	eof      bool
	ioErr    error
}

// OpenBuffered returns a StreamCursor that reads from r in bufSize
// increments (bufferedDefaultSize if bufSize <= 0), compacting and
// growing its internal buffer as needed while always exposing the
// mandatory sentinel tail.
func OpenBuffered(r io.Reader, bufSize int) StreamCursor {
	if bufSize <= 0 {
		bufSize = bufferedDefaultSize
	}
	c := &bufferedCursor{
		src:   r,
		chunk: bufSize,
		buf:   make([]byte, bufSize+sentinelTail),
	}
	return c
}

func (c *bufferedCursor) Peek() ([]byte, int, error) {
	if c.ioErr != nil {
		return nil, 0, c.ioErr
	}
	validLen := c.writeEnd - c.readPos
	return c.buf[c.readPos : c.writeEnd+sentinelTail], validLen, nil
}

func (c *bufferedCursor) Advance(n int) {
	if n < 0 || c.readPos+n > c.writeEnd {
		panic("csvspan: Advance past valid data")
	}
	c.readPos += n
}

func (c *bufferedCursor) Refill() (bool, error) {
	if c.ioErr != nil {
		return false, c.ioErr
	}
	if c.eof {
		return false, nil
	}

	c.compactIfNeeded()
	c.ensureCapacity()

	n, err := c.src.Read(c.buf[c.writeEnd : c.writeEnd+c.chunk])
	if n > 0 {
		c.writeEnd += n
		c.zeroSentinelTail()
	}
	if err != nil {
		if err == io.EOF {
			c.eof = true
			return n > 0, nil
		}
		c.ioErr = &IoError{Err: err}
		return false, c.ioErr
	}
	return true, nil
}

func (c *bufferedCursor) Close() error {
	c.eof = true
	return nil
}

// compactIfNeeded slides unread bytes down to the front of buf once the
// already-consumed prefix reaches compactionThreshold of the filled region
// buf[:writeEnd], or when nothing unread remains, reclaiming space before
// ensureCapacity decides whether the buffer must grow.
func (c *bufferedCursor) compactIfNeeded() {
	if c.readPos == 0 {
		return
	}
	liveLen := c.writeEnd - c.readPos
	if float64(c.readPos) < float64(c.writeEnd)*compactionThreshold && liveLen > 0 {
		return
	}
	copy(c.buf, c.buf[c.readPos:c.writeEnd])
	c.writeEnd = liveLen
	c.readPos = 0
	c.zeroSentinelTail()
}

// ensureCapacity grows buf geometrically so a full chunk-sized read plus
// the sentinel tail always fits.
func (c *bufferedCursor) ensureCapacity() {
	needed := c.writeEnd + c.chunk + sentinelTail
	if cap(c.buf) >= needed {
		c.buf = c.buf[:cap(c.buf)]
		return
	}
	newCap := cap(c.buf) * 2
	if newCap < needed {
		newCap = needed
	}
	grown := make([]byte, newCap)
	copy(grown, c.buf[:c.writeEnd])
	c.buf = grown
}

func (c *bufferedCursor) zeroSentinelTail() {
	tail := c.buf[c.writeEnd : c.writeEnd+sentinelTail]
	for i := range tail {
		tail[i] = 0
	}
}
