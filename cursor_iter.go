package csvspan

import "io"

// ChunkSupplier yields the next arbitrarily-sized chunk of a logical byte
// stream. It returns io.EOF (with or without a final non-empty chunk) once
// exhausted, following the same contract as io.Reader.Read's "it is valid
// to return n > 0 and err == io.EOF in the same call" allowance.
type ChunkSupplier func() ([]byte, error)

// chunkSupplierReader adapts a ChunkSupplier to io.Reader so Iterable can
// reuse bufferedCursor's growth/compaction machinery instead of
// duplicating it; Iterable otherwise behaves like Buffered.
type chunkSupplierReader struct {
	next    ChunkSupplier
	pending []byte
	err     error
}

func (s *chunkSupplierReader) Read(p []byte) (int, error) {
	for len(s.pending) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		chunk, err := s.next()
		s.pending = chunk
		s.err = err
		if len(chunk) == 0 && err != nil {
			return 0, err
		}
		if len(chunk) == 0 && err == nil {
			continue // tolerate empty, non-terminal chunks
		}
	}
	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	if len(s.pending) == 0 && s.err != nil {
		return n, s.err
	}
	return n, nil
}

// OpenIterable returns a StreamCursor that pulls from an external chunk
// supplier, copying every supplied chunk into its own owned buffer so the
// sentinel-tail invariant holds regardless of what the supplier guarantees
// about the lifetime of its returned slices.
func OpenIterable(next ChunkSupplier) StreamCursor {
	return OpenBuffered(&chunkSupplierReader{next: next}, bufferedDefaultSize).(*bufferedCursor)
}

var _ io.Reader = (*chunkSupplierReader)(nil)
