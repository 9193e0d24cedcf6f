package app

import (
	"errors"
	"io"

	"github.com/bft-labs/framepipe/internal/domain"
)

// read fills p from pending bytes first, then from the source. It returns
// n > 0 with a nil error, or n == 0 with an error. A source error that comes
// with data is held back until the next call. ErrStalled is returned when the
// empty-read budget runs out.
func (r *FrameReader) read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(r.pending) > 0 {
		n := copy(p, r.pending)
		r.pending = r.pending[n:]
		return n, nil
	}
	if r.srcErr != nil {
		return 0, r.srcErr
	}

	empty := 0
	for {
		n, err := r.src.Read(p)
		if n > 0 {
			if err != nil {
				r.srcErr = err
			}
			r.bo.Reset()
			return n, nil
		}
		if err != nil {
			return 0, err
		}

		empty++
		if r.cfg.MaxEmptyReads >= 0 && empty > r.cfg.MaxEmptyReads {
			return 0, domain.ErrStalled
		}
		r.sleep(r.bo.Next())
	}
}

// readByte reads exactly one byte.
func (r *FrameReader) readByte() (byte, error) {
	n, err := r.read(r.one[:])
	if n == 1 {
		return r.one[0], nil
	}
	return 0, err
}

// unread queues bytes to be returned by the next reads, ahead of the source.
func (r *FrameReader) unread(b []byte) {
	r.pending = append(append(make([]byte, 0, len(b)+len(r.pending)), b...), r.pending...)
}

// isEnd reports whether err means the byte source has nothing more to give.
func isEnd(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, domain.ErrStalled)
}
