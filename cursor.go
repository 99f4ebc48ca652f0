// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package compaqt

// cursor is a byte-cursor over either a fixed in-memory buffer or a
// refillable window onto a file, depending on which ensure function it is
// constructed with. This mirrors the original implementation's DecodeData,
// which carries an injected overread-check callback rather than hard-coding
// one overread policy; buffer decode, stream decode, and both validator
// modes each plug in their own ensure.
type cursor struct {
	buf []byte
	off int
	max int // logical end of buf; equals len(buf) except mid-refill bookkeeping

	// ensure guarantees that at least need bytes are available starting at
	// c.off, refilling c.buf from a backing source if the implementation
	// supports it. It must not advance c.off. A failing ensure returns the
	// error appropriate to the caller's mode (DecodingError/ValidationError).
	ensureFn func(c *cursor, need int) error

	// refill, when non-nil, reads up to len(p) further bytes from the
	// backing source (a file) starting at the point immediately after the
	// bytes already consumed into buf. Used only by window-backed cursors.
	refill func(p []byte) (int, error)

	// chunkSize is the refill granularity for window-backed cursors.
	chunkSize int

	// consumedBeforeWindow tracks how many bytes of the backing source were
	// consumed prior to the current window, so callers can compute the
	// overall file offset after a read.
	consumedBeforeWindow int64
}

func newBufferCursor(buf []byte, ensureFn func(c *cursor, need int) error) *cursor {
	return &cursor{buf: buf, max: len(buf), ensureFn: ensureFn}
}

func (c *cursor) ensure(need int) error {
	if need <= 0 {
		return nil
	}
	return c.ensureFn(c, need)
}

func (c *cursor) readN(n int) ([]byte, error) {
	if err := c.ensure(n); err != nil {
		return nil, err
	}
	data := c.buf[c.off : c.off+n]
	c.off += n
	return data, nil
}

func (c *cursor) readByte() (byte, error) {
	if err := c.ensure(1); err != nil {
		return 0, err
	}
	b := c.buf[c.off]
	c.off++
	return b, nil
}

// peekByte returns the byte at the cursor without consuming it.
func (c *cursor) peekByte() (byte, error) {
	if err := c.ensure(1); err != nil {
		return 0, err
	}
	return c.buf[c.off], nil
}

// skip advances the cursor by n bytes, which must already have been
// verified available via ensure.
func (c *cursor) skip(n int) { c.off += n }

// consumedTotal reports how many bytes have been consumed from the
// backing source across all refills, for window-backed cursors.
func (c *cursor) consumedTotal() int64 { return c.consumedBeforeWindow + int64(c.off) }

// bufferEnsure implements the whole-buffer decode overread policy: fail
// immediately with a DecodingError if the requested bytes aren't present.
func bufferEnsure(c *cursor, need int) error {
	if c.off+need > c.max {
		return newDecodingError(c.off, "unexpected end of input: need %d bytes, have %d", need, c.max-c.off)
	}
	return nil
}

// validateBufferEnsure is bufferEnsure's ValidationError-raising twin, used
// by Validate in buffer mode.
func validateBufferEnsure(c *cursor, need int) error {
	if c.off+need > c.max {
		return newValidationError(c.off, "unexpected end of input: need %d bytes, have %d", need, c.max-c.off)
	}
	return nil
}

// windowEnsure implements the stream-decoder overread policy: on an
// exhausted window, read up to chunkSize more bytes (or up to need bytes,
// if need is larger) from the backing file and reset the window to start
// at offset 0. If the refill still can't satisfy need, decoding fails.
func windowEnsure(c *cursor, need int) error {
	if c.off+need <= c.max {
		return nil
	}
	return refillWindow(c, need, func(offset int, need, have int) error {
		return newDecodingError(offset, "unexpected end of stream: need %d bytes, have %d", need, have)
	})
}

// validateWindowEnsure is windowEnsure's ValidationError-raising twin, used
// by Validate in file mode.
func validateWindowEnsure(c *cursor, need int) error {
	if c.off+need <= c.max {
		return nil
	}
	return refillWindow(c, need, func(offset int, need, have int) error {
		return newValidationError(offset, "unexpected end of file: need %d bytes, have %d", need, have)
	})
}

func refillWindow(c *cursor, need int, fail func(offset, need, have int) error) error {
	c.consumedBeforeWindow += int64(c.off)
	remaining := c.buf[c.off:c.max]

	size := c.chunkSize
	if size < need {
		size = need
	}
	next := make([]byte, len(remaining)+size)
	copy(next, remaining)

	n, err := c.refill(next[len(remaining):])
	total := len(remaining) + n
	c.buf = next[:total]
	c.off = 0
	c.max = total

	if total < need {
		return fail(c.off, need, total)
	}
	_ = err // a real read error also manifests as an insufficient total above
	return nil
}
