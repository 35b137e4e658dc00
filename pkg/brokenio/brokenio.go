// brokenio wraps readers and writers so they fail. It is for testing
// that errors from the file system get back to the caller.
// Typical use: you have a reader from a file or a string. You write
// reader = brokenio.NewReader(reader, opts) and everything works as
// before, but with artificial errors.

package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrBroken is what every artificial failure wraps.
var ErrBroken = errors.New("brokenio: artificial failure")

// Options control how often things go wrong. Probabilities run from 0
// to 1, so 0.05 means failure in 5% of the calls.
type Options struct {
	Seed      int64
	ProbFail  float32 // probability of a call failing
	FailAfter int     // fail every call once this many bytes have gone through, if > 0
	Verbose   bool    // print the amount of data on Close
}

type broken struct {
	rnd     *rand.Rand
	opts    Options
	nCalled int
	nByte   int
}

func newBroken(opts Options) broken {
	return broken{rnd: rand.New(rand.NewSource(opts.Seed)), opts: opts}
}

// fail decides if this call goes wrong.
func (b *broken) fail() bool {
	b.nCalled++
	if b.opts.FailAfter > 0 && b.nByte >= b.opts.FailAfter {
		return true
	}
	return b.opts.ProbFail > 0 && b.rnd.Float32() < b.opts.ProbFail
}

func (b *broken) err(op string) error {
	return fmt.Errorf("%s call %d after %d bytes: %w", op, b.nCalled, b.nByte, ErrBroken)
}

// Reader is modelled on the various Readers in the standard library,
// but some reads fail.
type Reader struct {
	rdr io.Reader
	broken
}

// NewReader returns a new Reader - a wrapper around the old one
func NewReader(r io.Reader, opts Options) *Reader {
	return &Reader{rdr: r, broken: newBroken(opts)}
}

// Read wraps the original reader and sums up the amount of data that
// has gone through. A failed read returns no data.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.fail() {
		return 0, r.err("read")
	}
	n, err := r.rdr.Read(p)
	r.nByte += n
	return n, err
}

// Close closes the wrapped reader, if it can be closed.
func (r *Reader) Close() error {
	if r.opts.Verbose {
		fmt.Println("Closing", r.nCalled, "calls and", r.nByte, "bytes")
	}
	if c, ok := r.rdr.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Writer is the same for writing. A failed write writes nothing.
type Writer struct {
	wrtr io.Writer
	broken
}

// NewWriter wraps w.
func NewWriter(w io.Writer, opts Options) *Writer {
	return &Writer{wrtr: w, broken: newBroken(opts)}
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.fail() {
		return 0, w.err("write")
	}
	n, err := w.wrtr.Write(p)
	w.nByte += n
	return n, err
}
