package pack

import "io"

// DefaultBlockSize is the block size a Writer uses when BlockSize is 0.
const DefaultBlockSize = 1 << 16

// A Writer uses a MatchFinder and an Encoder to compress data written to it.
// Input is collected into blocks of BlockSize bytes; each block goes through
// the MatchFinder and then the Encoder, and the result is written to Dest.
type Writer struct {
	Dest        io.Writer
	MatchFinder MatchFinder
	Encoder     Encoder
	BlockSize   int

	err     error
	inBuf   []byte
	outBuf  []byte
	matches []Match
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.BlockSize == 0 {
		w.BlockSize = DefaultBlockSize
	}

	for len(p) > 0 {
		if cap(w.inBuf) < w.BlockSize {
			w.inBuf = append(make([]byte, 0, w.BlockSize), w.inBuf...)
		}

		// A full block is held back until more input arrives, so that the
		// last block can be marked as such by Close.
		if len(w.inBuf) == w.BlockSize {
			if err := w.writeBlock(false); err != nil {
				return n, err
			}
		}

		c := copy(w.inBuf[len(w.inBuf):w.BlockSize], p)
		w.inBuf = w.inBuf[:len(w.inBuf)+c]
		p = p[c:]
		n += c
	}

	return n, nil
}

// Close encodes the remaining buffered data as the last block. It does not
// close Dest.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	err := w.writeBlock(true)
	if err == nil {
		w.err = io.ErrClosedPipe
	}
	return err
}

// Reset discards the Writer's state and prepares it to write a new stream to
// newDest.
func (w *Writer) Reset(newDest io.Writer) {
	if w.MatchFinder != nil {
		w.MatchFinder.Reset()
	}
	if w.Encoder != nil {
		w.Encoder.Reset()
	}
	w.err = nil
	w.inBuf = w.inBuf[:0]
	w.outBuf = w.outBuf[:0]
	w.matches = w.matches[:0]
	w.Dest = newDest
}

func (w *Writer) writeBlock(lastBlock bool) error {
	if w.MatchFinder == nil || w.Encoder == nil {
		panic("pack: Writer needs both a MatchFinder and an Encoder")
	}

	w.matches = w.MatchFinder.FindMatches(w.matches[:0], w.inBuf)
	w.outBuf = w.Encoder.Encode(w.outBuf[:0], w.inBuf, w.matches, lastBlock)
	w.inBuf = w.inBuf[:0]

	if len(w.outBuf) > 0 {
		if _, err := w.Dest.Write(w.outBuf); err != nil {
			w.err = err
			return err
		}
	}
	return nil
}
