package erasure

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// symbolReader reads one GF(2^w) symbol at a time from the underlying
// byte stream, in the packing convention for w: one byte per symbol for
// w=8, two bytes (host-order, implemented as little-endian) for w=16, and
// two 4-bit symbols packed high-nibble-first per byte for w=4.
type symbolReader struct {
	r           io.Reader
	w           uint
	havePending bool
	pendingLow  int
}

func newSymbolReader(r io.Reader, w uint) *symbolReader {
	return &symbolReader{r: r, w: w}
}

// ReadSymbol reads exactly one symbol. Any short read — including a clean
// EOF — is reported as ErrShortIO, matching the reference implementation's
// "short read is always fatal" policy.
func (s *symbolReader) ReadSymbol() (int, error) {
	switch s.w {
	case 4:
		if s.havePending {
			s.havePending = false
			return s.pendingLow, nil
		}
		var buf [1]byte
		if _, err := io.ReadFull(s.r, buf[:]); err != nil {
			return 0, errors.Wrap(ErrShortIO, err.Error())
		}
		s.pendingLow = int(buf[0] & 0x0f)
		s.havePending = true
		return int(buf[0] >> 4), nil
	case 8:
		var buf [1]byte
		if _, err := io.ReadFull(s.r, buf[:]); err != nil {
			return 0, errors.Wrap(ErrShortIO, err.Error())
		}
		return int(buf[0]), nil
	case 16:
		var buf [2]byte
		if _, err := io.ReadFull(s.r, buf[:]); err != nil {
			return 0, errors.Wrap(ErrShortIO, err.Error())
		}
		return int(binary.LittleEndian.Uint16(buf[:])), nil
	default:
		return 0, errors.Wrap(ErrConfig, "unsupported width")
	}
}

// symbolWriter is the write-side counterpart of symbolReader.
type symbolWriter struct {
	w        io.Writer
	width    uint
	havehigh bool
	high     int
}

func newSymbolWriter(w io.Writer, width uint) *symbolWriter {
	return &symbolWriter{w: w, width: width}
}

// WriteSymbol writes exactly one symbol. A short underlying write is
// reported as ErrShortIO.
func (s *symbolWriter) WriteSymbol(sym int) error {
	switch s.width {
	case 4:
		if !s.havehigh {
			s.high = sym
			s.havehigh = true
			return nil
		}
		s.havehigh = false
		buf := [1]byte{byte(s.high<<4) | byte(sym&0x0f)}
		if _, err := s.w.Write(buf[:]); err != nil {
			return errors.Wrap(ErrShortIO, err.Error())
		}
		return nil
	case 8:
		buf := [1]byte{byte(sym)}
		if _, err := s.w.Write(buf[:]); err != nil {
			return errors.Wrap(ErrShortIO, err.Error())
		}
		return nil
	case 16:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(sym))
		if _, err := s.w.Write(buf[:]); err != nil {
			return errors.Wrap(ErrShortIO, err.Error())
		}
		return nil
	default:
		return errors.Wrap(ErrConfig, "unsupported width")
	}
}

// symbolsPerShard converts a shard's byte length into its symbol count,
// per the packing convention for w.
func symbolsPerShard(w uint, byteLen int) int {
	switch w {
	case 4:
		return byteLen * 2
	case 16:
		return byteLen / 2
	default: // 8
		return byteLen
	}
}
