package csv

// reader.go provides the io.Reader wrappers applied before CSV parsing.
//
//   - bomReader drops a leading UTF-8 byte order mark written by Excel
//   - utf8Sanitizer replaces invalid UTF-8 bytes with '?'
//
// Both work on the fly so decompressed uploads are never copied twice.

import (
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// bomReader skips a UTF-8 BOM at the start of the stream.
type bomReader struct {
	r       io.Reader
	checked bool
	pending []byte
}

func newBOMReader(r io.Reader) *bomReader {
	return &bomReader{r: r}
}

func (b *bomReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true

		var head [3]byte
		n, err := io.ReadFull(b.r, head[:])
		if n == 3 && bytes.Equal(head[:], utf8BOM) {
			n = 0
		}
		b.pending = append(b.pending, head[:n]...)

		if err == io.EOF || err == io.ErrUnexpectedEOF {
			if len(b.pending) == 0 {
				return 0, io.EOF
			}
		} else if err != nil {
			return 0, err
		}
	}

	if len(b.pending) > 0 {
		n := copy(p, b.pending)
		b.pending = b.pending[n:]
		return n, nil
	}
	return b.r.Read(p)
}

// utf8Sanitizer replaces each invalid UTF-8 byte with '?'.
// A multi-byte sequence split across reads is carried to the next read.
type utf8Sanitizer struct {
	r       io.Reader
	pending []byte
}

func newUTF8Sanitizer(r io.Reader) *utf8Sanitizer {
	return &utf8Sanitizer{r: r, pending: make([]byte, 0, utf8.UTFMax)}
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	offset := copy(p, s.pending)
	s.pending = s.pending[:0]

	n, err := s.r.Read(p[offset:])
	n += offset
	if n == 0 {
		return 0, err
	}

	return s.sanitize(p[:n], err == io.EOF), err
}

// sanitize rewrites data in place and returns the number of bytes to hand
// out. Unless atEOF, an incomplete trailing sequence is kept in pending.
func (s *utf8Sanitizer) sanitize(data []byte, atEOF bool) int {
	write := 0
	for read := 0; read < len(data); {
		if data[read] < utf8.RuneSelf {
			data[write] = data[read]
			write++
			read++
			continue
		}

		if !atEOF && !utf8.FullRune(data[read:]) {
			s.pending = append(s.pending, data[read:]...)
			return write
		}

		r, size := utf8.DecodeRune(data[read:])
		if r == utf8.RuneError && size == 1 {
			data[write] = '?'
			write++
			read++
			continue
		}
		copy(data[write:], data[read:read+size])
		write += size
		read += size
	}
	return write
}

// clean wraps r with BOM stripping and UTF-8 sanitizing, in that order.
func clean(r io.Reader) io.Reader {
	return newUTF8Sanitizer(newBOMReader(r))
}
