package pbm

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func isLineEnd(c byte) bool {
	return c == '\r' || c == '\n'
}

// scanner splits a PBM header or plain pixel data into tokens. pos always
// points at the first byte not yet consumed, which lets the raw decoder pick
// up the binary payload straight after the header.
type scanner struct {
	buf []byte
	pos int
}

func (s *scanner) next() ([]byte, bool) {
	for s.pos < len(s.buf) {
		c := s.buf[s.pos]
		switch {
		case isSpace(c):
			s.pos++
		case c == '#':
			for s.pos < len(s.buf) && !isLineEnd(s.buf[s.pos]) {
				s.pos++
			}
		default:
			start := s.pos
			for s.pos < len(s.buf) && !isSpace(s.buf[s.pos]) && s.buf[s.pos] != '#' {
				s.pos++
			}
			return s.buf[start:s.pos], true
		}
	}
	return nil, false
}

// Tokens splits raw into whitespace separated tokens, skipping comments. The
// returned tokens share memory with raw.
func Tokens(raw []byte) [][]byte {
	var tokens [][]byte
	s := scanner{buf: raw}
	for {
		tok, ok := s.next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}
