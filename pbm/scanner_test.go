package pbm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	tables := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace", " \t\r\n", nil},
		{"simple", "P1 8 2", []string{"P1", "8", "2"}},
		{"mixed separators", "P1\r\n8\t2\n", []string{"P1", "8", "2"}},
		{"comment line", "P1\n# made by hand\n8 2", []string{"P1", "8", "2"}},
		{"comment ends token", "P1#comment\n8", []string{"P1", "8"}},
		{"comment to carriage return", "1 # x\r0", []string{"1", "0"}},
		{"comment at end", "1 0 # trailing", []string{"1", "0"}},
		{"only comment", "# nothing here", nil},
		{"hash inside comment", "## #\n1", []string{"1"}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			var got []string
			for _, tok := range Tokens([]byte(table.raw)) {
				assert.NotEmpty(t, tok)
				got = append(got, string(tok))
			}
			assert.Equal(t, table.want, got)
		})
	}
}

func TestScannerPosition(t *testing.T) {
	s := scanner{buf: []byte("P4 8 # c\n2\n\x0f\xf0"), pos: 2}

	tok, ok := s.next()
	assert.True(t, ok)
	assert.Equal(t, "8", string(tok))

	tok, ok = s.next()
	assert.True(t, ok)
	assert.Equal(t, "2", string(tok))
	assert.Equal(t, byte('\n'), s.buf[s.pos])
}
