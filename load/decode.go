package load

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/yamlcore/go-yamlcore/ir"
)

// Trap selects what to do with byte sequences that are not valid
// text in the detected encoding.
type Trap int

const (
	// TrapStrict fails the decode. The default.
	TrapStrict Trap = iota
	// TrapReplace substitutes U+FFFD for each invalid run.
	TrapReplace
	// TrapIgnore drops invalid runs.
	TrapIgnore
	// TrapCall hands each invalid run to a caller-supplied corrector.
	TrapCall
)

var trapStrings = map[Trap]string{
	TrapStrict:  "strict",
	TrapReplace: "replace",
	TrapIgnore:  "ignore",
	TrapCall:    "call",
}

func (t Trap) String() string {
	return trapStrings[t]
}

// Decoder reads a byte stream in an unknown Unicode encoding and
// loads it. YAML streams begin with an ASCII character, so UTF-16
// input is recognizable by its byte order mark or by where the null
// bytes fall in the first two octets; everything else is treated as
// UTF-8.
type Decoder struct {
	r        io.Reader
	trap     Trap
	call     func(invalid []byte) string
	loadOpts []Option
}

// DecodeOption configures a Decoder.
type DecodeOption func(*Decoder)

// WithTrap sets the strategy for invalid byte sequences.
func WithTrap(t Trap) DecodeOption {
	return func(d *Decoder) { d.trap = t }
}

// WithCorrector installs f as the corrector for invalid runs and
// selects TrapCall. f receives each maximal invalid run and returns
// the text to substitute.
func WithCorrector(f func(invalid []byte) string) DecodeOption {
	return func(d *Decoder) {
		d.trap = TrapCall
		d.call = f
	}
}

// WithLoadOptions forwards options to the load step.
func WithLoadOptions(opts ...Option) DecodeOption {
	return func(d *Decoder) { d.loadOpts = opts }
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader, opts ...DecodeOption) *Decoder {
	d := &Decoder{r: r}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads the stream to its end, decodes it to UTF-8 and loads
// the documents.
func (d *Decoder) Decode() ([]*ir.Node, error) {
	buf, err := io.ReadAll(d.r)
	if err != nil {
		return nil, err
	}
	s, err := decodeBytes(buf, d.trap, d.call)
	if err != nil {
		return nil, err
	}
	return DocumentsString(s, d.loadOpts...)
}

func decodeBytes(buf []byte, trap Trap, call func([]byte) string) (string, error) {
	if enc := utf16Encoding(buf); enc != nil {
		out, err := enc.NewDecoder().Bytes(buf)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return string(out), nil
	}
	buf = bytes.TrimPrefix(buf, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(buf) {
		return string(buf), nil
	}
	if trap == TrapStrict {
		return "", fmt.Errorf("%w: input is not valid UTF-8", ErrDecode)
	}
	return fixUTF8(buf, trap, call), nil
}

// utf16Encoding detects UTF-16 input. It returns nil when the input
// should be read as UTF-8.
func utf16Encoding(b []byte) encoding.Encoding {
	if len(b) < 2 || b[0] == b[1] {
		return nil
	}
	switch {
	case b[0] == 0xFF && b[1] == 0xFE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case b[0] == 0xFE && b[1] == 0xFF:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case b[0] == 0:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case b[1] == 0:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	}
	return nil
}

// fixUTF8 applies a non-strict trap to invalid UTF-8 input.
func fixUTF8(buf []byte, trap Trap, call func([]byte) string) string {
	var sb strings.Builder
	for i := 0; i < len(buf); {
		r, size := utf8.DecodeRune(buf[i:])
		if r != utf8.RuneError || size != 1 {
			sb.Write(buf[i : i+size])
			i += size
			continue
		}
		// A maximal run of undecodable bytes.
		j := i + 1
		for j < len(buf) {
			r, size := utf8.DecodeRune(buf[j:])
			if r != utf8.RuneError || size != 1 {
				break
			}
			j++
		}
		switch trap {
		case TrapReplace:
			sb.WriteRune(utf8.RuneError)
		case TrapCall:
			if call != nil {
				sb.WriteString(call(buf[i:j]))
			}
		}
		i = j
	}
	return sb.String()
}
