package load

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeUTF8BOM(t *testing.T) {
	in := []byte("\xef\xbb\xbf---\na: 1\nb: 2.2\nc: [1, 2]\n")
	docs, err := NewDecoder(bytes.NewReader(in)).Decode()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	doc := docs[0]
	if v, _ := doc.Get("a").AsInt(); v != 1 {
		t.Errorf("a: %+v", doc.Get("a"))
	}
	if v, _ := doc.Get("b").AsFloat(); v != 2.2 {
		t.Errorf("b: %+v", doc.Get("b"))
	}
	if v, _ := doc.Get("c").At(1).AsInt(); v != 2 {
		t.Errorf("c[1]: %+v", doc.Get("c"))
	}
}

func TestDecodeUTF16LE(t *testing.T) {
	in := []byte("\xff\xfea\x00:\x00 \x001\x00\n\x00")
	docs, err := NewDecoder(bytes.NewReader(in)).Decode()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	if v, _ := docs[0].Get("a").AsInt(); v != 1 {
		t.Errorf("a: %+v", docs[0])
	}
}

func TestDecodeUTF16BENoBOM(t *testing.T) {
	// No BOM; the null-byte pattern of the leading ASCII character
	// gives the endianness away.
	in := []byte("\x00a\x00:\x00 \x001\x00\n")
	docs, err := NewDecoder(bytes.NewReader(in)).Decode()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	if v, _ := docs[0].Get("a").AsInt(); v != 1 {
		t.Errorf("a: %+v", docs[0])
	}
}

func TestDecodeTraps(t *testing.T) {
	in := []byte("a\xa9: 1\n")

	_, err := NewDecoder(bytes.NewReader(in)).Decode()
	if !errors.Is(err, ErrDecode) {
		t.Errorf("strict: got %v, want ErrDecode", err)
	}

	docs, err := NewDecoder(bytes.NewReader(in), WithTrap(TrapIgnore)).Decode()
	require.NoError(t, err)
	if v, _ := docs[0].Get("a").AsInt(); v != 1 {
		t.Errorf("ignore: %+v", docs[0])
	}

	docs, err = NewDecoder(bytes.NewReader(in), WithTrap(TrapReplace)).Decode()
	require.NoError(t, err)
	if v, _ := docs[0].Get("a\uFFFD").AsInt(); v != 1 {
		t.Errorf("replace: %+v", docs[0])
	}

	docs, err = NewDecoder(bytes.NewReader(in),
		WithCorrector(func(invalid []byte) string { return "X" })).Decode()
	require.NoError(t, err)
	if v, _ := docs[0].Get("aX").AsInt(); v != 1 {
		t.Errorf("corrector: %+v", docs[0])
	}
}

func TestDecodeLoadOptions(t *testing.T) {
	in := []byte("--- &a 1\n---\n*a\n")
	_, err := NewDecoder(bytes.NewReader(in)).Decode()
	if err == nil {
		t.Error("expected unknown anchor error without KeepTags")
	}
	docs, err := NewDecoder(bytes.NewReader(in), WithLoadOptions(KeepTags(true))).Decode()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	if v, _ := docs[1].AsInt(); v != 1 {
		t.Errorf("aliased document: %+v", docs[1])
	}
}
