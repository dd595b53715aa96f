package encode

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yamlcore/go-yamlcore/debug"
	"github.com/yamlcore/go-yamlcore/ir"
)

// EncState holds the serialization state. It is configured by
// EncodeOptions and lives for one Encode call.
type EncState struct {
	w       io.Writer
	indent  int
	compact bool
	header  bool

	level     int
	depth     int
	pre       string
	inKey     bool
	literalOK bool

	Color func(t ir.Type, a ColorAttr, s string) string
}

// Encode writes node to w as one YAML document, introduced by a "---"
// line and terminated by a line break.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{w: w, indent: 2, compact: true, header: true, level: -1}
	for _, opt := range opts {
		opt(es)
	}
	if es.header {
		if err := es.writeString(es.colored(node.Type, SepColor, "---")); err != nil {
			return err
		}
		if err := es.lineEnd(); err != nil {
			return err
		}
	}
	if err := es.emitRoot(node); err != nil {
		return err
	}
	return es.lineEnd()
}

// EncodeDocuments writes each document in turn, each with its own "---"
// header regardless of the Header option.
func EncodeDocuments(docs []*ir.Node, w io.Writer, opts ...EncodeOption) error {
	for _, doc := range docs {
		withHeader := append(opts[:len(opts):len(opts)], Header(true))
		if err := Encode(doc, w, withHeader...); err != nil {
			return err
		}
	}
	return nil
}

func (es *EncState) emitRoot(node *ir.Node) error {
	switch node.Type {
	case ir.ArrayType, ir.HashType:
		if node.Tag != "" {
			if err := es.writeString(es.colored(node.Type, TagColor, tagText(node.Tag))); err != nil {
				return err
			}
			if node.Len() == 0 {
				es.pre = " "
			} else if err := es.lineEnd(); err != nil {
				return err
			}
		}
	}
	// A root scalar with line breaks is quoted rather than written as
	// a block scalar: at column zero there is no room for the content
	// indentation a block scalar needs.
	return es.emitNode(node)
}

func (es *EncState) emitNode(node *ir.Node) error {
	if debug.Emit() {
		debug.Logf("emit: %s level=%d depth=%d\n", node.Type, es.level, es.depth)
	}
	switch node.Type {
	case ir.ArrayType:
		return es.emitArray(node)
	case ir.HashType:
		return es.emitHash(node)
	case ir.StringType:
		literalOK := es.literalOK
		es.literalOK = false
		if err := es.beginScalar(node); err != nil {
			return err
		}
		if literalOK && canLiteral(node.String) {
			return es.emitLiteral(node.String)
		}
		v := node.String
		if needQuotes(v) {
			v = escapeStr(v)
		}
		return es.writeString(es.colored(ir.StringType, es.scalarAttr(), v))
	case ir.BoolType:
		if err := es.beginScalar(node); err != nil {
			return err
		}
		v := "false"
		if node.Bool {
			v = "true"
		}
		return es.writeString(es.colored(ir.BoolType, es.scalarAttr(), v))
	case ir.IntType:
		if err := es.beginScalar(node); err != nil {
			return err
		}
		return es.writeString(es.colored(ir.IntType, es.scalarAttr(), strconv.FormatInt(node.Int, 10)))
	case ir.RealType:
		if err := es.beginScalar(node); err != nil {
			return err
		}
		return es.writeString(es.colored(ir.RealType, es.scalarAttr(), formatReal(node)))
	case ir.NullType, ir.BadValueType:
		if err := es.beginScalar(node); err != nil {
			return err
		}
		return es.writeString(es.colored(ir.NullType, es.scalarAttr(), "~"))
	}
	return &EmitError{Err: fmt.Errorf("cannot encode node type %s", node.Type)}
}

func (es *EncState) emitArray(node *ir.Node) error {
	es.depth++
	defer func() { es.depth-- }()
	if es.depth > MaxDepth {
		return &EmitError{Err: ErrDeepNesting}
	}
	if err := es.emitPre(); err != nil {
		return err
	}
	if node.Len() == 0 {
		return es.writeString(es.colored(ir.ArrayType, ValueColor, "[]"))
	}
	es.level++
	for i, v := range node.Values {
		if i > 0 {
			if err := es.lineEnd(); err != nil {
				return err
			}
			if err := es.lineBegin(); err != nil {
				return err
			}
		}
		if err := es.writeString(es.colored(ir.ArrayType, SepColor, "-")); err != nil {
			return err
		}
		if err := es.emitVal(true, v); err != nil {
			return err
		}
	}
	es.level--
	return nil
}

func (es *EncState) emitHash(node *ir.Node) error {
	es.depth++
	defer func() { es.depth-- }()
	if es.depth > MaxDepth {
		return &EmitError{Err: ErrDeepNesting}
	}
	if err := es.emitPre(); err != nil {
		return err
	}
	if node.Len() == 0 {
		return es.writeString(es.colored(ir.HashType, ValueColor, "{}"))
	}
	es.level++
	for i := range node.Fields {
		k, v := node.Fields[i], node.Values[i]
		if i > 0 {
			if err := es.lineEnd(); err != nil {
				return err
			}
			if err := es.lineBegin(); err != nil {
				return err
			}
		}
		if k.Type == ir.ArrayType || k.Type == ir.HashType {
			// Container keys need the explicit key indicator.
			if err := es.writeString(es.colored(ir.HashType, SepColor, "?")); err != nil {
				return err
			}
			if err := es.emitVal(true, k); err != nil {
				return err
			}
			if err := es.lineEnd(); err != nil {
				return err
			}
			if err := es.lineBegin(); err != nil {
				return err
			}
			if err := es.writeString(es.colored(ir.HashType, SepColor, ":")); err != nil {
				return err
			}
			if err := es.emitVal(true, v); err != nil {
				return err
			}
			continue
		}
		es.inKey = true
		err := es.emitNode(k)
		es.inKey = false
		if err != nil {
			return err
		}
		if err := es.writeString(es.colored(ir.HashType, SepColor, ":")); err != nil {
			return err
		}
		if err := es.emitVal(false, v); err != nil {
			return err
		}
	}
	es.level--
	return nil
}

// emitVal places a value relative to the entry indicator that precedes
// it. Scalars and, in compact notation, containers under a sequence
// entry or explicit key share the indicator's line; everything else
// starts on the next line one level deeper.
func (es *EncState) emitVal(inline bool, val *ir.Node) error {
	switch val.Type {
	case ir.ArrayType, ir.HashType:
		tagged := val.Tag != ""
		if tagged {
			es.pre = " "
			if err := es.emitPre(); err != nil {
				return err
			}
			if err := es.writeString(es.colored(val.Type, TagColor, tagText(val.Tag))); err != nil {
				return err
			}
		}
		if val.Len() == 0 || (inline && es.compact && !tagged) {
			es.pre = " "
		} else {
			if err := es.lineEnd(); err != nil {
				return err
			}
			es.level++
			err := es.lineBegin()
			es.level--
			if err != nil {
				return err
			}
		}
		if val.Type == ir.ArrayType {
			return es.emitArray(val)
		}
		return es.emitHash(val)
	}
	es.pre = " "
	es.literalOK = true
	err := es.emitNode(val)
	es.literalOK = false
	return err
}

// beginScalar flushes pending whitespace and writes the node's
// application tag, if any.
func (es *EncState) beginScalar(node *ir.Node) error {
	if err := es.emitPre(); err != nil {
		return err
	}
	if node.Tag == "" {
		return nil
	}
	if err := es.writeString(es.colored(node.Type, TagColor, tagText(node.Tag))); err != nil {
		return err
	}
	return es.writeString(" ")
}

// emitLiteral writes v as a literal block scalar. The chomping
// indicator follows from the shape of v's trailing line breaks; the
// line break ending the last content line is supplied by the caller.
func (es *EncState) emitLiteral(v string) error {
	body := strings.TrimRight(v, "\n")
	trailing := len(v) - len(body)
	header := "|"
	switch trailing {
	case 0:
		header = "|-"
	case 1:
	default:
		header = "|+"
	}
	if err := es.writeString(es.colored(ir.StringType, LiteralColor, header)); err != nil {
		return err
	}
	es.level++
	defer func() { es.level-- }()
	for _, ln := range strings.Split(body, "\n") {
		if err := es.lineEnd(); err != nil {
			return err
		}
		if ln == "" {
			continue
		}
		if err := es.lineBegin(); err != nil {
			return err
		}
		if err := es.writeString(es.colored(ir.StringType, LiteralColor, ln)); err != nil {
			return err
		}
	}
	for i := 1; i < trailing; i++ {
		if err := es.lineEnd(); err != nil {
			return err
		}
	}
	return nil
}

func (es *EncState) emitPre() error {
	if es.pre == "" {
		return nil
	}
	s := es.pre
	es.pre = ""
	return es.writeString(s)
}

func (es *EncState) lineBegin() error {
	if es.level <= 0 {
		return nil
	}
	return es.writeString(strings.Repeat(" ", es.level*es.indent))
}

func (es *EncState) lineEnd() error {
	return es.writeString("\n")
}

func (es *EncState) writeString(s string) error {
	if _, err := io.WriteString(es.w, s); err != nil {
		return &EmitError{Err: err}
	}
	return nil
}

func (es *EncState) scalarAttr() ColorAttr {
	if es.inKey {
		return FieldColor
	}
	return ValueColor
}

func (es *EncState) colored(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

// tagText renders a stored application tag. Tags kept in shorthand form
// start with "!" and pass through; anything else is a resolved URI and
// goes out verbatim.
func tagText(tag string) string {
	if strings.HasPrefix(tag, "!") {
		return tag
	}
	return "!<" + tag + ">"
}
