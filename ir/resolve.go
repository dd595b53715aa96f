package ir

import (
	"math"
	"strconv"
	"strings"
)

// FromScalar resolves a plain scalar's text under the YAML 1.2 core
// schema. Quoted and block scalars never go through here; they are
// always strings.
func FromScalar(v string) *Node {
	switch v {
	case "", "~", "null", "Null", "NULL":
		return Null()
	case "true", "True", "TRUE":
		return FromBool(true)
	case "false", "False", "FALSE":
		return FromBool(false)
	}
	if rest, ok := strings.CutPrefix(v, "0x"); ok {
		if i, err := strconv.ParseInt(rest, 16, 64); err == nil {
			return FromInt(i)
		}
	}
	if rest, ok := strings.CutPrefix(v, "0o"); ok {
		if i, err := strconv.ParseInt(rest, 8, 64); err == nil {
			return FromInt(i)
		}
	}
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return FromInt(i)
	}
	if f, ok := ParseFloatCore(v); ok {
		return FromFloatText(f, v)
	}
	return FromString(v)
}

// ParseFloatCore parses the core-schema float forms, including the
// .inf/.nan spellings. Unlike strconv.ParseFloat it rejects "inf",
// "nan" and hex floats, which the core schema treats as strings.
func ParseFloatCore(v string) (float64, bool) {
	switch v {
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), true
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), true
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), true
	}
	if !floatShape(v) {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func floatShape(v string) bool {
	digit := false
	for i := 0; i < len(v); i++ {
		switch c := v[i]; {
		case c >= '0' && c <= '9':
			digit = true
		case c == '.' || c == '+' || c == '-' || c == 'e' || c == 'E':
		default:
			return false
		}
	}
	return digit
}
