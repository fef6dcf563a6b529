package table

import (
	"math"
	"strconv"
	"strings"

	"github.com/oxygene76/skycalc/pkg/opt"
)

// Kind is the type of a cell.
type Kind uint8

const (
	KindMissing Kind = iota
	KindNumber
	KindText
)

// Value is a single cell. The zero Value is missing.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Missing returns an explicit missing cell.
func Missing() Value {
	return Value{}
}

// Number returns a numeric cell. NaN is stored as missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Missing()
	}
	return Value{kind: KindNumber, num: f}
}

// Text returns a text cell.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// FromOpt converts an optional float into a cell.
func FromOpt(f opt.Float) Value {
	if !f.Valid {
		return Missing()
	}
	return Number(f.Value)
}

// Parse interprets a raw CSV field: empty strings and NaN are missing, numeric
// text is a number and anything else is text.
func Parse(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Missing()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(f)
	}
	return Text(raw)
}

// Kind returns the cell kind.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the cell is missing.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric value of the cell. Text cells never convert.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Opt returns the numeric value as an optional float; infinities are treated
// as absent.
func (v Value) Opt() opt.Float {
	f, ok := v.Float()
	if !ok {
		return opt.None()
	}
	return opt.Finite(f)
}

// String renders the cell for CSV output. Missing cells render empty.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindText:
		return v.text
	default:
		return ""
	}
}
