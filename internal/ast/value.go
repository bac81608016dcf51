// Package ast defines the Abstract Syntax Tree the parser builds and later
// compiler stages consume. A single flat node type tagged with a NodeKind
// replaces a subtype per grammar production; node storage lives in a
// per-file arena (Tree) addressed by index.
package ast

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/tinypl/tiny/internal/diag"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	// ValueNone marks the absence of a payload.
	ValueNone ValueKind = iota
	// ValueText holds identifiers, strings and chars.
	ValueText
	// ValueInt holds a signed 64-bit integer.
	ValueInt
	// ValueUint holds an unsigned 64-bit integer.
	ValueUint
	// ValueDecimal holds an arbitrary-precision decimal.
	ValueDecimal
	// ValueBool holds a boolean.
	ValueBool
)

// String returns the name of the value kind.
func (k ValueKind) String() string {
	switch k {
	case ValueNone:
		return "None"
	case ValueText:
		return "Text"
	case ValueInt:
		return "Int"
	case ValueUint:
		return "Uint"
	case ValueDecimal:
		return "Decimal"
	case ValueBool:
		return "Bool"
	default:
		return "ValueKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is the closed union of literal payloads a node or parameter can
// carry: text, int64, uint64, arbitrary-precision decimal or bool. A Value
// is immutable once constructed and owned by exactly one Parameter or node.
type Value struct {
	kind ValueKind
	text string
	i    int64
	u    uint64
	dec  decimal.Decimal
	b    bool
}

// TextValue wraps a text payload (identifiers, strings, chars).
func TextValue(s string) Value {
	return Value{kind: ValueText, text: s}
}

// IntValue wraps a signed integer payload.
func IntValue(i int64) Value {
	return Value{kind: ValueInt, i: i}
}

// UintValue wraps an unsigned integer payload.
func UintValue(u uint64) Value {
	return Value{kind: ValueUint, u: u}
}

// DecimalValue wraps an arbitrary-precision decimal payload.
func DecimalValue(d decimal.Decimal) Value {
	return Value{kind: ValueDecimal, dec: d}
}

// BoolValue wraps a boolean payload.
func BoolValue(b bool) Value {
	return Value{kind: ValueBool, b: b}
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNone reports whether the value holds no payload.
func (v Value) IsNone() bool {
	return v.kind == ValueNone
}

// StringVal returns the text payload. Fails with WrongValueKind when the
// value holds a different variant; meta is attached for error reporting.
func (v Value) StringVal(meta diag.Metadata) (string, error) {
	if v.kind != ValueText {
		return "", newWrongValueKind("value holds "+v.kind.String()+", not Text", meta)
	}
	return v.text, nil
}

// IntVal returns the signed integer payload.
func (v Value) IntVal(meta diag.Metadata) (int64, error) {
	if v.kind != ValueInt {
		return 0, newWrongValueKind("value holds "+v.kind.String()+", not Int", meta)
	}
	return v.i, nil
}

// UintVal returns the unsigned integer payload.
func (v Value) UintVal(meta diag.Metadata) (uint64, error) {
	if v.kind != ValueUint {
		return 0, newWrongValueKind("value holds "+v.kind.String()+", not Uint", meta)
	}
	return v.u, nil
}

// DecimalVal returns the decimal payload.
func (v Value) DecimalVal(meta diag.Metadata) (decimal.Decimal, error) {
	if v.kind != ValueDecimal {
		return decimal.Decimal{}, newWrongValueKind("value holds "+v.kind.String()+", not Decimal", meta)
	}
	return v.dec, nil
}

// BoolVal returns the boolean payload.
func (v Value) BoolVal(meta diag.Metadata) (bool, error) {
	if v.kind != ValueBool {
		return false, newWrongValueKind("value holds "+v.kind.String()+", not Bool", meta)
	}
	return v.b, nil
}

// String renders the payload for diagnostics. It is total over every
// variant. Booleans render capitalized ("True"/"False"); that exact casing
// is a user-visible contract.
func (v Value) String() string {
	switch v.kind {
	case ValueText:
		return v.text
	case ValueInt:
		return strconv.FormatInt(v.i, 10)
	case ValueUint:
		return strconv.FormatUint(v.u, 10)
	case ValueDecimal:
		return v.dec.String()
	case ValueBool:
		if v.b {
			return "True"
		}
		return "False"
	default:
		return ""
	}
}

// MarshalJSON renders the payload as its natural JSON scalar. Decimals are
// emitted as strings so no precision is lost in transit.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueText:
		return json.Marshal(v.text)
	case ValueInt:
		return json.Marshal(v.i)
	case ValueUint:
		return json.Marshal(v.u)
	case ValueDecimal:
		return json.Marshal(v.dec.String())
	case ValueBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}
