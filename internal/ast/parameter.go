package ast

import (
	"encoding/json"
	"strconv"

	"github.com/tinypl/tiny/internal/diag"
)

// ParamKind tags the syntactic role a Parameter encodes on its node.
type ParamKind uint8

const (
	// ParamNone is the default role.
	ParamNone ParamKind = iota
	// ParamType carries the type of the node's value.
	ParamType
	// ParamConst marks a const modifier over the node's value.
	ParamConst
	// ParamPointer marks a pointer modifier over the node's value.
	ParamPointer
	// ParamDereference marks a dereference modifier over the node's value.
	ParamDereference
	// ParamValueAt marks a value-at modifier over the node's value.
	ParamValueAt
	// ParamRangeIdentifier names the identifier bound by a range.
	ParamRangeIdentifier
	// ParamErrorCallback is set when an error handler uses a callback function.
	ParamErrorCallback
	// ParamErrorVarName names the error value of an inlined error handler.
	ParamErrorVarName
	// ParamName carries the name of a function, method or similar procedure.
	ParamName
	// ParamComputedAccess marks use of a collection access operator.
	ParamComputedAccess
)

var paramKindNames = map[ParamKind]string{
	ParamNone:            "None",
	ParamType:            "Type",
	ParamConst:           "Const",
	ParamPointer:         "Pointer",
	ParamDereference:     "Dereference",
	ParamValueAt:         "ValueAt",
	ParamRangeIdentifier: "RangeIdentifier",
	ParamErrorCallback:   "ErrorCallback",
	ParamErrorVarName:    "ErrorVarName",
	ParamName:            "Name",
	ParamComputedAccess:  "ComputedAccess",
}

// String returns the name of the parameter kind.
func (k ParamKind) String() string {
	if name, ok := paramKindNames[k]; ok {
		return name
	}
	return "ParamKind(" + strconv.Itoa(int(k)) + ")"
}

// Parameter holds complementary information on a node: a role tag plus an
// optional value. At most one Parameter of a given kind exists per node;
// Node.AddParam enforces this by replacing on duplicate kind.
type Parameter struct {
	Kind ParamKind
	Val  Value
}

// NewParameter creates a value-less parameter of the given kind.
func NewParameter(kind ParamKind) Parameter {
	return Parameter{Kind: kind}
}

// NewValueParameter creates a parameter of the given kind holding val.
func NewValueParameter(kind ParamKind, val Value) Parameter {
	return Parameter{Kind: kind, Val: val}
}

// StringVal returns the text held by the parameter's value, failing with
// WrongValueKind if the value is not text. meta identifies the node that was
// searched, for error reporting.
func (p Parameter) StringVal(meta diag.Metadata) (string, error) {
	return p.Val.StringVal(meta)
}

// String returns a short human-readable tag, e.g. "Type(int)" or "Const".
func (p Parameter) String() string {
	if p.Val.IsNone() {
		return p.Kind.String()
	}
	return p.Kind.String() + "(" + p.Val.String() + ")"
}

// MarshalJSON serializes the parameter as {kind, value?}.
func (p Parameter) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind  string `json:"kind"`
		Value *Value `json:"value,omitempty"`
	}{Kind: p.Kind.String()}

	if !p.Val.IsNone() {
		v := p.Val
		out.Value = &v
	}
	return json.Marshal(out)
}
