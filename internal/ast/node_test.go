package ast_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/tinypl/tiny/internal/ast"
	"github.com/tinypl/tiny/internal/diag"
)

func meta(line, col int) diag.Metadata {
	return diag.Metadata{Filename: "main.ty", Line: line, Column: col}
}

func TestParamLookup(t *testing.T) {
	tree := ast.NewTree()
	n := tree.New(meta(1, 1), ast.KindFunctionDeclaration)
	n.AddParam(ast.NewValueParameter(ast.ParamName, ast.TextValue("fib")))
	n.AddParam(ast.NewParameter(ast.ParamConst))

	p, err := n.GetParam(ast.ParamName)
	if err != nil {
		t.Fatalf("GetParam(Name) failed: %v", err)
	}
	name, err := p.StringVal(n.Meta())
	if err != nil {
		t.Fatalf("StringVal() failed: %v", err)
	}
	if name != "fib" {
		t.Fatalf("parameter value = %q, want %q", name, "fib")
	}

	if _, err := n.GetParam(ast.ParamPointer); !ast.IsNotFound(err) {
		t.Fatalf("GetParam(Pointer) = %v, want NotFound", err)
	}
}

// HasParam must succeed exactly when GetParam does, for every kind.
func TestHasParamAgreesWithGetParam(t *testing.T) {
	tree := ast.NewTree()
	n := tree.New(meta(1, 1), ast.KindVarDeclaration)
	n.AddParam(ast.NewValueParameter(ast.ParamType, ast.TextValue("int")))
	n.AddParam(ast.NewParameter(ast.ParamPointer))

	kinds := []ast.ParamKind{
		ast.ParamNone, ast.ParamType, ast.ParamConst, ast.ParamPointer,
		ast.ParamDereference, ast.ParamValueAt, ast.ParamRangeIdentifier,
		ast.ParamErrorCallback, ast.ParamErrorVarName, ast.ParamName,
		ast.ParamComputedAccess,
	}

	for _, k := range kinds {
		_, err := n.GetParam(k)
		if has := n.HasParam(k); has != (err == nil) {
			t.Errorf("kind %s: HasParam() = %v but GetParam() error = %v", k, has, err)
		}
	}
}

func TestAddParamReplacesDuplicateKind(t *testing.T) {
	tree := ast.NewTree()
	n := tree.New(meta(2, 1), ast.KindTypedExpression)

	n.AddParam(ast.NewValueParameter(ast.ParamType, ast.TextValue("int")))
	n.AddParam(ast.NewValueParameter(ast.ParamType, ast.TextValue("string")))

	if got := len(n.Params()); got != 1 {
		t.Fatalf("len(Params()) = %d after duplicate AddParam, want 1", got)
	}

	p, err := n.GetParam(ast.ParamType)
	if err != nil {
		t.Fatalf("GetParam(Type) failed: %v", err)
	}
	if got, _ := p.StringVal(n.Meta()); got != "string" {
		t.Fatalf("parameter value = %q, want the replacement %q", got, "string")
	}
}

func TestChildLookup(t *testing.T) {
	tree := ast.NewTree()
	cond := tree.New(meta(3, 4), ast.KindBranchCondition)
	cons := tree.New(meta(3, 10), ast.KindBranchConsequent)
	alt := tree.New(meta(5, 10), ast.KindBranchAlternative)
	ifNode := tree.New(meta(3, 1), ast.KindIfStatement, cond, cons, alt)

	got, err := ifNode.GetChild(ast.KindBranchAlternative)
	if err != nil {
		t.Fatalf("GetChild(BranchAlternative) failed: %v", err)
	}
	if got.ID() != alt.ID() {
		t.Fatalf("GetChild returned node %d, want %d", got.ID(), alt.ID())
	}

	if _, err := ifNode.GetChild(ast.KindForStatement); !ast.IsNotFound(err) {
		t.Fatalf("GetChild(ForStatement) = %v, want NotFound", err)
	}

	// Positional accessors are distinct from kind lookup.
	first, err := ifNode.FirstChild()
	if err != nil {
		t.Fatalf("FirstChild() failed: %v", err)
	}
	if first.Kind() != ast.KindBranchCondition {
		t.Fatalf("FirstChild().Kind() = %s, want BranchCondition", first.Kind())
	}

	second, err := ifNode.SecondChild()
	if err != nil {
		t.Fatalf("SecondChild() failed: %v", err)
	}
	if second.Kind() != ast.KindBranchConsequent {
		t.Fatalf("SecondChild().Kind() = %s, want BranchConsequent", second.Kind())
	}

	leaf := tree.New(meta(9, 1), ast.KindLiteralNone)
	if _, err := leaf.FirstChild(); !ast.IsNotFound(err) {
		t.Fatalf("FirstChild() on a leaf = %v, want NotFound", err)
	}
	if _, err := cond.SecondChild(); !ast.IsNotFound(err) {
		t.Fatalf("SecondChild() with no children = %v, want NotFound", err)
	}
}

func TestAddChildrenPreservesOrder(t *testing.T) {
	tree := ast.NewTree()
	list := tree.New(meta(1, 1), ast.KindExpressionList)

	var want []ast.NodeID
	for i := 0; i < 5; i++ {
		c := tree.NewValue(meta(1, i+2), ast.KindLiteralInt, ast.IntValue(int64(i)))
		list.AddChildren(c)
		want = append(want, c.ID())
	}

	children := list.Children()
	if len(children) != 5 {
		t.Fatalf("len(Children()) = %d, want 5", len(children))
	}
	for i, c := range children {
		if c.ID() != want[i] {
			t.Errorf("child %d has id %d, want %d", i, c.ID(), want[i])
		}
	}
}

func TestAddChildrenRejectsForeignTree(t *testing.T) {
	a := ast.NewTree()
	b := ast.NewTree()
	parent := a.New(meta(1, 1), ast.KindBlockStatement)
	alien := b.New(meta(1, 1), ast.KindLiteralNone)

	defer func() {
		if recover() == nil {
			t.Fatal("AddChildren accepted a node from a different tree")
		}
	}()
	parent.AddChildren(alien)
}

func TestNodeStringVal(t *testing.T) {
	tree := ast.NewTree()

	id := tree.NewValue(meta(2, 5), ast.KindIdentifier, ast.TextValue("counter"))
	got, err := id.StringVal()
	if err != nil {
		t.Fatalf("StringVal() failed: %v", err)
	}
	if got != "counter" {
		t.Fatalf("StringVal() = %q, want %q", got, "counter")
	}

	lit := tree.NewValue(meta(2, 9), ast.KindLiteralInt, ast.IntValue(3))
	if _, err := lit.StringVal(); !ast.IsWrongValueKind(err) {
		t.Fatalf("StringVal() on int literal = %v, want WrongValueKind", err)
	}
}

// IsOperation must hold exactly for the operator kinds and for nothing else.
func TestIsOperation(t *testing.T) {
	operations := []ast.NodeKind{
		ast.KindOpAddition, ast.KindOpSubtraction, ast.KindOpMultiplication,
		ast.KindOpDivision, ast.KindOpExponentiate,
		ast.KindCompareEq, ast.KindCompareNeq, ast.KindCompareGt,
		ast.KindCompareGteq, ast.KindCompareLt, ast.KindCompareLteq,
		ast.KindLogicalAnd, ast.KindLogicalOr,
		ast.KindUnaryNot, ast.KindUnaryNegative,
	}
	nonOperations := []ast.NodeKind{
		ast.KindNone, ast.KindExpressionList, ast.KindExpressionStatement,
		ast.KindBlockStatement, ast.KindLiteralInt, ast.KindLiteralDecimal,
		ast.KindLiteralBool, ast.KindLiteralNone, ast.KindLiteralChar,
		ast.KindLiteralString, ast.KindIdentifier, ast.KindInitialization,
		ast.KindAssignment, ast.KindAssignmentSum, ast.KindAssignmentSub,
		ast.KindAssignmentMulti, ast.KindAssignmentDiv, ast.KindVarDeclaration,
		ast.KindForStatement, ast.KindRangeExpression, ast.KindRangeFromExpression,
		ast.KindRangeToExpression, ast.KindRangeStepExpression, ast.KindForEachExpression,
		ast.KindIfStatement, ast.KindBranchCondition, ast.KindBranchConsequent,
		ast.KindBranchAlternative, ast.KindErrorHandle, ast.KindFunctionDeclaration,
		ast.KindFunctionArgumentDeclList, ast.KindFunctionArgumentDecl,
		ast.KindFunctionReturnDeclList, ast.KindFunctionReturnDecl,
		ast.KindFunctionBody, ast.KindFunctionReturn, ast.KindMethodDeclaration,
		ast.KindMethodType, ast.KindFunctionCall, ast.KindFunctionCallArgumentList,
		ast.KindType, ast.KindTypedExpression, ast.KindMemberAccess,
		ast.KindIndexedAccess, ast.KindTraitDeclaration, ast.KindTraitFieldList,
		ast.KindTraitList, ast.KindTrait, ast.KindStructDeclaration,
		ast.KindStructField, ast.KindStructFieldList, ast.KindComposition,
	}

	tree := ast.NewTree()
	for _, k := range operations {
		if n := tree.New(meta(1, 1), k); !n.IsOperation() {
			t.Errorf("IsOperation() = false for %s", k)
		}
	}
	for _, k := range nonOperations {
		if n := tree.New(meta(1, 1), k); n.IsOperation() {
			t.Errorf("IsOperation() = true for %s", k)
		}
	}
}

func TestNodeString(t *testing.T) {
	tree := ast.NewTree()

	op := tree.New(meta(1, 1), ast.KindOpAddition)
	if got := op.String(); got != "OpAddition" {
		t.Errorf("String() = %q, want %q", got, "OpAddition")
	}

	lit := tree.NewValue(meta(1, 1), ast.KindLiteralInt, ast.IntValue(42))
	if got := lit.String(); got != "LiteralInt(42)" {
		t.Errorf("String() = %q, want %q", got, "LiteralInt(42)")
	}

	long := tree.NewValue(meta(1, 1), ast.KindLiteralString, ast.TextValue("a very long string literal"))
	if got := long.String(); got != "LiteralString(a very long s...)" {
		t.Errorf("String() = %q, want abbreviated value", got)
	}
}

// An OpAddition node with two integer literal children serializes with
// exactly two child records carrying the right values.
func TestNodeJSON(t *testing.T) {
	tree := ast.NewTree()
	lhs := tree.NewValue(meta(1, 1), ast.KindLiteralInt, ast.IntValue(1))
	rhs := tree.NewValue(meta(1, 5), ast.KindLiteralInt, ast.IntValue(2))
	add := tree.New(meta(1, 1), ast.KindOpAddition, lhs, rhs)

	data, err := json.Marshal(add)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded struct {
		Kind     string            `json:"kind"`
		Params   []json.RawMessage `json:"params"`
		Children []struct {
			Kind  string `json:"kind"`
			Value int64  `json:"value"`
		} `json:"children"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.Kind != "OpAddition" {
		t.Fatalf("kind = %q, want OpAddition", decoded.Kind)
	}
	if len(decoded.Children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(decoded.Children))
	}
	if decoded.Children[0].Kind != "LiteralInt" || decoded.Children[0].Value != 1 {
		t.Errorf("first child = %+v, want LiteralInt 1", decoded.Children[0])
	}
	if decoded.Children[1].Kind != "LiteralInt" || decoded.Children[1].Value != 2 {
		t.Errorf("second child = %+v, want LiteralInt 2", decoded.Children[1])
	}
}

func TestNodeJSONDeterministic(t *testing.T) {
	build := func() []byte {
		tree := ast.NewTree()
		id := tree.NewValue(meta(2, 1), ast.KindIdentifier, ast.TextValue("x"))
		lit := tree.NewValue(meta(2, 6), ast.KindLiteralBool, ast.BoolValue(true))
		root := tree.New(meta(2, 1), ast.KindInitialization, id, lit)
		root.AddParam(ast.NewValueParameter(ast.ParamType, ast.TextValue("bool")))

		data, err := json.Marshal(root)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		return data
	}

	if a, b := build(), build(); !bytes.Equal(a, b) {
		t.Fatalf("identical trees produced different JSON:\n%s\n%s", a, b)
	}
}

func TestWalk(t *testing.T) {
	tree := ast.NewTree()
	a := tree.NewValue(meta(1, 1), ast.KindLiteralInt, ast.IntValue(1))
	b := tree.NewValue(meta(1, 5), ast.KindLiteralInt, ast.IntValue(2))
	add := tree.New(meta(1, 1), ast.KindOpAddition, a, b)
	root := tree.New(meta(1, 1), ast.KindExpressionStatement, add)

	if got := ast.Count(root); got != 4 {
		t.Fatalf("Count() = %d, want 4", got)
	}

	var kinds []ast.NodeKind
	ast.Walk(root, func(n ast.Node) bool {
		kinds = append(kinds, n.Kind())
		return n.Kind() != ast.KindOpAddition // prune below the operator
	})

	want := []ast.NodeKind{ast.KindExpressionStatement, ast.KindOpAddition}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("visited %v, want %v", kinds, want)
		}
	}
}
