package ast

import "strconv"

// NodeKind tags the syntactic construct a node represents. The set is closed;
// generic tree algorithms (traversal, printing, JSON export) switch on it
// instead of on node subtypes.
type NodeKind uint8

const (
	// KindNone is the default kind.
	KindNone NodeKind = iota

	// KindExpressionList is a comma-separated expression list in function calls.
	KindExpressionList
	// KindExpressionStatement is a basic expression used as a statement.
	KindExpressionStatement
	// KindBlockStatement holds the statements of a block.
	KindBlockStatement

	// KindLiteralInt is a literal integer value.
	KindLiteralInt
	// KindLiteralDecimal is a literal decimal value.
	KindLiteralDecimal
	// KindLiteralBool is a literal boolean value.
	KindLiteralBool
	// KindLiteralNone is a literal none value.
	KindLiteralNone
	// KindLiteralChar is a literal character.
	KindLiteralChar
	// KindLiteralString is a literal string.
	KindLiteralString

	// KindOpAddition is an additive operation.
	KindOpAddition
	// KindOpSubtraction is a subtraction operation.
	KindOpSubtraction
	// KindOpMultiplication is a multiplicative operation.
	KindOpMultiplication
	// KindOpDivision is a divisive operation.
	KindOpDivision
	// KindOpExponentiate is an exponentiation operation.
	KindOpExponentiate

	// KindIdentifier names a function, variable or custom type.
	KindIdentifier
	// KindInitialization assigns a value to a new variable.
	KindInitialization
	// KindAssignment assigns a value to an existing variable.
	KindAssignment
	// KindAssignmentSum is the += compound assignment.
	KindAssignmentSum
	// KindAssignmentSub is the -= compound assignment.
	KindAssignmentSub
	// KindAssignmentMulti is the *= compound assignment.
	KindAssignmentMulti
	// KindAssignmentDiv is the /= compound assignment.
	KindAssignmentDiv
	// KindVarDeclaration declares a variable without assigning a value.
	KindVarDeclaration

	// KindForStatement is a for loop.
	KindForStatement
	// KindRangeExpression iterates over a sequence of numbers.
	KindRangeExpression
	// KindRangeFromExpression is the initial value of the iteration.
	KindRangeFromExpression
	// KindRangeToExpression is the optional upper bound of the iteration.
	KindRangeToExpression
	// KindRangeStepExpression is the optional step of the iteration.
	KindRangeStepExpression
	// KindForEachExpression iterates over a collection.
	KindForEachExpression

	// KindIfStatement is an if branch.
	KindIfStatement
	// KindBranchCondition is the condition to branch on.
	KindBranchCondition
	// KindBranchConsequent is the result of the condition being truthful.
	KindBranchConsequent
	// KindBranchAlternative is the result of the condition being false.
	KindBranchAlternative

	// KindCompareEq is the equality comparator.
	KindCompareEq
	// KindCompareNeq is the difference comparator.
	KindCompareNeq
	// KindCompareGt is the greater-than comparator.
	KindCompareGt
	// KindCompareGteq is the greater-than-or-equals comparator.
	KindCompareGteq
	// KindCompareLt is the less-than comparator.
	KindCompareLt
	// KindCompareLteq is the less-than-or-equals comparator.
	KindCompareLteq

	// KindLogicalAnd is the logical-and operator.
	KindLogicalAnd
	// KindLogicalOr is the logical-or operator.
	KindLogicalOr

	// KindUnaryNot is the negation operator.
	KindUnaryNot
	// KindUnaryNegative is the negative-value operator.
	KindUnaryNegative

	// KindErrorHandle is the error handler operator.
	KindErrorHandle

	// KindFunctionDeclaration is the base node of a function declaration.
	KindFunctionDeclaration
	// KindFunctionArgumentDeclList holds the arguments of a function declaration.
	KindFunctionArgumentDeclList
	// KindFunctionArgumentDecl is an individual argument of a function declaration.
	KindFunctionArgumentDecl
	// KindFunctionReturnDeclList holds the return values of a function declaration.
	KindFunctionReturnDeclList
	// KindFunctionReturnDecl is an individual return value of a function declaration.
	KindFunctionReturnDecl
	// KindFunctionBody is a function body.
	KindFunctionBody
	// KindFunctionReturn is a return statement.
	KindFunctionReturn
	// KindMethodDeclaration is the base node of a method declaration.
	KindMethodDeclaration
	// KindMethodType is the type over which a method operates.
	KindMethodType

	// KindFunctionCall is a function call.
	KindFunctionCall
	// KindFunctionCallArgumentList holds the arguments passed into a call.
	KindFunctionCallArgumentList

	// KindType is the definition of a type.
	KindType
	// KindTypedExpression defines a type and a value, such as a variable or
	// a function argument.
	KindTypedExpression

	// KindMemberAccess accesses a member inside a struct or an import.
	KindMemberAccess
	// KindIndexedAccess accesses an item inside a collection.
	KindIndexedAccess

	// KindTraitDeclaration is the definition of a trait.
	KindTraitDeclaration
	// KindTraitFieldList lists the fields inside a trait definition.
	KindTraitFieldList
	// KindTraitList lists the traits bound by a function, method or trait.
	KindTraitList
	// KindTrait is an individual trait.
	KindTrait
	// KindStructDeclaration is the definition of a struct object.
	KindStructDeclaration
	// KindStructField is a field inside a struct.
	KindStructField
	// KindStructFieldList lists the fields inside a struct.
	KindStructFieldList
	// KindComposition is a composing object inside a struct definition.
	KindComposition
)

var nodeKindNames = map[NodeKind]string{
	KindNone:                     "None",
	KindExpressionList:           "ExpressionList",
	KindExpressionStatement:      "ExpressionStatement",
	KindBlockStatement:           "BlockStatement",
	KindLiteralInt:               "LiteralInt",
	KindLiteralDecimal:           "LiteralDecimal",
	KindLiteralBool:              "LiteralBool",
	KindLiteralNone:              "LiteralNone",
	KindLiteralChar:              "LiteralChar",
	KindLiteralString:            "LiteralString",
	KindOpAddition:               "OpAddition",
	KindOpSubtraction:            "OpSubtraction",
	KindOpMultiplication:         "OpMultiplication",
	KindOpDivision:               "OpDivision",
	KindOpExponentiate:           "OpExponentiate",
	KindIdentifier:               "Identifier",
	KindInitialization:           "Initialization",
	KindAssignment:               "Assignment",
	KindAssignmentSum:            "AssignmentSum",
	KindAssignmentSub:            "AssignmentSub",
	KindAssignmentMulti:          "AssignmentMulti",
	KindAssignmentDiv:            "AssignmentDiv",
	KindVarDeclaration:           "VarDeclaration",
	KindForStatement:             "ForStatement",
	KindRangeExpression:          "RangeExpression",
	KindRangeFromExpression:      "RangeFromExpression",
	KindRangeToExpression:        "RangeToExpression",
	KindRangeStepExpression:      "RangeStepExpression",
	KindForEachExpression:        "ForEachExpression",
	KindIfStatement:              "IfStatement",
	KindBranchCondition:          "BranchCondition",
	KindBranchConsequent:         "BranchConsequent",
	KindBranchAlternative:        "BranchAlternative",
	KindCompareEq:                "CompareEq",
	KindCompareNeq:               "CompareNeq",
	KindCompareGt:                "CompareGt",
	KindCompareGteq:              "CompareGteq",
	KindCompareLt:                "CompareLt",
	KindCompareLteq:              "CompareLteq",
	KindLogicalAnd:               "LogicalAnd",
	KindLogicalOr:                "LogicalOr",
	KindUnaryNot:                 "UnaryNot",
	KindUnaryNegative:            "UnaryNegative",
	KindErrorHandle:              "ErrorHandle",
	KindFunctionDeclaration:      "FunctionDeclaration",
	KindFunctionArgumentDeclList: "FunctionArgumentDeclList",
	KindFunctionArgumentDecl:     "FunctionArgumentDecl",
	KindFunctionReturnDeclList:   "FunctionReturnDeclList",
	KindFunctionReturnDecl:       "FunctionReturnDecl",
	KindFunctionBody:             "FunctionBody",
	KindFunctionReturn:           "FunctionReturn",
	KindMethodDeclaration:        "MethodDeclaration",
	KindMethodType:               "MethodType",
	KindFunctionCall:             "FunctionCall",
	KindFunctionCallArgumentList: "FunctionCallArgumentList",
	KindType:                     "Type",
	KindTypedExpression:          "TypedExpression",
	KindMemberAccess:             "MemberAccess",
	KindIndexedAccess:            "IndexedAccess",
	KindTraitDeclaration:         "TraitDeclaration",
	KindTraitFieldList:           "TraitFieldList",
	KindTraitList:                "TraitList",
	KindTrait:                    "Trait",
	KindStructDeclaration:        "StructDeclaration",
	KindStructField:              "StructField",
	KindStructFieldList:          "StructFieldList",
	KindComposition:              "Composition",
}

// String returns the name of the node kind.
func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// IsOperation reports whether the kind is an arithmetic, comparison, logical
// or unary operator. Consumers use it to decide between operator-specific
// rendering (infix notation) and generic rendering.
func (k NodeKind) IsOperation() bool {
	switch k {
	case KindOpAddition, KindOpSubtraction, KindOpMultiplication, KindOpDivision, KindOpExponentiate,
		KindCompareEq, KindCompareNeq, KindCompareGt, KindCompareGteq, KindCompareLt, KindCompareLteq,
		KindLogicalAnd, KindLogicalOr,
		KindUnaryNot, KindUnaryNegative:
		return true
	default:
		return false
	}
}
