package parser

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/tinypl/tiny/internal/ast"
	"github.com/tinypl/tiny/internal/diag"
	"github.com/tinypl/tiny/internal/lexer"
)

// Binding powers, weakest to strongest. Exponentiation binds right;
// everything else binds left.
const (
	precedenceLowest = iota
	precedenceOr
	precedenceAnd
	precedenceEquality
	precedenceComparison
	precedenceSum
	precedenceProduct
	precedenceExponent
	precedenceUnary
	precedencePostfix
)

type infixOp struct {
	kind       ast.NodeKind
	precedence int
	rightAssoc bool
}

var infixOps = map[lexer.TokenType]infixOp{
	lexer.OR:       {ast.KindLogicalOr, precedenceOr, false},
	lexer.AND:      {ast.KindLogicalAnd, precedenceAnd, false},
	lexer.EQ:       {ast.KindCompareEq, precedenceEquality, false},
	lexer.NOT_EQ:   {ast.KindCompareNeq, precedenceEquality, false},
	lexer.LT:       {ast.KindCompareLt, precedenceComparison, false},
	lexer.GT:       {ast.KindCompareGt, precedenceComparison, false},
	lexer.LE:       {ast.KindCompareLteq, precedenceComparison, false},
	lexer.GE:       {ast.KindCompareGteq, precedenceComparison, false},
	lexer.PLUS:     {ast.KindOpAddition, precedenceSum, false},
	lexer.MINUS:    {ast.KindOpSubtraction, precedenceSum, false},
	lexer.ASTERISK: {ast.KindOpMultiplication, precedenceProduct, false},
	lexer.SLASH:    {ast.KindOpDivision, precedenceProduct, false},
	lexer.CARET:    {ast.KindOpExponentiate, precedenceExponent, true},
}

// parseExpression is a Pratt parser: a prefix parse for the left operand,
// then a loop folding infix and postfix operators as long as they bind at
// least as tightly as minPrecedence.
func (p *Parser) parseExpression(minPrecedence int) (ast.Node, bool) {
	left, ok := p.parsePrefix()
	if !ok {
		return ast.Node{}, false
	}

	for {
		tok := p.peek()

		if isPostfix(tok.Type) && precedencePostfix > minPrecedence {
			left, ok = p.parsePostfix(left)
			if !ok {
				return ast.Node{}, false
			}
			continue
		}

		op, isInfix := infixOps[tok.Type]
		if !isInfix || op.precedence <= minPrecedence {
			return left, true
		}
		p.next()

		nextMin := op.precedence
		if op.rightAssoc {
			nextMin--
		}
		right, ok := p.parseExpression(nextMin)
		if !ok {
			return ast.Node{}, false
		}
		left = p.tree.New(left.Meta().Merge(right.Meta()), op.kind, left, right)
	}
}

func (p *Parser) parsePrefix() (ast.Node, bool) {
	tok := p.peek()
	switch tok.Type {
	case lexer.IDENT:
		p.next()
		return p.tree.NewValue(p.meta(tok), ast.KindIdentifier, ast.TextValue(tok.Value)), true
	case lexer.INT:
		p.next()
		return p.parseIntLiteral(tok)
	case lexer.DECIMAL:
		p.next()
		return p.parseDecimalLiteral(tok)
	case lexer.STRING:
		p.next()
		return p.tree.NewValue(p.meta(tok), ast.KindLiteralString, ast.TextValue(tok.Value)), true
	case lexer.CHAR:
		p.next()
		return p.tree.NewValue(p.meta(tok), ast.KindLiteralChar, ast.TextValue(tok.Value)), true
	case lexer.TRUE:
		p.next()
		return p.tree.NewValue(p.meta(tok), ast.KindLiteralBool, ast.BoolValue(true)), true
	case lexer.FALSE:
		p.next()
		return p.tree.NewValue(p.meta(tok), ast.KindLiteralBool, ast.BoolValue(false)), true
	case lexer.NONE:
		p.next()
		return p.tree.New(p.meta(tok), ast.KindLiteralNone), true
	case lexer.LPAREN:
		p.next()
		inner, ok := p.parseExpression(precedenceLowest)
		if !ok {
			return ast.Node{}, false
		}
		if _, ok := p.expect(lexer.RPAREN); !ok {
			return ast.Node{}, false
		}
		return inner, true
	case lexer.BANG:
		p.next()
		operand, ok := p.parseExpression(precedenceUnary)
		if !ok {
			return ast.Node{}, false
		}
		return p.tree.New(p.meta(tok).Merge(operand.Meta()), ast.KindUnaryNot, operand), true
	case lexer.MINUS:
		p.next()
		operand, ok := p.parseExpression(precedenceUnary)
		if !ok {
			return ast.Node{}, false
		}
		return p.tree.New(p.meta(tok).Merge(operand.Meta()), ast.KindUnaryNegative, operand), true
	case lexer.ASTERISK:
		return p.parseModifiedOperand(ast.ParamDereference)
	case lexer.DOLLAR:
		return p.parseModifiedOperand(ast.ParamValueAt)
	case lexer.AMPERSAND:
		return p.parseModifiedOperand(ast.ParamPointer)
	default:
		p.reportUnexpected(tok, "expression")
		return ast.Node{}, false
	}
}

// parseModifiedOperand handles the prefix modifiers (*, $, &), which mark the
// operand with a parameter instead of wrapping it in an operator node.
func (p *Parser) parseModifiedOperand(kind ast.ParamKind) (ast.Node, bool) {
	p.next()
	operand, ok := p.parseExpression(precedenceUnary)
	if !ok {
		return ast.Node{}, false
	}
	operand.AddParam(ast.NewParameter(kind))
	return operand, true
}

func (p *Parser) parseIntLiteral(tok lexer.Token) (ast.Node, bool) {
	if i, err := strconv.ParseInt(tok.Raw, 10, 64); err == nil {
		return p.tree.NewValue(p.meta(tok), ast.KindLiteralInt, ast.IntValue(i)), true
	}
	// Literals beyond int64 still fit the unsigned payload.
	u, err := strconv.ParseUint(tok.Raw, 10, 64)
	if err != nil {
		p.reportInvalidLiteral(tok)
		return ast.Node{}, false
	}
	return p.tree.NewValue(p.meta(tok), ast.KindLiteralInt, ast.UintValue(u)), true
}

func (p *Parser) parseDecimalLiteral(tok lexer.Token) (ast.Node, bool) {
	d, err := decimal.NewFromString(tok.Raw)
	if err != nil {
		p.reportInvalidLiteral(tok)
		return ast.Node{}, false
	}
	return p.tree.NewValue(p.meta(tok), ast.KindLiteralDecimal, ast.DecimalValue(d)), true
}

func (p *Parser) reportInvalidLiteral(tok lexer.Token) {
	p.errors = append(p.errors, ParseError{
		Message:  fmt.Sprintf("invalid literal %q", tok.Raw),
		Meta:     p.meta(tok),
		Severity: diag.SeverityError,
		Code:     diag.CodeParserInvalidLiteral,
	})
}

func isPostfix(tt lexer.TokenType) bool {
	switch tt {
	case lexer.LPAREN, lexer.DOT, lexer.LBRACKET, lexer.BANG:
		return true
	default:
		return false
	}
}

func (p *Parser) parsePostfix(left ast.Node) (ast.Node, bool) {
	switch tok := p.next(); tok.Type {
	case lexer.LPAREN:
		return p.parseCallRest(left, tok)
	case lexer.DOT:
		name, ok := p.expect(lexer.IDENT)
		if !ok {
			return ast.Node{}, false
		}
		member := p.tree.NewValue(p.meta(name), ast.KindIdentifier, ast.TextValue(name.Value))
		return p.tree.New(left.Meta().Merge(p.meta(name)), ast.KindMemberAccess, left, member), true
	case lexer.LBRACKET:
		index, ok := p.parseExpression(precedenceLowest)
		if !ok {
			return ast.Node{}, false
		}
		end, ok := p.expect(lexer.RBRACKET)
		if !ok {
			return ast.Node{}, false
		}
		access := p.tree.New(left.Meta().Merge(p.meta(end)), ast.KindIndexedAccess, left, index)
		access.AddParam(ast.NewParameter(ast.ParamComputedAccess))
		return access, true
	case lexer.BANG:
		return p.parseErrorHandle(left)
	default:
		p.reportUnexpected(tok, "postfix expression")
		return ast.Node{}, false
	}
}

// parseCallRest parses the argument list after the callee and the opening
// paren have been consumed.
func (p *Parser) parseCallRest(callee ast.Node, open lexer.Token) (ast.Node, bool) {
	args := p.tree.New(p.meta(open), ast.KindFunctionCallArgumentList)

	for p.peek().Type != lexer.RPAREN && !p.peek().IsEOF() {
		arg, ok := p.parseExpression(precedenceLowest)
		if !ok {
			return ast.Node{}, false
		}
		args.AddChildren(arg)

		if _, more := p.accept(lexer.COMMA); !more {
			break
		}
	}
	end, ok := p.expect(lexer.RPAREN)
	if !ok {
		return ast.Node{}, false
	}

	return p.tree.New(callee.Meta().Merge(p.meta(end)), ast.KindFunctionCall, callee, args), true
}

// parseErrorHandle parses the two error handler forms after the '!' has been
// consumed:
//
//	expr "!" IDENT                  (named callback)
//	expr "!" "(" IDENT ")" block    (inline handler binding the error)
func (p *Parser) parseErrorHandle(left ast.Node) (ast.Node, bool) {
	if _, inline := p.accept(lexer.LPAREN); inline {
		name, ok := p.expect(lexer.IDENT)
		if !ok {
			return ast.Node{}, false
		}
		if _, ok := p.expect(lexer.RPAREN); !ok {
			return ast.Node{}, false
		}
		block, ok := p.parseBlock()
		if !ok {
			return ast.Node{}, false
		}

		handle := p.tree.New(left.Meta().Merge(block.Meta()), ast.KindErrorHandle, left, block)
		handle.AddParam(ast.NewValueParameter(ast.ParamErrorVarName, ast.TextValue(name.Value)))
		return handle, true
	}

	name, ok := p.expect(lexer.IDENT)
	if !ok {
		return ast.Node{}, false
	}

	handle := p.tree.New(left.Meta().Merge(p.meta(name)), ast.KindErrorHandle, left)
	handle.AddParam(ast.NewValueParameter(ast.ParamErrorCallback, ast.TextValue(name.Value)))
	return handle, true
}
