package parser

import (
	"github.com/tinypl/tiny/internal/ast"
	"github.com/tinypl/tiny/internal/lexer"
)

// speculate runs fn and rolls the cursor and the error list back when the
// production fails, so failed alternatives leave no trace. Nodes a failed
// alternative allocated stay in the arena but are unreachable and never
// serialized.
func (p *Parser) speculate(fn func() (ast.Node, bool)) (ast.Node, bool) {
	pos := p.toks.Pos()
	errs := len(p.errors)

	n, ok := fn()
	if !ok {
		p.toks.Seek(pos)
		p.errors = p.errors[:errs]
	}
	return n, ok
}

func (p *Parser) parseStatement() (ast.Node, bool) {
	switch p.peek().Type {
	case lexer.FUNC:
		return p.parseFuncOrMethod()
	case lexer.STRUCT:
		return p.parseStructDecl()
	case lexer.TRAIT:
		return p.parseTraitDecl()
	case lexer.IF:
		return p.parseIf()
	case lexer.FOR:
		return p.parseFor()
	case lexer.RETURN:
		return p.parseReturn()
	default:
		return p.parseSimpleStatement()
	}
}

// parseBlock parses a braced statement list:
//
//	block := "{" statement* "}"
func (p *Parser) parseBlock() (ast.Node, bool) {
	open, ok := p.expect(lexer.LBRACE)
	if !ok {
		return ast.Node{}, false
	}

	block := p.tree.New(p.meta(open), ast.KindBlockStatement)
	for p.peek().Type != lexer.RBRACE && !p.peek().IsEOF() {
		before := p.toks.Pos()
		stmt, ok := p.parseStatement()
		if !ok {
			p.sync()
			if p.toks.Pos() == before {
				p.next()
			}
			continue
		}
		block.AddChildren(stmt)
	}
	if _, ok := p.expect(lexer.RBRACE); !ok {
		return ast.Node{}, false
	}
	return block, true
}

// parseIf parses a branch:
//
//	if := "if" expression block ("else" (if | block))?
func (p *Parser) parseIf() (ast.Node, bool) {
	kw, _ := p.expect(lexer.IF)

	cond, ok := p.parseExpression(precedenceLowest)
	if !ok {
		return ast.Node{}, false
	}
	consequent, ok := p.parseBlock()
	if !ok {
		return ast.Node{}, false
	}

	stmt := p.tree.New(p.meta(kw), ast.KindIfStatement,
		p.tree.New(cond.Meta(), ast.KindBranchCondition, cond),
		p.tree.New(consequent.Meta(), ast.KindBranchConsequent, consequent))

	if _, hasElse := p.accept(lexer.ELSE); hasElse {
		var alt ast.Node
		if p.peek().Type == lexer.IF {
			alt, ok = p.parseIf()
		} else {
			alt, ok = p.parseBlock()
		}
		if !ok {
			return ast.Node{}, false
		}
		stmt.AddChildren(p.tree.New(alt.Meta(), ast.KindBranchAlternative, alt))
	}
	return stmt, true
}

// parseFor parses every loop form:
//
//	for := "for" block                                  (unconditional)
//	     | "for" IDENT "in" expr "to" expr ("step" expr)? block
//	     | "for" IDENT "in" expr block                  (collection iteration)
//	     | "for" expression block                       (conditional)
func (p *Parser) parseFor() (ast.Node, bool) {
	kw, _ := p.expect(lexer.FOR)
	stmt := p.tree.New(p.meta(kw), ast.KindForStatement)

	if p.peek().Type != lexer.LBRACE {
		clause, ok := p.parseForClause()
		if !ok {
			return ast.Node{}, false
		}
		stmt.AddChildren(clause)
	}

	block, ok := p.parseBlock()
	if !ok {
		return ast.Node{}, false
	}
	stmt.AddChildren(block)
	return stmt, true
}

func (p *Parser) parseForClause() (ast.Node, bool) {
	if p.peek().Type == lexer.IDENT && p.peekAt(1).Type == lexer.IN {
		name := p.next()
		p.next() // in

		from, ok := p.parseExpression(precedenceLowest)
		if !ok {
			return ast.Node{}, false
		}

		if _, ranged := p.accept(lexer.TO); ranged {
			return p.parseRangeRest(name, from)
		}

		// No upper bound: iterate the collection itself.
		each := p.tree.New(p.meta(name).Merge(from.Meta()), ast.KindForEachExpression, from)
		each.AddParam(ast.NewValueParameter(ast.ParamRangeIdentifier, ast.TextValue(name.Value)))
		return each, true
	}

	return p.parseExpression(precedenceLowest)
}

func (p *Parser) parseRangeRest(name lexer.Token, from ast.Node) (ast.Node, bool) {
	to, ok := p.parseExpression(precedenceLowest)
	if !ok {
		return ast.Node{}, false
	}

	rng := p.tree.New(p.meta(name).Merge(to.Meta()), ast.KindRangeExpression,
		p.tree.New(from.Meta(), ast.KindRangeFromExpression, from),
		p.tree.New(to.Meta(), ast.KindRangeToExpression, to))
	rng.AddParam(ast.NewValueParameter(ast.ParamRangeIdentifier, ast.TextValue(name.Value)))

	if _, stepped := p.accept(lexer.STEP); stepped {
		step, ok := p.parseExpression(precedenceLowest)
		if !ok {
			return ast.Node{}, false
		}
		rng.AddChildren(p.tree.New(step.Meta(), ast.KindRangeStepExpression, step))
	}
	return rng, true
}

// parseReturn parses a return statement with any number of return values:
//
//	return := "return" (expression ("," expression)*)?
func (p *Parser) parseReturn() (ast.Node, bool) {
	kw, _ := p.expect(lexer.RETURN)
	ret := p.tree.New(p.meta(kw), ast.KindFunctionReturn)

	if !startsExpression(p.peek().Type) {
		return ret, true
	}

	for {
		expr, ok := p.parseExpression(precedenceLowest)
		if !ok {
			return ast.Node{}, false
		}
		ret.AddChildren(expr)

		if _, more := p.accept(lexer.COMMA); !more {
			return ret, true
		}
	}
}

// parseSimpleStatement handles the statement forms that all begin with an
// identifier or a type, which only lookahead can tell apart:
//
//	varDecl   := type IDENT
//	typedInit := type IDENT "=" expression
//	init      := IDENT ":=" expression
//	assign    := expression ("=" | "+=" | "-=" | "*=" | "/=") expression
//	exprStmt  := expression
//
// The declaration forms are tried speculatively first; on failure the cursor
// rewinds and the line is parsed as an expression.
func (p *Parser) parseSimpleStatement() (ast.Node, bool) {
	if decl, ok := p.speculate(p.parseVarDeclOrTypedInit); ok {
		return decl, true
	}

	expr, ok := p.parseExpression(precedenceLowest)
	if !ok {
		return ast.Node{}, false
	}

	if _, declared := p.accept(lexer.DECLARE); declared {
		if expr.Kind() != ast.KindIdentifier {
			p.reportError("':=' requires an identifier on the left-hand side", expr.Meta())
			return ast.Node{}, false
		}
		value, ok := p.parseExpression(precedenceLowest)
		if !ok {
			return ast.Node{}, false
		}
		return p.tree.New(expr.Meta().Merge(value.Meta()), ast.KindInitialization, expr, value), true
	}

	if kind, isAssign := assignmentKind(p.peek().Type); isAssign {
		p.next()
		value, ok := p.parseExpression(precedenceLowest)
		if !ok {
			return ast.Node{}, false
		}
		return p.tree.New(expr.Meta().Merge(value.Meta()), kind, expr, value), true
	}

	return p.tree.New(expr.Meta(), ast.KindExpressionStatement, expr), true
}

func (p *Parser) parseVarDeclOrTypedInit() (ast.Node, bool) {
	typ, ok := p.parseType()
	if !ok {
		return ast.Node{}, false
	}

	name := p.peek()
	if name.Type != lexer.IDENT {
		return ast.Node{}, false
	}
	p.next()

	id := p.tree.NewValue(p.meta(name), ast.KindIdentifier, ast.TextValue(name.Value))
	typed := p.tree.New(typ.Meta().Merge(p.meta(name)), ast.KindTypedExpression, typ, id)

	if _, initialized := p.accept(lexer.ASSIGN); initialized {
		value, ok := p.parseExpression(precedenceLowest)
		if !ok {
			return ast.Node{}, false
		}
		return p.tree.New(typed.Meta().Merge(value.Meta()), ast.KindInitialization, typed, value), true
	}

	return p.tree.New(typed.Meta(), ast.KindVarDeclaration, typed), true
}

func assignmentKind(tt lexer.TokenType) (ast.NodeKind, bool) {
	switch tt {
	case lexer.ASSIGN:
		return ast.KindAssignment, true
	case lexer.SUM_ASSIGN:
		return ast.KindAssignmentSum, true
	case lexer.SUB_ASSIGN:
		return ast.KindAssignmentSub, true
	case lexer.MUL_ASSIGN:
		return ast.KindAssignmentMulti, true
	case lexer.DIV_ASSIGN:
		return ast.KindAssignmentDiv, true
	default:
		return ast.KindNone, false
	}
}

func startsExpression(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IDENT, lexer.INT, lexer.DECIMAL, lexer.STRING, lexer.CHAR,
		lexer.TRUE, lexer.FALSE, lexer.NONE, lexer.LPAREN,
		lexer.BANG, lexer.MINUS, lexer.DOLLAR, lexer.ASTERISK, lexer.AMPERSAND:
		return true
	default:
		return false
	}
}
