package parser

import (
	"github.com/tinypl/tiny/internal/ast"
	"github.com/tinypl/tiny/internal/lexer"
)

// ParseFile parses a whole compilation unit:
//
//	file := "module" IDENT import* statement*
//	import := "import" IDENT ("as" IDENT)?
func (p *Parser) ParseFile() *ast.File {
	file := ast.NewFile(p.filename)
	p.tree = file.Tree()

	if _, ok := p.expect(lexer.MODULE); ok {
		if name, ok := p.expect(lexer.IDENT); ok {
			file.Module = name.Value
		}
	}

	for {
		if _, ok := p.accept(lexer.IMPORT); !ok {
			break
		}
		name, ok := p.expect(lexer.IDENT)
		if !ok {
			p.sync()
			continue
		}
		if _, aliased := p.accept(lexer.AS); aliased {
			alias, ok := p.expect(lexer.IDENT)
			if !ok {
				p.sync()
				continue
			}
			file.AddImport(ast.NewAliasedImport(name.Value, alias.Value))
			continue
		}
		file.AddImport(ast.NewImport(name.Value))
	}

	for !p.peek().IsEOF() {
		before := p.toks.Pos()
		stmt, ok := p.parseStatement()
		if ok {
			file.AddStatement(stmt)
		} else {
			p.sync()
			if p.toks.Pos() == before {
				// Nothing consumed and nothing to sync to; drop the token so
				// the parse always terminates.
				p.next()
			}
		}
	}
	return file
}

// parseFuncOrMethod parses either form:
//
//	func := "func" IDENT signature block
//	method := "func" "(" type ")" IDENT signature block
func (p *Parser) parseFuncOrMethod() (ast.Node, bool) {
	kw, _ := p.expect(lexer.FUNC)

	if _, isMethod := p.accept(lexer.LPAREN); isMethod {
		return p.parseMethodRest(kw)
	}

	name, ok := p.expect(lexer.IDENT)
	if !ok {
		return ast.Node{}, false
	}

	fn := p.tree.New(p.meta(kw).Merge(p.meta(name)), ast.KindFunctionDeclaration)
	fn.AddParam(ast.NewValueParameter(ast.ParamName, ast.TextValue(name.Value)))
	return p.parseSignatureAndBody(fn)
}

func (p *Parser) parseMethodRest(kw lexer.Token) (ast.Node, bool) {
	recv, ok := p.parseType()
	if !ok {
		return ast.Node{}, false
	}
	if _, ok := p.expect(lexer.RPAREN); !ok {
		return ast.Node{}, false
	}
	name, ok := p.expect(lexer.IDENT)
	if !ok {
		return ast.Node{}, false
	}

	mt := p.tree.New(recv.Meta(), ast.KindMethodType, recv)
	m := p.tree.New(p.meta(kw).Merge(p.meta(name)), ast.KindMethodDeclaration, mt)
	m.AddParam(ast.NewValueParameter(ast.ParamName, ast.TextValue(name.Value)))
	return p.parseSignatureAndBody(m)
}

// parseSignatureAndBody parses the shared tail of function and method
// declarations:
//
//	signature := "(" argDecl ("," argDecl)* ")" (":" type ("," type)*)? traitList?
//	argDecl   := type IDENT
func (p *Parser) parseSignatureAndBody(decl ast.Node) (ast.Node, bool) {
	open, ok := p.expect(lexer.LPAREN)
	if !ok {
		return ast.Node{}, false
	}

	args := p.tree.New(p.meta(open), ast.KindFunctionArgumentDeclList)
	for p.peek().Type != lexer.RPAREN && !p.peek().IsEOF() {
		arg, ok := p.parseArgumentDecl()
		if !ok {
			return ast.Node{}, false
		}
		args.AddChildren(arg)

		if _, more := p.accept(lexer.COMMA); !more {
			break
		}
	}
	if _, ok := p.expect(lexer.RPAREN); !ok {
		return ast.Node{}, false
	}
	decl.AddChildren(args)

	if colon, hasReturns := p.accept(lexer.COLON); hasReturns {
		rets := p.tree.New(p.meta(colon), ast.KindFunctionReturnDeclList)
		for {
			typ, ok := p.parseType()
			if !ok {
				return ast.Node{}, false
			}
			rets.AddChildren(p.tree.New(typ.Meta(), ast.KindFunctionReturnDecl, typ))

			if _, more := p.accept(lexer.COMMA); !more {
				break
			}
		}
		decl.AddChildren(rets)
	}

	if p.peek().Type == lexer.LBRACKET {
		traits, ok := p.parseTraitList()
		if !ok {
			return ast.Node{}, false
		}
		decl.AddChildren(traits)
	}

	block, ok := p.parseBlock()
	if !ok {
		return ast.Node{}, false
	}
	decl.AddChildren(p.tree.New(block.Meta(), ast.KindFunctionBody, block))
	return decl, true
}

func (p *Parser) parseArgumentDecl() (ast.Node, bool) {
	typ, ok := p.parseType()
	if !ok {
		return ast.Node{}, false
	}
	name, ok := p.expect(lexer.IDENT)
	if !ok {
		return ast.Node{}, false
	}

	id := p.tree.NewValue(p.meta(name), ast.KindIdentifier, ast.TextValue(name.Value))
	typed := p.tree.New(typ.Meta().Merge(p.meta(name)), ast.KindTypedExpression, typ, id)
	return p.tree.New(typed.Meta(), ast.KindFunctionArgumentDecl, typed), true
}

// parseTraitList parses the traits bound by a declaration:
//
//	traitList := "[" IDENT ("," IDENT)* "]"
func (p *Parser) parseTraitList() (ast.Node, bool) {
	open, _ := p.expect(lexer.LBRACKET)
	list := p.tree.New(p.meta(open), ast.KindTraitList)

	for {
		name, ok := p.expect(lexer.IDENT)
		if !ok {
			return ast.Node{}, false
		}
		list.AddChildren(p.tree.NewValue(p.meta(name), ast.KindTrait, ast.TextValue(name.Value)))

		if _, more := p.accept(lexer.COMMA); !more {
			break
		}
	}
	if _, ok := p.expect(lexer.RBRACKET); !ok {
		return ast.Node{}, false
	}
	return list, true
}

// parseStructDecl parses a struct definition. A field line is either a typed
// field or a bare type name, which composes the named type into the struct:
//
//	struct := "struct" IDENT traitList? "{" entries? "}"
//	entries := (field | composition) ("," (field | composition))*
//	field  := type IDENT
//	composition := IDENT
//
// The comma keeps entries unambiguous: a bare name that is not followed by a
// field name reads as a composition.
func (p *Parser) parseStructDecl() (ast.Node, bool) {
	kw, _ := p.expect(lexer.STRUCT)
	name, ok := p.expect(lexer.IDENT)
	if !ok {
		return ast.Node{}, false
	}

	decl := p.tree.New(p.meta(kw).Merge(p.meta(name)), ast.KindStructDeclaration)
	decl.AddParam(ast.NewValueParameter(ast.ParamName, ast.TextValue(name.Value)))

	if p.peek().Type == lexer.LBRACKET {
		traits, ok := p.parseTraitList()
		if !ok {
			return ast.Node{}, false
		}
		decl.AddChildren(traits)
	}

	open, ok := p.expect(lexer.LBRACE)
	if !ok {
		return ast.Node{}, false
	}
	fields := p.tree.New(p.meta(open), ast.KindStructFieldList)

	for p.peek().Type != lexer.RBRACE && !p.peek().IsEOF() {
		entry, ok := p.parseStructEntry()
		if !ok {
			return ast.Node{}, false
		}
		fields.AddChildren(entry)

		if _, more := p.accept(lexer.COMMA); !more {
			break
		}
	}
	if _, ok := p.expect(lexer.RBRACE); !ok {
		return ast.Node{}, false
	}

	decl.AddChildren(fields)
	return decl, true
}

func (p *Parser) parseStructEntry() (ast.Node, bool) {
	pos := p.toks.Pos()

	typ, ok := p.parseType()
	if !ok {
		return ast.Node{}, false
	}

	if name, isField := p.accept(lexer.IDENT); isField {
		id := p.tree.NewValue(p.meta(name), ast.KindIdentifier, ast.TextValue(name.Value))
		typed := p.tree.New(typ.Meta().Merge(p.meta(name)), ast.KindTypedExpression, typ, id)
		return p.tree.New(typed.Meta(), ast.KindStructField, typed), true
	}

	// Bare type name: roll back and re-read it as a composition entry.
	p.toks.Seek(pos)
	name, ok := p.expect(lexer.IDENT)
	if !ok {
		return ast.Node{}, false
	}
	return p.tree.NewValue(p.meta(name), ast.KindComposition, ast.TextValue(name.Value)), true
}

// parseTraitDecl parses a trait definition:
//
//	trait := "trait" IDENT "{" field* "}"
func (p *Parser) parseTraitDecl() (ast.Node, bool) {
	kw, _ := p.expect(lexer.TRAIT)
	name, ok := p.expect(lexer.IDENT)
	if !ok {
		return ast.Node{}, false
	}

	decl := p.tree.New(p.meta(kw).Merge(p.meta(name)), ast.KindTraitDeclaration)
	decl.AddParam(ast.NewValueParameter(ast.ParamName, ast.TextValue(name.Value)))

	open, ok := p.expect(lexer.LBRACE)
	if !ok {
		return ast.Node{}, false
	}
	fields := p.tree.New(p.meta(open), ast.KindTraitFieldList)

	for p.peek().Type != lexer.RBRACE && !p.peek().IsEOF() {
		typ, ok := p.parseType()
		if !ok {
			return ast.Node{}, false
		}
		fname, ok := p.expect(lexer.IDENT)
		if !ok {
			return ast.Node{}, false
		}
		id := p.tree.NewValue(p.meta(fname), ast.KindIdentifier, ast.TextValue(fname.Value))
		typed := p.tree.New(typ.Meta().Merge(p.meta(fname)), ast.KindTypedExpression, typ, id)
		fields.AddChildren(p.tree.New(typed.Meta(), ast.KindStructField, typed))

		if _, more := p.accept(lexer.COMMA); !more {
			break
		}
	}
	if _, ok := p.expect(lexer.RBRACE); !ok {
		return ast.Node{}, false
	}

	decl.AddChildren(fields)
	return decl, true
}

// parseType parses a type reference:
//
//	type := "const"? IDENT "&"?
//
// The const and pointer modifiers become parameters on the Type node rather
// than wrapper nodes.
func (p *Parser) parseType() (ast.Node, bool) {
	constTok, isConst := p.accept(lexer.CONST)

	name := p.peek()
	if name.Type != lexer.IDENT {
		p.reportExpected("type name", name)
		return ast.Node{}, false
	}
	p.next()

	meta := p.meta(name)
	if isConst {
		meta = p.meta(constTok).Merge(meta)
	}

	typ := p.tree.NewValue(meta, ast.KindType, ast.TextValue(name.Value))
	if isConst {
		typ.AddParam(ast.NewParameter(ast.ParamConst))
	}
	if _, isPointer := p.accept(lexer.AMPERSAND); isPointer {
		typ.AddParam(ast.NewParameter(ast.ParamPointer))
	}
	return typ, true
}
