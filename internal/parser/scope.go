package parser

import (
	"tokiwen/internal/ast"
	"tokiwen/internal/coerce"
	"tokiwen/internal/source"
	"tokiwen/internal/symbols"
)

// Scope returns the scope declarations currently go into.
func (p *Parser) Scope() symbols.ScopeID { return p.scope }

func (p *Parser) pushScope(span source.Span) symbols.ScopeID {
	p.scope = p.table.NewScope(p.scope, span)
	return p.scope
}

func (p *Parser) popScope() {
	p.scope = p.table.Scope(p.scope).Parent
}

// GetType resolves a type name from the current scope outwards, then among the built-ins.
func (p *Parser) GetType(name string, span source.Span) (symbols.TypeID, error) {
	return p.table.GetType(p.scope, name, span)
}

// GetVar resolves a variable name from the current scope outwards.
func (p *Parser) GetVar(name string, span source.Span) (symbols.VarID, error) {
	return p.table.GetVar(p.scope, name, span)
}

func (p *Parser) UseVar(name string, span source.Span) (*ast.Node, error) {
	id, err := p.GetVar(name, span)
	if err != nil {
		return nil, err
	}
	return ast.NewVarIdentifier(id, name, p.table.VarType(id), span), nil
}

func (p *Parser) UseType(name string, span source.Span) (*ast.Node, error) {
	id, err := p.GetType(name, span)
	if err != nil {
		return nil, err
	}
	return ast.NewTypeIdentifier(id, name, span), nil
}

// DeclareVar inserts name into the current scope and returns the Declaration node.
func (p *Parser) DeclareVar(typeName string, typeSpan source.Span, name string, span source.Span) (*ast.Node, error) {
	typeNode, nameNode, err := p.declare(typeName, typeSpan, name, span)
	if err != nil {
		return nil, err
	}
	return ast.NewDeclaration(typeNode, nameNode, typeSpan.Cover(span)), nil
}

// DeclareAssignVar declares name and stores value into it. The value is
// converted to the declared type the same way an assignment would be.
func (p *Parser) DeclareAssignVar(typeName string, typeSpan source.Span, name string, span source.Span, value *ast.Node) (*ast.Node, error) {
	typeNode, nameNode, err := p.declare(typeName, typeSpan, name, span)
	if err != nil {
		return nil, err
	}
	whole := typeSpan.Cover(value.Span)
	v, err := coerce.To(nameNode.Type, value, whole)
	if err != nil {
		return nil, err
	}
	return ast.NewDeclarationAssignment(typeNode, nameNode, v, whole), nil
}

func (p *Parser) declare(typeName string, typeSpan source.Span, name string, span source.Span) (*ast.Node, *ast.Node, error) {
	typeNode, err := p.UseType(typeName, typeSpan)
	if err != nil {
		return nil, nil, err
	}
	id, err := p.table.InsertVariable(p.scope, name, span, typeNode.TypeRef)
	if err != nil {
		return nil, nil, err
	}
	return typeNode, ast.NewVarIdentifier(id, name, p.table.VarType(id), span), nil
}
