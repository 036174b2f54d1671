package compiler

import (
	"fmt"

	"tokiwen/internal/ast"
	"tokiwen/internal/isa"
)

func (c *compiler) compile(n *ast.Node) error {
	if n.Kind.IsExpr() {
		return c.compileExpr(n)
	}
	switch n.Kind {
	case ast.KindNoop, ast.KindDeclaration:
		return nil
	case ast.KindStatement:
		c.markBoundary()
		return c.compile(n.Child(0))
	case ast.KindBlock:
		return c.compile(n.Child(0))
	case ast.KindSequence:
		if err := c.compile(n.Child(0)); err != nil {
			return err
		}
		return c.compile(n.Child(1))
	case ast.KindDeclarationAssignment:
		return c.compileDeclAssignment(n)
	case ast.KindConditional:
		return c.compileConditional(n)
	case ast.KindWhile:
		return c.compileWhile(n)
	case ast.KindLabel:
		c.user[n.Name] = c.here()
		return nil
	case ast.KindGoto:
		c.emit(n, isa.Jump, userLabel(n.Name, n.Span))
		return nil
	case ast.KindWrite:
		if err := c.compileExpr(n.Child(0)); err != nil {
			return err
		}
		c.emit(n, isa.Interrupt, absolute(uint64(isa.SysWrite)))
		return nil
	case ast.KindRead:
		return c.compileRead(n)
	}
	return fmt.Errorf("%w: unexpected %s node", ErrMalformedTree, n.Kind)
}

func (c *compiler) compileDeclAssignment(n *ast.Node) error {
	if err := c.compileExpr(n.Child(2)); err != nil {
		return err
	}
	target, err := c.varAddress(n.Child(1))
	if err != nil {
		return err
	}
	c.emit(n, isa.Set, absolute(target))
	return nil
}

// compileConditional:
//
//	cond; BRANCH_IF_ZERO else; then; JUMP end; else: els; end:
func (c *compiler) compileConditional(n *ast.Node) error {
	if err := c.compileExpr(n.Child(0)); err != nil {
		return err
	}
	c.markBoundary()

	elseLabel := c.newLabel()
	endLabel := c.newLabel()

	c.emit(n, isa.BranchIfZero, hiddenLabel(elseLabel))
	if err := c.compile(n.Child(1)); err != nil {
		return err
	}
	c.emit(n, isa.Jump, hiddenLabel(endLabel))

	c.bind(elseLabel)
	if err := c.compile(n.Child(2)); err != nil {
		return err
	}
	c.bind(endLabel)
	return nil
}

// compileWhile:
//
//	start: cond; BRANCH_IF_ZERO end; body; JUMP start; end:
func (c *compiler) compileWhile(n *ast.Node) error {
	startLabel := c.newLabel()
	c.bind(startLabel)

	if err := c.compileExpr(n.Child(0)); err != nil {
		return err
	}
	c.markBoundary()

	endLabel := c.newLabel()
	c.emit(n, isa.BranchIfZero, hiddenLabel(endLabel))
	if err := c.compile(n.Child(1)); err != nil {
		return err
	}
	c.emit(n, isa.Jump, hiddenLabel(startLabel))
	c.bind(endLabel)
	return nil
}

// compileRead hands the runtime the target address in the register.
func (c *compiler) compileRead(n *ast.Node) error {
	target, err := c.varAddress(n.Child(0))
	if err != nil {
		return err
	}
	c.emit(n, isa.LoadI, absolute(target))
	c.emit(n, isa.Interrupt, absolute(uint64(isa.SysRead)))
	return nil
}

func (c *compiler) varAddress(n *ast.Node) (uint64, error) {
	if n == nil || n.Kind != ast.KindVarIdentifier {
		return 0, fmt.Errorf("%w: expected a variable", ErrMalformedTree)
	}
	v := c.table.Var(n.Var)
	if v == nil {
		return 0, fmt.Errorf("%w: variable %s has no table entry", ErrMalformedTree, n.Name)
	}
	return v.Offset, nil
}
