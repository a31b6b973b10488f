package compiler

import (
	"github.com/fastsatsolver/fss/pkgs/assignment"
	"github.com/fastsatsolver/fss/pkgs/errors"
)

// OpKind identifies a binary operator carried by a Binop command.
type OpKind int

const (
	OpAnd OpKind = iota
	OpOr
	OpXor
)

// opKind is a tagged command in a compiled formula's flat postfix
// instruction sequence. Exactly one of the fields is meaningful per Kind.
type opKind int

const (
	opPushConst opKind = iota
	opPushVar
	opNot
	opBinop
)

// Cmd is one instruction of a compiled formula. Using a flat struct rather
// than a heterogeneous linked list of command objects keeps the sequence
// cache-friendly, trivially copyable, and easy to validate.
type Cmd struct {
	op    opKind
	b     bool
	varID int
	binOp OpKind
}

// PushConst returns a command pushing the literal b.
func PushConst(b bool) Cmd { return Cmd{op: opPushConst, b: b} }

// PushVar returns a command pushing assignment.Bit(varID).
func PushVar(varID int) Cmd { return Cmd{op: opPushVar, varID: varID} }

// Not returns a command negating the top of the runtime stack.
func Not() Cmd { return Cmd{op: opNot} }

// Binop returns a command combining the top two stack values with op.
func Binop(op OpKind) Cmd { return Cmd{op: opBinop, binOp: op} }

// CommandList is the compiled, executable form of one formula: a finite
// ordered sequence of Cmd values that, executed against an assignment and
// an initially empty runtime stack, leaves exactly one bool on the stack.
// A CommandList is only ever produced for a formula that parsed without
// error.
type CommandList struct {
	cmds []Cmd
}

// Len returns the number of commands.
func (c CommandList) Len() int { return len(c.cmds) }

// Eval executes the command list against data and returns the formula's
// value. Any stack-discipline violation (underflow, or a final stack depth
// other than 1) is a fatal implementation fault, never surfaced as a user
// error — it indicates a compiler defect, not a malformed formula.
func Eval(c CommandList, data assignment.Assignment) bool {
	stack := make([]bool, 0, len(c.cmds))
	pop := func() bool {
		if len(stack) == 0 {
			panic(errors.NewInternalError("formula evaluator: stack underflow").Error())
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}
	for _, cmd := range c.cmds {
		switch cmd.op {
		case opPushConst:
			stack = append(stack, cmd.b)
		case opPushVar:
			if cmd.varID < 0 || cmd.varID >= data.Length() {
				panic(errors.NewInternalError("formula evaluator: variable id out of range").Error())
			}
			stack = append(stack, data.Bit(cmd.varID))
		case opNot:
			stack = append(stack, !pop())
		case opBinop:
			rhs := pop()
			lhs := pop()
			switch cmd.binOp {
			case OpAnd:
				stack = append(stack, lhs && rhs)
			case OpOr:
				stack = append(stack, lhs || rhs)
			case OpXor:
				stack = append(stack, lhs != rhs)
			}
		}
	}
	if len(stack) != 1 {
		panic(errors.NewInternalError("formula evaluator: command list left stack depth != 1").Error())
	}
	return stack[0]
}
