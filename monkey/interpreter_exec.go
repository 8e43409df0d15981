// interpreter_exec.go — the evaluator.
//
// Eval is the single recursive dispatch point: one case per AST node kind.
// Every composition site (operands, arguments, block sequencing, call binding,
// collection literals) checks for an *Error before doing more work and hands
// it back unchanged. *ReturnValue travels the same way through blocks and is
// unwrapped once, by applyFunction or by the Program case.
package monkey

import (
	"fortio.org/log"
)

// Eval evaluates node in env.
func (ip *Interpreter) Eval(node Node, env *Environment) Object {
	switch node := node.(type) {

	// Statements
	case *Program:
		log.LogVf("eval program (%d statements)", len(node.Statements))
		return ip.evalProgram(node, env)

	case *ExpressionStatement:
		return ip.Eval(node.Expression, env)

	case *BlockStatement:
		return ip.evalBlockStatement(node, env)

	case *LetStatement:
		val := ip.Eval(node.Value, env)
		if isError(val) {
			log.LogVf("let %s not bound: %s", node.Name.Value, val.Inspect())
			return val
		}
		env.Set(node.Name.Value, val)
		return NULL

	case *ReturnStatement:
		if node.ReturnValue == nil {
			return &ReturnValue{Value: NULL}
		}
		val := ip.Eval(node.ReturnValue, env)
		if isError(val) {
			return val
		}
		return &ReturnValue{Value: val}

	// Literals
	case *IntegerLiteral:
		return &Integer{Value: node.Value}

	case *StringLiteral:
		return &String{Value: node.Value}

	case *BooleanLiteral:
		return nativeBoolToBooleanObject(node.Value)

	case *ArrayLiteral:
		elems := ip.evalExpressions(node.Elements, env)
		if len(elems) == 1 && isError(elems[0]) {
			return elems[0]
		}
		return &Array{Elements: elems}

	case *HashLiteral:
		return ip.evalHashLiteral(node, env)

	case *FunctionLiteral:
		return &Function{Parameters: node.Parameters, Body: node.Body, Env: env}

	// Expressions
	case *Identifier:
		return ip.evalIdentifier(node, env)

	case *PrefixExpression:
		right := ip.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return evalPrefixExpression(node.Operator, right)

	case *InfixExpression:
		left := ip.Eval(node.Left, env)
		if isError(left) {
			return left
		}
		right := ip.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return evalInfixExpression(node.Operator, left, right)

	case *IfExpression:
		return ip.evalIfExpression(node, env)

	case *CallExpression:
		fn := ip.Eval(node.Function, env)
		if isError(fn) {
			return fn
		}
		args := ip.evalExpressions(node.Arguments, env)
		if len(args) == 1 && isError(args[0]) {
			return args[0]
		}
		log.LogVf("call %s with %d args", node.Function.String(), len(args))
		return ip.applyFunction(fn, args)

	case *IndexExpression:
		left := ip.Eval(node.Left, env)
		if isError(left) {
			return left
		}
		index := ip.Eval(node.Index, env)
		if isError(index) {
			return index
		}
		return evalIndexExpression(left, index)
	}

	return newError("unknown node type: %T", node)
}

func (ip *Interpreter) evalProgram(prog *Program, env *Environment) Object {
	var result Object = NULL
	for _, stmt := range prog.Statements {
		result = ip.Eval(stmt, env)
		switch r := result.(type) {
		case *ReturnValue:
			return r.Value
		case *Error:
			return r
		}
	}
	return result
}

// evalBlockStatement runs the statements in env itself (blocks do not open a
// scope) and stops at the first *ReturnValue or *Error, returning it as is.
func (ip *Interpreter) evalBlockStatement(block *BlockStatement, env *Environment) Object {
	var result Object = NULL
	for _, stmt := range block.Statements {
		result = ip.Eval(stmt, env)
		switch result.(type) {
		case *ReturnValue, *Error:
			return result
		}
	}
	return result
}

func (ip *Interpreter) evalIdentifier(node *Identifier, env *Environment) Object {
	if val, ok := env.Get(node.Value); ok {
		return val
	}
	// Environments built by hosts may not descend from Core.
	if val, ok := ip.Core.Get(node.Value); ok {
		return val
	}
	return newError("identifier not found: %s", node.Value)
}

func (ip *Interpreter) evalIfExpression(ie *IfExpression, env *Environment) Object {
	cond := ip.Eval(ie.Condition, env)
	if isError(cond) {
		return cond
	}
	switch {
	case isTruthy(cond):
		return ip.Eval(ie.Consequence, env)
	case ie.Alternative != nil:
		return ip.Eval(ie.Alternative, env)
	default:
		return NULL
	}
}

// evalExpressions evaluates left to right. On the first *Error it returns a
// one-element slice holding just that error.
func (ip *Interpreter) evalExpressions(exps []Expression, env *Environment) []Object {
	result := make([]Object, 0, len(exps))
	for _, e := range exps {
		evaluated := ip.Eval(e, env)
		if isError(evaluated) {
			return []Object{evaluated}
		}
		result = append(result, evaluated)
	}
	return result
}

func (ip *Interpreter) evalHashLiteral(node *HashLiteral, env *Environment) Object {
	hash := NewHash()
	for _, pair := range node.Pairs {
		key := ip.Eval(pair.Key, env)
		if isError(key) {
			return key
		}
		hk, ok := key.(Hashable)
		if !ok {
			return newError("unusable as hash key: %s", key.Type())
		}
		val := ip.Eval(pair.Value, env)
		if isError(val) {
			return val
		}
		hash.Set(hk, val)
	}
	return hash
}

// applyFunction is the call boundary: the only place a *ReturnValue is
// unwrapped for user functions.
func (ip *Interpreter) applyFunction(fn Object, args []Object) Object {
	switch fn := fn.(type) {
	case *Function:
		if len(args) != len(fn.Parameters) {
			return newError("wrong number of arguments. got=%d, want=%d", len(args), len(fn.Parameters))
		}
		if ip.maxDepth > 0 && ip.depth >= ip.maxDepth {
			return newError("maximum call depth exceeded (%d)", ip.maxDepth)
		}
		ip.depth++
		defer func() { ip.depth-- }()

		evaluated := ip.Eval(fn.Body, extendFunctionEnv(fn, args))
		return unwrapReturnValue(evaluated)

	case *Builtin:
		return fn.Fn(args...)

	case *Integer, *Boolean, *String, *Null, *ReturnValue, *Error, *Array, *Hash:
		return newError("not a function: %s", fn.Type())
	}
	return newError("not a function: %T", fn)
}

// extendFunctionEnv binds parameters positionally in a new frame enclosed by
// the closure's captured environment, not the caller's.
func extendFunctionEnv(fn *Function, args []Object) *Environment {
	env := NewEnclosedEnvironment(fn.Env)
	for i, param := range fn.Parameters {
		env.Set(param.Value, args[i])
	}
	return env
}

func unwrapReturnValue(obj Object) Object {
	if rv, ok := obj.(*ReturnValue); ok {
		return rv.Value
	}
	return obj
}
