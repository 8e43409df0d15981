// interpreter_ops.go — operators and indexing.
//
// These helpers only ever see fully evaluated, non-error operands; the
// dispatcher in interpreter_exec.go has already filtered *Error out.
package monkey

func evalPrefixExpression(operator string, right Object) Object {
	switch operator {
	case "!":
		return nativeBoolToBooleanObject(!isTruthy(right))
	case "-":
		i, ok := right.(*Integer)
		if !ok {
			return newError("unknown operator: -%s", right.Type())
		}
		return &Integer{Value: -i.Value}
	default:
		return newError("unknown operator: %s%s", operator, right.Type())
	}
}

// evalInfixExpression: == and != work across all kinds (different kinds are
// simply unequal); every other operator needs operands of the same kind.
func evalInfixExpression(operator string, left, right Object) Object {
	switch {
	case operator == "==":
		return nativeBoolToBooleanObject(objectsEqual(left, right))
	case operator == "!=":
		return nativeBoolToBooleanObject(!objectsEqual(left, right))
	case left.Type() != right.Type():
		return newError("type mismatch: %s %s %s", left.Type(), operator, right.Type())
	}

	switch l := left.(type) {
	case *Integer:
		return evalIntegerInfixExpression(operator, l.Value, right.(*Integer).Value)
	case *String:
		return evalStringInfixExpression(operator, l.Value, right.(*String).Value)
	case *Boolean, *Null, *ReturnValue, *Error, *Function, *Builtin, *Array, *Hash:
	}
	return newError("unknown operator: %s %s %s", left.Type(), operator, right.Type())
}

func evalIntegerInfixExpression(operator string, l, r int64) Object {
	switch operator {
	case "+":
		return &Integer{Value: l + r}
	case "-":
		return &Integer{Value: l - r}
	case "*":
		return &Integer{Value: l * r}
	case "/":
		if r == 0 {
			return newError("division by zero")
		}
		return &Integer{Value: l / r}
	case "<":
		return nativeBoolToBooleanObject(l < r)
	case ">":
		return nativeBoolToBooleanObject(l > r)
	}
	return newError("unknown operator: %s %s %s", INTEGER_OBJ, operator, INTEGER_OBJ)
}

func evalStringInfixExpression(operator string, l, r string) Object {
	if operator != "+" {
		return newError("unknown operator: %s %s %s", STRING_OBJ, operator, STRING_OBJ)
	}
	return &String{Value: l + r}
}

// evalIndexExpression: out-of-range array indexes and absent hash keys yield
// NULL, not an error.
func evalIndexExpression(left, index Object) Object {
	switch l := left.(type) {
	case *Array:
		i, ok := index.(*Integer)
		if !ok {
			return newError("index operator not supported: %s[%s]", left.Type(), index.Type())
		}
		if i.Value < 0 || i.Value >= int64(len(l.Elements)) {
			return NULL
		}
		return l.Elements[i.Value]

	case *Hash:
		key, ok := index.(Hashable)
		if !ok {
			return newError("unusable as hash key: %s", index.Type())
		}
		if v, found := l.Get(key); found {
			return v
		}
		return NULL

	case *Integer, *Boolean, *String, *Null, *ReturnValue, *Error, *Function, *Builtin:
	}
	return newError("index operator not supported: %s", left.Type())
}
