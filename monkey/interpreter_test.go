package monkey

import (
	"bytes"
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func evalSrc(t *testing.T, src string) Object {
	t.Helper()
	ip := NewInterpreter(WithOutput(&bytes.Buffer{}))
	v, err := ip.EvalSource(src)
	if err != nil {
		t.Fatalf("EvalSource error: %v\nsource:\n%s", err, src)
	}
	return v
}

func mustEvalPersistent(t *testing.T, ip *Interpreter, src string) Object {
	t.Helper()
	v, err := ip.EvalPersistentSource(src)
	if err != nil {
		t.Fatalf("eval error for %q: %v", src, err)
	}
	return v
}

func wantInt(t *testing.T, v Object, n int64) {
	t.Helper()
	i, ok := v.(*Integer)
	if !ok || i.Value != n {
		t.Fatalf("want int %d, got %#v", n, v)
	}
}

func wantStr(t *testing.T, v Object, s string) {
	t.Helper()
	str, ok := v.(*String)
	if !ok || str.Value != s {
		t.Fatalf("want str %q, got %#v", s, v)
	}
}

func wantBool(t *testing.T, v Object, b bool) {
	t.Helper()
	if v != nativeBoolToBooleanObject(b) {
		t.Fatalf("want bool %v, got %#v", b, v)
	}
}

func wantNull(t *testing.T, v Object) {
	t.Helper()
	if v != NULL {
		t.Fatalf("want null, got %#v", v)
	}
}

func wantErr(t *testing.T, v Object, msg string) {
	t.Helper()
	e, ok := v.(*Error)
	if !ok {
		t.Fatalf("want error %q, got %#v", msg, v)
	}
	if e.Message != msg {
		t.Fatalf("want error %q, got %q", msg, e.Message)
	}
}

func wantInspect(t *testing.T, v Object, s string) {
	t.Helper()
	if v.Inspect() != s {
		t.Fatalf("want %q, got %q", s, v.Inspect())
	}
}

// --- arithmetic & precedence -----------------------------------------------

func Test_Eval_Integer_Arithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"5", 5},
		{"-10", -10},
		{"--5", 5},
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"2 * 2 * 2 * 2 * 2", 32},
		{"-50 + 100 + -50", 0},
		{"50 / 2 * 2 + 10", 60},
		{"7 / 2", 3},
		{"-7 / 2", -3},
		{"3 * (3 * 3) + 10", 37},
		{"(5 + 10 * 2 + 15 / 3) * 2 + -10", 50},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) { wantInt(t, evalSrc(t, tc.src), tc.want) })
	}
}

func Test_Eval_Boolean_And_Comparison(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"true", true},
		{"1 < 2", true},
		{"1 > 2", false},
		{"1 == 1", true},
		{"1 != 1", false},
		{"true == true", true},
		{"true != false", true},
		{"(1 < 2) == true", true},
		{"(1 > 2) == true", false},
		{"!true", false},
		{"!!true", true},
		{"!5", false},
		{"!0", false},
		{`"a" == "a"`, true},
		{`"a" != "b"`, true},
		{`1 == "1"`, false},
		{`1 != true`, true},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) { wantBool(t, evalSrc(t, tc.src), tc.want) })
	}
	// An else-less if with a false condition yields null, which is falsy.
	wantBool(t, evalSrc(t, "!if (false) { 1 }"), true)
}

func Test_Eval_Strings(t *testing.T) {
	wantStr(t, evalSrc(t, `"Hello" + " " + "World!"`), "Hello World!")
	wantErr(t, evalSrc(t, `"a" - "b"`), "unknown operator: STRING - STRING")
	wantErr(t, evalSrc(t, `"a" < "b"`), "unknown operator: STRING < STRING")
}

// --- control flow ------------------------------------------------------------

func Test_Eval_If_Truthiness(t *testing.T) {
	wantInt(t, evalSrc(t, "if (0) { 1 } else { 2 }"), 1)
	wantInt(t, evalSrc(t, `if ("") { 1 } else { 2 }`), 1)
	wantInt(t, evalSrc(t, "if (false) { 1 } else { 2 }"), 2)
	wantInt(t, evalSrc(t, "if (1 < 2) { 10 }"), 10)
	wantNull(t, evalSrc(t, "if (1 > 2) { 10 }"))
	wantNull(t, evalSrc(t, "if (true) { }"))
	wantInt(t, evalSrc(t, "if (if (false) { 1 }) { 1 } else { 2 }"), 2)
}

func Test_Eval_Return_ShortCircuits(t *testing.T) {
	src := `
let f = fn() {
  if (true) {
    if (true) {
      return 10;
    }
    return 1;
  }
  return 2;
};
f();`
	wantInt(t, evalSrc(t, src), 10)

	wantInt(t, evalSrc(t, "return 10; 9;"), 10)
	wantInt(t, evalSrc(t, "9; return 2 * 5; 9;"), 10)
	wantNull(t, evalSrc(t, "let f = fn() { return; 1 }; f()"))
}

func Test_Eval_Return_UnwrappedOnceAtCallBoundary(t *testing.T) {
	src := `
let inner = fn() { return 1; };
let outer = fn() { let v = inner(); v + 1 };
outer();`
	wantInt(t, evalSrc(t, src), 2)

	ip := NewInterpreter()
	v := ip.EvalProgram(mustParse(t, "return 5;"), NewEnclosedEnvironment(ip.Global))
	if _, isRet := v.(*ReturnValue); isRet {
		t.Fatalf("program result must not be a ReturnValue")
	}
	wantInt(t, v, 5)
}

func Test_Eval_Blocks_ShareEnvironment(t *testing.T) {
	ip := NewInterpreter()
	mustEvalPersistent(t, ip, "if (true) { let inside = 3; }")
	wantInt(t, mustEvalPersistent(t, ip, "inside"), 3)
}

// --- bindings & closures ---------------------------------------------------

func Test_Eval_Let(t *testing.T) {
	wantInt(t, evalSrc(t, "let a = 5; a;"), 5)
	wantInt(t, evalSrc(t, "let a = 5 * 5; a;"), 25)
	wantInt(t, evalSrc(t, "let a = 5; let b = a; let c = a + b + 5; c;"), 15)
	wantNull(t, evalSrc(t, "let a = 5;"))
	wantErr(t, evalSrc(t, "foobar"), "identifier not found: foobar")
}

func Test_Eval_Let_InFunction_ShadowsLocally(t *testing.T) {
	src := `
let x = 1;
let f = fn() { let x = 2; x };
f() * 10 + x;`
	wantInt(t, evalSrc(t, src), 21)
}

func Test_Eval_Closures(t *testing.T) {
	src := `
let newAdder = fn(x) { fn(y) { x + y }; };
let addTwo = newAdder(2);
addTwo(3);`
	wantInt(t, evalSrc(t, src), 5)

	wantInt(t, evalSrc(t, "let add = fn(a, b) { a + b }; let applyF = fn(a, b, f) { f(a, b) }; applyF(2, 2, add);"), 4)
	wantInt(t, evalSrc(t, "fn(x) { x; }(5)"), 5)
}

func Test_Eval_Closures_CaptureByReference(t *testing.T) {
	ip := NewInterpreter()
	mustEvalPersistent(t, ip, "let x = 5;")
	mustEvalPersistent(t, ip, "let f = fn() { x };")
	wantInt(t, mustEvalPersistent(t, ip, "f()"), 5)
	mustEvalPersistent(t, ip, "let x = 6;")
	wantInt(t, mustEvalPersistent(t, ip, "f()"), 6)

	// The same aliasing within one unit.
	wantInt(t, evalSrc(t, "let x = 5; let f = fn() { x }; let x = 6; f()"), 6)
}

func Test_Eval_Closures_CapturedFrameOutlivesCall(t *testing.T) {
	src := `
let counterFrom = fn(start) {
  let get = fn() { start };
  get
};
let a = counterFrom(1);
let b = counterFrom(2);
a() * 10 + b();`
	wantInt(t, evalSrc(t, src), 12)
}

func Test_Eval_Recursion(t *testing.T) {
	src := `
let fib = fn(n) { if (n < 2) { return n; } fib(n - 1) + fib(n - 2) };
fib(15);`
	wantInt(t, evalSrc(t, src), 610)
}

func Test_Eval_CallDepth_Guard(t *testing.T) {
	ip := NewInterpreter(WithMaxCallDepth(50))
	v := mustEvalPersistent(t, ip, "let loop = fn(n) { loop(n + 1) }; loop(0)")
	wantErr(t, v, "maximum call depth exceeded (50)")

	// The counter unwinds after the error, so later calls still work.
	wantInt(t, mustEvalPersistent(t, ip, "let down = fn(n) { if (n == 0) { 0 } else { down(n - 1) } }; down(40)"), 0)

	unlimited := NewInterpreter(WithMaxCallDepth(0))
	wantInt(t, mustEvalPersistent(t, unlimited, "let down = fn(n) { if (n == 0) { 7 } else { down(n - 1) } }; down(2000)"), 7)
}

// --- errors ------------------------------------------------------------------

func Test_Eval_Errors(t *testing.T) {
	cases := []struct{ src, want string }{
		{"5 + true;", "type mismatch: INTEGER + BOOLEAN"},
		{"5 + true; 5;", "type mismatch: INTEGER + BOOLEAN"},
		{"-true", "unknown operator: -BOOLEAN"},
		{"-\"a\"", "unknown operator: -STRING"},
		{"true + false;", "unknown operator: BOOLEAN + BOOLEAN"},
		{"5; true + false; 5", "unknown operator: BOOLEAN + BOOLEAN"},
		{"if (10 > 1) { true + false; }", "unknown operator: BOOLEAN + BOOLEAN"},
		{"if (10 > 1) { if (10 > 1) { return true + false; } return 1; }", "unknown operator: BOOLEAN + BOOLEAN"},
		{"[1] + [2]", "unknown operator: ARRAY + ARRAY"},
		{"10 / 0", "division by zero"},
		{"5(1)", "not a function: INTEGER"},
		{`"f"()`, "not a function: STRING"},
		{"fn(x) { x }()", "wrong number of arguments. got=0, want=1"},
		{"fn() { 1 }(1, 2)", "wrong number of arguments. got=2, want=0"},
		{`{"name": "Monkey"}[fn(x) { x }];`, "unusable as hash key: FUNCTION"},
		{`{[1]: 2}`, "unusable as hash key: ARRAY"},
		{"1[0]", "index operator not supported: INTEGER"},
		{`[1][true]`, "index operator not supported: ARRAY[BOOLEAN]"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) { wantErr(t, evalSrc(t, tc.src), tc.want) })
	}
}

func Test_Eval_Errors_ShortCircuit(t *testing.T) {
	var out bytes.Buffer
	ip := NewInterpreter(WithOutput(&out))
	cases := []string{
		`puts(undefinedA, puts("arg"))`,
		`[undefinedA, puts("elem")]`,
		`{undefinedA: puts("value")}`,
		`{"k": undefinedA, puts("key"): 1}`,
		`undefinedA + puts("right")`,
		`undefinedA(puts("arg"))`,
		`undefinedA[puts("index")]`,
		`let f = fn() { undefinedA; puts("next") }; f()`,
	}
	for _, src := range cases {
		wantErr(t, mustEvalPersistent(t, ip, src), "identifier not found: undefinedA")
	}
	if out.Len() != 0 {
		t.Fatalf("evaluation continued past an error: %q", out.String())
	}
}

func Test_Eval_FailedLet_DoesNotBind(t *testing.T) {
	ip := NewInterpreter()
	wantErr(t, mustEvalPersistent(t, ip, "let y = 1 + true;"), "type mismatch: INTEGER + BOOLEAN")
	wantErr(t, mustEvalPersistent(t, ip, "y"), "identifier not found: y")
}

func Test_Eval_ParseErrors_SkipEvaluation(t *testing.T) {
	var out bytes.Buffer
	ip := NewInterpreter(WithOutput(&out))
	v, err := ip.EvalPersistentSource(`puts("ran"); let x 1;`)
	if err == nil || v != nil {
		t.Fatalf("want parse error and no value, got %v / %v", v, err)
	}
	var perr *ParseErrors
	if pe, ok := err.(*ParseErrors); ok {
		perr = pe
	}
	if perr == nil || len(perr.Messages()) == 0 {
		t.Fatalf("want *ParseErrors, got %T", err)
	}
	if out.Len() != 0 {
		t.Fatalf("evaluator ran for a malformed unit: %q", out.String())
	}
}

// --- collections --------------------------------------------------------------

func Test_Eval_Arrays(t *testing.T) {
	wantInspect(t, evalSrc(t, "[1, 2 * 2, 3 + 3]"), "[1, 4, 6]")
	cases := []struct {
		src  string
		want int64
	}{
		{"[1, 2, 3][0]", 1},
		{"[1, 2, 3][2]", 3},
		{"let i = 0; [1][i];", 1},
		{"[1, 2, 3][1 + 1];", 3},
		{"let myArray = [1, 2, 3]; myArray[0] + myArray[1] + myArray[2];", 6},
		{"let myArray = [1, 2, 3]; let i = myArray[0]; myArray[i]", 2},
		{"let fs = [fn() { 7 }]; fs[0]()", 7},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) { wantInt(t, evalSrc(t, tc.src), tc.want) })
	}
	wantNull(t, evalSrc(t, "[1, 2, 3][3]"))
	wantNull(t, evalSrc(t, "[1, 2, 3][-1]"))
}

func Test_Eval_Hashes(t *testing.T) {
	src := `
let two = "two";
{
  "one": 10 - 9,
  two: 1 + 1,
  "thr" + "ee": 6 / 2,
  4: 4,
  true: 5,
  false: 6
}`
	h, ok := evalSrc(t, src).(*Hash)
	if !ok {
		t.Fatalf("want *Hash")
	}
	want := map[HashKey]int64{
		(&String{Value: "one"}).HashKey():   1,
		(&String{Value: "two"}).HashKey():   2,
		(&String{Value: "three"}).HashKey(): 3,
		(&Integer{Value: 4}).HashKey():      4,
		TRUE.HashKey():                      5,
		FALSE.HashKey():                     6,
	}
	if len(h.Pairs) != len(want) {
		t.Fatalf("want %d pairs, got %d", len(want), len(h.Pairs))
	}
	for k, v := range want {
		pair, ok := h.Pairs[k]
		if !ok {
			t.Fatalf("missing key %v", k)
		}
		wantInt(t, pair.Value, v)
	}
	wantInspect(t, evalSrc(t, `{"a": 1, "b": [2]}`), "{a: 1, b: [2]}")
}

func Test_Eval_Hash_Index(t *testing.T) {
	wantInt(t, evalSrc(t, `{"a": 1}["a"]`), 1)
	wantNull(t, evalSrc(t, `{"a": 1}["b"]`))
	wantInt(t, evalSrc(t, `let key = "foo"; {"foo": 5}[key]`), 5)
	wantNull(t, evalSrc(t, `{}["foo"]`))
	wantInt(t, evalSrc(t, `{5: 5}[5]`), 5)
	wantInt(t, evalSrc(t, `{true: 5}[true]`), 5)
	wantInt(t, evalSrc(t, `{"a": 1, "a": 2}["a"]`), 2)
}

// --- interpreter API -------------------------------------------------------------

func Test_Interpreter_EvalSource_DoesNotTouchGlobal(t *testing.T) {
	ip := NewInterpreter()
	if _, err := ip.EvalSource("let scratch = 1;"); err != nil {
		t.Fatal(err)
	}
	if _, ok := ip.Global.Get("scratch"); ok {
		t.Fatalf("EvalSource leaked a binding into Global")
	}
	mustEvalPersistent(t, ip, "let kept = 2;")
	if _, ok := ip.Global.Get("kept"); !ok {
		t.Fatalf("EvalPersistentSource did not bind in Global")
	}
	v, err := ip.EvalSource("kept + 1")
	if err != nil {
		t.Fatal(err)
	}
	wantInt(t, v, 3)
}

func Test_Interpreter_Apply(t *testing.T) {
	ip := NewInterpreter()
	fn := mustEvalPersistent(t, ip, "fn(a, b) { a * b }")
	wantInt(t, ip.Apply(fn, []Object{&Integer{Value: 6}, &Integer{Value: 7}}), 42)

	lenFn, _ := ip.Core.Get("len")
	wantInt(t, ip.Apply(lenFn, []Object{&String{Value: "four"}}), 4)

	wantErr(t, ip.Apply(TRUE, nil), "not a function: BOOLEAN")
}

func Test_Interpreter_RegisterBuiltin(t *testing.T) {
	ip := NewInterpreter()
	ip.RegisterBuiltin("double", func(args ...Object) Object {
		if len(args) != 1 {
			return newError("wrong number of arguments. got=%d, want=1", len(args))
		}
		return &Integer{Value: args[0].(*Integer).Value * 2}
	})
	wantInt(t, mustEvalPersistent(t, ip, "double(21)"), 42)

	// A user binding shadows the built-in without replacing it in Core.
	mustEvalPersistent(t, ip, "let len = fn(x) { 0 };")
	wantInt(t, mustEvalPersistent(t, ip, `len("abc")`), 0)
	if b, _ := ip.Core.Get("len"); b.Type() != BUILTIN_OBJ {
		t.Fatalf("Core binding replaced")
	}
}

func Test_Interpreter_Eval_HostEnvironment(t *testing.T) {
	ip := NewInterpreter()
	env := NewEnvironment() // not chained to Core
	env.Set("n", &Integer{Value: 3})
	wantInt(t, ip.Eval(mustParse(t, "len([n, n]) + n"), env), 5)
}

func Test_Interpreter_FunctionInspect(t *testing.T) {
	v := evalSrc(t, "fn(x) { x + 2; };")
	if !strings.HasPrefix(v.Inspect(), "fn(x) {") || !strings.Contains(v.Inspect(), "(x + 2)") {
		t.Fatalf("got %q", v.Inspect())
	}
	f := v.(*Function)
	if len(f.Parameters) != 1 || f.Parameters[0].Value != "x" || f.Env == nil {
		t.Fatalf("closure state not captured: %#v", f)
	}
}
