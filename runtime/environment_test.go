package runtime

import (
	"errors"
	"testing"
)

func TestEnvironmentGetWalksChain(t *testing.T) {
	root := NewEnvironment(nil)
	root.Declare("x", NewNumber(1))
	inner := NewEnvironment(root)

	v, err := inner.Get("x")
	if err != nil {
		t.Fatalf("Get(x): %v", err)
	}
	if v.Number != 1 {
		t.Errorf("Get(x) = %s, want 1", v.ToString())
	}
}

func TestEnvironmentGetUndeclared(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Get("nope")
	var refErr *ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("Get of undeclared name: got %v, want ReferenceError", err)
	}
	if refErr.Error() != "ReferenceError: nope is not defined" {
		t.Errorf("unexpected message %q", refErr.Error())
	}
}

func TestEnvironmentSetUpdatesNearestDeclarer(t *testing.T) {
	root := NewEnvironment(nil)
	root.Declare("x", NewNumber(1))
	inner := NewEnvironment(root)

	inner.Set("x", NewNumber(2))
	v, _ := root.Get("x")
	if v.Number != 2 {
		t.Errorf("root x = %s, want 2", v.ToString())
	}
	if len(inner.store) != 0 {
		t.Error("Set created a shadowing binding in the inner scope")
	}
}

func TestEnvironmentSetUndeclaredCreatesAtRoot(t *testing.T) {
	root := NewEnvironment(nil)
	inner := NewEnvironment(root)

	inner.Set("leaked", NewNumber(7))
	if !root.Has("leaked") {
		t.Fatal("undeclared assignment did not create a root binding")
	}
	if len(inner.store) != 0 {
		t.Error("undeclared assignment bound in the inner scope")
	}
}

func TestEnvironmentDeclareShadows(t *testing.T) {
	root := NewEnvironment(nil)
	root.Declare("x", NewNumber(1))
	inner := NewEnvironment(root)
	inner.Declare("x", NewNumber(2))

	v, _ := inner.Get("x")
	if v.Number != 2 {
		t.Errorf("inner x = %s, want 2", v.ToString())
	}
	v, _ = root.Get("x")
	if v.Number != 1 {
		t.Errorf("root x = %s, want 1", v.ToString())
	}
}

func TestGetValuePassesPlainValuesThrough(t *testing.T) {
	v, err := GetValue(ValueOperand(NewNumber(7)))
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if v.Number != 7 {
		t.Errorf("GetValue = %s, want 7", v.ToString())
	}
}

func TestGetValueEnvironmentReference(t *testing.T) {
	env := NewEnvironment(nil)
	env.Declare("x", NewString("ala"))

	v, err := GetValue(RefOperand(&Reference{Name: "x", Env: env}))
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if v.Str != "ala" {
		t.Errorf("GetValue = %s, want ala", v.ToString())
	}
}

func TestGetValuePropertyReference(t *testing.T) {
	obj := NewObject()
	obj.Set("cheese", NewNumber(7))
	base := NewObjectValue(obj)

	v, err := GetValue(RefOperand(&Reference{Name: "cheese", Base: base}))
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if v.Number != 7 {
		t.Errorf("GetValue = %s, want 7", v.ToString())
	}

	v, err = GetValue(RefOperand(&Reference{Name: "ham", Base: base}))
	if err != nil {
		t.Fatalf("GetValue of absent key: %v", err)
	}
	if v != Undefined {
		t.Errorf("absent key = %s, want undefined", v.ToString())
	}
}

func TestGetValuePrimitiveBase(t *testing.T) {
	_, err := GetValue(RefOperand(&Reference{Name: "length", Base: NewNumber(7)}))
	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("property read off a number: got %v, want TypeError", err)
	}
}

func TestGetValueUnresolvable(t *testing.T) {
	_, err := GetValue(RefOperand(&Reference{Name: "x", Base: Undefined}))
	var refErr *ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("unresolvable reference: got %v, want ReferenceError", err)
	}
}

func TestPutValueRejectsPlainValues(t *testing.T) {
	err := PutValue(ValueOperand(NewNumber(7)), NewNumber(8))
	var refErr *ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("assignment to a value: got %v, want ReferenceError", err)
	}
}

func TestPutValuePropertyReference(t *testing.T) {
	obj := NewObject()
	base := NewObjectValue(obj)

	if err := PutValue(RefOperand(&Reference{Name: "ham", Base: base}), NewNumber(3)); err != nil {
		t.Fatalf("PutValue: %v", err)
	}
	if got := obj.Get("ham"); got.Number != 3 {
		t.Errorf("ham = %s, want 3", got.ToString())
	}
}

func TestPutValuePrimitiveBase(t *testing.T) {
	err := PutValue(RefOperand(&Reference{Name: "x", Base: NewString("s")}), True)
	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("property write on a string: got %v, want TypeError", err)
	}
}

func TestCompletionIsAbrupt(t *testing.T) {
	if NormalEmpty.IsAbrupt() {
		t.Error("empty normal completion reported abrupt")
	}
	if NormalCompletion(NewNumber(1)).IsAbrupt() {
		t.Error("normal completion reported abrupt")
	}
	for _, typ := range []CompletionType{Break, Continue, Return} {
		c := Completion{Type: typ}
		if !c.IsAbrupt() {
			t.Errorf("%s completion reported normal", typ)
		}
	}
}
