package runtime

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ValueType represents the type of a value.
type ValueType int

const (
	TypeUndefined ValueType = iota
	TypeBoolean
	TypeNumber
	TypeString
	TypeObject
	TypeArray
	TypeFunction
	TypeNative
)

func (t ValueType) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	case TypeFunction, TypeNative:
		return "function"
	default:
		return "unknown"
	}
}

// Value is the closed set of values programs can produce. Exactly one of
// the payload fields is meaningful, selected by Type. Object and Array
// share the Object payload; arrays are objects whose keys are
// string-encoded indices.
type Value struct {
	Type   ValueType
	Bool   bool
	Number float64
	Str    string
	Object *Object
	Fn     *Function
	Native *NativeFunction
}

var (
	Undefined = &Value{Type: TypeUndefined}
	True      = &Value{Type: TypeBoolean, Bool: true}
	False     = &Value{Type: TypeBoolean, Bool: false}
	NaN       = &Value{Type: TypeNumber, Number: math.NaN()}
	Zero      = &Value{Type: TypeNumber}
)

func NewNumber(n float64) *Value {
	return &Value{Type: TypeNumber, Number: n}
}

func NewString(s string) *Value {
	return &Value{Type: TypeString, Str: s}
}

func NewBool(b bool) *Value {
	if b {
		return True
	}
	return False
}

func NewObjectValue(obj *Object) *Value {
	return &Value{Type: TypeObject, Object: obj}
}

func NewArrayValue(obj *Object) *Value {
	return &Value{Type: TypeArray, Object: obj}
}

// NewArray builds an array value from elements in index order. A nil
// element leaves a hole: the index is skipped and stays unset.
func NewArray(elements []*Value) *Value {
	obj := NewObject()
	for i, el := range elements {
		if el == nil {
			continue
		}
		obj.Set(strconv.Itoa(i), el)
	}
	return &Value{Type: TypeArray, Object: obj}
}

func NewFunctionValue(fn *Function) *Value {
	return &Value{Type: TypeFunction, Fn: fn}
}

func NewNative(name string, fn NativeFunc) *Value {
	return &Value{Type: TypeNative, Native: &NativeFunction{Name: name, Fn: fn}}
}

// IsCallable reports whether calling v makes sense.
func (v *Value) IsCallable() bool {
	return v.Type == TypeFunction || v.Type == TypeNative
}

// Object is a mutable set of named properties. Keys are already in
// canonical string form when they get here, see PropertyKey.
type Object struct {
	Properties map[string]*Value
}

func NewObject() *Object {
	return &Object{Properties: make(map[string]*Value)}
}

// Get returns the property value, or Undefined when the key is absent.
func (o *Object) Get(key string) *Value {
	if v, ok := o.Properties[key]; ok {
		return v
	}
	return Undefined
}

// Set stores the property, creating it when absent.
func (o *Object) Set(key string, v *Value) {
	o.Properties[key] = v
}

func (o *Object) Has(key string) bool {
	_, ok := o.Properties[key]
	return ok
}

// Len reports one past the highest array index present. It is computed
// by scanning, never stored, so sparse writes through numeric keys
// extend it and non-index keys leave it alone.
func (o *Object) Len() int {
	max := -1
	for key := range o.Properties {
		if i, ok := arrayIndex(key); ok && i > max {
			max = i
		}
	}
	return max + 1
}

// Keys returns the property keys in sorted order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.Properties))
	for key := range o.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func arrayIndex(key string) (int, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// PropertyKey converts a property key value to its canonical string
// form. Numbers format the way they stringify, so obj[1] and obj["1"]
// name the same property.
func PropertyKey(v *Value) string {
	return v.ToString()
}

// Equals is structural equality: content for objects and arrays,
// identity for functions, IEEE semantics for numbers (NaN is unequal
// to itself). Values of different types are never equal.
func Equals(a, b *Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeUndefined:
		return true
	case TypeBoolean:
		return a.Bool == b.Bool
	case TypeNumber:
		return a.Number == b.Number
	case TypeString:
		return a.Str == b.Str
	case TypeObject, TypeArray:
		if a.Object == b.Object {
			return true
		}
		if len(a.Object.Properties) != len(b.Object.Properties) {
			return false
		}
		for key, av := range a.Object.Properties {
			bv, ok := b.Object.Properties[key]
			if !ok || !Equals(av, bv) {
				return false
			}
		}
		return true
	case TypeFunction:
		return a.Fn == b.Fn
	case TypeNative:
		return a.Native == b.Native
	default:
		return false
	}
}

// MaxDisplayLength caps the rendered form of aggregate values. It only
// affects display, never semantics.
var MaxDisplayLength = 160

// ToString renders the value as a string. Aggregates render in their
// display form: arrays as [a, b, c] over the index range, objects as
// {k: v} with sorted keys, both recursive and capped at
// MaxDisplayLength.
func (v *Value) ToString() string {
	switch v.Type {
	case TypeUndefined:
		return "undefined"
	case TypeBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case TypeNumber:
		return FormatNumber(v.Number)
	case TypeString:
		return v.Str
	case TypeArray:
		return truncate(v.displayArray())
	case TypeObject:
		return truncate(v.displayObject())
	case TypeFunction:
		return fmt.Sprintf("function(%s)", strings.Join(v.Fn.Parameters, ", "))
	case TypeNative:
		return fmt.Sprintf("function %s() { [native code] }", v.Native.Name)
	default:
		return "undefined"
	}
}

func (v *Value) displayArray() string {
	n := v.Object.Len()
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		el := v.Object.Get(strconv.Itoa(i))
		parts[i] = el.ToString()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v *Value) displayObject() string {
	keys := v.Object.Keys()
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = key + ": " + v.Object.Properties[key].ToString()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func truncate(s string) string {
	if len(s) <= MaxDisplayLength {
		return s
	}
	return s[:MaxDisplayLength] + "..."
}

// FormatNumber renders a float the way number values stringify:
// integral values without a fraction, NaN and the infinities by name.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
