package enum

import (
	"fmt"
	"reflect"
)

// registry maps an enum type name to the map[string]T of its registered
// values. Registration happens at package init time, before any reads.
var registry = map[string]any{}

// New registers value under its string form so ToEnum can parse it back.
// It returns the value unchanged, so constants can be declared as
// var Red = enum.New(Color("red")).
func New[T comparable](value T) T {
	name := reflect.TypeOf(value).Name()
	values, ok := registry[name].(map[string]T)
	if !ok {
		values = make(map[string]T)
		registry[name] = values
	}

	values[reflect.ValueOf(value).String()] = value
	return value
}

// ToEnum parses s into a registered value of T.
func ToEnum[T comparable](s string) (T, error) {
	var zero T
	values, ok := registry[reflect.TypeOf(zero).Name()].(map[string]T)
	if !ok {
		return zero, fmt.Errorf("unknown enum type %T", zero)
	}

	value, ok := values[s]
	if !ok {
		return zero, fmt.Errorf("%s is not a value of enum %T", s, zero)
	}

	return value, nil
}
