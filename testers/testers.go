// Package testers holds the comparisons shared by the assert and require
// helpers. Each check returns the lines describing a failure, or nil.
package testers

import (
	"fmt"
	"path"
	"reflect"
	"runtime"
	"testing"
)

// DumpCaller reports the test line which called the helper. skip counts the
// helper frames between the test and DumpCaller.
func DumpCaller(t testing.TB, skip int) {
	_, fn, line, _ := runtime.Caller(skip + 1)
	t.Errorf("[ %s:%d ]", path.Base(fn), line)
}

func Equal(expect, got interface{}) []string {
	if reflect.DeepEqual(expect, got) {
		return nil
	}
	return []string{
		"wanted equal, but got different",
		fmt.Sprintf("expected: %v [%T]", expect, expect),
		fmt.Sprintf("got:      %v [%T]", got, got),
	}
}

func isnil(exp interface{}) bool {
	if exp == nil {
		return true
	}
	v := reflect.ValueOf(exp)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func Nil(exp interface{}) []string {
	if isnil(exp) {
		return nil
	}
	return []string{fmt.Sprintf("wanted nil, got %v of type %T", exp, exp)}
}

func NotNil(exp interface{}) []string {
	if !isnil(exp) {
		return nil
	}
	return []string{"wanted not nil, got nil"}
}

func Len(exp interface{}, n int) []string {
	v := reflect.ValueOf(exp)
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String, reflect.Chan:
		if v.Len() == n {
			return nil
		}
		return []string{fmt.Sprintf("wanted length %d, got %d: %v", n, v.Len(), exp)}
	}
	return []string{fmt.Sprintf("cannot take length of %T", exp)}
}

// Panics runs fn and reports whether it panicked.
func Panics(fn func()) (msgs []string) {
	defer func() {
		if r := recover(); r == nil {
			msgs = []string{"expected panic, got none"}
		}
	}()
	fn()
	return nil
}
