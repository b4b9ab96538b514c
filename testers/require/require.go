// Package require stops the test at the first failed check.
package require

import (
	"testing"

	"github.com/susji/cfold/testers"
)

func report(t testing.TB, msgs []string, f string, va ...interface{}) {
	t.Helper()
	if msgs == nil {
		return
	}
	testers.DumpCaller(t, 2)
	if f != "" {
		t.Logf(f, va...)
	}
	for _, msg := range msgs {
		t.Log(msg)
	}
	t.FailNow()
}

func Equal(t testing.TB, expect, got interface{}) {
	t.Helper()
	report(t, testers.Equal(expect, got), "")
}

func Equalf(t testing.TB, expect, got interface{}, fmt string, va ...interface{}) {
	t.Helper()
	report(t, testers.Equal(expect, got), fmt, va...)
}

func True(t testing.TB, exp bool) {
	t.Helper()
	if !exp {
		report(t, []string{"expected true, got false"}, "")
	}
}

func Truef(t testing.TB, exp bool, fmt string, va ...interface{}) {
	t.Helper()
	if !exp {
		report(t, []string{"expected true, got false"}, fmt, va...)
	}
}

func False(t testing.TB, exp bool) {
	t.Helper()
	if exp {
		report(t, []string{"expected false, got true"}, "")
	}
}

func Falsef(t testing.TB, exp bool, fmt string, va ...interface{}) {
	t.Helper()
	if exp {
		report(t, []string{"expected false, got true"}, fmt, va...)
	}
}

func Nil(t testing.TB, exp interface{}) {
	t.Helper()
	report(t, testers.Nil(exp), "")
}

func NotNil(t testing.TB, exp interface{}) {
	t.Helper()
	report(t, testers.NotNil(exp), "")
}

func Len(t testing.TB, exp interface{}, n int) {
	t.Helper()
	report(t, testers.Len(exp, n), "")
}

func Panics(t testing.TB, fn func()) {
	t.Helper()
	report(t, testers.Panics(fn), "")
}
