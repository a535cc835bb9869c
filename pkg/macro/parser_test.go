// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package macro

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_00(t *testing.T) {
	checkObjectMacro(t, "#define NAME", "NAME", "", false)
}

func TestParse_01(t *testing.T) {
	checkObjectMacro(t, "#define NAME 1234", "NAME", "1234", true)
}

func TestParse_02(t *testing.T) {
	checkObjectMacro(t, "#    define NAME  (1 + 2)", "NAME", "(1 + 2)", true)
}

func TestParse_03(t *testing.T) {
	checkObjectMacro(t, "#\tdefine\tNAME\tx", "NAME", "x", true)
}

func TestParse_04(t *testing.T) {
	checkObjectMacro(t, "# define NAME", "NAME", "", false)
}

func TestParse_05(t *testing.T) {
	checkFunctionMacro(t, "#define NAME(a,b) a##b", "NAME", []string{"a", "b"}, "a##b", true)
}

func TestParse_06(t *testing.T) {
	checkFunctionMacro(t, "#define NAME( a , b )  a + b", "NAME", []string{"a", "b"}, "a + b", true)
}

func TestParse_07(t *testing.T) {
	checkFunctionMacro(t, "#define NAME()", "NAME", []string{}, "", false)
}

func TestParse_08(t *testing.T) {
	checkFunctionMacro(t, "#define NAME() 1", "NAME", []string{}, "1", true)
}

func TestParse_09(t *testing.T) {
	// Nested parentheses in the parameter list
	checkFunctionMacro(t, "#define F(a,(b)) a", "F", []string{"a", "(b)"}, "a", true)
}

func TestParse_10(t *testing.T) {
	checkFunctionMacro(t, "#define FOO(x) \nx + 1", "FOO", []string{"x"}, "x + 1", true)
}

func TestParse_11(t *testing.T) {
	checkFunctionMacro(t, "#define LOG(fmt, ...) printf(fmt, __VA_ARGS__)", "LOG",
		[]string{"fmt", "..."}, "printf(fmt, __VA_ARGS__)", true)
}

func TestParse_12(t *testing.T) {
	// Space before the parameter list makes this object-like
	checkObjectMacro(t, "#define NAME (x) x", "NAME", "(x) x", true)
}

func TestParse_13(t *testing.T) {
	// Parentheses in the body of an object-like macro are not checked
	checkObjectMacro(t, "#define NAME x)", "NAME", "x)", true)
}

func TestParse_Invalid_00(t *testing.T) {
	checkParseError(t, "#defineFOO X", MALFORMED_DEFINE)
}

func TestParse_Invalid_01(t *testing.T) {
	checkParseError(t, "#define", MALFORMED_DEFINE)
}

func TestParse_Invalid_02(t *testing.T) {
	checkParseError(t, "#define   ", MALFORMED_DEFINE)
}

func TestParse_Invalid_03(t *testing.T) {
	checkParseError(t, "#undef X", MALFORMED_DEFINE)
}

func TestParse_Invalid_04(t *testing.T) {
	checkParseError(t, "# /**/ define X", MALFORMED_DEFINE)
}

func TestParse_Invalid_05(t *testing.T) {
	checkParseError(t, "#define (x) x", MALFORMED_DEFINE)
}

func TestParse_Invalid_06(t *testing.T) {
	checkParseError(t, "#define F(a,b", UNBALANCED_PARENS)
}

func TestParse_Invalid_07(t *testing.T) {
	checkParseError(t, "#define F)a( b", UNBALANCED_PARENS)
}

func TestParse_Invalid_08(t *testing.T) {
	checkParseError(t, "#define F(a,(b) a", UNBALANCED_PARENS)
}

func TestParse_Invalid_09(t *testing.T) {
	checkParseError(t, "define X 1", MALFORMED_DEFINE)
}

func TestParse_Provenance(t *testing.T) {
	m, err := Parse("#define X 1", "dir/file.h", 42)
	//
	if err != nil {
		t.Fatal(err)
	} else if m.File() != "dir/file.h" || m.Line() != 42 {
		t.Errorf("unexpected provenance %s:%d", m.File(), m.Line())
	}
}

func TestParse_ErrorLocation(t *testing.T) {
	var perr *ParseError
	//
	_, err := Parse("#define F(x", "a.c", 7)
	//
	if !errors.As(err, &perr) {
		t.Fatalf("expected parse error, got %v", err)
	}
	//
	expected := ParseError{UNBALANCED_PARENS, "#define F(x", "a.c", 7}
	//
	if diff := cmp.Diff(expected, *perr); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func checkObjectMacro(t *testing.T, text string, name string, body string, hasBody bool) {
	t.Helper()
	//
	m := parseMacro(t, text)
	//
	if m.Name() != name {
		t.Errorf("expected name %q, got %q", name, m.Name())
	}
	//
	if params, ok := m.Params(); ok || params != nil {
		t.Errorf("unexpected parameters %v", params)
	}
	//
	checkBody(t, m, body, hasBody)
}

func checkFunctionMacro(t *testing.T, text string, name string, params []string, body string, hasBody bool) {
	t.Helper()
	//
	m := parseMacro(t, text)
	//
	if m.Name() != name {
		t.Errorf("expected name %q, got %q", name, m.Name())
	}
	//
	actual, ok := m.Params()
	//
	if !ok {
		t.Errorf("expected parameters %v", params)
	} else if diff := cmp.Diff(params, actual); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	//
	checkBody(t, m, body, hasBody)
}

func checkBody(t *testing.T, m *Macro, body string, hasBody bool) {
	t.Helper()
	//
	actual, ok := m.Body()
	//
	if ok != hasBody || actual != body {
		t.Errorf("expected body %q (%t), got %q (%t)", body, hasBody, actual, ok)
	}
}

func parseMacro(t *testing.T, text string) *Macro {
	t.Helper()
	//
	m, err := Parse(text, "test.h", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	return m
}

func checkParseError(t *testing.T, text string, kind uint) {
	t.Helper()
	//
	var perr *ParseError
	//
	m, err := Parse(text, "test.h", 1)
	//
	if m != nil {
		t.Errorf("unexpected macro %s", m.Definition())
	} else if !errors.As(err, &perr) {
		t.Errorf("expected parse error, got %v", err)
	} else if perr.Kind != kind {
		t.Errorf("expected error kind %d, got %d", kind, perr.Kind)
	}
}
