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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPattern_00(t *testing.T) {
	pattern := NewPattern(Wildcard(), Wildcard(), Literal("_x"), Wildcard())
	expected := []Segment{Wildcard(), Literal("_x"), Wildcard()}
	//
	if diff := cmp.Diff(expected, pattern.Segments()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	} else if pattern.Regexp() != `\w+_x\w+` {
		t.Errorf("unexpected regexp %s", pattern.Regexp())
	}
}

func TestPattern_01(t *testing.T) {
	// Literals are quoted
	pattern := NewPattern(Literal("a.b"), Wildcard())
	//
	if pattern.Regexp() != `a\.b\w+` {
		t.Errorf("unexpected regexp %s", pattern.Regexp())
	} else if pattern.String() != "a.b*" {
		t.Errorf("unexpected string %s", pattern.String())
	}
}

func TestDerivePastePatterns_00(t *testing.T) {
	checkPastePatterns(t, []string{"a", "b"}, "a##b", `\w+`)
}

func TestDerivePastePatterns_01(t *testing.T) {
	checkPastePatterns(t, []string{"a"}, "prefix_##a", `prefix_\w+`)
}

func TestDerivePastePatterns_02(t *testing.T) {
	checkPastePatterns(t, []string{"a"}, "prefix_ ## a ## _suffix", `prefix_\w+_suffix`)
}

func TestDerivePastePatterns_03(t *testing.T) {
	checkPastePatterns(t, []string{"a", "b"}, "a\t##\n b", `\w+`)
}

func TestDerivePastePatterns_04(t *testing.T) {
	checkPastePatterns(t, []string{"x"}, "do { x##_init(); x##_run(x); } while (0)",
		`\w+_init`, `\w+_run`)
}

func TestDerivePastePatterns_05(t *testing.T) {
	// Fragments not involved in a paste are ignored
	checkPastePatterns(t, []string{"a"}, "foo(a) + bar_##a", `bar_\w+`)
}

func TestDerivePastePatterns_06(t *testing.T) {
	// Stringizing is dropped
	checkPastePatterns(t, []string{"a"}, "#a##_tag", `\w+_tag`)
}

func TestDerivePastePatterns_07(t *testing.T) {
	checkPastePatterns(t, []string{"fmt", "..."}, "log_##__VA_ARGS__", `log_\w+`)
}

func TestDerivePastePatterns_08(t *testing.T) {
	checkPastePatterns(t, []string{"args..."}, "v_##args", `v_\w+`)
}

func TestDerivePastePatterns_09(t *testing.T) {
	// No parameters pasted in
	checkPastePatterns(t, []string{"a"}, "x##y", `xy`)
}

func TestDerivePastePatterns_10(t *testing.T) {
	checkPastePatterns(t, []string{"a"}, "a + 1")
}

func TestDerivePastePatterns_11(t *testing.T) {
	checkPastePatterns(t, nil, "x##y")
}

func TestDerivePastePatterns_12(t *testing.T) {
	// Nothing either side of the operator
	checkPastePatterns(t, []string{"a"}, "( ## )")
}

func TestPasteMatchers_00(t *testing.T) {
	m := parseMacro(t, "#define CONCAT(a,b) a##b")
	//
	for _, token := range []string{"x", "foo", "foo_bar", "_1"} {
		if !m.MatchesPaste(token) {
			t.Errorf("expected match for %q", token)
		}
	}
	//
	if m.MatchesPaste("") || m.MatchesPaste("+-") {
		t.Errorf("unexpected match for non-identifier")
	}
}

func TestPasteMatchers_01(t *testing.T) {
	m := parseMacro(t, "#define PFX(a) prefix_##a")
	//
	for _, token := range []string{"prefix_value", "xxprefix_valueyy"} {
		if !m.MatchesPaste(token) {
			t.Errorf("expected match for %q", token)
		}
	}
	//
	for _, token := range []string{"prefix_", "prefix", "value"} {
		if m.MatchesPaste(token) {
			t.Errorf("unexpected match for %q", token)
		}
	}
}

func TestPasteMatchers_02(t *testing.T) {
	for _, text := range []string{"#define X 1", "#define X(a) a", "#define X() x##y", "#define X x##y"} {
		if m := parseMacro(t, text); len(m.PasteMatchers()) != 0 {
			t.Errorf("unexpected matchers for %q", text)
		}
	}
}

func TestPasteMatchers_03(t *testing.T) {
	m := parseMacro(t, "#define PFX(a) prefix_##a")
	first := m.PasteMatchers()
	second := m.PasteMatchers()
	// Matchers are computed only once
	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Errorf("expected cached matchers")
	}
}

func checkPastePatterns(t *testing.T, params []string, body string, expected ...string) {
	t.Helper()
	//
	var actual []string
	//
	for _, p := range DerivePastePatterns(params, body) {
		actual = append(actual, p.Regexp())
	}
	//
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
