// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package testutil contains helpers shared by the tests of the accessor
// generator packages.
package testutil

import (
	"testing"

	"github.com/openconfig/goyang/pkg/yang"
	"github.com/pmezard/go-difflib/difflib"
)

// AnnotationsModule is a YANG module defining the modifier and item-name
// extensions recognized by entry point scanning, for use as a compilation
// dependency of test modules.
const AnnotationsModule = `
module pyang-accessors {
  namespace "urn:pyang-accessors";
  prefix "pa";

  extension modifier {
    argument "value";
  }

  extension item-name {
    argument "value";
  }
}
`

// GenerateUnifiedDiff takes two strings and generates a diff that can be
// shown to the user in a test error message.
func GenerateUnifiedDiff(want, got string) (string, error) {
	diffl := difflib.UnifiedDiff{
		A:        difflib.SplitLines(got),
		B:        difflib.SplitLines(want),
		FromFile: "got",
		ToFile:   "want",
		Context:  3,
		Eol:      "\n",
	}
	return difflib.GetUnifiedDiffString(diffl)
}

// CompileModules parses and processes a set of YANG modules supplied as
// name to source text, failing the test on any error.
func CompileModules(t testing.TB, inModules map[string]string) *yang.Modules {
	t.Helper()
	ms := yang.NewModules()
	for n, m := range inModules {
		if err := ms.Parse(m, n); err != nil {
			t.Fatalf("error parsing module %q: %v", n, err)
		}
	}
	if errs := ms.Process(); errs != nil {
		t.Fatalf("modules processing failed: %v", errs)
	}
	return ms
}

// ModuleEntry returns the resolved entry of the named module, failing the
// test when the module is unknown.
func ModuleEntry(t testing.TB, ms *yang.Modules, name string) *yang.Entry {
	t.Helper()
	entry, errs := ms.GetModule(name)
	if errs != nil {
		t.Fatalf("error getting module %q: %v", name, errs)
	}
	return entry
}
