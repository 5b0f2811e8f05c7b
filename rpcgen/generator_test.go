// Copyright 2016 Google Inc.
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

package rpcgen

import (
	"testing"

	"github.com/openconfig/gnmi/errdiff"

	"github.com/abravalheri/pyang-accessors/testutil"
	"github.com/abravalheri/pyang-accessors/ybuilder"
)

const plainExample = `
module plain-example {
	namespace "http://acme.example.com/system";
	prefix "acme";

	organization "ACME Inc.";
	contact "joe@acme.example.com";
	description
		"The module for entities implementing the ACME system.";

	revision 2007-11-05 {
		description "Initial revision.";
	}

	leaf host-name {
		type string;
		description "Hostname for this system";
	}

	leaf type {
		type string;
	}

	leaf state {
		type enumeration {
			enum "off";
			enum "active";
			enum "idle";
		}
		config false;
	}
}
`

const listExample = `
module list-example {
	namespace "http://acme.example.com/system";
	prefix "aclist";

	list companies {
		leaf name { type string; }
	}

	list domains {
		key url;
		leaf url { type string; }
		leaf company { type string; }
	}

	list users {
		key "company login";
		leaf company { type string; }
		leaf login { type string; }
		leaf name { type string; }
		leaf surname { type string; }
	}

	leaf-list slogans { type string; }
}
`

const annotatedExample = `
module annotated-example {
	namespace "http://acme.example.com/system";
	prefix "acan";

	import pyang-accessors { prefix accessor; }

	list companies {
		leaf name { type string; }
		leaf-list addresses {
			type string;
			accessor:modifier atomic;
		}
		accessor:modifier include;
	}

	list domains {
		key url;
		leaf url { type string; }
		leaf company { type string; }
		accessor:modifier include-item;
	}

	list users {
		key "company login";
		leaf company { type string; }
		leaf login { type string; }
		leaf name { type string; }
		leaf surname { type string; }
		leaf-list phone { type string; }
		accessor:modifier atomic-item;
	}

	container admin {
		leaf email { type string; }
		accessor:modifier atomic;
	}

	leaf-list rooms {
		type string;
		accessor:item-name "room-name";
	}
}
`

func transform(t *testing.T, name, source string) *ybuilder.Statement {
	t.Helper()
	sources := map[string]string{
		name:              source,
		"pyang-accessors": testutil.AnnotationsModule,
	}
	ms := testutil.CompileModules(t, sources)
	out, diags, err := New(Config{}).Transform(testutil.ModuleEntry(t, ms, name), ModuleNames{})
	if err != nil {
		t.Fatalf("Transform(%s): unexpected error %v", name, err)
	}
	if diags != nil {
		t.Fatalf("Transform(%s): unexpected diagnostics %v", name, diags)
	}
	return out
}

func TestTransformIdentity(t *testing.T) {
	out := transform(t, "plain-example", plainExample)

	if got, want := out.Arg, "plain-example-interface"; got != want {
		t.Errorf("module name: got %q, want %q", got, want)
	}
	if got, want := out.SearchOne("namespace").Arg, "http://acme.example.com/system/interface"; got != want {
		t.Errorf("namespace: got %q, want %q", got, want)
	}
	if got, want := out.SearchOne("prefix").Arg, "acme-interface"; got != want {
		t.Errorf("prefix: got %q, want %q", got, want)
	}

	for _, header := range []string{"organization", "contact", "description"} {
		if out.SearchOne(header) == nil {
			t.Errorf("header statement %s was not carried over", header)
		}
	}
	rev := out.Find("revision", "2007-11-05")
	if rev == nil {
		t.Fatal("revision statement was not carried over")
	}
	if rev.SearchOne("description") == nil {
		t.Error("revision description was not carried over")
	}
}

func TestTransformIdentityOverrides(t *testing.T) {
	ms := testutil.CompileModules(t, map[string]string{"plain-example": plainExample})
	out, _, err := New(Config{}).Transform(testutil.ModuleEntry(t, ms, "plain-example"), ModuleNames{
		Name:      "acme-rpcs",
		Namespace: "urn:acme:rpcs",
		Prefix:    "arpc",
	})
	if err != nil {
		t.Fatalf("Transform: unexpected error %v", err)
	}
	if out.Arg != "acme-rpcs" {
		t.Errorf("module name: got %q, want acme-rpcs", out.Arg)
	}
	if got := out.SearchOne("namespace").Arg; got != "urn:acme:rpcs" {
		t.Errorf("namespace: got %q, want urn:acme:rpcs", got)
	}
	if got := out.SearchOne("prefix").Arg; got != "arpc" {
		t.Errorf("prefix: got %q, want arpc", got)
	}
}

func TestTransformPlainOperations(t *testing.T) {
	out := transform(t, "plain-example", plainExample)

	for _, rpc := range []string{"get-host-name", "set-host-name", "get-type", "set-type", "get-state"} {
		if out.Find("rpc", rpc) == nil {
			t.Errorf("missing rpc %s", rpc)
		}
	}
	// state is config false
	if out.Find("rpc", "set-state") != nil {
		t.Error("rpc set-state generated for a read-only leaf")
	}

	data := out.Find("grouping", "host-name-data")
	if data == nil {
		t.Fatal("missing grouping host-name-data")
	}
	if data.Find("leaf", "host-name") == nil {
		t.Error("grouping host-name-data does not carry the leaf definition")
	}
}

func TestTransformResponseEnvelope(t *testing.T) {
	out := transform(t, "plain-example", plainExample)

	read := out.Find("grouping", "host-name-response")
	if read == nil {
		t.Fatal("missing grouping host-name-response")
	}
	choice := read.SearchOne("choice")
	if choice == nil || choice.Arg != "response" {
		t.Fatalf("response envelope: got %v, want choice response", choice)
	}
	if def := choice.SearchOne("default"); def == nil || def.Arg != "success" {
		t.Errorf("envelope default: got %v, want success", def)
	}
	success := choice.Find("case", "success")
	if success == nil || success.Find("uses", "host-name-data") == nil {
		t.Errorf("read success case must carry the data grouping, got:\n%s", choice)
	}
	failure := choice.Find("case", "failure")
	if failure == nil || failure.Find("uses", "failure") == nil {
		t.Errorf("failure case must use the shared failure grouping, got:\n%s", choice)
	}

	write := out.Find("grouping", "set-host-name-response")
	if write == nil {
		t.Fatal("missing grouping set-host-name-response")
	}
	wsuccess := write.SearchOne("choice").Find("case", "success")
	if wsuccess == nil || wsuccess.Find("uses", "success") == nil {
		t.Errorf("write success case must use the shared success grouping, got:\n%s", write)
	}

	shared := out.Find("grouping", "failure")
	if shared == nil {
		t.Fatal("missing shared failure grouping")
	}
	for _, leaf := range []string{"error-code", "message"} {
		if shared.Find("leaf", leaf) == nil {
			t.Errorf("shared failure grouping is missing leaf %s", leaf)
		}
	}
}

func TestTransformListKeys(t *testing.T) {
	out := transform(t, "list-example", listExample)

	// synthesized key for the keyless list
	companyID := out.Find("grouping", "company-id")
	if companyID == nil || companyID.Find("leaf", "id") == nil {
		t.Errorf("grouping company-id must carry the synthesized key, got %v", companyID)
	}

	// explicit keys, shared by the sibling entries below the same list
	userID := out.Find("grouping", "user-id")
	if userID == nil {
		t.Fatal("missing grouping user-id")
	}
	for _, leaf := range []string{"company", "login"} {
		if userID.Find("leaf", leaf) == nil {
			t.Errorf("grouping user-id is missing key leaf %s", leaf)
		}
	}
	if got := len(out.Search("grouping")); got != len(dedupe(out)) {
		t.Errorf("duplicated grouping names generated: %d groupings, %d unique", got, len(dedupe(out)))
	}

	// write requests on keyed entries carry keys next to the payload
	full := out.Find("grouping", "user-name-full-data")
	if full == nil {
		t.Fatal("missing grouping user-name-full-data")
	}
	for _, leaf := range []string{"company", "login"} {
		if full.Find("leaf", leaf) == nil {
			t.Errorf("grouping user-name-full-data is missing key leaf %s", leaf)
		}
	}
	if full.Find("uses", "user-name-data") == nil {
		t.Error("grouping user-name-full-data does not use the data grouping")
	}
	set := out.Find("rpc", "set-user-name")
	if set == nil {
		t.Fatal("missing rpc set-user-name")
	}
	if set.SearchOne("input").Find("uses", "user-name-full-data") == nil {
		t.Errorf("set-user-name input must use the full-data grouping, got:\n%s", set)
	}

	// read requests are identified by keys only
	get := out.Find("rpc", "get-user-name")
	if get == nil {
		t.Fatal("missing rpc get-user-name")
	}
	if get.SearchOne("input").Find("uses", "user-id") == nil {
		t.Errorf("get-user-name input must use the identification grouping, got:\n%s", get)
	}
}

func TestTransformItemOperations(t *testing.T) {
	out := transform(t, "list-example", listExample)

	for _, rpc := range []string{"get-slogan", "set-slogan", "add-slogan", "remove-slogan"} {
		if out.Find("rpc", rpc) == nil {
			t.Errorf("missing rpc %s", rpc)
		}
	}

	add := out.Find("rpc", "add-slogan")
	if add.SearchOne("input").Find("uses", "slogan-data") == nil {
		t.Errorf("add-slogan input must use the data grouping, got:\n%s", add)
	}
	addResp := out.Find("grouping", "add-slogan-response")
	if addResp == nil {
		t.Fatal("missing grouping add-slogan-response")
	}
	success := addResp.SearchOne("choice").Find("case", "success")
	if success == nil || success.Find("uses", "slogan-id") == nil {
		t.Errorf("add-slogan success case must report the assigned identity, got:\n%s", addResp)
	}

	remove := out.Find("rpc", "remove-slogan")
	if remove.SearchOne("input").Find("uses", "slogan-id") == nil {
		t.Errorf("remove-slogan input must use the identification grouping, got:\n%s", remove)
	}
	if remove.SearchOne("output").Find("uses", "slogan-response") == nil {
		t.Errorf("remove-slogan output must share the read response grouping, got:\n%s", remove)
	}
}

func TestTransformAnnotations(t *testing.T) {
	out := transform(t, "annotated-example", annotatedExample)

	tests := []struct {
		rpc  string
		want bool
	}{
		// include on companies: whole-collection accessors plus children
		{"get-companies", true},
		{"set-companies", true},
		{"get-company-name", true},
		// atomic on addresses: collection accessors only
		{"get-company-addresses", true},
		{"set-company-addresses", true},
		{"add-company-address", false},
		{"get-company-address", false},
		// include-item on domains: item accessors plus children
		{"get-domain", true},
		{"add-domain", true},
		{"remove-domain", true},
		{"get-domains", false},
		{"get-domain-company", true},
		// atomic-item on users: item accessors, no children
		{"get-user", true},
		{"add-user", true},
		{"get-user-login", false},
		{"get-user-phone", false},
		// atomic on admin container
		{"get-admin", true},
		{"set-admin", true},
		{"get-admin-email", false},
		// item-name overrides the singularized segment
		{"get-room-name", true},
		{"set-room-name", true},
		{"get-room", false},
	}
	for _, tt := range tests {
		if got := out.Find("rpc", tt.rpc) != nil; got != tt.want {
			t.Errorf("rpc %s: present=%v, want %v", tt.rpc, got, tt.want)
		}
	}

	companies := out.Find("grouping", "companies-data")
	if companies == nil || companies.Find("list", "companies") == nil {
		t.Errorf("grouping companies-data must carry the whole list, got %v", companies)
	}
	if out.Find("grouping", "room-name-response") == nil {
		t.Error("missing grouping room-name-response")
	}
	if out.Find("grouping", "admin-email-data") != nil {
		t.Error("children of an atomic container must not get data groupings")
	}

	// the annotation module is imported for the copied extension statements
	imp := out.Find("import", "pyang-accessors")
	if imp == nil {
		t.Fatal("missing import of the annotation module")
	}
	prefix := imp.SearchOne("prefix")
	if prefix == nil || prefix.Arg == "" {
		t.Errorf("annotation module import carries no prefix: %v", imp)
	}
	if companies.FindDeep(prefix.Arg+":modifier", "include") == nil {
		t.Errorf("copied modifier statement was not normalized to the import prefix %q", prefix.Arg)
	}
}

func TestTransformDeterminism(t *testing.T) {
	first := transform(t, "list-example", listExample).String()
	for i := 0; i < 5; i++ {
		if next := transform(t, "list-example", listExample).String(); next != first {
			diff, err := testutil.GenerateUnifiedDiff(first, next)
			if err != nil {
				t.Fatalf("could not generate diff: %v", err)
			}
			t.Fatalf("generated module changed between runs, diff(-next,+first):\n%s", diff)
		}
	}
}

func TestTransformEmptyModule(t *testing.T) {
	out := transform(t, "empty-example", `
		module empty-example {
			prefix "ee";
			namespace "urn:ee";
		}
	`)
	if got := len(out.Search("grouping")); got != 0 {
		t.Errorf("empty module produced %d groupings, want 0", got)
	}
	if got := len(out.Search("rpc")); got != 0 {
		t.Errorf("empty module produced %d rpcs, want 0", got)
	}
	if out.SearchOne("namespace") == nil || out.SearchOne("prefix") == nil {
		t.Error("empty module output is missing its header")
	}
}

func TestTransformVerifyDiagnostics(t *testing.T) {
	// the generated module imports the annotation module for the copied
	// extension statements, so it cannot be re-parsed in isolation
	ms := testutil.CompileModules(t, map[string]string{
		"annotated-example": annotatedExample,
		"pyang-accessors":   testutil.AnnotationsModule,
	})
	out, diags, err := New(Config{Verify: true}).Transform(testutil.ModuleEntry(t, ms, "annotated-example"), ModuleNames{})
	if err != nil {
		t.Fatalf("Transform: unexpected error %v", err)
	}
	if out == nil || out.Find("rpc", "get-domain") == nil {
		t.Fatalf("Transform did not return a usable tree alongside the diagnostics, got:\n%s", out)
	}
	if len(diags) == 0 {
		t.Fatal("Transform: got no diagnostics, want unresolved import reported")
	}
	if diff := errdiff.Substring(diags, "pyang-accessors"); diff != "" {
		t.Errorf("Transform diagnostics: %s", diff)
	}

	// a self-contained module stands alone
	ms = testutil.CompileModules(t, map[string]string{"plain-example": plainExample})
	_, diags, err = New(Config{Verify: true}).Transform(testutil.ModuleEntry(t, ms, "plain-example"), ModuleNames{})
	if err != nil {
		t.Fatalf("Transform: unexpected error %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("Transform: got diagnostics %v for a self-contained module, want none", diags)
	}
}

func TestTransformGroupingNameCollision(t *testing.T) {
	ms := testutil.CompileModules(t, map[string]string{
		"collision-example": `
			module collision-example {
				namespace "urn:collision";
				prefix "cl";

				leaf user-name { type string; }

				list users {
					key login;
					leaf login { type string; }
					leaf name { type string; }
				}
			}
		`,
	})

	_, _, err := New(Config{}).Transform(testutil.ModuleEntry(t, ms, "collision-example"), ModuleNames{})
	if diff := errdiff.Substring(err, `"user-name-data"`); diff != "" {
		t.Errorf("Transform: %s", diff)
	}
}

func TestTransformNilModule(t *testing.T) {
	if _, _, err := New(Config{}).Transform(nil, ModuleNames{}); err == nil {
		t.Error("Transform(nil): got nil error, want error")
	}
}

func TestTransformGolden(t *testing.T) {
	got := transform(t, "tiny", `
		module tiny {
			namespace "urn:tiny";
			prefix "t";

			leaf host { type string; }
		}
	`).String()

	want := `module tiny-interface {
  namespace urn:tiny:interface;
  prefix t-interface;
  grouping failure {
    leaf error-code {
      type int32;
      description "numeric code for the failure.";
    }
    leaf message {
      type string;
      description "textual description of failure.";
    }
  }
  grouping success {
    leaf ok {
      type boolean;
    }
  }
  grouping host-data {
    leaf host {
      type string;
    }
  }
  grouping host-response {
    choice response {
      default success;
      case success {
        uses host-data;
      }
      case failure {
        uses failure;
      }
    }
  }
  rpc get-host {
    output {
      uses host-response;
    }
  }
  grouping set-host-response {
    choice response {
      default success;
      case success {
        uses success;
      }
      case failure {
        uses failure;
      }
    }
  }
  rpc set-host {
    input {
      uses host-data;
    }
    output {
      uses set-host-response;
    }
  }
}
`
	if got != want {
		diff, err := testutil.GenerateUnifiedDiff(want, got)
		if err != nil {
			t.Fatalf("could not generate diff: %v", err)
		}
		t.Errorf("Transform(tiny): unexpected module, diff(-got,+want):\n%s", diff)
	}
}

// dedupe returns the set of distinct grouping names in the module.
func dedupe(module *ybuilder.Statement) map[string]bool {
	names := map[string]bool{}
	for _, g := range module.Search("grouping") {
		names[g.Arg] = true
	}
	return names
}
