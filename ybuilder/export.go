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

package ybuilder

import (
	"strings"

	"github.com/openconfig/goyang/pkg/yang"

	"github.com/abravalheri/pyang-accessors/util"
)

// retainedSubstatements are the non-data substatements of a directory node
// that are carried into its export. Data children are rebuilt from the
// resolved view instead, so that uses and augment expansion is reflected.
var retainedSubstatements = map[string]bool{
	"config":       true,
	"description":  true,
	"key":          true,
	"max-elements": true,
	"min-elements": true,
	"must":         true,
	"ordered-by":   true,
	"presence":     true,
	"reference":    true,
	"status":       true,
	"units":        true,
	"when":         true,
}

// FromYangStatement copies a raw goyang statement subtree verbatim.
func FromYangStatement(s *yang.Statement) *Statement {
	if s == nil {
		return nil
	}
	out := &Statement{Keyword: s.Keyword, Arg: s.Argument}
	for _, c := range s.SubStatements() {
		out.Append(FromYangStatement(c))
	}
	return out
}

// FromEntry exports the subtree rooted at a resolved entry into an owned
// statement tree. Leaf-like entries are copied from their raw source
// statements, preserving type references and extension statements exactly as
// written; directory entries are rebuilt from the resolved children view so
// reused (uses/augment) content is included. Children are exported in
// sorted-name order.
func FromEntry(e *yang.Entry) *Statement {
	if e == nil {
		return nil
	}
	if isLeafLike(e) {
		if e.Node != nil && e.Node.Statement() != nil {
			return FromYangStatement(e.Node.Statement()).WithOrigin(e.Node)
		}
		return New(KindKeyword(e), e.Name)
	}

	s := New(KindKeyword(e), e.Name)
	if e.Node != nil {
		s.WithOrigin(e.Node)
		if raw := e.Node.Statement(); raw != nil {
			for _, sub := range raw.SubStatements() {
				if retainedSubstatements[sub.Keyword] || strings.Contains(sub.Keyword, ":") {
					s.Append(FromYangStatement(sub))
				}
			}
		}
	}
	for _, name := range util.OrderedChildNames(e) {
		child := e.Dir[name]
		if child.RPC != nil {
			continue
		}
		s.Append(FromEntry(child))
	}
	return s
}

// KindKeyword maps a resolved entry to the YANG keyword it was defined with.
func KindKeyword(e *yang.Entry) string {
	switch {
	case e.IsLeafList():
		return "leaf-list"
	case e.IsLeaf():
		return "leaf"
	case e.Kind == yang.AnyXMLEntry:
		return "anyxml"
	case e.Kind == yang.AnyDataEntry:
		return "anydata"
	case e.IsChoice():
		return "choice"
	case e.IsCase():
		return "case"
	case e.IsList():
		return "list"
	default:
		return "container"
	}
}

func isLeafLike(e *yang.Entry) bool {
	return e.IsLeaf() || e.IsLeafList() ||
		e.Kind == yang.AnyXMLEntry || e.Kind == yang.AnyDataEntry
}
