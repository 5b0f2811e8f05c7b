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

package util

import (
	"github.com/openconfig/goyang/pkg/yang"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefiningModule returns the module or submodule at the root of the AST that
// the supplied node was parsed within. It returns nil when node is nil, or
// when the root of the AST is not a module.
func DefiningModule(node yang.Node) *yang.Module {
	if node == nil {
		return nil
	}
	return yang.RootNode(node)
}

// ModuleName returns the name of the module that defined the supplied node.
// If the node is within a submodule, the parent module name is returned.
func ModuleName(mod *yang.Module) string {
	if mod == nil {
		return ""
	}
	if mod.Kind() == "submodule" && mod.BelongsTo != nil {
		return mod.BelongsTo.NName()
	}
	return mod.Name
}

// OrderedChildNames returns the keys of an entry's directory in alphabetical
// order. Goyang stores resolved children in a map, so the source statement
// order is not recoverable; sorting keeps traversals deterministic.
func OrderedChildNames(e *yang.Entry) []string {
	if e == nil || e.Dir == nil {
		return nil
	}
	names := maps.Keys(e.Dir)
	slices.Sort(names)
	return names
}
