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

// Package accessors scans an annotated, resolved YANG schema tree and derives
// the ordered set of entry points for which RPC accessors are generated: which
// nodes are independently accessible, which keys identify them and which
// operations apply to each.
package accessors

import (
	"strings"

	log "github.com/golang/glog"
	"github.com/openconfig/goyang/pkg/yang"
)

// Operation names an accessor operation on an entry point. The values are
// the verbs used to compose RPC names.
type Operation string

const (
	// ReadOp retrieves a node value.
	ReadOp Operation = "get"
	// ChangeOp replaces a node value.
	ChangeOp Operation = "set"
	// ItemAddOp adds an item to a collection node.
	ItemAddOp Operation = "add"
	// ItemRemoveOp removes an item from a collection node.
	ItemRemoveOp Operation = "remove"
)

// ReadOnlyOps returns the operation set of a read-only entry point. A fresh
// slice is returned on each call: operation sets are mutated in place while
// scanning and must never alias between entries.
func ReadOnlyOps() []Operation {
	return []Operation{ReadOp}
}

// DefaultOps returns the operation set of a writable non-item entry point.
func DefaultOps() []Operation {
	return []Operation{ReadOp, ChangeOp}
}

// DefaultItemOps returns the operation set of a writable list item entry
// point.
func DefaultItemOps() []Operation {
	return []Operation{ReadOp, ChangeOp, ItemAddOp, ItemRemoveOp}
}

// Extension keywords of the accessor annotation vocabulary. They are matched
// on the unprefixed identifier, whatever prefix the input module imported the
// extension module under.
const (
	// ModifierExt changes how a node is scanned (see Modifier).
	ModifierExt = "modifier"
	// ItemNameExt overrides the singularized item name of a list.
	ItemNameExt = "item-name"
)

// Modifier is the closed set of values of the modifier extension, resolved
// once per node.
type Modifier int

const (
	// ModifierNone scans the node with default behavior.
	ModifierNone Modifier = iota
	// ModifierAtomic treats the node as an indivisible entity: no accessors
	// are produced for its descendants.
	ModifierAtomic
	// ModifierAtomicItem treats each item of a list as an indivisible
	// entity, adding add/remove operations and pruning descent.
	ModifierAtomicItem
	// ModifierInclude adds a whole-collection accessor in addition to the
	// per-child accessors.
	ModifierInclude
	// ModifierIncludeItem adds a per-item accessor in addition to the
	// per-child accessors.
	ModifierIncludeItem
)

func (m Modifier) String() string {
	switch m {
	case ModifierNone:
		return "none"
	case ModifierAtomic:
		return "atomic"
	case ModifierAtomicItem:
		return "atomic-item"
	case ModifierInclude:
		return "include"
	case ModifierIncludeItem:
		return "include-item"
	}
	return "unknown"
}

// modifierFromArg maps extension argument values to modifiers, in decreasing
// restrictiveness.
var modifierFromArg = map[string]Modifier{
	"atomic":       ModifierAtomic,
	"atomic-item":  ModifierAtomicItem,
	"include":      ModifierInclude,
	"include-item": ModifierIncludeItem,
}

// ModifierOf resolves the modifier annotation of an entry. When a node
// carries conflicting modifier statements the most restrictive one wins,
// in the order atomic > atomic-item > include > include-item; the upstream
// vocabulary leaves the precedence undefined, so it is pinned here rather
// than depending on statement order.
func ModifierOf(e *yang.Entry) Modifier {
	resolved := ModifierNone
	for _, arg := range extArgs(e, ModifierExt) {
		m, ok := modifierFromArg[arg]
		if !ok {
			log.Warningf("ignoring unknown modifier value %q on %s", arg, e.Name)
			continue
		}
		if resolved == ModifierNone || m < resolved {
			resolved = m
		}
	}
	return resolved
}

// ItemNameOf returns the explicit item-name annotation of a list entry, if
// present.
func ItemNameOf(e *yang.Entry) (string, bool) {
	names := extArgs(e, ItemNameExt)
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}

// extArgs returns the arguments of every extension statement on the entry
// whose unprefixed keyword matches name.
func extArgs(e *yang.Entry, name string) []string {
	if e == nil {
		return nil
	}
	var args []string
	for _, ext := range e.Exts {
		p := strings.Split(ext.Keyword, ":")
		if p[len(p)-1] != name || !ext.HasArgument {
			continue
		}
		args = append(args, ext.Argument)
	}
	return args
}
