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

package accessors

import (
	"github.com/openconfig/goyang/pkg/yang"
)

// IsData reports whether the entry is a data node that the scanner descends
// into: container, list, leaf, leaf-list, anyxml, anydata, choice or case.
// RPC and notification entries are not data nodes.
func IsData(e *yang.Entry) bool {
	if e == nil || e.RPC != nil {
		return false
	}
	switch {
	case e.IsLeaf(), e.IsLeafList(), e.IsList(), e.IsContainer(), e.IsChoice(), e.IsCase():
		return true
	case e.Kind == yang.AnyXMLEntry, e.Kind == yang.AnyDataEntry:
		return true
	}
	return false
}

// IsAtomic reports whether the entry must be retrieved and replaced as an
// entire entity: leafs and anyxml/anydata nodes, plus anything annotated
// atomic.
func IsAtomic(e *yang.Entry) bool {
	if e.IsLeaf() || e.Kind == yang.AnyXMLEntry || e.Kind == yang.AnyDataEntry {
		return true
	}
	return ModifierOf(e) == ModifierAtomic
}

// IsAtomicItem reports whether each item of the entry is an indivisible
// entity. This is the implicit behavior of leaf-lists.
func IsAtomicItem(e *yang.Entry) bool {
	if e.IsLeafList() {
		return true
	}
	return ModifierOf(e) == ModifierAtomicItem
}

// IsListLike reports whether the entry is a list or a leaf-list.
func IsListLike(e *yang.Entry) bool {
	return e.ListAttr != nil
}

// IsReadOnly reports whether the entry carries an explicit "config false"
// statement. Config inheritance from ancestors is applied by the scanner
// while descending, not here.
func IsReadOnly(e *yang.Entry) bool {
	return e.Config == yang.TSFalse
}

// IsIncluded reports whether the whole node gets an accessor in addition to
// its children's.
func IsIncluded(e *yang.Entry) bool {
	return ModifierOf(e) == ModifierInclude
}

// IsIncludedItem reports whether each item of the node gets an accessor in
// addition to its children's.
func IsIncludedItem(e *yang.Entry) bool {
	return ModifierOf(e) == ModifierIncludeItem
}

// IsTopLevel reports whether the entry is a module or submodule root.
func IsTopLevel(e *yang.Entry) bool {
	if e == nil || e.Parent != nil || e.Node == nil {
		return false
	}
	kind := e.Node.Kind()
	return kind == "module" || kind == "submodule"
}
