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
	"github.com/abravalheri/pyang-accessors/ybuilder"
)

// KeySet holds the ordered key leaves that identify one keyed ancestor of an
// entry point, under the ancestor's item name.
type KeySet struct {
	// Item is the singular item name of the keyed ancestor.
	Item string
	// Keys are the key leaves, in key statement order.
	Keys []*ybuilder.Statement
}

func (k KeySet) copy() KeySet {
	return KeySet{Item: k.Item, Keys: copyStatements(k.Keys)}
}

// EntryPoint is one addressable unit of data in the scanned tree. Path holds
// node-name segments only; key information lives exclusively in ParentKeys
// and OwnKeys.
type EntryPoint struct {
	// Path is the ordered node-name segments from the scan root down to the
	// target node, the root module excluded. Children of a list appear
	// under the list's singular item name.
	Path []string
	// Payload describes the data shape exposed by the entry.
	Payload *ybuilder.Statement
	// Operations applying to the entry, always starting with ReadOp.
	Operations []Operation
	// ParentKeys identifies each keyed list ancestor, ordered root to
	// target. Empty when no ancestor is a keyed list.
	ParentKeys []KeySet
	// OwnKeys identifies the entry itself when it is a list item.
	OwnKeys []*ybuilder.Statement

	// idPathLen is the number of leading Path segments up to and including
	// the last keyed ancestor (or the entry itself, for list items). It is
	// zero when the entry has no keys.
	idPathLen int
}

// Copy deep-copies the entry point. Entries are value objects: payloads and
// key statements must never alias between entries, since both are mutated in
// place after scanning.
func (e *EntryPoint) Copy() *EntryPoint {
	dup := &EntryPoint{
		Path:       append([]string(nil), e.Path...),
		Payload:    e.Payload.Copy(),
		Operations: append([]Operation(nil), e.Operations...),
		OwnKeys:    copyStatements(e.OwnKeys),
		idPathLen:  e.idPathLen,
	}
	for _, ks := range e.ParentKeys {
		dup.ParentKeys = append(dup.ParentKeys, ks.copy())
	}
	return dup
}

// HasKeys reports whether any keys are needed to locate the entry.
func (e *EntryPoint) HasKeys() bool {
	return len(e.ParentKeys) > 0 || len(e.OwnKeys) > 0
}

// IDPath returns the entry's path truncated at the last keyed ancestor: the
// segments that name the entry's identification grouping. Sibling entries
// below the same keyed ancestor therefore share one identification grouping.
// It returns nil for entries without keys.
func (e *EntryPoint) IDPath() []string {
	if !e.HasKeys() || e.idPathLen == 0 {
		return nil
	}
	if e.idPathLen > len(e.Path) {
		return append([]string(nil), e.Path...)
	}
	return append([]string(nil), e.Path[:e.idPathLen]...)
}

// prependSegment records that the scanner ascended one level: seg is pushed
// onto the path, and if keys identify something at or below this entry the
// identification path shifts with it.
func (e *EntryPoint) prependSegment(seg string) {
	e.Path = append([]string{seg}, e.Path...)
	if e.HasKeys() {
		e.idPathLen++
	}
}

// prependParentKeys records a keyed ancestor discovered while ascending. The
// caller must have already prepended the ancestor's item segment.
func (e *EntryPoint) prependParentKeys(item string, keys []*ybuilder.Statement) {
	e.ParentKeys = append([]KeySet{{Item: item, Keys: keys}}, e.ParentKeys...)
	if e.idPathLen == 0 {
		e.idPathLen = 1
	}
}

func copyStatements(stmts []*ybuilder.Statement) []*ybuilder.Statement {
	if stmts == nil {
		return nil
	}
	out := make([]*ybuilder.Statement, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, s.Copy())
	}
	return out
}
