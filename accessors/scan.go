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
	"errors"
	"fmt"
	"strings"

	log "github.com/golang/glog"
	"github.com/jinzhu/inflection"
	"github.com/openconfig/goyang/pkg/yang"

	"github.com/abravalheri/pyang-accessors/util"
	"github.com/abravalheri/pyang-accessors/ybuilder"
)

// ErrNotValidated is returned when Scan is handed a tree that does not carry
// the resolved children view produced by goyang's module processing. Scanning
// the raw substatement list would silently miss reused and augmented content,
// so this is fatal.
var ErrNotValidated = errors.New("module has not been validated")

// DefaultValueArg is the leaf name wrapping a scalar value when a leaf-list
// is singularized into a container payload.
const DefaultValueArg = "value"

// DefaultKeyTemplate returns the key leaf synthesized for lists that declare
// no key statement.
func DefaultKeyTemplate() *ybuilder.Statement {
	return ybuilder.New("leaf", "id", ybuilder.New("type", "int32"))
}

// Scanner walks a resolved module tree and produces its entry points.
type Scanner struct {
	keyTemplate *ybuilder.Statement
	composer    func([]string) string
	valueArg    string
}

// NewScanner creates a scanner. keyTemplate is deep-copied and used whenever
// a list declares no key; composer joins name fragments into identifiers;
// valueArg names the wrapping leaf of singularized leaf-lists. Nil or empty
// values select the defaults.
func NewScanner(keyTemplate *ybuilder.Statement, composer func([]string) string, valueArg string) *Scanner {
	if keyTemplate == nil {
		keyTemplate = DefaultKeyTemplate()
	}
	if composer == nil {
		composer = DashJoin
	}
	if valueArg == "" {
		valueArg = DefaultValueArg
	}
	return &Scanner{keyTemplate: keyTemplate.Copy(), composer: composer, valueArg: valueArg}
}

// DashJoin joins name fragments with an underscore, skipping empty ones, and
// converts the result to its dash-separated form. It is the default name
// composer.
func DashJoin(names []string) string {
	var kept []string
	for _, n := range names {
		if n != "" {
			kept = append(kept, n)
		}
	}
	return strings.ReplaceAll(strings.Join(kept, "_"), "_", "-")
}

// Scan returns the entry points of a resolved module, in deterministic
// order: children are visited sorted by name, depth before siblings.
func (s *Scanner) Scan(root *yang.Entry) ([]*EntryPoint, error) {
	if err := ensureValidated(root); err != nil {
		return nil, err
	}
	var entries []*EntryPoint
	for _, name := range util.OrderedChildNames(root) {
		child := root.Dir[name]
		if child.RPC != nil {
			continue
		}
		entries = append(entries, s.scan(child)...)
	}
	return entries, nil
}

// scan produces the entry points of the subtree rooted at a data node.
func (s *Scanner) scan(e *yang.Entry) []*EntryPoint {
	if !IsData(e) {
		return nil
	}
	log.V(2).Infof("scanning %s", e.Path())

	readOnly := IsReadOnly(e)
	ops := DefaultOps()
	if readOnly {
		ops = ReadOnlyOps()
	}
	entry := &EntryPoint{
		Path:       []string{e.Name},
		Payload:    ybuilder.FromEntry(e),
		Operations: ops,
	}

	// Atomic nodes are accessed as an entire entity; no need to descend.
	if IsAtomic(e) {
		return []*EntryPoint{entry}
	}

	var entries []*EntryPoint
	if IsIncluded(e) {
		entries = append(entries, entry.Copy())
	}

	segment := e.Name
	var keys []*ybuilder.Statement
	skip := map[string]bool{}
	if IsListLike(e) {
		list := s.scanList(e, readOnly)
		entries = append(entries, list.entries...)
		if list.prune {
			return entries
		}
		segment = list.itemName
		keys = list.keys
		skip = list.keyNames
	}

	for _, name := range util.OrderedChildNames(e) {
		child := e.Dir[name]
		// Key leaves identify the very entry asking for them; they are not
		// independently accessible.
		if skip[name] {
			continue
		}
		for _, ce := range s.scan(child) {
			if readOnly {
				ce.Operations = ReadOnlyOps()
			}
			ce.prependSegment(segment)
			if len(keys) > 0 {
				ce.prependParentKeys(segment, copyStatements(keys))
			}
			entries = append(entries, ce)
		}
	}
	return entries
}

// listScan is the outcome of scanning a list or leaf-list node.
type listScan struct {
	// keys identify one item of the list, for use as parent keys of the
	// list's children.
	keys []*ybuilder.Statement
	// keyNames are the names of explicit key leaves, which descent skips.
	keyNames map[string]bool
	// entries are the item entry points emitted for the list itself.
	entries []*EntryPoint
	// itemName is the path segment under which children are scanned.
	itemName string
	// prune stops descent into the list's children (atomic items).
	prune bool
}

func (s *Scanner) scanList(e *yang.Entry, readOnly bool) listScan {
	itemName, ok := ItemNameOf(e)
	if !ok {
		itemName = inflection.Singular(e.Name)
	}

	var keys []*ybuilder.Statement
	keyNames := map[string]bool{}
	for _, name := range strings.Fields(e.Key) {
		if k := e.Dir[name]; k != nil {
			keys = append(keys, ybuilder.FromEntry(k))
			keyNames[name] = true
		}
	}
	explicitKeys := len(keys) > 0
	if !explicitKeys {
		// a list item needs keys to be found; synthesize one
		keys = []*ybuilder.Statement{s.keyTemplate.Copy()}
	}

	atomicItem := IsAtomicItem(e)
	out := listScan{keys: keys, keyNames: keyNames, itemName: itemName, prune: atomicItem}

	if atomicItem || IsIncludedItem(e) {
		payload := s.singularize(e, itemName)
		if !explicitKeys {
			// nothing else declares the synthesized key; carry it in the
			// payload so items round-trip with their identity
			payload.Append(keys[0].Copy())
		}
		ops := DefaultItemOps()
		if readOnly {
			ops = ReadOnlyOps()
		}
		out.entries = append(out.entries, &EntryPoint{
			Path:       []string{itemName},
			Payload:    payload,
			Operations: ops,
			OwnKeys:    copyStatements(keys),
			idPathLen:  1,
		})
	}
	return out
}

// leafValueSubstatements are the leaf-list substatements carried onto the
// wrapping value leaf when a leaf-list is singularized.
var leafValueSubstatements = map[string]bool{
	"default":     true,
	"description": true,
	"must":        true,
	"reference":   true,
	"type":        true,
	"units":       true,
	"when":        true,
}

// singularize builds the payload describing one item of a list-like node: a
// list becomes a container named after the item, a leaf-list becomes a
// container wrapping a single value leaf of the leaf-list's type.
func (s *Scanner) singularize(e *yang.Entry, itemName string) *ybuilder.Statement {
	if e.IsLeafList() {
		value := ybuilder.New("leaf", s.valueArg).WithOrigin(e.Node)
		if e.Node != nil && e.Node.Statement() != nil {
			for _, sub := range e.Node.Statement().SubStatements() {
				if leafValueSubstatements[sub.Keyword] {
					value.Append(ybuilder.FromYangStatement(sub))
				}
			}
		}
		return ybuilder.New("container", itemName, value).WithOrigin(e.Node)
	}

	item := ybuilder.FromEntry(e)
	item.Keyword = "container"
	item.Arg = itemName
	// the key statement has no meaning on a container payload
	item.RemoveOne("key")
	return item
}

func ensureValidated(root *yang.Entry) error {
	if root == nil {
		return fmt.Errorf("%w: no module supplied", ErrNotValidated)
	}
	if root.Node == nil || root.Dir == nil || !IsTopLevel(root) {
		return fmt.Errorf("%w: invalid module %s, was it processed by goyang?", ErrNotValidated, root.Name)
	}
	if errs := collectErrors(root, nil); len(errs) > 0 {
		return fmt.Errorf("%w: module %s carries resolution errors: %s", ErrNotValidated, root.Name, util.ToString(errs))
	}
	return nil
}

func collectErrors(e *yang.Entry, errs []error) []error {
	errs = util.AppendErrs(errs, e.Errors)
	for _, name := range util.OrderedChildNames(e) {
		errs = collectErrors(e.Dir[name], errs)
	}
	return errs
}
