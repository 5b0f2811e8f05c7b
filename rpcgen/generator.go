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

// Package rpcgen derives a YANG module of CRUD-style RPC definitions from the
// data tree of an input module. Every entry point discovered by the accessors
// scanner becomes a family of groupings plus one RPC per supported operation,
// all of them wrapped in a uniform success/failure response envelope.
package rpcgen

import (
	"fmt"
	"strings"

	"github.com/derekparker/trie"
	log "github.com/golang/glog"
	"github.com/openconfig/goyang/pkg/yang"

	"github.com/abravalheri/pyang-accessors/accessors"
	"github.com/abravalheri/pyang-accessors/util"
	"github.com/abravalheri/pyang-accessors/ybuilder"
)

// ModuleNames overrides parts of the generated module's identity. Empty
// fields are derived from the input module and the configured suffix.
type ModuleNames struct {
	Name      string
	Namespace string
	Prefix    string
}

// Generator transforms validated modules into accessor RPC modules.
type Generator struct {
	cfg     Config
	scanner *accessors.Scanner
}

// New returns a Generator using cfg, with zero fields of cfg replaced by the
// defaults of DefaultConfig.
func New(cfg Config) *Generator {
	cfg = cfg.withDefaults()
	return &Generator{
		cfg:     cfg,
		scanner: accessors.NewScanner(cfg.KeyTemplate, cfg.NameComposer, cfg.ValueArg),
	}
}

// Transform generates the accessor module for a validated module entry. The
// returned diagnostics are non-nil only when the Config requests verification
// and the generated module does not stand alone; they do not invalidate the
// returned tree.
func (g *Generator) Transform(module *yang.Entry, names ModuleNames) (*ybuilder.Statement, util.Errors, error) {
	if module == nil || module.Node == nil {
		return nil, nil, fmt.Errorf("rpcgen: nil module")
	}
	modNode, ok := module.Node.(*yang.Module)
	if !ok {
		return nil, nil, fmt.Errorf("rpcgen: entry %q was not built from a module", module.Name)
	}

	entries, err := g.scanner.Scan(module)
	if err != nil {
		return nil, nil, err
	}

	prefix := deriveIdentity(valueName(modNode.Prefix), names.Prefix, g.cfg.Suffix, "_", "-")
	out := ybuilder.New("module",
		deriveIdentity(modNode.Name, names.Name, g.cfg.Suffix, "_", "-"),
		ybuilder.New("namespace",
			deriveIdentity(valueName(modNode.Namespace), names.Namespace, g.cfg.Suffix, "://", ":")),
		ybuilder.New("prefix", prefix),
	)
	g.copyHeader(out, modNode)
	log.V(1).Infof("generating %d accessor entry point(s) for module %s", len(entries), modNode.Name)
	if len(entries) == 0 {
		return out, nil, nil
	}

	registry := NewImportRegistry()
	registry.Reserve(prefix)

	taken := trie.New()
	var errs util.Errors
	errs = util.AppendErr(errs, g.addGrouping(out, taken, g.cfg.FailureName, copyTemplates(g.cfg.FailureTemplate)))
	errs = util.AppendErr(errs, g.addGrouping(out, taken, g.cfg.SuccessName, copyTemplates(g.cfg.SuccessTemplate)))
	for _, entry := range entries {
		errs = util.AppendErrs(errs, g.emitEntry(out, taken, entry))
	}
	if len(errs) > 0 {
		return nil, nil, errs
	}

	if err := NewNormalizer(registry, modNode).Run(out); err != nil {
		return nil, nil, err
	}
	registry.CreateImports(out)

	var diags util.Errors
	if g.cfg.Verify {
		diags = reparse(out)
	}
	return out, diags, nil
}

// emitEntry appends the groupings and RPCs of one entry point to out.
func (g *Generator) emitEntry(out *ybuilder.Statement, taken *trie.Trie, entry *accessors.EntryPoint) util.Errors {
	compose := g.cfg.NameComposer
	var errs util.Errors

	idGroup := ""
	if entry.HasKeys() {
		idGroup = compose(append(entry.IDPath(), g.cfg.IDSuffix))
		errs = util.AppendErr(errs, g.addGrouping(out, taken, idGroup, identificationLeaves(entry, compose, false)))
	}

	dataGroup := compose(append(append([]string{}, entry.Path...), g.cfg.DataSuffix))
	errs = util.AppendErr(errs, g.addGrouping(out, taken, dataGroup, []*ybuilder.Statement{entry.Payload.Copy()}))

	// A second identification grouping scoped to the parent keys lets the
	// write requests carry the payload next to the path that locates it.
	fullDataGroup := ""
	if len(entry.ParentKeys) > 0 {
		fullDataGroup = compose(append(append([]string{}, entry.Path...), g.cfg.DataAndIDSuffix))
		children := identificationLeaves(entry, compose, true)
		children = append(children, ybuilder.New("uses", dataGroup))
		errs = util.AppendErr(errs, g.addGrouping(out, taken, fullDataGroup, children))
	}

	for _, op := range entry.Operations {
		rpcName := compose(append([]string{string(op)}, entry.Path...))
		rpc := ybuilder.New("rpc", rpcName)

		var respGroup string
		switch op {
		case accessors.ReadOp, accessors.ItemRemoveOp:
			if idGroup != "" {
				rpc.Append(ybuilder.New("input", "",
					ybuilder.New("uses", idGroup)))
			}
			respGroup = compose(append(append([]string{}, entry.Path...), g.cfg.ResponseSuffix))
			errs = util.AppendErr(errs, g.addGrouping(out, taken, respGroup, []*ybuilder.Statement{
				g.responseChoice(ybuilder.New("uses", dataGroup)),
			}))
		default:
			request := dataGroup
			if fullDataGroup != "" {
				request = fullDataGroup
			}
			rpc.Append(ybuilder.New("input", "",
				ybuilder.New("uses", request)))
			respGroup = compose([]string{rpcName, g.cfg.ResponseSuffix})
			errs = util.AppendErr(errs, g.addGrouping(out, taken, respGroup, []*ybuilder.Statement{
				g.responseChoice(g.creationResult(entry, op, idGroup)...),
			}))
		}

		rpc.Append(ybuilder.New("output", "",
			ybuilder.New("uses", respGroup)))
		out.Append(rpc)
	}
	return errs
}

// creationResult lists the statements the success case of a write operation
// reports back. Adding an item returns the identity assigned to it; plain
// changes acknowledge with the shared success grouping.
func (g *Generator) creationResult(entry *accessors.EntryPoint, op accessors.Operation, idGroup string) []*ybuilder.Statement {
	if op != accessors.ItemAddOp {
		return nil
	}
	if len(entry.ParentKeys) == 0 && idGroup != "" {
		return []*ybuilder.Statement{ybuilder.New("uses", idGroup)}
	}
	return copyTemplates(entry.OwnKeys)
}

// responseChoice wraps the statements reported on success in the uniform
// response envelope.
func (g *Generator) responseChoice(success ...*ybuilder.Statement) *ybuilder.Statement {
	okCase := ybuilder.New("case", g.cfg.SuccessName)
	if len(success) > 0 {
		okCase.Append(success...)
	} else {
		okCase.Append(ybuilder.New("uses", g.cfg.SuccessName))
	}
	return ybuilder.New("choice", g.cfg.ChoiceName,
		ybuilder.New("default", g.cfg.SuccessName),
		okCase,
		ybuilder.New("case", g.cfg.FailureName,
			ybuilder.New("uses", g.cfg.FailureName)),
	)
}

// addGrouping appends a named grouping unless an identical one was already
// emitted: sibling entries below one keyed ancestor share their
// identification grouping, and read/remove operations share a response
// grouping. A name claimed for two different shapes is an error, since the
// second shape would silently inherit the first one's definition.
func (g *Generator) addGrouping(out *ybuilder.Statement, taken *trie.Trie, name string, children []*ybuilder.Statement) error {
	grouping := ybuilder.New("grouping", name, children...)
	if node, ok := taken.Find(name); ok {
		if prev, ok := node.Meta().(*ybuilder.Statement); ok && prev.String() == grouping.String() {
			return nil
		}
		return fmt.Errorf("composed grouping name %q designates two different shapes", name)
	}
	taken.Add(name, grouping)
	out.Append(grouping)
	return nil
}

// identificationLeaves flattens the keys locating an entry into leaf
// statements. Keys of every ancestor but the innermost keyed one are prefixed
// with the ancestor's item name so that sibling lists sharing key names stay
// distinguishable. With parentsOnly set the entry's own keys are left out and
// the innermost parent counts as the final item.
func identificationLeaves(entry *accessors.EntryPoint, compose func([]string) string, parentsOnly bool) []*ybuilder.Statement {
	hasOwn := !parentsOnly && len(entry.OwnKeys) > 0
	var leaves []*ybuilder.Statement
	for i, ks := range entry.ParentKeys {
		innermost := i == len(entry.ParentKeys)-1 && !hasOwn
		for _, key := range ks.Keys {
			leaf := key.Copy()
			if !innermost {
				leaf.Arg = compose([]string{ks.Item, leaf.Arg})
			}
			leaves = append(leaves, leaf)
		}
	}
	if !parentsOnly {
		for _, key := range entry.OwnKeys {
			leaves = append(leaves, key.Copy())
		}
	}
	return leaves
}

// copyHeader carries the input module's header and meta statements over to
// the generated module.
func (g *Generator) copyHeader(out *ybuilder.Statement, mod *yang.Module) {
	if v := valueName(mod.YangVersion); v != "" {
		// yang-version must precede the linkage section.
		out.InsertAt(0, ybuilder.New("yang-version", v))
	}
	if v := valueName(mod.Organization); v != "" {
		out.Append(ybuilder.New("organization", v))
	}
	if v := valueName(mod.Contact); v != "" {
		out.Append(ybuilder.New("contact", v))
	}
	if v := valueName(mod.Description); v != "" {
		out.Append(ybuilder.New("description", v))
	}
	for _, rev := range mod.Revision {
		stmt := ybuilder.New("revision", rev.Name)
		if v := valueName(rev.Description); v != "" {
			stmt.Append(ybuilder.New("description", v))
		}
		out.Append(stmt)
	}
}

// deriveIdentity combines a base identity with the configured suffix, unless
// an explicit override is given. The first joiner already present in the base
// wins, so "acme_system" turns into "acme_system_interface" while namespaces
// keep their URI shape.
func deriveIdentity(base, override, suffix string, joiners ...string) string {
	if override != "" {
		return override
	}
	if base == "" {
		return suffix
	}
	joiner := joiners[len(joiners)-1]
	for _, j := range joiners[:len(joiners)-1] {
		if strings.Contains(base, j) {
			joiner = j
			break
		}
	}
	if joiner == "://" {
		joiner = "/"
	}
	return base + joiner + suffix
}

func valueName(v *yang.Value) string {
	if v == nil {
		return ""
	}
	return v.Name
}

// reparse feeds the emitted text back through the parser and collects the
// diagnostics. Groupings copied out of augmenting or importing contexts may
// legitimately fail to resolve in isolation.
func reparse(out *ybuilder.Statement) util.Errors {
	ms := yang.NewModules()
	if err := ms.Parse(out.String(), out.Arg+".yang"); err != nil {
		return util.NewErrs(err)
	}
	return util.Errors(ms.Process())
}
