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
	"fmt"

	"github.com/openconfig/goyang/pkg/yang"

	"github.com/abravalheri/pyang-accessors/util"
	"github.com/abravalheri/pyang-accessors/ybuilder"
)

// Normalizer rewrites the prefixes of statements copied out of foreign
// modules so that they resolve inside the generated module. Every extension
// keyword, prefixed argument and custom type is re-expressed in terms of a
// prefix assigned by the shared ImportRegistry, and the defining module is
// registered as an import along the way.
type Normalizer struct {
	registry *ImportRegistry
	fallback *yang.Module
}

// NewNormalizer returns a Normalizer resolving prefixes against registry.
// Statements carrying no origin are attributed to module.
func NewNormalizer(registry *ImportRegistry, module *yang.Module) *Normalizer {
	return &Normalizer{registry: registry, fallback: module}
}

// Run normalizes root and all of its descendants in place.
func (n *Normalizer) Run(root *ybuilder.Statement) error {
	return n.walk(root, n.fallback)
}

func (n *Normalizer) walk(s *ybuilder.Statement, origin *yang.Module) error {
	if mod := util.DefiningModule(s.Origin()); mod != nil {
		origin = mod
	}

	switch {
	case ybuilder.IsExtension(s):
		prefix, keyword := ybuilder.SplitPrefix(s.Keyword)
		assigned, err := n.reprefix(prefix, origin)
		if err != nil {
			return fmt.Errorf("cannot normalize extension %q: %w", s.Keyword, err)
		}
		s.Keyword = assigned + ":" + keyword
	case ybuilder.HasPrefixedArg(s):
		prefix, arg := ybuilder.SplitPrefix(s.Arg)
		assigned, err := n.reprefix(prefix, origin)
		if err != nil {
			return fmt.Errorf("cannot normalize %s %q: %w", s.Keyword, s.Arg, err)
		}
		s.Arg = assigned + ":" + arg
	case ybuilder.IsCustomType(s):
		// An unprefixed custom type resolves in its defining module.
		assigned, err := n.reprefix("", origin)
		if err != nil {
			return fmt.Errorf("cannot normalize type %q: %w", s.Arg, err)
		}
		s.Arg = assigned + ":" + s.Arg
	}

	for _, child := range s.Substmts {
		if err := n.walk(child, origin); err != nil {
			return err
		}
	}
	return nil
}

// reprefix maps a prefix as seen from origin to the prefix assigned by the
// registry for the module it designates.
func (n *Normalizer) reprefix(prefix string, origin *yang.Module) (string, error) {
	name, revision, suggested, err := resolvePrefix(prefix, origin)
	if err != nil {
		return "", err
	}
	return n.registry.Add(suggested, name, revision)
}

// resolvePrefix translates a prefix into the module it designates from the
// viewpoint of mod. The empty prefix and mod's own prefix both designate mod
// itself; anything else must match one of mod's imports.
func resolvePrefix(prefix string, mod *yang.Module) (name, revision, suggested string, err error) {
	if mod == nil {
		return "", "", "", fmt.Errorf("no module context to resolve prefix %q", prefix)
	}

	own := ""
	if mod.Prefix != nil {
		own = mod.Prefix.Name
	}
	if prefix == "" || prefix == own {
		return util.ModuleName(mod), mod.Current(), own, nil
	}

	for _, imp := range mod.Import {
		if imp.Prefix == nil || imp.Prefix.Name != prefix {
			continue
		}
		rev := ""
		switch {
		case imp.RevisionDate != nil:
			rev = imp.RevisionDate.Name
		case imp.Module != nil:
			rev = imp.Module.Current()
		}
		return imp.Name, rev, prefix, nil
	}
	return "", "", "", fmt.Errorf("prefix %q is not defined by module %s", prefix, mod.Name)
}
