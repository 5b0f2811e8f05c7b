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

// Package ybuilder provides an owned YANG statement tree that generated
// modules are assembled from and printed with. Unlike the read-only resolved
// view exposed by goyang (yang.Entry), statements built here may be freely
// created, copied and rewritten; child ownership is strictly one-directional.
package ybuilder

import (
	"github.com/openconfig/goyang/pkg/yang"
)

// Statement is a single YANG statement: a keyword, an optional argument and
// an ordered list of substatements. Keywords of extension statements carry
// their prefix (e.g. "acc:modifier").
type Statement struct {
	Keyword  string
	Arg      string
	Substmts []*Statement

	// origin is a non-owning handle to the source AST node this statement
	// was exported from, used to resolve which module defined a prefixed
	// reference. It is nil for synthesized statements.
	origin yang.Node
}

// New creates a statement with the supplied keyword, argument and children.
// Statements without an argument (input, output) use an empty arg.
func New(keyword, arg string, children ...*Statement) *Statement {
	return &Statement{Keyword: keyword, Arg: arg, Substmts: children}
}

// Append adds children to the statement and returns it for chaining.
func (s *Statement) Append(children ...*Statement) *Statement {
	s.Substmts = append(s.Substmts, children...)
	return s
}

// Origin returns the source AST node the statement was exported from, or nil
// for synthesized statements.
func (s *Statement) Origin() yang.Node {
	if s == nil {
		return nil
	}
	return s.origin
}

// WithOrigin records the source AST node of the statement and returns it.
func (s *Statement) WithOrigin(node yang.Node) *Statement {
	s.origin = node
	return s
}

// Copy returns a deep copy of the statement. The origin handles are shared
// with the copy; everything owned is duplicated so that the copy may be
// mutated without aliasing the original.
func (s *Statement) Copy() *Statement {
	if s == nil {
		return nil
	}
	dup := &Statement{Keyword: s.Keyword, Arg: s.Arg, origin: s.origin}
	if s.Substmts != nil {
		dup.Substmts = make([]*Statement, 0, len(s.Substmts))
		for _, c := range s.Substmts {
			dup.Substmts = append(dup.Substmts, c.Copy())
		}
	}
	return dup
}

// SearchOne returns the first direct child with the supplied keyword, or nil.
func (s *Statement) SearchOne(keyword string) *Statement {
	for _, c := range s.Substmts {
		if c.Keyword == keyword {
			return c
		}
	}
	return nil
}

// Search returns all direct children with the supplied keyword.
func (s *Statement) Search(keyword string) []*Statement {
	var found []*Statement
	for _, c := range s.Substmts {
		if c.Keyword == keyword {
			found = append(found, c)
		}
	}
	return found
}

// Find returns the first direct child with the supplied keyword and argument,
// or nil.
func (s *Statement) Find(keyword, arg string) *Statement {
	for _, c := range s.Substmts {
		if c.Keyword == keyword && c.Arg == arg {
			return c
		}
	}
	return nil
}

// FindDeep returns the first statement in the subtree rooted at s (the root
// included) with the supplied keyword and argument, in depth-first order.
func (s *Statement) FindDeep(keyword, arg string) *Statement {
	if s.Keyword == keyword && s.Arg == arg {
		return s
	}
	for _, c := range s.Substmts {
		if found := c.FindDeep(keyword, arg); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits every statement in the subtree rooted at s in depth-first
// pre-order, calling apply on each statement for which match returns true.
// The first error from apply stops the walk.
func (s *Statement) Walk(match func(*Statement) bool, apply func(*Statement) error) error {
	if match(s) {
		if err := apply(s); err != nil {
			return err
		}
	}
	for _, c := range s.Substmts {
		if err := c.Walk(match, apply); err != nil {
			return err
		}
	}
	return nil
}

// RemoveOne removes the first direct child with the supplied keyword and
// returns it, or nil when no child matches.
func (s *Statement) RemoveOne(keyword string) *Statement {
	for i, c := range s.Substmts {
		if c.Keyword == keyword {
			s.Substmts = append(s.Substmts[:i], s.Substmts[i+1:]...)
			return c
		}
	}
	return nil
}

// InsertAt inserts children at index i of the statement's substatements.
// Indexes past the end append.
func (s *Statement) InsertAt(i int, children ...*Statement) *Statement {
	if i >= len(s.Substmts) {
		return s.Append(children...)
	}
	rest := make([]*Statement, len(s.Substmts[i:]))
	copy(rest, s.Substmts[i:])
	s.Substmts = append(append(s.Substmts[:i], children...), rest...)
	return s
}
