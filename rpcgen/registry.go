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
	"errors"
	"fmt"
	"strings"

	"github.com/abravalheri/pyang-accessors/ybuilder"
)

// ErrImportConflict indicates that one module was requested with two
// different revision dates.
var ErrImportConflict = errors.New("module already imported with a different revision")

// ImportEntry records one module dependency of a generated module.
type ImportEntry struct {
	Prefix   string
	Name     string
	Revision string
}

// ImportRegistry accumulates the modules a generated tree depends on, and
// hands out a collision-free prefix for each. The first module to request a
// prefix owns it; later requests for the same prefix get a numeric suffix.
type ImportRegistry struct {
	byName   map[string]ImportEntry
	requests map[string]int
	order    []ImportEntry
}

// NewImportRegistry returns an empty registry.
func NewImportRegistry() *ImportRegistry {
	return &ImportRegistry{
		byName:   map[string]ImportEntry{},
		requests: map[string]int{},
	}
}

// Reserve claims prefixes that may never be assigned verbatim to an imported
// module, typically the generated module's own prefix.
func (r *ImportRegistry) Reserve(prefixes ...string) {
	for _, p := range prefixes {
		if r.requests[p] == 0 {
			r.requests[p] = 1
		}
	}
}

// Add registers module name at the given revision under the suggested prefix
// and returns the prefix actually assigned, which differs from the suggestion
// whenever another module claimed it first. Registering a module twice is
// idempotent as long as the revisions do not disagree; an empty revision
// matches anything.
func (r *ImportRegistry) Add(prefix, name, revision string) (string, error) {
	if existing, ok := r.byName[name]; ok {
		if existing.Revision != "" && revision != "" && existing.Revision != revision {
			return "", fmt.Errorf("%w: %s requested at %s, registered at %s", ErrImportConflict, name, revision, existing.Revision)
		}
		if existing.Revision == "" && revision != "" {
			existing.Revision = revision
			r.byName[name] = existing
			for i := range r.order {
				if r.order[i].Name == name {
					r.order[i].Revision = revision
				}
			}
		}
		return existing.Prefix, nil
	}

	if prefix == "" {
		prefix = Prefixify(name)
	}
	if n := r.requests[prefix]; n > 0 {
		r.requests[prefix] = n + 1
		prefix = fmt.Sprintf("%s%d", prefix, n+1)
	}
	r.requests[prefix] = 1

	entry := ImportEntry{Prefix: prefix, Name: name, Revision: revision}
	r.byName[name] = entry
	r.order = append(r.order, entry)
	return prefix, nil
}

// Lookup returns the entry registered for the named module.
func (r *ImportRegistry) Lookup(name string) (ImportEntry, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// Imports returns the registered dependencies in registration order.
func (r *ImportRegistry) Imports() []ImportEntry {
	return append([]ImportEntry(nil), r.order...)
}

// CreateImports materializes the registered dependencies as import statements
// of module, inserted directly after its prefix statement so that the header
// statements stay ahead of the linkage section.
func (r *ImportRegistry) CreateImports(module *ybuilder.Statement) {
	idx := len(module.Substmts)
	for i, s := range module.Substmts {
		if s.Keyword == "prefix" {
			idx = i + 1
			break
		}
	}
	for i := len(r.order) - 1; i >= 0; i-- {
		imp := r.order[i]
		stmt := ybuilder.New("import", imp.Name,
			ybuilder.New("prefix", imp.Prefix),
		)
		if imp.Revision != "" {
			stmt.Append(ybuilder.New("revision-date", imp.Revision))
		}
		module.InsertAt(idx, stmt)
	}
}

// Prefixify derives a plausible prefix from a module name or namespace URI:
// the scheme and authority are dropped and the remainder is squashed into a
// lower-case dash-separated identifier.
func Prefixify(name string) string {
	for _, scheme := range []string{"http://", "https://", "urn:"} {
		if strings.HasPrefix(name, scheme) {
			name = strings.TrimPrefix(name, scheme)
			if i := strings.Index(name, "/"); i >= 0 {
				name = name[i+1:]
			}
			break
		}
	}

	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "m"
	}
	return out
}
