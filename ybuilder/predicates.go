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
	"regexp"
	"strings"
)

// builtinTypes is the set of YANG built-in type names (RFC 6020 section 4.2.4).
var builtinTypes = map[string]bool{
	"binary":              true,
	"bits":                true,
	"boolean":             true,
	"decimal64":           true,
	"empty":               true,
	"enumeration":         true,
	"identityref":         true,
	"instance-identifier": true,
	"int8":                true,
	"int16":               true,
	"int32":               true,
	"int64":               true,
	"leafref":             true,
	"string":              true,
	"uint8":               true,
	"uint16":              true,
	"uint32":              true,
	"uint64":              true,
	"union":               true,
}

// prefixedArgRE matches arguments of the form "prefix:identifier". It is
// deliberately stricter than a plain colon test so that free text and URIs
// carried by meta statements are never mistaken for prefixed references.
var prefixedArgRE = regexp.MustCompile(`^[A-Za-z_][\w.-]*:[A-Za-z_][\w.-]*$`)

// IsExtension reports whether the statement uses an extension keyword, i.e.
// one carrying a module prefix.
func IsExtension(s *Statement) bool {
	return strings.Contains(s.Keyword, ":")
}

// IsCustomType reports whether the statement is a type reference naming a
// non-built-in type.
func IsCustomType(s *Statement) bool {
	return s.Keyword == "type" && !builtinTypes[s.Arg]
}

// HasPrefixedArg reports whether the statement's argument carries an explicit
// namespace prefix. Namespace statements are excluded: their arguments are
// URIs, not references.
func HasPrefixedArg(s *Statement) bool {
	return s.Keyword != "namespace" && prefixedArgRE.MatchString(s.Arg)
}

// SplitPrefix splits "prefix:name" into its prefix and bare name. The prefix
// is empty when the value carries none.
func SplitPrefix(v string) (prefix, name string) {
	if i := strings.Index(v, ":"); i >= 0 {
		return v[:i], v[i+1:]
	}
	return "", v
}
