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
	"fmt"
	"io"
	"regexp"
	"strings"
)

const indentUnit = "  "

// unquotedArgRE matches arguments that may be emitted without quoting.
var unquotedArgRE = regexp.MustCompile(`^[A-Za-z0-9_.:/-]+$`)

var argEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
)

// String renders the statement subtree as YANG text.
func (s *Statement) String() string {
	var b strings.Builder
	s.write(&b, 0)
	return b.String()
}

// Dump writes the statement subtree as YANG text to w.
func (s *Statement) Dump(w io.Writer) error {
	_, err := io.WriteString(w, s.String())
	return err
}

func (s *Statement) write(b *strings.Builder, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	b.WriteString(indent)
	b.WriteString(s.Keyword)
	if s.Arg != "" {
		b.WriteString(" ")
		b.WriteString(formatArg(s.Arg))
	}
	if len(s.Substmts) == 0 {
		b.WriteString(";\n")
		return
	}
	b.WriteString(" {\n")
	for _, c := range s.Substmts {
		c.write(b, depth+1)
	}
	b.WriteString(indent)
	b.WriteString("}\n")
}

func formatArg(arg string) string {
	if unquotedArgRE.MatchString(arg) && !strings.Contains(arg, "//") {
		return arg
	}
	return fmt.Sprintf(`"%s"`, argEscaper.Replace(arg))
}
