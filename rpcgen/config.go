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
	"github.com/abravalheri/pyang-accessors/accessors"
	"github.com/abravalheri/pyang-accessors/ybuilder"
)

// Config customizes the shape and naming of generated modules. A Generator
// deep-copies the statement templates on construction, so a Config value may
// be shared freely without instances aliasing each other's templates.
type Config struct {
	// Suffix is appended to the input module's name, namespace and prefix
	// to derive the generated module's identity.
	Suffix string

	// IDSuffix, DataSuffix, DataAndIDSuffix and ResponseSuffix name the
	// generated identification, data, keys-plus-data and response
	// groupings.
	IDSuffix        string
	DataSuffix      string
	DataAndIDSuffix string
	ResponseSuffix  string

	// ChoiceName names the response envelope choice; SuccessName and
	// FailureName name its cases and the shared groupings backing them.
	ChoiceName  string
	SuccessName string
	FailureName string

	// SuccessTemplate and FailureTemplate are the children of the shared
	// success and failure groupings.
	SuccessTemplate []*ybuilder.Statement
	FailureTemplate []*ybuilder.Statement

	// KeyTemplate is the key leaf synthesized for lists declaring no key.
	KeyTemplate *ybuilder.Statement

	// NameComposer joins ordered name fragments into one identifier.
	NameComposer func([]string) string

	// ValueArg names the leaf wrapping a scalar value when a leaf-list is
	// singularized.
	ValueArg string

	// Verify re-parses the generated module and collects any structural
	// diagnostics. The generated tree may intentionally reference
	// externally-resolved constructs, so failures are reported alongside
	// the tree, never raised.
	Verify bool
}

// DefaultConfig returns the default generation configuration.
func DefaultConfig() Config {
	return Config{
		Suffix:          "interface",
		IDSuffix:        "id",
		DataSuffix:      "data",
		DataAndIDSuffix: "full-data",
		ResponseSuffix:  "response",
		ChoiceName:      "response",
		SuccessName:     "success",
		FailureName:     "failure",
		SuccessTemplate: []*ybuilder.Statement{
			ybuilder.New("leaf", "ok",
				ybuilder.New("type", "boolean"),
			),
		},
		FailureTemplate: []*ybuilder.Statement{
			ybuilder.New("leaf", "error-code",
				ybuilder.New("type", "int32"),
				ybuilder.New("description", "numeric code for the failure."),
			),
			ybuilder.New("leaf", "message",
				ybuilder.New("type", "string"),
				ybuilder.New("description", "textual description of failure."),
			),
		},
		KeyTemplate:  accessors.DefaultKeyTemplate(),
		NameComposer: accessors.DashJoin,
		ValueArg:     accessors.DefaultValueArg,
	}
}

// withDefaults fills the zero fields of a Config and deep-copies every
// statement template, so the result owns all of its mutable state.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Suffix == "" {
		c.Suffix = def.Suffix
	}
	if c.IDSuffix == "" {
		c.IDSuffix = def.IDSuffix
	}
	if c.DataSuffix == "" {
		c.DataSuffix = def.DataSuffix
	}
	if c.DataAndIDSuffix == "" {
		c.DataAndIDSuffix = def.DataAndIDSuffix
	}
	if c.ResponseSuffix == "" {
		c.ResponseSuffix = def.ResponseSuffix
	}
	if c.ChoiceName == "" {
		c.ChoiceName = def.ChoiceName
	}
	if c.SuccessName == "" {
		c.SuccessName = def.SuccessName
	}
	if c.FailureName == "" {
		c.FailureName = def.FailureName
	}
	if c.SuccessTemplate == nil {
		c.SuccessTemplate = def.SuccessTemplate
	}
	if c.FailureTemplate == nil {
		c.FailureTemplate = def.FailureTemplate
	}
	if c.KeyTemplate == nil {
		c.KeyTemplate = def.KeyTemplate
	}
	if c.NameComposer == nil {
		c.NameComposer = def.NameComposer
	}
	if c.ValueArg == "" {
		c.ValueArg = def.ValueArg
	}
	c.SuccessTemplate = copyTemplates(c.SuccessTemplate)
	c.FailureTemplate = copyTemplates(c.FailureTemplate)
	c.KeyTemplate = c.KeyTemplate.Copy()
	return c
}

func copyTemplates(stmts []*ybuilder.Statement) []*ybuilder.Statement {
	out := make([]*ybuilder.Statement, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, s.Copy())
	}
	return out
}
