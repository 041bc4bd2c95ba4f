// Copyright (C) 2021-2025 Chronicle Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

const (
	// varBlockName is the name of the block in which variables are defined.
	varBlockName = "variables"

	// varObjectName is the name of the object through which variables are
	// referenced.
	varObjectName = "var"

	// envObjectName is the name of the object holding the environment
	// variables.
	envObjectName = "env"
)

type fileConfig struct {
	BaseDirs   []string `hcl:"base_dirs,optional"`
	DirMode    string   `hcl:"dir_mode,optional"`
	FileMode   string   `hcl:"file_mode,optional"`
	Precision  int      `hcl:"precision,optional"`
	VerifyCopy bool     `hcl:"verify_copy,optional"`
	Overwrite  bool     `hcl:"overwrite,optional"`
	LogLevel   string   `hcl:"log_level,optional"`
	LogFormat  string   `hcl:"log_format,optional"`
}

// LoadFile returns the configuration read from the environment, as returned
// by Load, overridden by the attributes set in the HCL file.
func LoadFile(path string) (Config, error) {
	c, err := Load()
	if err != nil {
		return Config{}, err
	}
	if err := c.decodeFile(path); err != nil {
		return Config{}, errLoadFileFn(err)
	}
	return c, nil
}

func (c *Config) decodeFile(path string) error {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return diags
	}
	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{envObjectName: envObject()},
	}
	body, diags := decodeVariables(ctx, file.Body)
	if diags.HasErrors() {
		return diags
	}
	// Attributes missing from the file keep the current values.
	fc := fileConfig{
		BaseDirs:   c.BaseDirs,
		DirMode:    formatMode(c.DirMode),
		FileMode:   formatMode(c.FileMode),
		Precision:  c.Precision,
		VerifyCopy: c.VerifyCopy,
		Overwrite:  c.Overwrite,
		LogLevel:   c.LogLevel,
		LogFormat:  c.LogFormat,
	}
	if diags := gohcl.DecodeBody(body, ctx, &fc); diags.HasErrors() {
		return diags
	}
	dirMode, err := parseMode("dir_mode", fc.DirMode)
	if err != nil {
		return err
	}
	fileMode, err := parseMode("file_mode", fc.FileMode)
	if err != nil {
		return err
	}
	*c = Config{
		BaseDirs:   fc.BaseDirs,
		DirMode:    dirMode,
		FileMode:   fileMode,
		Precision:  fc.Precision,
		VerifyCopy: fc.VerifyCopy,
		Overwrite:  fc.Overwrite,
		LogLevel:   fc.LogLevel,
		LogFormat:  fc.LogFormat,
	}
	return nil
}

// envObject returns the environment variables as an object, so they can be
// referenced as env.NAME.
func envObject() cty.Value {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vars)
}

// decodeVariables evaluates the attributes of the "variables" blocks and
// stores them in the "var" object of the context. Variables may reference
// each other regardless of the order in which they are defined. The body is
// returned without the "variables" blocks.
//
// If a variable is defined more than once, the last definition is used.
func decodeVariables(ctx *hcl.EvalContext, body hcl.Body) (hcl.Body, hcl.Diagnostics) {
	content, remain, diags := body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{{Type: varBlockName}},
	})
	if diags.HasErrors() {
		return nil, diags
	}
	attrs := make(hcl.Attributes)
	for _, block := range content.Blocks {
		battrs, bdiags := block.Body.JustAttributes()
		diags = diags.Extend(bdiags)
		maps.Copy(attrs, battrs)
	}
	if diags.HasErrors() {
		return nil, diags
	}
	order, diags := sortVariables(ctx, attrs)
	if diags.HasErrors() {
		return nil, diags
	}
	values := make(map[string]cty.Value, len(order))
	ctx.Variables[varObjectName] = cty.ObjectVal(values)
	for _, attr := range order {
		value, vdiags := attr.Expr.Value(ctx)
		diags = diags.Extend(vdiags)
		if vdiags.HasErrors() {
			return nil, diags
		}
		values[attr.Name] = value
		ctx.Variables[varObjectName] = cty.ObjectVal(values)
	}
	return remain, diags
}

// sortVariables orders the variables so that every variable comes after
// the variables it references, using a depth first search.
func sortVariables(ctx *hcl.EvalContext, attrs hcl.Attributes) ([]*hcl.Attribute, hcl.Diagnostics) {
	var (
		order    []*hcl.Attribute
		visiting = make(map[string]bool, len(attrs))
		done     = make(map[string]bool, len(attrs))
	)
	var visit func(name string) hcl.Diagnostics
	visit = func(name string) hcl.Diagnostics {
		attr, ok := attrs[name]
		if !ok || done[name] {
			return nil
		}
		if visiting[name] {
			return hcl.Diagnostics{{
				Severity:    hcl.DiagError,
				Summary:     "Circular reference detected",
				Detail:      fmt.Sprintf("Variable %q refers to itself through a circular reference.", name),
				Subject:     attr.Expr.Range().Ptr(),
				Expression:  attr.Expr,
				EvalContext: ctx,
			}}
		}
		visiting[name] = true
		for _, ref := range references(attr.Expr) {
			if diags := visit(ref); diags.HasErrors() {
				return diags
			}
		}
		visiting[name] = false
		done[name] = true
		order = append(order, attr)
		return nil
	}
	// Sorted names give the same diagnostics on every run.
	for _, name := range slices.Sorted(maps.Keys(attrs)) {
		if diags := visit(name); diags.HasErrors() {
			return nil, diags
		}
	}
	return order, nil
}

// references returns the names of the variables used in the expression.
func references(expr hcl.Expression) []string {
	var names []string
	for _, tr := range expr.Variables() {
		if tr.RootName() != varObjectName || len(tr) < 2 {
			continue
		}
		if attr, ok := tr[1].(hcl.TraverseAttr); ok {
			names = append(names, attr.Name)
		}
	}
	return names
}

func errLoadFileFn(err error) error {
	return fmt.Errorf("config.LoadFile: %w", err)
}
