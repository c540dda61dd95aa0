package toolfunc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/effective-security/mcpd-go/catalog"
	"github.com/effective-security/mcpd-go/mcpderror"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
	"github.com/invopop/jsonschema"
	jsval "github.com/santhosh-tekuri/jsonschema/v6"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/mcpd-go", "toolfunc")

// Invoker executes a tool call on the daemon.
// *mcpd.Client implements it.
type Invoker interface {
	CallTool(ctx context.Context, server, tool string, args values.MapAny) (any, error)
}

// Param describes one declared parameter of a synthesized function.
type Param struct {
	Name        string
	Type        string // JSON Schema primitive type; empty or composite types map to any
	Required    bool
	Default     any // schema-declared default, nil when the schema declares none
	Description string
}

// GoType returns the Go type for the parameter's JSON Schema type.
func (p Param) GoType() string {
	switch p.Type {
	case "string":
		return "string"
	case "number":
		return "float64"
	case "integer":
		return "int64"
	case "boolean":
		return "bool"
	case "array":
		return "[]any"
	case "object":
		return "map[string]any"
	default:
		return "any"
	}
}

// Func is a standalone callable synthesized from a tool schema.
// It captures only immutable state (server and tool identifiers, parameter
// descriptors, the compiled schema) plus the Invoker reference, so copies
// made with Clone never share mutable state.
type Func struct {
	name        string
	server      string
	tool        string
	description string
	params      []Param
	schema      *jsonschema.Schema
	validator   *jsval.Schema
	invoker     Invoker
}

// New synthesizes a function from a tool schema. The declared parameter set
// is derived 1:1 from the schema's properties at synthesis time; later
// catalog refreshes do not update existing instances.
func New(invoker Invoker, server string, tool catalog.Tool) (*Func, error) {
	if tool.Name == "" {
		return nil, mcpderror.New("tool schema for server %q has no name", server)
	}

	f := &Func{
		name:      tool.Name,
		server:    server,
		tool:      tool.Name,
		params:    schemaParams(tool.InputSchema),
		schema:    tool.InputSchema,
		validator: compileValidator(server, tool),
		invoker:   invoker,
	}
	f.description = buildDescription(
		values.StringsCoalesce(tool.Description,
			fmt.Sprintf("Calls the %q tool on the %q server.", tool.Name, server)),
		f.params)
	return f, nil
}

func schemaParams(schema *jsonschema.Schema) []Param {
	if schema == nil || schema.Properties == nil {
		return nil
	}

	var params []Param
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		prop := pair.Value
		p := Param{
			Name:     pair.Key,
			Required: slices.Contains(schema.Required, pair.Key),
		}
		if prop != nil {
			p.Type = prop.Type
			p.Default = prop.Default
			p.Description = prop.Description
		}
		params = append(params, p)
	}
	return params
}

func compileValidator(server string, tool catalog.Tool) *jsval.Schema {
	if tool.InputSchema == nil {
		return nil
	}

	raw, err := json.Marshal(tool.InputSchema)
	if err != nil {
		return nil
	}
	doc, err := jsval.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil
	}

	compiler := jsval.NewCompiler()
	if err := compiler.AddResource("inputSchema.json", doc); err != nil {
		logger.KV(xlog.WARNING, "server", server, "tool", tool.Name, "reason", "add schema resource", "err", err.Error())
		return nil
	}
	compiled, err := compiler.Compile("inputSchema.json")
	if err != nil {
		// fall back to the required-parameter check only
		logger.KV(xlog.WARNING, "server", server, "tool", tool.Name, "reason", "compile schema", "err", err.Error())
		return nil
	}
	return compiled
}

func buildDescription(description string, params []Param) string {
	if len(params) == 0 {
		return description
	}

	var buf strings.Builder
	buf.WriteString(description)
	buf.WriteString("\n\nArgs:\n")
	for _, p := range params {
		required := "optional"
		if p.Required {
			required = "required"
		}
		fmt.Fprintf(&buf, "    %s (%s, %s)", p.Name, p.GoType(), required)
		if p.Description != "" {
			fmt.Fprintf(&buf, ": %s", p.Description)
		}
		buf.WriteString("\n")
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// WithName sets the exposed name of the function, used to disambiguate
// tools with the same name across servers.
func (f *Func) WithName(name string) *Func {
	f.name = name
	return f
}

// Name returns the exposed name of the function.
func (f *Func) Name() string {
	return f.name
}

// Server returns the server identifier captured at synthesis time.
func (f *Func) Server() string {
	return f.server
}

// Tool returns the tool identifier captured at synthesis time.
func (f *Func) Tool() string {
	return f.tool
}

// Description returns the tool description followed by a per-parameter
// listing, for frameworks that select tools by docstring.
func (f *Func) Description() string {
	return f.description
}

// Parameters returns the parameters definition of the function, to be used in the prompt.
func (f *Func) Parameters() any {
	return f.schema
}

// Params returns the declared parameter descriptors, in schema order,
// for frameworks that need named-parameter reflection.
func (f *Func) Params() []Param {
	return slices.Clone(f.params)
}

// Invoke validates args against the tool schema and executes the tool.
// The caller's map is never mutated: arguments are copied, schema-declared
// defaults are filled in for absent optional parameters, and optional
// parameters without a default are omitted. Missing required parameters
// fail locally before any network call.
func (f *Func) Invoke(ctx context.Context, args values.MapAny) (any, error) {
	merged := values.MapAny{}
	for k, v := range args {
		merged[k] = v
	}

	var missing []string
	for _, p := range f.params {
		if _, ok := merged[p.Name]; ok {
			continue
		}
		if p.Required {
			missing = append(missing, p.Name)
			continue
		}
		if p.Default != nil {
			merged[p.Name] = p.Default
		}
	}
	if len(missing) > 0 {
		return nil, mcpderror.New("missing required parameters for %q: %s",
			f.name, strings.Join(missing, ", "))
	}

	if f.validator != nil {
		bs, err := json.Marshal(merged)
		if err != nil {
			return nil, mcpderror.Wrap(err, "failed to serialize arguments for %q", f.name)
		}
		doc, err := jsval.UnmarshalJSON(bytes.NewReader(bs))
		if err != nil {
			return nil, mcpderror.Wrap(err, "failed to serialize arguments for %q", f.name)
		}
		if err := f.validator.Validate(doc); err != nil {
			return nil, mcpderror.Wrap(err, "invalid arguments for %q", f.name)
		}
	}

	return f.invoker.CallTool(ctx, f.server, f.tool, merged)
}

// Call executes the tool with a JSON-encoded argument object and returns
// the JSON-encoded result.
func (f *Func) Call(ctx context.Context, input string) (string, error) {
	args := values.MapAny{}
	if strings.TrimSpace(input) != "" {
		if err := json.Unmarshal([]byte(input), &args); err != nil {
			return "", mcpderror.Wrap(err, "failed to unmarshal input for %q", f.name)
		}
	}

	res, err := f.Invoke(ctx, args)
	if err != nil {
		return "", err
	}
	bs, err := json.Marshal(res)
	if err != nil {
		return "", mcpderror.Wrap(err, "failed to marshal output for %q", f.name)
	}
	return string(bs), nil
}

// Clone returns an independent copy of the function.
// Safe because the captured state is immutable.
func (f *Func) Clone() *Func {
	cp := *f
	cp.params = slices.Clone(f.params)
	return &cp
}
