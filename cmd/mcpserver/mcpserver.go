/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcpserver provides the mcp command, which serves the linter to
// editors and agents over the Model Context Protocol on stdio.
package mcpserver

import (
	"context"
	"fmt"
	"io"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"bennypowers.dev/attrorder/internal/logger"
	"bennypowers.dev/attrorder/internal/version"
	"bennypowers.dev/attrorder/lint"
	"bennypowers.dev/attrorder/ordering"
	"bennypowers.dev/attrorder/report"
)

// ToolName is the name of the lint tool.
const ToolName = "lint_template"

// Cmd is the mcp cobra command.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the linter over MCP on stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdio belongs to the protocol.
		logger.SetOutput(io.Discard)
		return NewServer().Run(cmd.Context(), &mcp.StdioTransport{})
	},
}

// LintInput is the lint tool's input.
type LintInput struct {
	Source   string         `json:"source" jsonschema:"the template source"`
	Filename string         `json:"filename,omitempty" jsonschema:"file name; .gjs and .gts sources are linted inside their <template> tags"`
	Fix      bool           `json:"fix,omitempty" jsonschema:"return the fixed source instead of only reporting"`
	Config   map[string]any `json:"config,omitempty" jsonschema:"attribute-order options: alphabetize (boolean) and order (list of arguments, attributes, modifiers)"`
}

// LintOutput is the lint tool's output.
type LintOutput = report.FileResult

// NewServer creates an MCP server exposing the lint tool.
func NewServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "attrorder", Version: version.Get()}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Description: "Check, and optionally fix, the order of arguments, attributes, modifiers and ...attributes in a Glimmer template.",
	}, LintTemplate)
	return server
}

// LintTemplate handles a lint tool call.
func LintTemplate(ctx context.Context, req *mcp.CallToolRequest, in LintInput) (*mcp.CallToolResult, LintOutput, error) {
	cfg, err := ordering.ParseConfig(in.Config)
	if err != nil {
		return nil, LintOutput{}, err
	}

	filename := in.Filename
	if filename == "" {
		filename = "template.hbs"
	}

	res, err := lint.New(cfg, in.Fix, 1).LintSource(filename, in.Source)
	if err != nil {
		return nil, LintOutput{}, fmt.Errorf("linting %s: %w", filename, err)
	}
	return nil, report.ToJSON([]*lint.Result{res})[0], nil
}
