/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcpserver exposes the asset resolver as Model Context Protocol tools.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"bennypowers.dev/assetpath/internal/version"
	"bennypowers.dev/assetpath/resolver"
)

// ResolveInput is the argument of the resolve_asset tool.
type ResolveInput struct {
	Path      string   `json:"path" jsonschema:"logical path, absolute path, or asset URI to resolve"`
	Accept    string   `json:"accept,omitempty" jsonschema:"Accept expression such as text/css, */*;q=0.8"`
	LoadPaths []string `json:"loadPaths,omitempty" jsonschema:"restrict the search to these load paths"`
}

// ResolveOutput is the result of the resolve_asset tool.
type ResolveOutput struct {
	Found    bool   `json:"found"`
	URI      string `json:"uri,omitempty"`
	Filename string `json:"filename,omitempty"`
	Type     string `json:"type,omitempty"`
}

// ListInput is the argument of the list_logical_paths tool.
type ListInput struct {
	Match []string `json:"match,omitempty" jsonschema:"glob patterns such as **/*.css; all paths when empty"`
}

// LogicalPath is one entry of ListOutput.
type LogicalPath struct {
	LogicalPath string `json:"logicalPath"`
	Filename    string `json:"filename"`
}

// ListOutput is the result of the list_logical_paths tool.
type ListOutput struct {
	Paths []LogicalPath `json:"paths"`
}

// New creates an MCP server with the resolver tools registered.
func New(r *resolver.Resolver) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "assetpath",
		Version: version.Get(),
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_asset",
		Description: "Resolve an asset request to a file in the configured load paths",
	}, resolveAsset(r))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_logical_paths",
		Description: "List the logical paths of every asset in the load paths",
	}, listLogicalPaths(r))

	return server
}

// Run serves the tools over stdio until ctx is done or the client disconnects.
func Run(ctx context.Context, r *resolver.Resolver) error {
	return New(r).Run(ctx, &mcp.StdioTransport{})
}

func resolveAsset(r *resolver.Resolver) mcp.ToolHandlerFor[ResolveInput, ResolveOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, in ResolveInput) (*mcp.CallToolResult, ResolveOutput, error) {
		uri, ok := r.ResolveURI(in.Path, resolver.Options{
			Accept:    in.Accept,
			LoadPaths: in.LoadPaths,
		})
		if !ok {
			return nil, ResolveOutput{Found: false}, nil
		}
		return nil, ResolveOutput{
			Found:    true,
			URI:      uri.URI,
			Filename: uri.Filename,
			Type:     uri.Type.String(),
		}, nil
	}
}

func listLogicalPaths(r *resolver.Resolver) mcp.ToolHandlerFor[ListInput, ListOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, in ListInput) (*mcp.CallToolResult, ListOutput, error) {
		var matchers []resolver.Matcher
		for _, pattern := range in.Match {
			matchers = append(matchers, resolver.Glob(pattern))
		}
		out := ListOutput{Paths: []LogicalPath{}}
		for lp, filename := range r.EachLogicalPath(matchers...) {
			out.Paths = append(out.Paths, LogicalPath{LogicalPath: lp, Filename: filename})
		}
		return nil, out, nil
	}
}
