package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/neboloop/fsgate/internal/fsops"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ReadFilesInput defines input for the read_files tool.
type ReadFilesInput struct {
	Paths []string `json:"paths" jsonschema:"required,Paths of the files to read"`
}

// WriteFileInput defines input for the write_file tool.
type WriteFileInput struct {
	Path              string `json:"path" jsonschema:"required,Path of the file to create"`
	Content           string `json:"content" jsonschema:"Content to write"`
	OverwriteIfExists bool   `json:"overwrite_if_exists,omitempty" jsonschema:"Overwrite the file if it already exists (default: false)"`
}

// EditFileInput defines input for the edit_file tool.
type EditFileInput struct {
	Path   string `json:"path" jsonschema:"required,Path of the file to edit"`
	OldStr string `json:"old_str" jsonschema:"required,Exact text to find; every occurrence is replaced"`
	NewStr string `json:"new_str" jsonschema:"Replacement text"`
	DryRun bool   `json:"dry_run,omitempty" jsonschema:"Return the change as a unified diff without applying it (default: false)"`
}

// CreateDirInput defines input for the create_dir tool.
type CreateDirInput struct {
	Path    string `json:"path" jsonschema:"required,Path of the directory to create"`
	Parents *bool  `json:"parents,omitempty" jsonschema:"Create missing parent directories (default: true)"`
	ExistOk *bool  `json:"exist_ok,omitempty" jsonschema:"Do not fail when the directory already exists (default: true)"`
}

// ListDirInput defines input for the list_dir tool.
type ListDirInput struct {
	Path string `json:"path" jsonschema:"required,Directory to list"`
}

// MovePathInput defines input for the move_path tool.
type MovePathInput struct {
	Src string `json:"src" jsonschema:"required,Source path"`
	Dst string `json:"dst" jsonschema:"required,Destination path; must not exist"`
}

// SearchFilesInput defines input for the search_files tool.
type SearchFilesInput struct {
	Path    string `json:"path" jsonschema:"required,Directory to search under"`
	Pattern string `json:"pattern" jsonschema:"required,Glob pattern relative to path; supports ** recursion"`
}

// GetPathInfoInput defines input for the get_path_info tool.
type GetPathInfoInput struct {
	Path string `json:"path" jsonschema:"required,Path to inspect"`
}

// ListAllowedDirInput defines input for the list_allowed_dir tool.
type ListAllowedDirInput struct{}

// RegisterFileTools registers every filesystem tool on the server. All tools
// operate only within the configured allowed directories; a path outside
// them fails the call with an authorization error.
func RegisterFileTools(server *mcp.Server, ops *fsops.Ops) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_files",
		Title:       "Read Files",
		Description: "Read one or more files. Returns a JSON object mapping each path to its content. Files are read concurrently.",
	}, readFilesHandler(ops))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "write_file",
		Title:       "Write File",
		Description: "Create a file with the given content. An existing file is only overwritten when overwrite_if_exists is true; otherwise it is left untouched and the response says so.",
	}, writeFileHandler(ops))

	mcp.AddTool(server, &mcp.Tool{
		Name:  "edit_file",
		Title: "Edit File",
		Description: `Edit a file by exact search and replace. Every occurrence of old_str is replaced with new_str.

With dry_run=true the change is returned as a unified diff and nothing is written; an empty diff means old_str does not occur. Without dry_run the file is rewritten in place.`,
	}, editFileHandler(ops))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_dir",
		Title:       "Create Directory",
		Description: "Create a directory. parents and exist_ok both default to true.",
	}, createDirHandler(ops))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_dir",
		Title:       "List Directory",
		Description: "List the immediate children of a directory. Each entry carries its name and whether it is a dir or a file.",
	}, listDirHandler(ops))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_path",
		Title:       "Move Path",
		Description: "Move or rename a file or directory. Fails if the destination already exists.",
	}, movePathHandler(ops))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_files",
		Title:       "Search Files",
		Description: "Find files and directories under a starting directory by glob pattern (supports **). Returns the matching paths.",
	}, searchFilesHandler(ops))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_path_info",
		Title:       "Path Info",
		Description: "Retrieve metadata for a file or directory: size, timestamps, type and permissions.",
	}, getPathInfoHandler(ops))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_allowed_dir",
		Title:       "List Allowed Directories",
		Description: "List the directories this server is allowed to operate in.",
	}, listAllowedDirHandler(ops))
}

func readFilesHandler(ops *fsops.Ops) func(ctx context.Context, req *mcp.CallToolRequest, input ReadFilesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ReadFilesInput) (*mcp.CallToolResult, any, error) {
		// An empty list is not an error; it reads as an empty mapping.
		contents, err := ops.ReadFiles(ctx, input.Paths)
		if err != nil {
			return nil, nil, err
		}
		return jsonResult(contents)
	}
}

func writeFileHandler(ops *fsops.Ops) func(ctx context.Context, req *mcp.CallToolRequest, input WriteFileInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input WriteFileInput) (*mcp.CallToolResult, any, error) {
		if input.Path == "" {
			return nil, nil, fmt.Errorf("path is required")
		}
		outcome, err := ops.WriteFile(input.Path, input.Content, input.OverwriteIfExists)
		if err != nil {
			return nil, nil, err
		}
		return textResult(string(outcome)), nil, nil
	}
}

func editFileHandler(ops *fsops.Ops) func(ctx context.Context, req *mcp.CallToolRequest, input EditFileInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input EditFileInput) (*mcp.CallToolResult, any, error) {
		if input.Path == "" {
			return nil, nil, fmt.Errorf("path is required")
		}
		if input.OldStr == "" {
			return nil, nil, fmt.Errorf("old_str is required")
		}
		out, err := ops.Edit(input.Path, input.OldStr, input.NewStr, input.DryRun)
		if err != nil {
			return nil, nil, err
		}
		return textResult(out), nil, nil
	}
}

func createDirHandler(ops *fsops.Ops) func(ctx context.Context, req *mcp.CallToolRequest, input CreateDirInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateDirInput) (*mcp.CallToolResult, any, error) {
		if input.Path == "" {
			return nil, nil, fmt.Errorf("path is required")
		}
		if err := ops.CreateDir(input.Path, boolOr(input.Parents, true), boolOr(input.ExistOk, true)); err != nil {
			return nil, nil, err
		}
		return textResult("Path created"), nil, nil
	}
}

func listDirHandler(ops *fsops.Ops) func(ctx context.Context, req *mcp.CallToolRequest, input ListDirInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListDirInput) (*mcp.CallToolResult, any, error) {
		if input.Path == "" {
			return nil, nil, fmt.Errorf("path is required")
		}
		entries, err := ops.ListDir(input.Path)
		if err != nil {
			return nil, nil, err
		}
		return jsonResult(entries)
	}
}

func movePathHandler(ops *fsops.Ops) func(ctx context.Context, req *mcp.CallToolRequest, input MovePathInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input MovePathInput) (*mcp.CallToolResult, any, error) {
		if input.Src == "" || input.Dst == "" {
			return nil, nil, fmt.Errorf("src and dst are required")
		}
		if err := ops.Move(input.Src, input.Dst); err != nil {
			return nil, nil, err
		}
		return textResult("Moved path"), nil, nil
	}
}

func searchFilesHandler(ops *fsops.Ops) func(ctx context.Context, req *mcp.CallToolRequest, input SearchFilesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchFilesInput) (*mcp.CallToolResult, any, error) {
		if input.Path == "" || input.Pattern == "" {
			return nil, nil, fmt.Errorf("path and pattern are required")
		}
		matches, err := ops.Search(input.Path, input.Pattern)
		if err != nil {
			return nil, nil, err
		}
		return jsonResult(matches)
	}
}

func getPathInfoHandler(ops *fsops.Ops) func(ctx context.Context, req *mcp.CallToolRequest, input GetPathInfoInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetPathInfoInput) (*mcp.CallToolResult, any, error) {
		if input.Path == "" {
			return nil, nil, fmt.Errorf("path is required")
		}
		info, err := ops.GetPathInfo(input.Path)
		if err != nil {
			return nil, nil, err
		}
		return jsonResult(info)
	}
}

func listAllowedDirHandler(ops *fsops.Ops) func(ctx context.Context, req *mcp.CallToolRequest, input ListAllowedDirInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListAllowedDirInput) (*mcp.CallToolResult, any, error) {
		return jsonResult(ops.AllowedRoots())
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return textResult(string(data)), nil, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
