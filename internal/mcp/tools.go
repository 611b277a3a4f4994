package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var listToolDef = mcp.NewTool("history_list",
	mcp.WithDescription("List clipboard history entries, most recent first. Returns entry metadata and content."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of entries to return (default: all, max 500)"),
	),
)

var filterToolDef = mcp.NewTool("history_filter",
	mcp.WithDescription("List clipboard history entries of a single category, most recent first."),
	mcp.WithString("category",
		mcp.Required(),
		mcp.Description("Category label: URL, Code, LaTeX, Quote, Plaintext, or Miscellaneous"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of entries to return (default: all, max 500)"),
	),
)

var searchToolDef = mcp.NewTool("history_search",
	mcp.WithDescription("Search clipboard history by substring, case-insensitive, most recent first."),
	mcp.WithString("term",
		mcp.Required(),
		mcp.Description("Substring to search for (max 200 characters)"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of entries to return (default: all, max 500)"),
	),
)

var fetchToolDef = mcp.NewTool("history_fetch",
	mcp.WithDescription("Fetch a single clipboard history entry by ID."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Entry ID (ULID)"),
	),
)

var recopyToolDef = mcp.NewTool("history_recopy",
	mcp.WithDescription("Restore a history entry's content to the OS clipboard. Does not modify history; the monitor's duplicate suppression prevents an echo entry."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Entry ID (ULID)"),
	),
)

var clearToolDef = mcp.NewTool("history_clear",
	mcp.WithDescription("Remove ALL clipboard history entries. This cannot be undone."),
	mcp.WithBoolean("confirm",
		mcp.Required(),
		mcp.Description("Must be true to confirm clearing all history"),
	),
)

var countToolDef = mcp.NewTool("history_count",
	mcp.WithDescription("Count clipboard history entries, total and per category."),
)
