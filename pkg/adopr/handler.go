package adopr

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dstockton/ado-pr-mcp/pkg/azdo"
)

// Handler is the MCP-facing entry point. It routes resource URIs,
// resolves coordinates, issues the Azure DevOps call and serializes the
// result. It is the sole boundary where internal errors become
// user-visible MCP error messages.
type Handler struct {
	config   *Config
	client   *azdo.Client
	resolver *Resolver
}

// NewHandler wires a handler from configuration. Pass a nil client to
// construct one from the config; tests inject a client pointed at an
// httptest server.
func NewHandler(cfg *Config, client *azdo.Client) *Handler {
	if client == nil {
		client = azdo.NewClient(cfg.PAT,
			azdo.WithAPIVersion(cfg.APIVersion),
			azdo.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		)
	}
	return &Handler{
		config:   cfg,
		client:   client,
		resolver: &Resolver{Config: cfg},
	}
}

// resourcePayload is the shape of the serialized resource content: the
// resolved coordinates, the applied filter and the pull requests.
type resourcePayload struct {
	Organization string             `json:"organization"`
	Project      string             `json:"project"`
	Repository   string             `json:"repository"`
	Status       azdo.Status        `json:"status"`
	Count        int                `json:"count"`
	PullRequests []azdo.PullRequest `json:"pullRequests"`
}

// ReadPullRequests handles one resource read end to end and returns the
// JSON payload. Errors keep their taxonomy type so callers can inspect
// them; the MCP adapter turns them into protocol error messages.
func (h *Handler) ReadPullRequests(ctx context.Context, uri string) (string, error) {
	sel, status, err := ParseResourceURI(uri)
	if err != nil {
		return "", err
	}

	coords, err := h.resolver.Resolve(sel)
	if err != nil {
		return "", err
	}

	log.Printf("Fetching pull requests for %s with status=%s", coords, status)
	list, err := h.client.ListPullRequests(ctx, coords, status)
	if err != nil {
		return "", err
	}

	payload := resourcePayload{
		Organization: coords.Organization,
		Project:      coords.Project,
		Repository:   coords.Repository,
		Status:       status,
		Count:        list.Count,
		PullRequests: list.PullRequests,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// handleResource adapts ReadPullRequests to the MCP resource interface.
func (h *Handler) handleResource(ctx context.Context, cc *mcp.ServerSession, params *mcp.ReadResourceParams) (*mcp.ReadResourceResult, error) {
	text, err := h.ReadPullRequests(ctx, params.URI)
	if err != nil {
		log.Printf("ERROR: resource %s: %v", params.URI, err)
		return nil, fmt.Errorf("reading %s: %w", params.URI, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      params.URI,
			MIMEType: "application/json",
			Text:     text,
		}},
	}, nil
}

// ListPullRequestsParams are the arguments of the read-only listing
// tool. Coordinates are optional as a group: omit all three to use the
// current git repository.
type ListPullRequestsParams struct {
	Organization string `json:"organization,omitempty"`
	Project      string `json:"project,omitempty"`
	Repository   string `json:"repository,omitempty"`
	Status       string `json:"status,omitempty"` // active, completed, abandoned, all
}

func (h *Handler) listPullRequestsTool(ctx context.Context, cc *mcp.ServerSession, params *mcp.CallToolParamsFor[ListPullRequestsParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments

	status := azdo.StatusActive
	if args.Status != "" {
		parsed, err := ParseStatusFilter(args.Status)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		status = parsed
	}

	sel := Selector{Current: true}
	given := 0
	for _, v := range []string{args.Organization, args.Project, args.Repository} {
		if v != "" {
			given++
		}
	}
	switch given {
	case 0:
	case 3:
		sel = Selector{Coords: azdo.Coordinates{
			Organization: args.Organization,
			Project:      args.Project,
			Repository:   args.Repository,
		}}
	default:
		return errorResult("organization, project and repository must be provided together (or all omitted to use the current repository)"), nil
	}

	coords, err := h.resolver.Resolve(sel)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	list, err := h.client.ListPullRequests(ctx, coords, status)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Found %d %s pull request(s) in %s:\n\n", list.Count, status, coords))
	for _, pr := range list.PullRequests {
		output.WriteString(fmt.Sprintf("#%d [%s]: %s\n", pr.ID, pr.Status, pr.Title))
		output.WriteString(fmt.Sprintf("   %s -> %s | By %s\n", pr.SourceBranch, pr.TargetBranch, pr.CreatedBy))
		output.WriteString(fmt.Sprintf("   Created: %s\n\n", pr.CreationDate.Format("2006-01-02 15:04")))
	}

	return successResult(output.String()), nil
}

// NewServer builds the MCP server with the pull-request resources and
// the read-only listing tool registered.
func NewServer(h *Handler) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "ado-pr-mcp", Version: Version}, nil)

	server.AddResource(&mcp.Resource{
		URI:         CurrentResourceURI,
		Name:        "current-pull-requests",
		Description: "Pull requests of the Azure DevOps repository detected from the local git configuration",
		MIMEType:    "application/json",
	}, h.handleResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: ResourceURITemplate,
		Name:        "pull-requests",
		Description: "Pull requests of an Azure DevOps repository addressed by organization, project and repository",
		MIMEType:    "application/json",
	}, h.handleResource)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ado_list_pull_requests",
		Description: "List pull requests in an Azure DevOps repository (omit coordinates to use the current git repository)",
	}, h.listPullRequestsTool)

	return server
}

func errorResult(msg string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

func successResult(msg string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
