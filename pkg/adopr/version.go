package adopr

// Version is the current ado-pr-mcp version.
const Version = "0.1.0"
