// Package line_tools provides MCP tools for LINE messaging operations.
//
// This package exposes LINE messaging capabilities through the Model Context
// Protocol (MCP), allowing AI agents to push text messages to a LINE group
// chat or to a personal chat. It wraps the line client package and provides
// the following tool:
//
//   - send_line_message: Send a text message to a LINE group or user
//
// Target selection:
// By default messages go to the group configured via LINE_GROUP_ID. The
// optional 'group_id' argument overrides the destination, and 'target' can be
// set to "personal" to deliver to the user configured via
// LINE_PERSONAL_USER_ID (or an explicit 'user_id' argument).
//
// Example MCP tool call:
//
//	{
//	  "tool": "send_line_message",
//	  "arguments": {
//	    "message": "Hello from LINE MCP!"
//	  }
//	}
//
// The tool result is a JSON document describing the outcome. Delivery
// failures are reported in that document, never as protocol errors.
package line_tools
