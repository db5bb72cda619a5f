// Package line provides a client for the LINE Messaging API.
//
// The client owns the channel access token and the outbound HTTP calls to
// the push and reply endpoints. Send outcomes are normalized into a
// SendResult value: HTTP and transport failures are reported as data, not
// returned as Go errors, so callers can forward them verbatim as structured
// tool results.
package line
