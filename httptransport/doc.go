// Package httptransport serves a JSON-RPC message handler over plain HTTP.
//
// Every message is a single POST to /mcp carrying one JSON-RPC object and
// answered with one JSON object. Notifications are acknowledged with 202 and
// an empty body. There are no sessions and no server-initiated streams.
//
// When an auth.Authenticator is configured, requests must present a bearer
// token; failures are answered with RFC 6750 challenges.
package httptransport
