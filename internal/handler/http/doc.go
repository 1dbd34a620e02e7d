// Package http implements the HTTP transport layer of the vault.
//
// It exposes the /api/passwords routes consumed by the web client, a version
// endpoint, and the middleware chain in front of them: bearer authentication,
// request tracing, access logging, response compression, and a per-request
// deadline. Handlers translate JSON bodies into vault calls and vault errors
// into fixed status codes and messages.
package http
