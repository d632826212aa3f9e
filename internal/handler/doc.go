// Package handler exposes the hostsadmin HTTP API consumed by the
// dashboard and settings pages.
//
// Responses are JSON. Failures use a common error envelope with an error
// summary and optional details. Not-found conditions from entry updates
// map to 404; everything else that fails maps to 400 or 500 depending on
// origin.
//
// Middleware provides request logging, panic recovery, and CORS support.
package handler
