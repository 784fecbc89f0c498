// Package http serves the plan server's REST API.
//
//	GET  /api/version/     server version (text, or JSON with Accept: application/json)
//	GET  /api/variants     built-in variants
//	POST /api/resolve      resolve fragments, optionally recording a plan
//	GET  /api/plans        recorded plans, newest first
//	GET  /api/plans/{id}   one recorded plan
//
// Everything except version and variants needs a bearer token. Resolve
// requests may carry a HashSHA256 header with the HMAC of the body.
package http
