// Package api serves the diagram pipeline over HTTP.
//
// # Routes
//
//	GET    /health                        liveness
//	GET    /metrics                       Prometheus metrics, when configured
//	POST   /v1/diagram                    lines in, diagram out (stateless)
//	GET    /v1/documents                  stored snapshots, newest first
//	POST   /v1/documents                  store a line list
//	POST   /v1/documents/upload           PDF → extraction service → store
//	DELETE /v1/documents                  remove every snapshot
//	GET    /v1/documents/{id}             one snapshot ("latest" for the newest)
//	DELETE /v1/documents/{id}             remove a snapshot
//	GET    /v1/documents/{id}/diagram     build a stored snapshot
//
// Diagram routes accept mode (flowchart, mindmap, tree) and format (json,
// dot, svg, png, mermaid) query parameters. A non-JSON format returns the
// rendered artifact itself with its content type.
//
// # Errors
//
// Failures are JSON objects {"error": message, "code": code} with the
// status from [errors.HTTPStatus]. A missing snapshot is 404 NO_DATA and an
// unreadable one is 422 INVALID_DATA, each with the fixed user-facing
// message.
//
// [errors.HTTPStatus]: github.com/matzehuels/stepgraph/pkg/errors.HTTPStatus
package api
