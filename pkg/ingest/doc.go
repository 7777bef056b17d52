// Package ingest turns documents into line lists.
//
// PDF text extraction lives in a separate service. [Client] uploads a PDF to
// it as multipart field "file" and receives a JSON array of lines:
//
//	POST /generate-flow      flowchart and tree lines
//	POST /generate-mindmap   central topic followed by branches
//
// Transient failures (connection errors, 429, 5xx) are retried with
// exponential backoff via pkg/httputil. Only .pdf file names are accepted.
//
// When the service is unavailable, or for plain text input, [SplitText]
// applies the same line filter the service falls back to: drop short lines
// and filler words, then cap the list.
package ingest
