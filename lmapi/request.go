package lmapi

// Request describes an outbound API request.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE).
	Method string
	// Path is the resource path relative to the API base, without a
	// query string, e.g. /device/devices. For signed auth this exact
	// path is what gets signed.
	Path string
	// Query are URL query parameters. Never part of the signature.
	Query map[string]string
	// Headers are request-specific headers (merged over client defaults).
	Headers map[string]string
	// Body is the request body. Accepts nil, string, []byte, or any
	// value that will be JSON-encoded. The encoded bytes are fixed
	// before authentication so signatures cover the exact payload.
	Body any
	// Ingest routes the request to the ingestion base URL instead of
	// the REST API base.
	Ingest bool
}

// Response is the result of an API request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, flattened to single values.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
