package model

// Exception is the error payload carried in an error response.  Details is
// free-form context (ids, requested quantities) for the client.
type Exception struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// SingleResponse wraps a single resource in the standard envelope.
type SingleResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// PaginatedResponse wraps a list of resources with paging metadata.
type PaginatedResponse struct {
	Status  string `json:"status"`
	Data    any    `json:"data"`
	PerPage uint32 `json:"perPage"`
	Offset  uint32 `json:"offset"`
	Total   uint64 `json:"total"`
}

// ErrorResponse is the envelope returned on any failure.
type ErrorResponse struct {
	Status string    `json:"status"`
	Error  Exception `json:"error"`
}

// OK builds a single-resource success envelope.
func OK(data any) SingleResponse {
	return SingleResponse{Status: "OK", Data: data}
}

// OKPage builds a paginated success envelope.
func OKPage(data any, perPage, offset uint32, total uint64) PaginatedResponse {
	return PaginatedResponse{Status: "OK", Data: data, PerPage: perPage, Offset: offset, Total: total}
}

// Err builds an error envelope.
func Err(code, message string, details map[string]any) ErrorResponse {
	return ErrorResponse{Status: "ERROR", Error: Exception{Code: code, Message: message, Details: details}}
}
