package dto

// DataResponse wraps every successful payload.
type DataResponse struct {
	Data any `json:"data"`
}

// ErrorResponse describes a failed request. Problems lists every issue found.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems"`
}
