package dto

// ErrorResponse HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CountResponse body for the order-count endpoint.
type CountResponse struct {
	Count int `json:"count"`
}
