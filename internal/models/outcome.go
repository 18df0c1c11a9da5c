package models

import "fmt"

// Outcome is the result of a submission to the remote product API.
type Outcome struct {
	Success    bool
	Message    string
	StatusCode int
	// Product is the record echoed by the server, when it sent one back.
	Product *Product
}

// Succeeded builds a successful outcome.
func Succeeded(statusCode int, echoed *Product) Outcome {
	return Outcome{Success: true, Message: "Product created", StatusCode: statusCode, Product: echoed}
}

// Failed builds a failed outcome carrying a user-facing message.
func Failed(statusCode int, format string, args ...interface{}) Outcome {
	return Outcome{Message: fmt.Sprintf(format, args...), StatusCode: statusCode}
}
