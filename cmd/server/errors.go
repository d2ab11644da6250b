package main

import "fmt"

// RequestError represents a rejected client request
type RequestError struct {
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
