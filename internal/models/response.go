package models

import "net/http"

// JSONResponse is the envelope every successful response is wrapped in.
type JSONResponse[T any] struct {
	Status int `json:"status"`
	Data   T   `json:"data"`
}

func Success[T any](data T) JSONResponse[T] {
	return JSONResponse[T]{Status: http.StatusOK, Data: data}
}

func WithStatus[T any](status int, data T) JSONResponse[T] {
	return JSONResponse[T]{Status: status, Data: data}
}

// UserError is the body of every error response.
type UserError struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}
