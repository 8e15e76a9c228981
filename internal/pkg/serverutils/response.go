package serverutils

// Response is the standard API envelope.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func ErrorResponse(message string) Response {
	return Response{
		Success: false,
		Message: message,
	}
}
