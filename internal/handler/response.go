package handler

// Response is the envelope every task endpoint answers with: a success
// flag, an optional human-readable message, and either a data payload or
// an error description.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func okResponse(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

func listResponse(count int, data interface{}) Response {
	return Response{Success: true, Count: &count, Data: data}
}

func errorResponse(message string) Response {
	return Response{Success: false, Message: message}
}

// storeErrorResponse carries the underlying store error alongside the
// human-readable message, mirroring the failure shape of list/create/update
// responses on the 500 paths.
func storeErrorResponse(message string, err error) Response {
	return Response{Success: false, Message: message, Error: err.Error()}
}
