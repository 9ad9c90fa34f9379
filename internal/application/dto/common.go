package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse marcador de éxito para operaciones sin cuerpo propio (update/delete).
type MessageResponse struct {
	Message string `json:"message"`
}
