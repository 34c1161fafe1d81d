package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// UploadedFile archivo recibido por multipart o leído del disco por la CLI.
type UploadedFile struct {
	Name    string
	Content []byte
}
