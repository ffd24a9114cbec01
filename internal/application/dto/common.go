package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ScopeRequest parámetros de scope presentes en toda ruta del motor.
// El userID no viaja aquí: sale del JWT.
type ScopeRequest struct {
	Country string `query:"country"`
	Region  string `query:"region"`
}
