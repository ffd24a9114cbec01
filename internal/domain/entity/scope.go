package entity

import "fmt"

// Scope identifica la presencia de un vendedor en un marketplace de Amazon.
// Toda agregación y reconciliación opera dentro de un único scope; mezclar
// datos entre scopes nunca es válido.
type Scope struct {
	UserID  string `json:"user_id"`
	Country string `json:"country"` // ej: "US", "MX", "ES"
	Region  string `json:"region"`  // ej: "na", "eu", "fe"
}

// Key devuelve la clave canónica del scope (para locks y claves de documento).
func (s Scope) Key() string {
	return fmt.Sprintf("%s:%s:%s", s.UserID, s.Country, s.Region)
}

// Valid indica si el scope tiene los tres componentes.
func (s Scope) Valid() bool {
	return s.UserID != "" && s.Country != "" && s.Region != ""
}
