package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrScopeLocked        = errors.New("otra corrida está en curso para este scope")
)

// MissingPreconditionError un artefacto upstream requerido (snapshot de
// reporte) no existe aún para el scope. Es un estado normal de cuenta recién
// conectada: se reporta como resultado tipado, no se lanza; los usecases no
// escriben nada cuando lo devuelven.
type MissingPreconditionError struct {
	Artifact string // ej: "ledger", "fee_snapshot"
}

func (e *MissingPreconditionError) Error() string {
	return fmt.Sprintf("falta el reporte %q: ejecutar primero el fetch para este scope", e.Artifact)
}

// IsMissingPrecondition helper para los handlers.
func IsMissingPrecondition(err error) bool {
	var mp *MissingPreconditionError
	return errors.As(err, &mp)
}
