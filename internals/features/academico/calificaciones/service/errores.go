// file: internals/features/academico/calificaciones/service/errores.go
package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

/* ========================================================
   Errores de estado / concurrencia / existencia
   (el controller los mapea a 404 / 409; nunca se tragan)
======================================================== */

var (
	// ErrNoEncontrada: no existe calificación para el id o clave natural.
	ErrNoEncontrada = errors.New("calificacion no encontrada")

	// ErrYaPublicada: se intentó la ruta de borrador (recaptura o borrado
	// implícito) sobre un registro ya publicado. Debe usarse la edición
	// auditada.
	ErrYaPublicada = errors.New("la calificacion ya fue publicada; use la edicion con justificacion")

	// ErrNoPublicada: se intentó la edición auditada sobre un borrador.
	ErrNoPublicada = errors.New("la calificacion aun no esta publicada; use la recaptura normal")

	// ErrSinComponentes: no se puede publicar un registro sin componentes.
	ErrSinComponentes = errors.New("la calificacion no tiene componentes capturados")

	// ErrEliminarPublicada: un registro publicado nunca se elimina.
	ErrEliminarPublicada = errors.New("no se puede eliminar una calificacion publicada")

	// ErrConflictoConcurrencia: otra transacción modificó la misma clave
	// natural; el llamador debe reconsultar y reintentar.
	ErrConflictoConcurrencia = errors.New("la calificacion fue modificada por otra operacion; reintente")

	// ErrJustificacionInvalida: política de auditoría — toda edición
	// post-publicación exige justificación de 10 a 500 caracteres.
	ErrJustificacionInvalida = errors.New("la justificacion es obligatoria (10 a 500 caracteres)")
)

/* ========================================================
   Errores de validación de componentes (corregibles por el cliente)
======================================================== */

type TipoErrorValidacion string

const (
	ComponenteDesconocido TipoErrorValidacion = "componente_desconocido"
	ValorFueraDeRango     TipoErrorValidacion = "valor_fuera_de_rango"
	TotalExcedeMaximo     TipoErrorValidacion = "total_excede_maximo"
)

// ErrorValidacion identifica el componente ofensivo y el límite violado,
// para que la UI pueda señalar el campo exacto.
type ErrorValidacion struct {
	Tipo       TipoErrorValidacion
	Componente string
	Valor      decimal.Decimal
	Maximo     decimal.Decimal
}

func (e *ErrorValidacion) Error() string {
	switch e.Tipo {
	case ComponenteDesconocido:
		return fmt.Sprintf("componente '%s' no existe en el catalogo para este tipo de materia", e.Componente)
	case ValorFueraDeRango:
		return fmt.Sprintf("componente '%s': valor %s fuera de rango (0 a %s)", e.Componente, e.Valor.String(), e.Maximo.String())
	case TotalExcedeMaximo:
		return fmt.Sprintf("el total %s excede el maximo de %s", e.Valor.String(), e.Maximo.String())
	default:
		return "error de validacion de componentes"
	}
}

// EsErrorValidacion extrae el *ErrorValidacion de una cadena de errores.
func EsErrorValidacion(err error) (*ErrorValidacion, bool) {
	var ev *ErrorValidacion
	if errors.As(err, &ev) {
		return ev, true
	}
	return nil, false
}
