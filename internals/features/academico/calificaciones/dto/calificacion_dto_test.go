// file: internals/features/academico/calificaciones/dto/calificacion_dto_test.go
package dto

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capturaValida() CapturaMasivaRequest {
	return CapturaMasivaRequest{
		MateriaID:     uuid.New(),
		CursoID:       uuid.New(),
		PeriodoID:     uuid.New(),
		AnioEscolarID: uuid.New(),
		PeriodoNumero: 1,
		TipoMateria:   "Teorica",
		Notas: []CapturaEstudianteRequest{
			{
				EstudianteID: uuid.New(),
				Valores:      map[string]decimal.Decimal{"Tareas": decimal.NewFromInt(35)},
			},
		},
	}
}

func TestCapturaMasivaRequest_Validacion(t *testing.T) {
	v := validator.New()

	require.NoError(t, v.Struct(capturaValida()))

	sinNotas := capturaValida()
	sinNotas.Notas = nil
	assert.Error(t, v.Struct(sinNotas))

	periodoMalo := capturaValida()
	periodoMalo.PeriodoNumero = 5
	assert.Error(t, v.Struct(periodoMalo))

	estudianteVacio := capturaValida()
	estudianteVacio.Notas[0].Valores = map[string]decimal.Decimal{}
	assert.Error(t, v.Struct(estudianteVacio))
}

func TestEditarPublicadaRequest_PoliticaJustificacion(t *testing.T) {
	v := validator.New()

	valida := EditarPublicadaRequest{
		Valores:       map[string]decimal.Decimal{"Tareas": decimal.NewFromInt(38)},
		Justificacion: "Corrección de error de digitación tras revisión",
	}
	require.NoError(t, v.Struct(valida))

	corta := valida
	corta.Justificacion = "muy corta"
	assert.Error(t, v.Struct(corta))

	larga := valida
	larga.Justificacion = strings.Repeat("x", 501)
	assert.Error(t, v.Struct(larga))

	sinValores := valida
	sinValores.Valores = nil
	assert.Error(t, v.Struct(sinValores))
}
