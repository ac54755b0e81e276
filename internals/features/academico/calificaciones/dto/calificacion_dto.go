// file: internals/features/academico/calificaciones/dto/calificacion_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/calificaciones/model"
)

/* ========================================================
   Requests
======================================================== */

// CapturaEstudianteRequest: valores crudos de un estudiante de la planilla.
type CapturaEstudianteRequest struct {
	EstudianteID  uuid.UUID                  `json:"estudiante_id" validate:"required"`
	Valores       map[string]decimal.Decimal `json:"valores" validate:"required,min=1"`
	Observaciones *string                    `json:"observaciones" validate:"omitempty,max=500"`
}

// CapturaMasivaRequest: una planilla completa (curso + materia + periodo).
// El docente sale del token, no del body.
type CapturaMasivaRequest struct {
	MateriaID     uuid.UUID `json:"captura_materia_id" validate:"required"`
	CursoID       uuid.UUID `json:"captura_curso_id" validate:"required"`
	PeriodoID     uuid.UUID `json:"captura_periodo_id" validate:"required"`
	AnioEscolarID uuid.UUID `json:"captura_anio_escolar_id" validate:"required"`
	PeriodoNumero int       `json:"captura_periodo_numero" validate:"required,min=1,max=4"`
	TipoMateria   string    `json:"captura_tipo_materia" validate:"required,max=30"`

	Notas []CapturaEstudianteRequest `json:"captura_notas" validate:"required,min=1,dive"`
}

// PublicarRequest: publicación masiva por curso + materia + periodo.
type PublicarRequest struct {
	CursoID   uuid.UUID `json:"publicar_curso_id" validate:"required"`
	MateriaID uuid.UUID `json:"publicar_materia_id" validate:"required"`
	PeriodoID uuid.UUID `json:"publicar_periodo_id" validate:"required"`
}

// EditarPublicadaRequest: edición auditada. Los valores se FUSIONAN sobre
// los actuales; la justificación es obligatoria (política 10–500).
type EditarPublicadaRequest struct {
	Valores       map[string]decimal.Decimal `json:"editar_valores" validate:"required,min=1"`
	Justificacion string                     `json:"editar_justificacion" validate:"required,min=10,max=500"`
}

/* ========================================================
   Responses
======================================================== */

type CalificacionDetalleResponse struct {
	ComponenteID     uuid.UUID       `json:"calificacion_detalle_componente_id"`
	NombreComponente string          `json:"calificacion_detalle_nombre_componente"`
	Valor            decimal.Decimal `json:"calificacion_detalle_valor"`
}

type CalificacionResponse struct {
	ID            uuid.UUID `json:"calificacion_id"`
	EstudianteID  uuid.UUID `json:"calificacion_estudiante_id"`
	MateriaID     uuid.UUID `json:"calificacion_materia_id"`
	PeriodoID     uuid.UUID `json:"calificacion_periodo_id"`
	CursoID       uuid.UUID `json:"calificacion_curso_id"`
	DocenteID     uuid.UUID `json:"calificacion_docente_id"`
	AnioEscolarID uuid.UUID `json:"calificacion_anio_escolar_id"`
	PeriodoNumero int       `json:"calificacion_periodo_numero"`
	TipoMateria   string    `json:"calificacion_tipo_materia"`

	Total         decimal.Decimal `json:"calificacion_total"`
	Publicada     bool            `json:"calificacion_publicada"`
	PublicadaEn   *time.Time      `json:"calificacion_publicada_en,omitempty"`
	Observaciones *string         `json:"calificacion_observaciones,omitempty"`

	Detalles []CalificacionDetalleResponse `json:"calificacion_detalles,omitempty"`

	CreatedAt    time.Time  `json:"calificacion_created_at"`
	ModificadaEn *time.Time `json:"calificacion_modificada_en,omitempty"`
}

// ResultadoCapturaResponse: resultado por estudiante de la captura masiva.
// Éxito parcial: un estudiante con error no tumba la planilla.
type ResultadoCapturaResponse struct {
	EstudianteID uuid.UUID             `json:"estudiante_id"`
	Ok           bool                  `json:"ok"`
	Error        *string               `json:"error,omitempty"`
	Calificacion *CalificacionResponse `json:"calificacion,omitempty"`
}

type PublicarResponse struct {
	Publicadas int         `json:"publicadas"`
	Omitidas   []uuid.UUID `json:"omitidas"` // estudiantes con registro vacío
}

type NotaAnualResponse struct {
	P1       *decimal.Decimal `json:"p1"`
	P2       *decimal.Decimal `json:"p2"`
	P3       *decimal.Decimal `json:"p3"`
	P4       *decimal.Decimal `json:"p4"`
	Total    *decimal.Decimal `json:"total"`
	Completo bool             `json:"completo"`
}

/* ========================================================
   Mappers model → response
======================================================== */

func ToCalificacionResponse(m *model.CalificacionModel) CalificacionResponse {
	detalles := make([]CalificacionDetalleResponse, 0, len(m.CalificacionDetalles))
	for _, d := range m.CalificacionDetalles {
		detalles = append(detalles, CalificacionDetalleResponse{
			ComponenteID:     d.CalificacionDetalleComponenteID,
			NombreComponente: d.CalificacionDetalleNombreComponente,
			Valor:            d.CalificacionDetalleValor,
		})
	}

	return CalificacionResponse{
		ID:            m.CalificacionID,
		EstudianteID:  m.CalificacionEstudianteID,
		MateriaID:     m.CalificacionMateriaID,
		PeriodoID:     m.CalificacionPeriodoID,
		CursoID:       m.CalificacionCursoID,
		DocenteID:     m.CalificacionDocenteID,
		AnioEscolarID: m.CalificacionAnioEscolarID,
		PeriodoNumero: m.CalificacionPeriodoNumero,
		TipoMateria:   m.CalificacionTipoMateria,

		Total:         m.CalificacionTotal,
		Publicada:     m.CalificacionPublicada,
		PublicadaEn:   m.CalificacionPublicadaEn,
		Observaciones: m.CalificacionObservaciones,

		Detalles: detalles,

		CreatedAt:    m.CalificacionCreatedAt,
		ModificadaEn: m.CalificacionModificadaEn,
	}
}
