// file: internals/features/academico/calificaciones/dto/historial_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/calificaciones/model"
)

// HistorialCalificacionResponse: una entrada del ledger de auditoría.
// Los snapshots van como JSON crudo (nombre componente → valor).
type HistorialCalificacionResponse struct {
	ID             uuid.UUID       `json:"historial_calificacion_id"`
	CalificacionID uuid.UUID       `json:"historial_calificacion_calificacion_id"`
	PeriodoNumero  int             `json:"historial_calificacion_periodo_numero"`
	ValoresAntes   datatypes.JSON  `json:"historial_calificacion_valores_antes"`
	ValoresDespues datatypes.JSON  `json:"historial_calificacion_valores_despues"`
	TotalAntes     decimal.Decimal `json:"historial_calificacion_total_antes"`
	TotalDespues   decimal.Decimal `json:"historial_calificacion_total_despues"`
	EditorID       uuid.UUID       `json:"historial_calificacion_editor_id"`
	EditorNombre   string          `json:"historial_calificacion_editor_nombre"`
	EditorRol      string          `json:"historial_calificacion_editor_rol"`
	Justificacion  string          `json:"historial_calificacion_justificacion"`
	CreatedAt      time.Time       `json:"historial_calificacion_created_at"`
}

type ListHistorialResponse struct {
	Data   []HistorialCalificacionResponse `json:"data"`
	Total  int64                           `json:"total"`
	Limit  int                             `json:"limit"`
	Offset int                             `json:"offset"`
}

func ToHistorialResponse(m *model.HistorialCalificacionModel) HistorialCalificacionResponse {
	return HistorialCalificacionResponse{
		ID:             m.HistorialCalificacionID,
		CalificacionID: m.HistorialCalificacionCalificacionID,
		PeriodoNumero:  m.HistorialCalificacionPeriodoNumero,
		ValoresAntes:   m.HistorialCalificacionValoresAntes,
		ValoresDespues: m.HistorialCalificacionValoresDespues,
		TotalAntes:     m.HistorialCalificacionTotalAntes,
		TotalDespues:   m.HistorialCalificacionTotalDespues,
		EditorID:       m.HistorialCalificacionEditorID,
		EditorNombre:   m.HistorialCalificacionEditorNombre,
		EditorRol:      m.HistorialCalificacionEditorRol,
		Justificacion:  m.HistorialCalificacionJustificacion,
		CreatedAt:      m.HistorialCalificacionCreatedAt,
	}
}
