// file: internals/features/academico/calificaciones/model/calificacion_detalle_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CalificacionDetalleModel representa la tabla `calificacion_detalles`.
// Una fila por componente capturado (Tareas, Examenes, ...) de una
// calificación. El par (calificacion_id, componente_id) es único.
//
// El nombre del componente se denormaliza aquí para que el detalle (y los
// snapshots del historial construidos a partir de él) sigan siendo legibles
// aunque el catálogo se desactive o cambie después.
type CalificacionDetalleModel struct {
	CalificacionDetalleID uuid.UUID `json:"calificacion_detalle_id" gorm:"column:calificacion_detalle_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	// =========================
	// Relación (FK) — el padre es dueño; se reemplazan en recaptura
	// =========================
	CalificacionDetalleCalificacionID uuid.UUID `json:"calificacion_detalle_calificacion_id" gorm:"column:calificacion_detalle_calificacion_id;type:uuid;not null;uniqueIndex:uq_calificacion_detalles_cal_comp,priority:1"`
	CalificacionDetalleComponenteID   uuid.UUID `json:"calificacion_detalle_componente_id" gorm:"column:calificacion_detalle_componente_id;type:uuid;not null;uniqueIndex:uq_calificacion_detalles_cal_comp,priority:2"`

	// =========================
	// Datos
	// =========================
	CalificacionDetalleNombreComponente string          `json:"calificacion_detalle_nombre_componente" gorm:"column:calificacion_detalle_nombre_componente;type:varchar(80);not null"`
	CalificacionDetalleValor            decimal.Decimal `json:"calificacion_detalle_valor" gorm:"column:calificacion_detalle_valor;type:numeric(5,2);not null"`

	// =========================
	// Timestamps
	// =========================
	CalificacionDetalleCreatedAt time.Time `json:"calificacion_detalle_created_at" gorm:"column:calificacion_detalle_created_at;not null;autoCreateTime"`
	CalificacionDetalleUpdatedAt time.Time `json:"calificacion_detalle_updated_at" gorm:"column:calificacion_detalle_updated_at;not null;autoUpdateTime"`
}

func (CalificacionDetalleModel) TableName() string {
	return "calificacion_detalles"
}
