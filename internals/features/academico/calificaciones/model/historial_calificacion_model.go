// file: internals/features/academico/calificaciones/model/historial_calificacion_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// HistorialCalificacionModel registra cada edición post-publicación de una
// calificación. Los registros son inmutables — nunca se eliminan ni
// modifican (ledger append-only).
//
// valores_antes / valores_despues son mapas nombre-componente → valor,
// serializados como JSONB solo en la frontera de almacenamiento.
type HistorialCalificacionModel struct {
	HistorialCalificacionID uuid.UUID `json:"historial_calificacion_id" gorm:"column:historial_calificacion_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	// FK no-dueña: muchas entradas por calificación, la calificación vive
	// independiente de su historial.
	HistorialCalificacionCalificacionID uuid.UUID `json:"historial_calificacion_calificacion_id" gorm:"column:historial_calificacion_calificacion_id;type:uuid;not null;index:idx_historial_calificaciones_cal,priority:1"`

	// Denormalizado para consultas por periodo sin join.
	HistorialCalificacionPeriodoNumero int `json:"historial_calificacion_periodo_numero" gorm:"column:historial_calificacion_periodo_numero;type:smallint;not null"`

	// =========================
	// Snapshot antes / después
	// =========================
	HistorialCalificacionValoresAntes   datatypes.JSON  `json:"historial_calificacion_valores_antes" gorm:"column:historial_calificacion_valores_antes;type:jsonb;not null"`
	HistorialCalificacionValoresDespues datatypes.JSON  `json:"historial_calificacion_valores_despues" gorm:"column:historial_calificacion_valores_despues;type:jsonb;not null"`
	HistorialCalificacionTotalAntes     decimal.Decimal `json:"historial_calificacion_total_antes" gorm:"column:historial_calificacion_total_antes;type:numeric(5,2);not null"`
	HistorialCalificacionTotalDespues   decimal.Decimal `json:"historial_calificacion_total_despues" gorm:"column:historial_calificacion_total_despues;type:numeric(5,2);not null"`

	// =========================
	// Quién y por qué (identidad opaca, se guarda tal cual llega)
	// =========================
	HistorialCalificacionEditorID     uuid.UUID `json:"historial_calificacion_editor_id" gorm:"column:historial_calificacion_editor_id;type:uuid;not null"`
	HistorialCalificacionEditorNombre string    `json:"historial_calificacion_editor_nombre" gorm:"column:historial_calificacion_editor_nombre;type:varchar(120);not null"`
	HistorialCalificacionEditorRol    string    `json:"historial_calificacion_editor_rol" gorm:"column:historial_calificacion_editor_rol;type:varchar(40);not null"`
	HistorialCalificacionJustificacion string   `json:"historial_calificacion_justificacion" gorm:"column:historial_calificacion_justificacion;type:text;not null"`

	HistorialCalificacionCreatedAt time.Time `json:"historial_calificacion_created_at" gorm:"column:historial_calificacion_created_at;not null;autoCreateTime;index:idx_historial_calificaciones_cal,priority:2,sort:desc"`
}

func (HistorialCalificacionModel) TableName() string {
	return "historial_calificaciones"
}
