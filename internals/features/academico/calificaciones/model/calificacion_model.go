// file: internals/features/academico/calificaciones/model/calificacion_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CalificacionModel representa la tabla `calificaciones`.
// Una fila por (estudiante, materia, periodo) — la clave natural es única.
//
// El total es DERIVADO (suma de los detalles, 0–100); nunca lo fija el
// cliente. El flag publicada gobierna el ciclo de vida:
//   - borrador  → recaptura libre (reemplazo de detalles, sin auditoría)
//   - publicada → solo edición auditada con justificación (ver historial)
type CalificacionModel struct {
	// =========================
	// Primary Key
	// =========================
	CalificacionID uuid.UUID `json:"calificacion_id" gorm:"column:calificacion_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	// =========================
	// Clave natural (FK externas, colaborador entity-store)
	// =========================
	CalificacionEstudianteID uuid.UUID `json:"calificacion_estudiante_id" gorm:"column:calificacion_estudiante_id;type:uuid;not null;uniqueIndex:uq_calificaciones_est_mat_per,priority:1"`
	CalificacionMateriaID    uuid.UUID `json:"calificacion_materia_id" gorm:"column:calificacion_materia_id;type:uuid;not null;uniqueIndex:uq_calificaciones_est_mat_per,priority:2"`
	CalificacionPeriodoID    uuid.UUID `json:"calificacion_periodo_id" gorm:"column:calificacion_periodo_id;type:uuid;not null;uniqueIndex:uq_calificaciones_est_mat_per,priority:3"`

	// =========================
	// Contexto académico
	// =========================
	CalificacionCursoID       uuid.UUID `json:"calificacion_curso_id" gorm:"column:calificacion_curso_id;type:uuid;not null;index:idx_calificaciones_curso_mat_per,priority:1"`
	CalificacionDocenteID     uuid.UUID `json:"calificacion_docente_id" gorm:"column:calificacion_docente_id;type:uuid;not null"`
	CalificacionAnioEscolarID uuid.UUID `json:"calificacion_anio_escolar_id" gorm:"column:calificacion_anio_escolar_id;type:uuid;not null;index:idx_calificaciones_anual"`

	// Denormalizado del periodo (1..4) para el consolidado anual e historial.
	CalificacionPeriodoNumero int `json:"calificacion_periodo_numero" gorm:"column:calificacion_periodo_numero;type:smallint;not null"`

	// Tipo de materia al momento de la captura; la edición auditada lo usa
	// para revalidar contra el catálogo sin consultar la materia externa.
	CalificacionTipoMateria string `json:"calificacion_tipo_materia" gorm:"column:calificacion_tipo_materia;type:varchar(30);not null"`

	// =========================
	// Datos
	// =========================
	CalificacionTotal         decimal.Decimal `json:"calificacion_total" gorm:"column:calificacion_total;type:numeric(5,2);not null;default:0"`
	CalificacionPublicada     bool            `json:"calificacion_publicada" gorm:"column:calificacion_publicada;not null;default:false"`
	CalificacionPublicadaEn   *time.Time      `json:"calificacion_publicada_en" gorm:"column:calificacion_publicada_en;type:timestamptz"`
	CalificacionObservaciones *string         `json:"calificacion_observaciones" gorm:"column:calificacion_observaciones;type:varchar(500)"`

	// =========================
	// Timestamps
	// =========================
	// Sin soft delete: el borrado de borradores es físico para que la
	// clave natural quede libre en el índice único y la recaptura funcione.
	CalificacionCreatedAt    time.Time  `json:"calificacion_created_at" gorm:"column:calificacion_created_at;not null;autoCreateTime"`
	CalificacionModificadaEn *time.Time `json:"calificacion_modificada_en" gorm:"column:calificacion_modificada_en;type:timestamptz"`

	// =========================
	// Relaciones
	// =========================
	CalificacionDetalles []CalificacionDetalleModel `json:"calificacion_detalles,omitempty" gorm:"foreignKey:CalificacionDetalleCalificacionID;references:CalificacionID;constraint:OnDelete:CASCADE"`
}

func (CalificacionModel) TableName() string {
	return "calificaciones"
}
