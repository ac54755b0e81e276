// file: internals/features/academico/catalogo/model/componente_definicion_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ComponenteDefinicionModel representa la tabla `componente_definiciones`.
// Catálogo de componentes de calificación por tipo de materia
// (ej. "Teorica" → Tareas≤40, ExamenesTeoricos≤25, ...).
//
// Las definiciones nunca se borran físicamente: se desactivan.
// Los registros históricos referencian el NOMBRE del componente,
// no el id, para seguir siendo legibles si el catálogo cambia.
type ComponenteDefinicionModel struct {
	// =========================
	// Primary Key
	// =========================
	ComponenteDefinicionID uuid.UUID `json:"componente_definicion_id" gorm:"column:componente_definicion_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	// =========================
	// Identidad natural (tipo_materia + nombre)
	// =========================
	ComponenteDefinicionTipoMateria string `json:"componente_definicion_tipo_materia" gorm:"column:componente_definicion_tipo_materia;type:varchar(30);not null;index:idx_componente_definiciones_tipo_orden,priority:1"`
	ComponenteDefinicionNombre      string `json:"componente_definicion_nombre" gorm:"column:componente_definicion_nombre;type:varchar(80);not null"`

	// =========================
	// Datos
	// =========================
	ComponenteDefinicionValorMaximo decimal.Decimal `json:"componente_definicion_valor_maximo" gorm:"column:componente_definicion_valor_maximo;type:numeric(5,2);not null"`
	ComponenteDefinicionOrden       int             `json:"componente_definicion_orden" gorm:"column:componente_definicion_orden;not null;default:0;index:idx_componente_definiciones_tipo_orden,priority:2"`
	ComponenteDefinicionActivo      bool            `json:"componente_definicion_activo" gorm:"column:componente_definicion_activo;not null;default:true"`

	// =========================
	// Timestamps
	// =========================
	ComponenteDefinicionCreatedAt time.Time `json:"componente_definicion_created_at" gorm:"column:componente_definicion_created_at;not null;autoCreateTime"`
	ComponenteDefinicionUpdatedAt time.Time `json:"componente_definicion_updated_at" gorm:"column:componente_definicion_updated_at;not null;autoUpdateTime"`
}

func (ComponenteDefinicionModel) TableName() string {
	return "componente_definiciones"
}
