// file: internals/features/academico/catalogo/dto/componente_definicion_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/model"
)

// CreateComponenteDefinicionRequest
type CreateComponenteDefinicionRequest struct {
	TipoMateria string          `json:"componente_definicion_tipo_materia" validate:"required,max=30"`
	Nombre      string          `json:"componente_definicion_nombre" validate:"required,max=80"`
	ValorMaximo decimal.Decimal `json:"componente_definicion_valor_maximo" validate:"required"`
	Orden       int             `json:"componente_definicion_orden" validate:"gte=0"`
}

// Response DTOs
type ComponenteDefinicionResponse struct {
	ID          uuid.UUID       `json:"componente_definicion_id"`
	TipoMateria string          `json:"componente_definicion_tipo_materia"`
	Nombre      string          `json:"componente_definicion_nombre"`
	ValorMaximo decimal.Decimal `json:"componente_definicion_valor_maximo"`
	Orden       int             `json:"componente_definicion_orden"`
	Activo      bool            `json:"componente_definicion_activo"`
	CreatedAt   time.Time       `json:"componente_definicion_created_at"`
	UpdatedAt   time.Time       `json:"componente_definicion_updated_at"`
}

func ToComponenteDefinicionResponse(m *model.ComponenteDefinicionModel) ComponenteDefinicionResponse {
	return ComponenteDefinicionResponse{
		ID:          m.ComponenteDefinicionID,
		TipoMateria: m.ComponenteDefinicionTipoMateria,
		Nombre:      m.ComponenteDefinicionNombre,
		ValorMaximo: m.ComponenteDefinicionValorMaximo,
		Orden:       m.ComponenteDefinicionOrden,
		Activo:      m.ComponenteDefinicionActivo,
		CreatedAt:   m.ComponenteDefinicionCreatedAt,
		UpdatedAt:   m.ComponenteDefinicionUpdatedAt,
	}
}
