// file: internals/features/academico/catalogo/service/catalogo_service.go
package service

import (
	"context"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/model"
)

/* ========================================================
   Catálogo de componentes — cache read-through
   Lectura pesada, escritura rara (mantenimiento admin).
   La invalidación es explícita en cada escritura del catálogo;
   un snapshot viejo solo puede rechazar una captura válida por
   un ciclo de request, nunca corromper datos ya guardados.
======================================================== */

type CatalogoService struct {
	DB *gorm.DB

	mu    sync.RWMutex
	cache map[string][]model.ComponenteDefinicionModel // tipo_materia → defs activas ordenadas
}

func NewCatalogoService(db *gorm.DB) *CatalogoService {
	return &CatalogoService{
		DB:    db,
		cache: make(map[string][]model.ComponenteDefinicionModel),
	}
}

// ComponentesPorTipoMateria devuelve las definiciones ACTIVAS del tipo,
// ordenadas por orden ascendente. Tipo desconocido → lista vacía (materias
// legacy sin esquema configurado no son un error duro).
func (s *CatalogoService) ComponentesPorTipoMateria(ctx context.Context, tipoMateria string) ([]model.ComponenteDefinicionModel, error) {
	tipo := strings.TrimSpace(tipoMateria)

	s.mu.RLock()
	if defs, ok := s.cache[tipo]; ok {
		s.mu.RUnlock()
		return defs, nil
	}
	s.mu.RUnlock()

	var defs []model.ComponenteDefinicionModel
	if err := s.DB.WithContext(ctx).
		Where("componente_definicion_tipo_materia = ? AND componente_definicion_activo = TRUE", tipo).
		Order("componente_definicion_orden ASC").
		Find(&defs).Error; err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[tipo] = defs
	s.mu.Unlock()

	return defs, nil
}

// Invalidar descarta el snapshot cacheado de un tipo de materia.
// Debe llamarse tras cada alta/desactivación de definición.
func (s *CatalogoService) Invalidar(tipoMateria string) {
	s.mu.Lock()
	delete(s.cache, strings.TrimSpace(tipoMateria))
	s.mu.Unlock()
}

// InvalidarTodo limpia el cache completo (ej. tras un seed).
func (s *CatalogoService) InvalidarTodo() {
	s.mu.Lock()
	s.cache = make(map[string][]model.ComponenteDefinicionModel)
	s.mu.Unlock()
}

// CrearDefinicion da de alta una definición. Dentro de un tipo de materia
// el nombre debe ser único entre las definiciones ACTIVAS (las desactivadas
// pueden repetirse; los registros históricos referencian nombres).
func (s *CatalogoService) CrearDefinicion(ctx context.Context, def *model.ComponenteDefinicionModel) error {
	def.ComponenteDefinicionNombre = strings.TrimSpace(def.ComponenteDefinicionNombre)
	def.ComponenteDefinicionTipoMateria = strings.TrimSpace(def.ComponenteDefinicionTipoMateria)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.ComponenteDefinicionModel{}).
			Where(`componente_definicion_tipo_materia = ?
			   AND componente_definicion_nombre = ?
			   AND componente_definicion_activo = TRUE`,
				def.ComponenteDefinicionTipoMateria, def.ComponenteDefinicionNombre).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return gorm.ErrDuplicatedKey
		}
		def.ComponenteDefinicionActivo = true
		return tx.Create(def).Error
	})
	if err != nil {
		return err
	}

	s.Invalidar(def.ComponenteDefinicionTipoMateria)
	return nil
}

// DesactivarDefinicion apaga lógicamente una definición (nunca hard-delete:
// los registros históricos la referencian por nombre).
func (s *CatalogoService) DesactivarDefinicion(ctx context.Context, id string) error {
	var def model.ComponenteDefinicionModel
	if err := s.DB.WithContext(ctx).
		Where("componente_definicion_id = ?", id).
		First(&def).Error; err != nil {
		return err
	}

	if err := s.DB.WithContext(ctx).Model(&def).
		Update("componente_definicion_activo", false).Error; err != nil {
		return err
	}

	s.Invalidar(def.ComponenteDefinicionTipoMateria)
	return nil
}
