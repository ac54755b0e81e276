// file: internals/features/academico/calificaciones/service/calificacion_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/calificaciones/model"
	catalogoService "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/service"
)

/* ========================================================
   Store de calificaciones
   CRUD con los invariantes de la materia encima del ORM:
   - clave natural (estudiante, materia, periodo) única
   - total derivado, nunca lo fija el cliente
   - borrador → recaptura idempotente (sin auditoría)
   - publicada → solo edición auditada (historial)
   Cada mutación serializa su registro con SELECT ... FOR UPDATE
   dentro de una transacción corta.
======================================================== */

type CalificacionService struct {
	DB       *gorm.DB
	Catalogo *catalogoService.CatalogoService
}

func NewCalificacionService(db *gorm.DB, cat *catalogoService.CatalogoService) *CalificacionService {
	return &CalificacionService{DB: db, Catalogo: cat}
}

// Editor: identidad opaca del que edita (viene del token, se guarda tal cual).
type Editor struct {
	ID     uuid.UUID
	Nombre string
	Rol    string
}

// ContextoCaptura: coordenadas compartidas de una captura por planilla.
type ContextoCaptura struct {
	MateriaID     uuid.UUID
	CursoID       uuid.UUID
	PeriodoID     uuid.UUID
	AnioEscolarID uuid.UUID
	DocenteID     uuid.UUID
	PeriodoNumero int
	TipoMateria   string
}

// EntradaCaptura: valores crudos de un estudiante.
type EntradaCaptura struct {
	EstudianteID  uuid.UUID
	Valores       map[string]decimal.Decimal
	Observaciones *string
}

// ResultadoCaptura: resultado por estudiante de una captura masiva.
// Un error de un estudiante NO aborta el resto de la planilla.
type ResultadoCaptura struct {
	EstudianteID uuid.UUID
	Calificacion *model.CalificacionModel
	Err          error
}

/* ========================================================
   Captura (borrador)
======================================================== */

// UpsertBorrador crea o reemplaza el borrador de (estudiante, materia,
// periodo). Si ya existe y NO está publicado, se reemplaza completo
// (detalles borrados y recreados): recaptura idempotente, no es una
// edición y no se audita. Si está publicado → ErrYaPublicada.
func (s *CalificacionService) UpsertBorrador(ctx context.Context, cc ContextoCaptura, in EntradaCaptura) (*model.CalificacionModel, error) {
	defs, err := s.Catalogo.ComponentesPorTipoMateria(ctx, cc.TipoMateria)
	if err != nil {
		return nil, err
	}

	validados, total, err := ValidarYCalcular(defs, in.Valores)
	if err != nil {
		return nil, err
	}

	idPorNombre := make(map[string]uuid.UUID, len(defs))
	for i := range defs {
		idPorNombre[defs[i].ComponenteDefinicionNombre] = defs[i].ComponenteDefinicionID
	}

	var cal model.CalificacionModel

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existente model.CalificacionModel
		encontrada := true
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(`calificacion_estudiante_id = ?
			   AND calificacion_materia_id = ?
			   AND calificacion_periodo_id = ?`,
				in.EstudianteID, cc.MateriaID, cc.PeriodoID).
			First(&existente).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			encontrada = false
		}

		now := time.Now()

		if encontrada {
			if existente.CalificacionPublicada {
				return ErrYaPublicada
			}

			// Recaptura: reemplazo total de los hijos.
			if err := tx.
				Where("calificacion_detalle_calificacion_id = ?", existente.CalificacionID).
				Delete(&model.CalificacionDetalleModel{}).Error; err != nil {
				return err
			}

			// La recaptura refresca también las coordenadas de contexto:
			// un borrador capturado bajo un roster corregido no puede
			// quedarse con curso/año/periodo viejos.
			existente.CalificacionTotal = total
			existente.CalificacionDocenteID = cc.DocenteID
			existente.CalificacionCursoID = cc.CursoID
			existente.CalificacionAnioEscolarID = cc.AnioEscolarID
			existente.CalificacionPeriodoNumero = cc.PeriodoNumero
			existente.CalificacionTipoMateria = cc.TipoMateria
			existente.CalificacionObservaciones = recortarObs(in.Observaciones)
			existente.CalificacionModificadaEn = &now
			if err := tx.Save(&existente).Error; err != nil {
				return err
			}
			cal = existente
		} else {
			cal = model.CalificacionModel{
				CalificacionEstudianteID:  in.EstudianteID,
				CalificacionMateriaID:     cc.MateriaID,
				CalificacionPeriodoID:     cc.PeriodoID,
				CalificacionCursoID:       cc.CursoID,
				CalificacionDocenteID:     cc.DocenteID,
				CalificacionAnioEscolarID: cc.AnioEscolarID,
				CalificacionPeriodoNumero: cc.PeriodoNumero,
				CalificacionTipoMateria:   cc.TipoMateria,
				CalificacionTotal:         total,
				CalificacionObservaciones: recortarObs(in.Observaciones),
			}
			if err := tx.Create(&cal).Error; err != nil {
				// Dos capturas simultáneas sobre la misma clave natural:
				// la que pierde el índice único debe reconsultar.
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrConflictoConcurrencia
				}
				return err
			}
		}

		detalles := make([]model.CalificacionDetalleModel, 0, len(validados))
		for nombre, valor := range validados {
			detalles = append(detalles, model.CalificacionDetalleModel{
				CalificacionDetalleCalificacionID:   cal.CalificacionID,
				CalificacionDetalleComponenteID:     idPorNombre[nombre],
				CalificacionDetalleNombreComponente: nombre,
				CalificacionDetalleValor:            valor,
			})
		}
		if len(detalles) > 0 {
			if err := tx.Create(&detalles).Error; err != nil {
				return err
			}
		}
		cal.CalificacionDetalles = detalles
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cal, nil
}

// CapturaMasiva aplica UpsertBorrador por estudiante. Cada registro es
// atómico por sí mismo; la planilla completa NO — el contrato es éxito
// parcial con resultado por estudiante.
func (s *CalificacionService) CapturaMasiva(ctx context.Context, cc ContextoCaptura, entradas []EntradaCaptura) []ResultadoCaptura {
	out := make([]ResultadoCaptura, 0, len(entradas))
	for _, in := range entradas {
		cal, err := s.UpsertBorrador(ctx, cc, in)
		out = append(out, ResultadoCaptura{
			EstudianteID: in.EstudianteID,
			Calificacion: cal,
			Err:          err,
		})
	}
	return out
}

/* ========================================================
   Publicación (Borrador → Publicada, una sola vía)
======================================================== */

// ResultadoPublicacion reporta cuántos registros transicionaron y cuáles
// se omitieron por estar vacíos (no se publican en silencio).
type ResultadoPublicacion struct {
	Publicadas int
	Omitidas   []uuid.UUID // estudiantes con registro sin componentes
}

// Publicar transiciona a Publicada todos los borradores de
// (curso, materia, periodo). Idempotente: un registro ya publicado es
// no-op, no error, y NO se re-estampa publicada_en.
func (s *CalificacionService) Publicar(ctx context.Context, cursoID, materiaID, periodoID uuid.UUID) (*ResultadoPublicacion, error) {
	res := &ResultadoPublicacion{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var registros []model.CalificacionModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(`calificacion_curso_id = ?
			   AND calificacion_materia_id = ?
			   AND calificacion_periodo_id = ?`,
				cursoID, materiaID, periodoID).
			Find(&registros).Error; err != nil {
			return err
		}

		now := time.Now()
		for i := range registros {
			r := &registros[i]
			if r.CalificacionPublicada {
				continue
			}

			var nDetalles int64
			if err := tx.Model(&model.CalificacionDetalleModel{}).
				Where("calificacion_detalle_calificacion_id = ?", r.CalificacionID).
				Count(&nDetalles).Error; err != nil {
				return err
			}
			if nDetalles == 0 {
				res.Omitidas = append(res.Omitidas, r.CalificacionEstudianteID)
				continue
			}

			if err := tx.Model(r).Updates(map[string]interface{}{
				"calificacion_publicada":    true,
				"calificacion_publicada_en": now,
			}).Error; err != nil {
				return err
			}
			res.Publicadas++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// PublicarUna: variante de un solo registro, mismas precondiciones.
func (s *CalificacionService) PublicarUna(ctx context.Context, id uuid.UUID) (*model.CalificacionModel, error) {
	var cal model.CalificacionModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("calificacion_id = ?", id).
			First(&cal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoEncontrada
			}
			return err
		}

		if cal.CalificacionPublicada {
			return nil // idempotente
		}

		var nDetalles int64
		if err := tx.Model(&model.CalificacionDetalleModel{}).
			Where("calificacion_detalle_calificacion_id = ?", cal.CalificacionID).
			Count(&nDetalles).Error; err != nil {
			return err
		}
		if nDetalles == 0 {
			return ErrSinComponentes
		}

		now := time.Now()
		cal.CalificacionPublicada = true
		cal.CalificacionPublicadaEn = &now
		return tx.Model(&cal).Updates(map[string]interface{}{
			"calificacion_publicada":    true,
			"calificacion_publicada_en": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &cal, nil
}

/* ========================================================
   Edición auditada (única vía de cambio post-publicación)
======================================================== */

// EditarPublicada aplica `nuevos` FUSIONADO sobre los valores actuales de
// un registro publicado, revalida el mapa completo contra el catálogo,
// reescribe los detalles, recalcula el total y deja exactamente UNA
// entrada de historial con snapshot antes/después — todo en una
// transacción. Es la única ruta por la que cambia una nota publicada.
func (s *CalificacionService) EditarPublicada(
	ctx context.Context,
	id uuid.UUID,
	nuevos map[string]decimal.Decimal,
	editor Editor,
	justificacion string,
) (*model.CalificacionModel, *model.HistorialCalificacionModel, error) {

	// La política 10–500 cuenta caracteres, no bytes (igual que el validator
	// del DTO; una justificación con tildes no debe medir distinto aquí).
	justificacion = strings.TrimSpace(justificacion)
	if n := utf8.RuneCountInString(justificacion); n < 10 || n > 500 {
		return nil, nil, ErrJustificacionInvalida
	}

	var cal model.CalificacionModel
	var entrada model.HistorialCalificacionModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("calificacion_id = ?", id).
			First(&cal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoEncontrada
			}
			return err
		}
		if !cal.CalificacionPublicada {
			return ErrNoPublicada
		}

		var detalles []model.CalificacionDetalleModel
		if err := tx.
			Where("calificacion_detalle_calificacion_id = ?", cal.CalificacionID).
			Find(&detalles).Error; err != nil {
			return err
		}

		antes := make(map[string]decimal.Decimal, len(detalles))
		for _, d := range detalles {
			antes[d.CalificacionDetalleNombreComponente] = d.CalificacionDetalleValor
		}

		// Fusión: lo no mencionado conserva su valor actual.
		fusion := make(map[string]decimal.Decimal, len(antes)+len(nuevos))
		for k, v := range antes {
			fusion[k] = v
		}
		for k, v := range nuevos {
			fusion[k] = v
		}

		defs, err := s.Catalogo.ComponentesPorTipoMateria(ctx, cal.CalificacionTipoMateria)
		if err != nil {
			return err
		}
		validados, total, err := ValidarYCalcular(defs, fusion)
		if err != nil {
			return err
		}

		idPorNombre := make(map[string]uuid.UUID, len(defs))
		for i := range defs {
			idPorNombre[defs[i].ComponenteDefinicionNombre] = defs[i].ComponenteDefinicionID
		}

		if err := tx.
			Where("calificacion_detalle_calificacion_id = ?", cal.CalificacionID).
			Delete(&model.CalificacionDetalleModel{}).Error; err != nil {
			return err
		}
		nuevosDetalles := make([]model.CalificacionDetalleModel, 0, len(validados))
		for nombre, valor := range validados {
			nuevosDetalles = append(nuevosDetalles, model.CalificacionDetalleModel{
				CalificacionDetalleCalificacionID:   cal.CalificacionID,
				CalificacionDetalleComponenteID:     idPorNombre[nombre],
				CalificacionDetalleNombreComponente: nombre,
				CalificacionDetalleValor:            valor,
			})
		}
		if err := tx.Create(&nuevosDetalles).Error; err != nil {
			return err
		}

		jsonAntes, err := snapshotJSON(antes)
		if err != nil {
			return err
		}
		jsonDespues, err := snapshotJSON(validados)
		if err != nil {
			return err
		}

		entrada = model.HistorialCalificacionModel{
			HistorialCalificacionCalificacionID: cal.CalificacionID,
			HistorialCalificacionPeriodoNumero:  cal.CalificacionPeriodoNumero,
			HistorialCalificacionValoresAntes:   jsonAntes,
			HistorialCalificacionValoresDespues: jsonDespues,
			HistorialCalificacionTotalAntes:     cal.CalificacionTotal,
			HistorialCalificacionTotalDespues:   total,
			HistorialCalificacionEditorID:       editor.ID,
			HistorialCalificacionEditorNombre:   editor.Nombre,
			HistorialCalificacionEditorRol:      editor.Rol,
			HistorialCalificacionJustificacion:  justificacion,
		}
		if err := tx.Create(&entrada).Error; err != nil {
			return err
		}

		now := time.Now()
		cal.CalificacionTotal = total
		cal.CalificacionModificadaEn = &now
		cal.CalificacionDetalles = nuevosDetalles
		return tx.Model(&model.CalificacionModel{}).
			Where("calificacion_id = ?", cal.CalificacionID).
			Updates(map[string]interface{}{
				"calificacion_total":         total,
				"calificacion_modificada_en": now,
			}).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &cal, &entrada, nil
}

/* ========================================================
   Lecturas y borrado de borradores
======================================================== */

// PorClaveNatural busca por (estudiante, materia, periodo), con detalles.
func (s *CalificacionService) PorClaveNatural(ctx context.Context, estudianteID, materiaID, periodoID uuid.UUID) (*model.CalificacionModel, error) {
	var cal model.CalificacionModel
	if err := s.DB.WithContext(ctx).
		Preload("CalificacionDetalles").
		Where(`calificacion_estudiante_id = ?
		   AND calificacion_materia_id = ?
		   AND calificacion_periodo_id = ?`,
			estudianteID, materiaID, periodoID).
		First(&cal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrada
		}
		return nil, err
	}
	return &cal, nil
}

// PorCursoMateriaPeriodo lista la planilla completa de un curso.
func (s *CalificacionService) PorCursoMateriaPeriodo(ctx context.Context, cursoID, materiaID, periodoID uuid.UUID) ([]model.CalificacionModel, error) {
	var regs []model.CalificacionModel
	if err := s.DB.WithContext(ctx).
		Preload("CalificacionDetalles").
		Where(`calificacion_curso_id = ?
		   AND calificacion_materia_id = ?
		   AND calificacion_periodo_id = ?`,
			cursoID, materiaID, periodoID).
		Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

// EliminarBorrador elimina físicamente un borrador (detalles primero),
// liberando la clave natural para una captura futura.
// Un registro publicado nunca se elimina → ErrEliminarPublicada.
func (s *CalificacionService) EliminarBorrador(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cal model.CalificacionModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("calificacion_id = ?", id).
			First(&cal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoEncontrada
			}
			return err
		}
		if cal.CalificacionPublicada {
			return ErrEliminarPublicada
		}

		if err := tx.
			Where("calificacion_detalle_calificacion_id = ?", cal.CalificacionID).
			Delete(&model.CalificacionDetalleModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cal).Error
	})
}

// Historial devuelve las entradas de auditoría de una calificación,
// más reciente primero.
func (s *CalificacionService) Historial(ctx context.Context, calificacionID uuid.UUID, limit, offset int) ([]model.HistorialCalificacionModel, int64, error) {
	qry := s.DB.WithContext(ctx).
		Model(&model.HistorialCalificacionModel{}).
		Where("historial_calificacion_calificacion_id = ?", calificacionID)

	var total int64
	if err := qry.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entradas []model.HistorialCalificacionModel
	if err := qry.
		Order("historial_calificacion_created_at DESC").
		Limit(limit).Offset(offset).
		Find(&entradas).Error; err != nil {
		return nil, 0, err
	}
	return entradas, total, nil
}

/* ========================================================
   Helpers internos
======================================================== */

func recortarObs(obs *string) *string {
	if obs == nil {
		return nil
	}
	o := strings.TrimSpace(*obs)
	if o == "" {
		return nil
	}
	// Corte por runa: nunca partir un carácter multibyte a la mitad.
	if utf8.RuneCountInString(o) > 500 {
		o = string([]rune(o)[:500])
	}
	return &o
}

// snapshotJSON serializa el mapa nombre→valor a JSONB. Los decimales van
// como string para no perder precisión en la frontera de almacenamiento.
func snapshotJSON(valores map[string]decimal.Decimal) (datatypes.JSON, error) {
	b, err := json.Marshal(valores)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
