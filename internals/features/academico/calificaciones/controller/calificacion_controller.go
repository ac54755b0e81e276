// file: internals/features/academico/calificaciones/controller/calificacion_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/calificaciones/dto"
	service "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/calificaciones/service"
	helper "github.com/NaomiC0desArt/SIRGA-sub001/internals/helpers"
	helperAuth "github.com/NaomiC0desArt/SIRGA-sub001/internals/helpers/auth"
)

/* ========================================================
   Controller
======================================================== */
type CalificacionController struct {
	Service   *service.CalificacionService
	Validator *validator.Validate
}

func NewCalificacionController(svc *service.CalificacionService) *CalificacionController {
	return &CalificacionController{
		Service:   svc,
		Validator: validator.New(),
	}
}

/* ========================================================
   Helpers
======================================================== */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(name)))
}

func parseUUIDQuery(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Query(name)))
}

// mapServiceError traduce la taxonomía del service a HTTP.
// Validación → 400 (corregible), estado/concurrencia → 409 ("está
// bloqueado", no "el input está mal"), no encontrado → 404,
// política de auditoría → 422.
func mapServiceError(c *fiber.Ctx, err error) error {
	if ev, ok := service.EsErrorValidacion(err); ok {
		return helper.ErrorWithDetails(c, http.StatusBadRequest, "Validación de componentes fallida", fiber.Map{
			"tipo":       ev.Tipo,
			"componente": ev.Componente,
			"valor":      ev.Valor,
			"maximo":     ev.Maximo,
		})
	}

	switch {
	case errors.Is(err, service.ErrNoEncontrada):
		return helper.Error(c, http.StatusNotFound, "Calificación no encontrada")
	case errors.Is(err, service.ErrYaPublicada),
		errors.Is(err, service.ErrNoPublicada),
		errors.Is(err, service.ErrSinComponentes),
		errors.Is(err, service.ErrEliminarPublicada),
		errors.Is(err, service.ErrConflictoConcurrencia):
		return helper.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrJustificacionInvalida):
		return helper.Error(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helper.Error(c, http.StatusNotFound, "Dato no encontrado")
	default:
		return helper.Error(c, http.StatusInternalServerError, err.Error())
	}
}

/* ========================================================
   Handlers — captura
======================================================== */

// POST /calificaciones/captura
// Captura masiva por planilla. Devuelve resultado por estudiante
// (éxito parcial: un valor malo no tumba a los otros 29).
func (ctl *CalificacionController) Capturar(c *fiber.Ctx) error {
	var req dto.CapturaMasivaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	docenteID, err := helperAuth.DocenteIDFromToken(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "Identidad de docente no encontrada en el token")
	}

	cc := service.ContextoCaptura{
		MateriaID:     req.MateriaID,
		CursoID:       req.CursoID,
		PeriodoID:     req.PeriodoID,
		AnioEscolarID: req.AnioEscolarID,
		DocenteID:     docenteID,
		PeriodoNumero: req.PeriodoNumero,
		TipoMateria:   strings.TrimSpace(req.TipoMateria),
	}

	entradas := make([]service.EntradaCaptura, 0, len(req.Notas))
	for _, n := range req.Notas {
		entradas = append(entradas, service.EntradaCaptura{
			EstudianteID:  n.EstudianteID,
			Valores:       n.Valores,
			Observaciones: n.Observaciones,
		})
	}

	resultados := ctl.Service.CapturaMasiva(c.UserContext(), cc, entradas)

	out := make([]dto.ResultadoCapturaResponse, 0, len(resultados))
	for _, r := range resultados {
		item := dto.ResultadoCapturaResponse{
			EstudianteID: r.EstudianteID,
			Ok:           r.Err == nil,
		}
		if r.Err != nil {
			msg := r.Err.Error()
			item.Error = &msg
		}
		if r.Calificacion != nil {
			resp := dto.ToCalificacionResponse(r.Calificacion)
			item.Calificacion = &resp
		}
		out = append(out, item)
	}

	return helper.Success(c, "Captura procesada", out)
}

// DELETE /calificaciones/:id
// Solo borradores; un registro publicado nunca se elimina.
func (ctl *CalificacionController) Eliminar(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "calificacion_id no válido")
	}

	if err := ctl.Service.EliminarBorrador(c.UserContext(), id); err != nil {
		return mapServiceError(c, err)
	}
	return helper.SuccessWithCode(c, http.StatusNoContent, "Borrador eliminado", nil)
}

/* ========================================================
   Handlers — publicación
======================================================== */

// POST /calificaciones/publicar
// Publica todos los borradores de (curso, materia, periodo). Idempotente.
// Los registros vacíos se omiten y se reportan, no se descartan en silencio.
func (ctl *CalificacionController) Publicar(c *fiber.Ctx) error {
	var req dto.PublicarRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctl.Service.Publicar(c.UserContext(), req.CursoID, req.MateriaID, req.PeriodoID)
	if err != nil {
		return mapServiceError(c, err)
	}

	if res.Omitidas == nil {
		res.Omitidas = []uuid.UUID{}
	}
	return helper.Success(c, "Publicación procesada", dto.PublicarResponse{
		Publicadas: res.Publicadas,
		Omitidas:   res.Omitidas,
	})
}

// POST /calificaciones/:id/publicar
func (ctl *CalificacionController) PublicarUna(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "calificacion_id no válido")
	}

	cal, err := ctl.Service.PublicarUna(c.UserContext(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.Success(c, "Calificación publicada", dto.ToCalificacionResponse(cal))
}

/* ========================================================
   Handlers — edición auditada
======================================================== */

// PATCH /calificaciones/:id
// Única vía de cambio post-publicación: fusiona valores, exige
// justificación y deja una entrada de historial.
func (ctl *CalificacionController) Editar(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "calificacion_id no válido")
	}

	var req dto.EditarPublicadaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	actor, err := helperAuth.ActorFromToken(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "Identidad de usuario no encontrada en el token")
	}

	cal, entrada, err := ctl.Service.EditarPublicada(
		c.UserContext(), id, req.Valores,
		service.Editor{ID: actor.ID, Nombre: actor.Nombre, Rol: actor.Rol},
		req.Justificacion,
	)
	if err != nil {
		return mapServiceError(c, err)
	}

	return helper.Success(c, "Calificación editada", fiber.Map{
		"calificacion":             dto.ToCalificacionResponse(cal),
		"historial_calificacion_id": entrada.HistorialCalificacionID,
	})
}

/* ========================================================
   Handlers — lecturas
======================================================== */

// GET /calificaciones?estudiante_id=&materia_id=&periodo_id=
// o bien ?curso_id=&materia_id=&periodo_id= para la planilla completa.
func (ctl *CalificacionController) List(c *fiber.Ctx) error {
	materiaID, err := parseUUIDQuery(c, "materia_id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "materia_id no válido")
	}
	periodoID, err := parseUUIDQuery(c, "periodo_id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "periodo_id no válido")
	}

	if est := strings.TrimSpace(c.Query("estudiante_id")); est != "" {
		estudianteID, err := uuid.Parse(est)
		if err != nil {
			return helper.Error(c, http.StatusBadRequest, "estudiante_id no válido")
		}
		cal, err := ctl.Service.PorClaveNatural(c.UserContext(), estudianteID, materiaID, periodoID)
		if err != nil {
			return mapServiceError(c, err)
		}
		return helper.Success(c, "OK", dto.ToCalificacionResponse(cal))
	}

	cursoID, err := parseUUIDQuery(c, "curso_id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "curso_id o estudiante_id requerido")
	}

	regs, err := ctl.Service.PorCursoMateriaPeriodo(c.UserContext(), cursoID, materiaID, periodoID)
	if err != nil {
		return mapServiceError(c, err)
	}

	out := make([]dto.CalificacionResponse, 0, len(regs))
	for i := range regs {
		out = append(out, dto.ToCalificacionResponse(&regs[i]))
	}
	return helper.Success(c, "OK", out)
}

// GET /calificaciones/anual?estudiante_id=&materia_id=&curso_id=&anio_escolar_id=
// Consolidado anual: periodos sin captura van como null, nunca como 0.
func (ctl *CalificacionController) NotaAnual(c *fiber.Ctx) error {
	estudianteID, err := parseUUIDQuery(c, "estudiante_id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "estudiante_id no válido")
	}
	materiaID, err := parseUUIDQuery(c, "materia_id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "materia_id no válido")
	}
	cursoID, err := parseUUIDQuery(c, "curso_id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "curso_id no válido")
	}
	anioID, err := parseUUIDQuery(c, "anio_escolar_id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "anio_escolar_id no válido")
	}

	nota, err := ctl.Service.NotaAnual(c.UserContext(), estudianteID, materiaID, cursoID, anioID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return helper.Success(c, "OK", dto.NotaAnualResponse{
		P1:       nota.P1,
		P2:       nota.P2,
		P3:       nota.P3,
		P4:       nota.P4,
		Total:    nota.Total,
		Completo: nota.Completo,
	})
}
