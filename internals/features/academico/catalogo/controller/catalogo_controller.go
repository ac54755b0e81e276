// file: internals/features/academico/catalogo/controller/catalogo_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/dto"
	model "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/model"
	service "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/service"
	helper "github.com/NaomiC0desArt/SIRGA-sub001/internals/helpers"
)

/* ========================================================
   Controller — mantenimiento admin del catálogo
   El catálogo se siembra en el deploy; estos endpoints son
   la operación administrativa rara que lo ajusta después.
======================================================== */
type CatalogoController struct {
	Service   *service.CatalogoService
	Validator *validator.Validate
}

func NewCatalogoController(svc *service.CatalogoService) *CatalogoController {
	return &CatalogoController{
		Service:   svc,
		Validator: validator.New(),
	}
}

// GET /componentes?tipo_materia=Teorica
// Definiciones activas del tipo, en orden de captura. Tipo sin esquema
// configurado → lista vacía (materias legacy), no 404.
func (ctl *CatalogoController) List(c *fiber.Ctx) error {
	tipo := strings.TrimSpace(c.Query("tipo_materia"))
	if tipo == "" {
		return helper.Error(c, http.StatusBadRequest, "tipo_materia es requerido")
	}

	defs, err := ctl.Service.ComponentesPorTipoMateria(c.UserContext(), tipo)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]dto.ComponenteDefinicionResponse, 0, len(defs))
	for i := range defs {
		out = append(out, dto.ToComponenteDefinicionResponse(&defs[i]))
	}
	return helper.Success(c, "OK", out)
}

// POST /componentes
func (ctl *CatalogoController) Create(c *fiber.Ctx) error {
	var req dto.CreateComponenteDefinicionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Payload no válido")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.ValorMaximo.IsNegative() {
		return helper.Error(c, http.StatusBadRequest, "componente_definicion_valor_maximo debe ser ≥ 0")
	}

	def := model.ComponenteDefinicionModel{
		ComponenteDefinicionTipoMateria: req.TipoMateria,
		ComponenteDefinicionNombre:      req.Nombre,
		ComponenteDefinicionValorMaximo: req.ValorMaximo,
		ComponenteDefinicionOrden:       req.Orden,
	}

	if err := ctl.Service.CrearDefinicion(c.UserContext(), &def); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, http.StatusConflict, "Ya existe una definición activa con ese nombre para el tipo de materia")
		}
		return helper.Error(c, http.StatusInternalServerError, err.Error())
	}

	return helper.SuccessWithCode(c, http.StatusCreated, "Definición creada", dto.ToComponenteDefinicionResponse(&def))
}

// DELETE /componentes/:id (desactivación lógica, nunca hard-delete)
func (ctl *CatalogoController) Desactivar(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return helper.Error(c, http.StatusBadRequest, "componente_definicion_id no válido")
	}

	if err := ctl.Service.DesactivarDefinicion(c.UserContext(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, "Definición no encontrada")
		}
		return helper.Error(c, http.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Definición desactivada", nil)
}
