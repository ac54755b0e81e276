// file: internals/features/academico/calificaciones/controller/historial_controller.go
package controller

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	dto "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/calificaciones/dto"
	service "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/calificaciones/service"
	helper "github.com/NaomiC0desArt/SIRGA-sub001/internals/helpers"
)

type HistorialController struct {
	Service *service.CalificacionService
}

func NewHistorialController(svc *service.CalificacionService) *HistorialController {
	return &HistorialController{Service: svc}
}

// GET /calificaciones/:id/historial
// Ledger de ediciones post-publicación, más reciente primero.
func (ctl *HistorialController) List(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "calificacion_id no válido")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	entradas, total, err := ctl.Service.Historial(c.UserContext(), id, paging.Limit, paging.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	out := make([]dto.HistorialCalificacionResponse, 0, len(entradas))
	for i := range entradas {
		out = append(out, dto.ToHistorialResponse(&entradas[i]))
	}

	return helper.Success(c, "OK", dto.ListHistorialResponse{
		Data:   out,
		Total:  total,
		Limit:  paging.Limit,
		Offset: paging.Offset,
	})
}
