// file: internals/features/academico/calificaciones/route/calificaciones_route.go
package route

import (
	calificacionController "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/calificaciones/controller"
	calificacionService "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/calificaciones/service"
	catalogoService "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/service"
	middlewares "github.com/NaomiC0desArt/SIRGA-sub001/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
Rutas de docente: captura, publicación y lecturas de planilla.
El CatalogoService compartido viene de SetupRoutes: la invalidación del
cache admin debe ver la misma instancia que valida capturas.

	POST   /api/u/calificaciones/captura
	POST   /api/u/calificaciones/publicar
	POST   /api/u/calificaciones/:id/publicar
	GET    /api/u/calificaciones
	GET    /api/u/calificaciones/anual
	GET    /api/u/calificaciones/:id/historial
	DELETE /api/u/calificaciones/:id
*/
func CalificacionDocenteRoutes(r fiber.Router, db *gorm.DB, cat *catalogoService.CatalogoService) {
	svc := calificacionService.NewCalificacionService(db, cat)
	ctl := calificacionController.NewCalificacionController(svc)
	histCtl := calificacionController.NewHistorialController(svc)

	grp := r.Group("/calificaciones")
	grp.Post("/captura", ctl.Capturar)
	grp.Post("/publicar", middlewares.PublicacionRateLimiter(), ctl.Publicar)
	grp.Post("/:id/publicar", ctl.PublicarUna)
	grp.Get("/anual", ctl.NotaAnual)
	grp.Get("/:id/historial", histCtl.List)
	grp.Get("/", ctl.List)
	grp.Delete("/:id", ctl.Eliminar)
}

/*
Rutas de admin: todo lo del docente más la edición auditada
post-publicación.
*/
func CalificacionAdminRoutes(r fiber.Router, db *gorm.DB, cat *catalogoService.CatalogoService) {
	svc := calificacionService.NewCalificacionService(db, cat)
	ctl := calificacionController.NewCalificacionController(svc)
	histCtl := calificacionController.NewHistorialController(svc)

	grp := r.Group("/calificaciones")
	grp.Post("/captura", ctl.Capturar)
	grp.Post("/publicar", middlewares.PublicacionRateLimiter(), ctl.Publicar)
	grp.Post("/:id/publicar", ctl.PublicarUna)
	grp.Patch("/:id", ctl.Editar)
	grp.Get("/anual", ctl.NotaAnual)
	grp.Get("/:id/historial", histCtl.List)
	grp.Get("/", ctl.List)
	grp.Delete("/:id", ctl.Eliminar)
}
