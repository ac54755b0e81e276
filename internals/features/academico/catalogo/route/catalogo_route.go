// file: internals/features/academico/catalogo/route/catalogo_route.go
package route

import (
	catalogoController "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/controller"
	catalogoService "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/service"

	"github.com/gofiber/fiber/v2"
)

// Las rutas reciben el CatalogoService compartido del proceso: la
// invalidación del cache tras una escritura admin tiene que llegar a la
// MISMA instancia que valida las capturas.

// Lectura del catálogo (la UI de captura lo necesita para pintar columnas).
func CatalogoPublicRoutes(r fiber.Router, cat *catalogoService.CatalogoService) {
	ctl := catalogoController.NewCatalogoController(cat)

	grp := r.Group("/componentes")
	grp.Get("/", ctl.List)
}

// Mantenimiento admin del catálogo (alta / desactivación lógica).
func CatalogoAdminRoutes(r fiber.Router, cat *catalogoService.CatalogoService) {
	ctl := catalogoController.NewCatalogoController(cat)

	grp := r.Group("/componentes")
	grp.Get("/", ctl.List)
	grp.Post("/", ctl.Create)
	grp.Delete("/:id", ctl.Desactivar)
}
