// file: internals/route/details/academico_routes.go
package details

import (
	CalificacionRoutes "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/calificaciones/route"
	CatalogoRoutes "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/route"
	catalogoService "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Todas las rutas académicas comparten UN CatalogoService (creado en
// SetupRoutes): así la invalidación del cache por escrituras admin llega a
// la instancia que valida capturas y ediciones.

/* ===================== PUBLIC ===================== */
// Solo lectura del catálogo (la UI de captura pinta las columnas con esto).
func AcademicoPublicRoutes(r fiber.Router, cat *catalogoService.CatalogoService) {
	CatalogoRoutes.CatalogoPublicRoutes(r, cat)
}

/* ===================== DOCENTE ===================== */
// Captura por planilla + publicación + lecturas.
func AcademicoDocenteRoutes(r fiber.Router, db *gorm.DB, cat *catalogoService.CatalogoService) {
	CalificacionRoutes.CalificacionDocenteRoutes(r, db, cat)
}

/* ===================== ADMIN ===================== */
// Todo lo anterior + edición auditada + mantenimiento del catálogo.
func AcademicoAdminRoutes(r fiber.Router, db *gorm.DB, cat *catalogoService.CatalogoService) {
	CalificacionRoutes.CalificacionAdminRoutes(r, db, cat)
	CatalogoRoutes.CatalogoAdminRoutes(r, cat)
}
