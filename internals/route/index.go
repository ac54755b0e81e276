// file: internals/route/index.go
package routes

import (
	"log"
	"os"

	"github.com/NaomiC0desArt/SIRGA-sub001/internals/constants"
	catalogoService "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/service"
	sirgaMiddleware "github.com/NaomiC0desArt/SIRGA-sub001/internals/middlewares/auth"
	routeDetails "github.com/NaomiC0desArt/SIRGA-sub001/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Un solo CatalogoService por proceso: su cache se invalida desde las
	// escrituras admin y esa invalidación debe verla la validación de capturas.
	catalogo := catalogoService.NewCatalogoService(db)

	// ===================== GROUPS =====================

	// PUBLIC → sin JWT
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// DOCENTE / USUARIO autenticado
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u",
		sirgaMiddleware.AuthJWT(sirgaMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ADMIN
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		sirgaMiddleware.AuthJWT(sirgaMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		sirgaMiddleware.RequireRoles(constants.RolesEdicionAuditada...),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Academico routes...")
	routeDetails.AcademicoPublicRoutes(public, catalogo)
	routeDetails.AcademicoDocenteRoutes(private, db, catalogo)
	routeDetails.AcademicoAdminRoutes(admin, db, catalogo)
}
