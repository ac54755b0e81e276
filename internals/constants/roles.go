package constants

import "fmt"

// Roles del sistema (los trae el token; el core los guarda como strings)
const (
	RoleEstudiante  = "estudiante"
	RoleAcudiente   = "acudiente"
	RoleDocente     = "docente"
	RoleCoordinador = "coordinador"
	RoleAdmin       = "admin"
)

// Plantillas de mensajes de error por rol
const (
	ErrOnlyDocentesCanAccess = "❌ Solo docente, coordinador o admin pueden acceder a %s."
	ErrOnlyAdminsCanAccess   = "❌ Solo admin o coordinador pueden acceder a %s."
)

func RoleErrorDocente(feature string) string {
	return fmt.Sprintf(ErrOnlyDocentesCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleEstudiante,
		RoleAcudiente,
		RoleDocente,
		RoleCoordinador,
		RoleAdmin,
	}

	// Roles que pueden capturar y publicar notas
	RolesCaptura = []string{
		RoleDocente,
		RoleCoordinador,
		RoleAdmin,
	}

	// Roles que pueden editar una calificación publicada (auditado)
	RolesEdicionAuditada = []string{
		RoleCoordinador,
		RoleAdmin,
	}
)
