// file: internals/helpers/auth/actor.go
package helperAuth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* ========================================================
   Identidad del actor (colaborador externo)
   El middleware JWT hidrata estos Locals; el core los trata
   como strings opacos y los guarda tal cual en la auditoría.
======================================================== */

const (
	LocUserID     = "user_id"
	LocUserNombre = "user_nombre"
	LocUserRol    = "user_rol"
	LocDocenteID  = "docente_id"
	LocJWTClaims  = "jwt_claims"
)

var ErrSinActor = errors.New("no hay identidad de usuario en el token")

// Actor: quién ejecuta la operación, para auditoría y autoría.
type Actor struct {
	ID     uuid.UUID
	Nombre string
	Rol    string
}

// ActorFromToken arma el Actor desde los Locals del request.
func ActorFromToken(c *fiber.Ctx) (Actor, error) {
	idStr, _ := c.Locals(LocUserID).(string)
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return Actor{}, ErrSinActor
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return Actor{}, ErrSinActor
	}

	nombre, _ := c.Locals(LocUserNombre).(string)
	rol, _ := c.Locals(LocUserRol).(string)

	return Actor{
		ID:     id,
		Nombre: strings.TrimSpace(nombre),
		Rol:    strings.TrimSpace(rol),
	}, nil
}

// DocenteIDFromToken: id de docente si el token lo trae (captura docente).
// Si no viene, cae al user_id (admins capturando en nombre propio).
func DocenteIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	if s, ok := c.Locals(LocDocenteID).(string); ok {
		if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
			return id, nil
		}
	}
	actor, err := ActorFromToken(c)
	if err != nil {
		return uuid.Nil, err
	}
	return actor.ID, nil
}
