// file: internals/middlewares/auth/jwt_auth.go
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helperAuth "github.com/NaomiC0desArt/SIRGA-sub001/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // usar cookie access_token si no hay Bearer
}

// AuthJWT valida el token y deja en Locals la identidad que el core trata
// como opaca: user_id, user_nombre, user_rol (y docente_id si viene).
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret es obligatorio")
	}

	return func(c *fiber.Ctx) error {
		// 1) Tomar token: Authorization: Bearer xxx (o cookie si se permite)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Parse + verificación de algoritmo
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		c.Locals(helperAuth.LocJWTClaims, claims)

		// === HIDRATAR LOCALS QUE ESPERAN LOS HELPERS ===

		switch {
		case strClaim(claims, "id") != "":
			c.Locals(helperAuth.LocUserID, strClaim(claims, "id"))
		case strClaim(claims, "sub") != "":
			c.Locals(helperAuth.LocUserID, strClaim(claims, "sub"))
		case strClaim(claims, "user_id") != "":
			c.Locals(helperAuth.LocUserID, strClaim(claims, "user_id"))
		}

		if n := strClaim(claims, "nombre"); n != "" {
			c.Locals(helperAuth.LocUserNombre, n)
		}
		if r := strClaim(claims, "rol"); r != "" {
			c.Locals(helperAuth.LocUserRol, r)
		}
		if d := strClaim(claims, "docente_id"); d != "" {
			c.Locals(helperAuth.LocDocenteID, d)
		}

		return c.Next()
	}
}

// RequireRoles corta con 403 si el rol del token no está en la lista.
func RequireRoles(roles ...string) fiber.Handler {
	permitidos := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		permitidos[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		rol, _ := c.Locals(helperAuth.LocUserRol).(string)
		if _, ok := permitidos[strings.ToLower(strings.TrimSpace(rol))]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rol sin permiso para esta operación")
		}
		return c.Next()
	}
}

func strClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
