package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
}

// AuthJWT memverifikasi Bearer token dan mengisi Locals:
// user_id, role, jwt_claims. Auth/session management sendiri ada di service
// terpisah; backend ini hanya butuh identitas untuk audit (created_by dkk).
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil token: Authorization: Bearer xxx (atau cookie jika diizinkan)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Parse + verifikasi algoritma
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
		c.Locals("jwt_claims", claims)

		// user_id: ambil id/sub/user_id dalam urutan preferensi
		switch {
		case strClaim(claims, "id") != "":
			c.Locals("user_id", strClaim(claims, "id"))
		case strClaim(claims, "sub") != "":
			c.Locals("user_id", strClaim(claims, "sub"))
		case strClaim(claims, "user_id") != "":
			c.Locals("user_id", strClaim(claims, "user_id"))
		}

		if r := strClaim(claims, "role"); r != "" {
			c.Locals("role", strings.ToLower(r))
		} else {
			c.Locals("role", "user")
		}

		return c.Next()
	}
}

// RequireRoles menolak request kalau role pada token tidak ada di whitelist.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := map[string]struct{}{}
	for _, r := range roles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if _, ok := allowed[strings.ToLower(strings.TrimSpace(role))]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Access denied for role: "+role)
		}
		return c.Next()
	}
}

// util kecil untuk ambil string claim
func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
