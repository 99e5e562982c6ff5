package middleware

import (
	"github.com/gofiber/fiber/v2"

	authutils "asset-tools-backend/lib/utils/auth-utils"
	"asset-tools-backend/models"
	apimodels "asset-tools-backend/models/api"
)

// GetCompanyCode возвращает код компании из токена,
// код определяет базу данных арендатора
func GetCompanyCode(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if company, exist := claims["company"]; exist {
		if code, ok := company.(string); ok {
			return code
		}
	}
	return ""
}

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if id, ok := sub.(string); ok {
			return id
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}

func CompanyAdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserRole(ctx) != models.CompanyAdminRole {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

// CompanyRequired отклоняет токены без кода компании,
// без него невозможно выбрать базу данных
func CompanyRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetCompanyCode(ctx) == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("компания не определена"))
		}
		return ctx.Next()
	}
}
