package controller

import (
	"pairchat-service/database"
	"pairchat-service/model"

	"github.com/gofiber/fiber/v2"
)

// AdminUsers lists registered accounts. Reachable only through the RBAC
// guard.
func AdminUsers(c *fiber.Ctx) error {
	users := []model.User{}
	if err := database.Postgres.Order("id asc").Find(&users).Error; err != nil {
		return internalError(c)
	}

	list := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		list = append(list, fiber.Map{
			"id":       user.ID,
			"created":  user.CreatedAt.Unix(),
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
			"otp":      user.Otp_enabled,
		})
	}

	return success(c, fiber.Map{
		"users": list,
	})
}
