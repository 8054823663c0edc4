package controller

import (
	"pairchat-service/database"
	"pairchat-service/model"

	"github.com/gofiber/fiber/v2"
)

func UserProfile(c *fiber.Ctx) error {
	userID, ok := requestUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user := new(model.User)
	if err := database.Postgres.First(user, userID).Error; err != nil {
		return internalError(c)
	}

	return success(c, fiber.Map{
		"id":       user.ID,
		"created":  user.CreatedAt.Unix(),
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"otp":      user.Otp_enabled,
	})
}
