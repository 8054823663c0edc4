package router

import (
	"pairchat-service/controller"
	"pairchat-service/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func Rest(app *fiber.App) {
	api := app.Group("/v1", logger.New())

	// Messenger
	messenger := api.Group("/messenger")
	messenger.Get("/attachment/:id", controller.MessengerAttachment)
	messenger.Post("/attachment", middleware.JWT(), middleware.OTP(), controller.MessengerAttachmentUpload)
	messenger.Get("/history/:peer", middleware.JWT(), middleware.OTP(), controller.MessengerHistory)
	messenger.Post("/message/:id/delete", middleware.JWT(), middleware.OTP(), controller.MessengerDeleteMessage)

	// Auth
	auth := api.Group("/auth")
	auth.Post("/signup", controller.AuthSignup)
	auth.Post("/signin", controller.AuthSignin)
	auth.Post("/token/renew", controller.AuthTokenRenew)
	auth.Post("/2fa/secret", middleware.JWT(), middleware.OTP(), controller.AuthOtpSecret)
	auth.Post("/2fa/verify", middleware.JWT(), middleware.OTP(), controller.AuthOtpVerify)
	auth.Post("/2fa/validate", middleware.JWT(), controller.AuthOtpValidate)
	auth.Post("/2fa/disable", middleware.JWT(), middleware.OTP(), controller.AuthOtpDisable)

	// User
	user := api.Group("/user", middleware.JWT(), middleware.OTP())
	user.Get("/profile", controller.UserProfile)

	// Admin
	admin := api.Group("/admin", middleware.JWT(), middleware.OTP(), middleware.RBAC())
	admin.Get("/users", controller.AdminUsers)
}
