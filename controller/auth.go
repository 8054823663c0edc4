package controller

import (
	"context"
	"fmt"
	"net/mail"
	"strconv"

	"pairchat-service/config"
	"pairchat-service/database"
	"pairchat-service/model"
	"pairchat-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
)

type AuthLoginInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type AuthRenewTokenInput struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthOtpSecretInput struct {
	Password string `json:"password"`
}

type AuthOtpTokenInput struct {
	Token string `json:"token"`
}

type AuthOtpDisableInput struct {
	Password string `json:"password"`
	Token    string `json:"token"`
}

func tokenResponse(c *fiber.Ctx, id string, otp bool) error {
	tokens, err := utils.GenerateTokens(id, otp)
	if err != nil {
		return internalError(c)
	}

	// Track the active refresh token so each one is single-use.
	if err := database.Redis[database.TokenDB].
		Set(context.Background(), id, tokens.Refresh, 0).Err(); err != nil {
		return internalError(c)
	}

	return success(c, fiber.Map{
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
		"2fa":     otp,
	})
}

func AuthSignup(c *fiber.Ctx) error {
	user := new(model.User)
	if err := c.BodyParser(user); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	if count := database.Postgres.
		Where(&model.User{Email: user.Email}).
		First(new(model.User)).
		RowsAffected; count > 0 {
		return fail(c, fiber.StatusBadRequest, "Email is already registered")
	}

	if count := database.Postgres.
		Where(&model.User{Username: user.Username}).
		First(new(model.User)).
		RowsAffected; count > 0 {
		return fail(c, fiber.StatusBadRequest, "Username is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), 14)
	if err != nil {
		return internalError(c)
	}
	user.Password = string(hash)

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      config.Config("OTP_ISSUER"),
		AccountName: user.Email,
		SecretSize:  15,
	})
	if err != nil {
		return internalError(c)
	}
	user.Otp_secret = key.Secret()
	user.Role = "user"

	if err := database.Postgres.Create(&user).Error; err != nil {
		return internalError(c)
	}

	database.Casbin().AddGroupingPolicy(fmt.Sprint(user.ID), user.Role)

	return success(c, fiber.Map{
		"id": user.ID,
	})
}

func AuthSignin(c *fiber.Ctx) error {
	input := new(AuthLoginInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	// The login field takes either an email address or a username.
	user := new(model.User)
	var err error
	if _, errParse := mail.ParseAddress(input.Login); errParse == nil {
		err = database.Postgres.Where(&model.User{Email: input.Login}).First(user).Error
	} else {
		err = database.Postgres.Where(&model.User{Username: input.Login}).First(user).Error
	}
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid login or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid login or password")
	}

	id := strconv.FormatUint(uint64(user.ID), 10)
	return tokenResponse(c, id, user.Otp_enabled)
}

func AuthTokenRenew(c *fiber.Ctx) error {
	renew := new(AuthRenewTokenInput)
	if err := c.BodyParser(renew); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	claims, err := utils.CheckAndExtractTokenMetadata(renew.RefreshToken, "JWT_REFRESH_KEY")
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid token")
	}

	active, err := database.Redis[database.TokenDB].
		Get(context.Background(), claims.Id).Result()
	if err != nil {
		return internalError(c)
	}
	if active != renew.RefreshToken {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized, your refresh token was already used")
	}

	return tokenResponse(c, claims.Id, claims.Otp)
}

func AuthOtpSecret(c *fiber.Ctx) error {
	secret := new(AuthOtpSecretInput)
	if err := c.BodyParser(secret); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	userID, ok := requestUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user := new(model.User)
	if err := database.Postgres.First(user, userID).Error; err != nil {
		return internalError(c)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(secret.Password)); err != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid password")
	}

	return success(c, fiber.Map{
		"secret": user.Otp_secret,
		"url": fmt.Sprintf("otpauth://totp/%s:%s?algorithm=SHA1&digits=6&issuer=%s&period=30&secret=%s",
			config.Config("OTP_ISSUER"),
			user.Email,
			config.Config("OTP_ISSUER"),
			user.Otp_secret,
		),
	})
}

func AuthOtpVerify(c *fiber.Ctx) error {
	verify := new(AuthOtpTokenInput)
	if err := c.BodyParser(verify); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	userID, ok := requestUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user := new(model.User)
	if err := database.Postgres.First(user, userID).Error; err != nil {
		return internalError(c)
	}

	if user.Otp_enabled {
		return fail(c, fiber.StatusUnauthorized, "Verification has already been performed earlier")
	}

	if !totp.Validate(verify.Token, user.Otp_secret) {
		return fail(c, fiber.StatusUnauthorized, "Invalid token")
	}

	user.Otp_enabled = true
	database.Postgres.Save(user)

	return success(c, nil)
}

func AuthOtpValidate(c *fiber.Ctx) error {
	validate := new(AuthOtpTokenInput)
	if err := c.BodyParser(validate); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	userID, ok := requestUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user := new(model.User)
	if err := database.Postgres.First(user, userID).Error; err != nil {
		return internalError(c)
	}

	if !user.Otp_enabled {
		return fail(c, fiber.StatusBadRequest, "2FA has been disabled")
	}

	if !totp.Validate(validate.Token, user.Otp_secret) {
		return fail(c, fiber.StatusUnauthorized, "Invalid token")
	}

	id := strconv.FormatUint(uint64(user.ID), 10)
	return tokenResponse(c, id, false)
}

func AuthOtpDisable(c *fiber.Ctx) error {
	disable := new(AuthOtpDisableInput)
	if err := c.BodyParser(disable); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	userID, ok := requestUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user := new(model.User)
	if err := database.Postgres.First(user, userID).Error; err != nil {
		return internalError(c)
	}

	if !user.Otp_enabled {
		return fail(c, fiber.StatusBadRequest, "2FA not enabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(disable.Password)); err != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid password")
	}

	if !totp.Validate(disable.Token, user.Otp_secret) {
		return fail(c, fiber.StatusUnauthorized, "Invalid token")
	}

	user.Otp_enabled = false
	database.Postgres.Save(user)

	return success(c, nil)
}
