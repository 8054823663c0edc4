package controller

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"pairchat-service/chat"
	"pairchat-service/database"
	"pairchat-service/model"

	"github.com/gofiber/fiber/v2"
)

// Chat is the conversation service behind the REST messenger surface,
// injected at boot.
var Chat *chat.Service

func Init(svc *chat.Service) {
	Chat = svc
}

type MessengerDeleteInput struct {
	DeleteType string `json:"deleteType"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, chat.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, chat.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, chat.ErrNotFound), errors.Is(err, chat.ErrNotFoundOrForbidden):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// MessengerHistory returns the requesting user's view of the conversation
// with :peer, ordered by creation time.
func MessengerHistory(c *fiber.Ctx) error {
	userID, ok := requestUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	peer, err := c.ParamsInt("peer")
	if err != nil || peer <= 0 {
		return fail(c, fiber.StatusBadRequest, "Invalid peer id")
	}

	messages, err := Chat.History(userID, uint(peer))
	if err != nil {
		return internalError(c)
	}

	return success(c, fiber.Map{
		"messages": messages,
	})
}

// MessengerDeleteMessage mirrors the socket delete_message event over REST.
func MessengerDeleteMessage(c *fiber.Ctx) error {
	userID, ok := requestUserID(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	messageID, err := c.ParamsInt("id")
	if err != nil || messageID <= 0 {
		return fail(c, fiber.StatusBadRequest, "Invalid message id")
	}

	input := new(MessengerDeleteInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	switch input.DeleteType {
	case chat.DeleteForEveryone:
		err = Chat.DeleteForEveryone(uint(messageID), userID)
	default:
		err = Chat.DeleteForMe(uint(messageID), userID)
	}
	if err != nil {
		return fail(c, statusFor(err), err.Error())
	}

	return success(c, nil)
}

// MessengerAttachmentUpload stores an uploaded file and issues the URL and
// size metadata that rides along with attachment messages.
func MessengerAttachmentUpload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Missing file")
	}

	file, err := header.Open()
	if err != nil {
		return internalError(c)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return internalError(c)
	}

	attachment := &model.Attachment{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Data:     base64.StdEncoding.EncodeToString(raw),
	}
	if err := database.Postgres.Create(attachment).Error; err != nil {
		return internalError(c)
	}

	return success(c, fiber.Map{
		"id":       attachment.ID,
		"url":      fmt.Sprintf("/v1/messenger/attachment/%d", attachment.ID),
		"size":     attachment.Size,
		"mimeType": attachment.MimeType,
	})
}

// MessengerAttachment serves a stored attachment back as raw bytes.
func MessengerAttachment(c *fiber.Ctx) error {
	attachment := new(model.Attachment)
	if err := database.Postgres.First(attachment, c.AllParams()["id"]).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Attachment not found")
	}

	data, err := base64.StdEncoding.DecodeString(attachment.Data)
	if err != nil {
		return internalError(c)
	}

	c.Set("Content-Type", attachment.MimeType)
	return c.Send(data)
}
