package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// AttachmentID parses and stores the :attachment_id route param
func AttachmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		attachmentID, err := strconv.Atoi(c.Params("attachment_id"))
		if err != nil || attachmentID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attachment ID!", nil)
		}

		c.Locals("attachmentID", attachmentID)
		return c.Next()
	}
}

func CreateAttachment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			URL  string `json:"url"`
			Name string `json:"name"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.URL) == "" {
			errors["url"] = "URL is required!"
		} else if !strings.HasPrefix(reqData.URL, "/") && validate.Var(reqData.URL, "url") != nil {
			errors["url"] = "Invalid URL!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAttachment", reqData)
		return c.Next()
	}
}
