package uploadController

import (
	"lms/config"
	"lms/middleware"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// UploadFile stores an uploaded asset and returns its serving URL. The rest
// of the platform only ever stores that URL.
func UploadFile(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file provided!", nil)
	}

	filename, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save file!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "File uploaded successfully!", fiber.Map{
		"name": file.Filename,
		"url":  utils.GetFileURL(filename),
	})
}
