package handlers

import (
	"github.com/gofiber/fiber/v2"

	"worthy-waste/domain"
	"worthy-waste/internal/api/presenters"
	"worthy-waste/pkg/classify"
)

type (
	ClassifyHandler interface {
		ClassifyImage(c *fiber.Ctx) error
		GetCategories(c *fiber.Ctx) error
		DeleteImage(c *fiber.Ctx) error
	}

	classifyHandler struct {
		classifyService classify.ClassifyService
	}
)

func NewClassifyHandler(classifyService classify.ClassifyService) ClassifyHandler {
	return &classifyHandler{classifyService: classifyService}
}

func (h *classifyHandler) ClassifyImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedClassifyImage, domain.ErrImageRequired)
	}

	res, err := h.classifyService.ClassifyImage(c.Context(), file, c.FormValue("note"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedClassifyImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessClassifyImage)
}

func (h *classifyHandler) GetCategories(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, h.classifyService.GetCategories(), fiber.StatusOK, domain.MessageSuccessGetCategories)
}

func (h *classifyHandler) DeleteImage(c *fiber.Ctx) error {
	if err := h.classifyService.DeleteImage(c.Context(), c.Params("filename")); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteImage, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteImage)
}
