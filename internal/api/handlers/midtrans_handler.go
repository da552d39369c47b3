package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"worthy-waste/domain"
	"worthy-waste/internal/api/presenters"
	"worthy-waste/pkg/marketplace"
)

type (
	MidtransHandler interface {
		MidtransWebhookHandler(c *fiber.Ctx) error
	}

	midtransHandler struct {
		marketplaceService marketplace.MarketplaceService
	}
)

func NewMidtransHandler(marketplaceService marketplace.MarketplaceService) MidtransHandler {
	return &midtransHandler{marketplaceService: marketplaceService}
}

func (h *midtransHandler) MidtransWebhookHandler(c *fiber.Ctx) error {
	req := new(domain.MidtransWebhookRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.marketplaceService.HandlePaymentNotification(c.Context(), *req); err != nil {
		log.Warnf("midtrans webhook for order %s: %v", req.OrderID, err)
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedWebhook, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessWebhook)
}
