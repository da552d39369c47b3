package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"worthy-waste/domain"
	"worthy-waste/internal/api/presenters"
	"worthy-waste/pkg/marketplace"
)

type (
	MarketplaceHandler interface {
		GetBuyers(c *fiber.Ctx) error
		Sell(c *fiber.Ctx) error
		GetTransactions(c *fiber.Ctx) error
		UpdateTransactionStatus(c *fiber.Ctx) error
		GetTransactionImpact(c *fiber.Ctx) error
		CreatePayment(c *fiber.Ctx) error
	}

	marketplaceHandler struct {
		marketplaceService marketplace.MarketplaceService
		validator          *validator.Validate
	}
)

func NewMarketplaceHandler(marketplaceService marketplace.MarketplaceService, validator *validator.Validate) MarketplaceHandler {
	return &marketplaceHandler{
		marketplaceService: marketplaceService,
		validator:          validator,
	}
}

func (h *marketplaceHandler) GetBuyers(c *fiber.Ctx) error {
	filter := domain.BuyerFilter{
		WasteType: c.Query("wasteType"),
		Location:  c.Query("location"),
	}

	var err error
	if filter.MinRate, err = rateQuery(c, "minRate"); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetBuyers, err)
	}
	if filter.MaxRate, err = rateQuery(c, "maxRate"); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetBuyers, err)
	}

	return presenters.SuccessResponse(c, h.marketplaceService.GetBuyers(filter), fiber.StatusOK, domain.MessageSuccessGetBuyers)
}

func (h *marketplaceHandler) Sell(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SellRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateTransaction, err)
	}

	res, err := h.marketplaceService.Sell(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateTransaction, err)
	}

	message := domain.MessageSuccessCreateSale
	if req.Type == domain.TransactionTypeDonation {
		message = domain.MessageSuccessCreateDonation
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, message)
}

func (h *marketplaceHandler) GetTransactions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	filter := domain.TransactionFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}

	res, err := h.marketplaceService.GetTransactions(c.Context(), userID, filter)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetTransactions, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTransactions)
}

func (h *marketplaceHandler) UpdateTransactionStatus(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateTransactionStatusRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTransactionStatus, err)
	}

	res, err := h.marketplaceService.UpdateStatus(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateTransactionStatus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateTransactionStatus)
}

func (h *marketplaceHandler) GetTransactionImpact(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.marketplaceService.GetTransactionImpact(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetTransactionImpact, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTransactionImpact)
}

func (h *marketplaceHandler) CreatePayment(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.marketplaceService.CreatePayment(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreatePayment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePayment)
}

func rateQuery(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.ErrInvalidRate
	}
	return &v, nil
}
