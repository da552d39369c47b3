package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"worthy-waste/domain"
	"worthy-waste/pkg/midtrans"
)

var (
	notFoundErrors = []error{
		domain.ErrUserNotFound,
		domain.ErrFoodItemNotFound,
		domain.ErrTransactionNotFound,
		domain.ErrImageNotFound,
	}
	forbiddenErrors = []error{
		domain.ErrUserNotAllowed,
		domain.ErrUnauthorizedAccess,
		domain.ErrTransactionForbidden,
		midtrans.ErrInvalidSignature,
	}
	badRequestErrors = []error{
		domain.ErrParseUUID,
		domain.ErrInvalidPhone,
		domain.ErrInvalidPurchaseDate,
		domain.ErrInvalidExpiryDate,
		domain.ErrExpiryBeforePurchase,
		domain.ErrInvalidQuantity,
		domain.ErrInvalidImageFormat,
		domain.ErrImageRequired,
		domain.ErrInvalidStatusTransition,
		domain.ErrInvalidScheduledDate,
		domain.ErrInvalidCompletedDate,
		domain.ErrInvalidRate,
		domain.ErrPaymentNotAllowed,
		domain.ErrInvalidLeaderboardMetric,
	}
)

// statusFor maps service errors onto HTTP status codes. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case isAny(err, notFoundErrors):
		return fiber.StatusNotFound
	case isAny(err, forbiddenErrors):
		return fiber.StatusForbidden
	case isAny(err, badRequestErrors):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrImageTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrPaymentAlreadyCreated):
		return fiber.StatusConflict
	case errors.Is(err, midtrans.ErrGateway):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
