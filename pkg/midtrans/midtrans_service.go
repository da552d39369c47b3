package midtrans

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"

	"worthy-waste/domain"
	"worthy-waste/internal/utils"
)

var (
	ErrInvalidSignature = errors.New("invalid midtrans signature")
	ErrGateway          = errors.New("payment gateway error")
)

type (
	PaymentRequest struct {
		OrderID string
		Amount  int64
		Name    string
		Email   string
		Phone   string
	}

	MidtransService interface {
		CreateSnapPayment(req PaymentRequest) (domain.PaymentResponse, error)
		// CheckStatus asks the Core API for the authoritative status of an
		// order and maps it onto a payment status.
		CheckStatus(orderID string) (string, error)
		VerifySignature(req domain.MidtransWebhookRequest) error
	}

	midtransService struct {
		serverKey string
		snap      snap.Client
		core      coreapi.Client
	}
)

func NewMidtransService() MidtransService {
	return NewMidtransServiceWithKey(utils.GetConfig("SERVER_KEY"), utils.GetConfig("IsProd") == "true")
}

func NewMidtransServiceWithKey(serverKey string, isProd bool) MidtransService {
	env := midtrans.Sandbox
	if isProd {
		env = midtrans.Production
	}

	s := &midtransService{serverKey: serverKey}
	s.snap.New(serverKey, env)
	s.core.New(serverKey, env)
	return s
}

func (s *midtransService) CreateSnapPayment(req PaymentRequest) (domain.PaymentResponse, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.Name,
			Email: req.Email,
			Phone: req.Phone,
		},
	}

	res, mErr := s.snap.CreateTransaction(snapReq)
	if mErr != nil {
		log.Errorf("midtrans snap %s: %s", req.OrderID, mErr.GetMessage())
		return domain.PaymentResponse{}, fmt.Errorf("%w: %s", ErrGateway, mErr.GetMessage())
	}

	return domain.PaymentResponse{
		TransactionID: req.OrderID,
		Token:         res.Token,
		RedirectURL:   res.RedirectURL,
	}, nil
}

func (s *midtransService) CheckStatus(orderID string) (string, error) {
	res, mErr := s.core.CheckTransaction(orderID)
	if mErr != nil {
		log.Errorf("midtrans status %s: %s", orderID, mErr.GetMessage())
		return "", fmt.Errorf("%w: %s", ErrGateway, mErr.GetMessage())
	}
	return PaymentStatus(res.TransactionStatus, res.FraudStatus), nil
}

// VerifySignature checks signature_key = sha512(order_id+status_code+gross_amount+server_key).
func (s *midtransService) VerifySignature(req domain.MidtransWebhookRequest) error {
	want := Signature(req.OrderID, req.StatusCode, req.GrossAmount, s.serverKey)
	if subtle.ConstantTimeCompare([]byte(want), []byte(req.SignatureKey)) != 1 {
		return ErrInvalidSignature
	}
	return nil
}

func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// PaymentStatus maps a Midtrans transaction status onto paid, failed or pending.
func PaymentStatus(transactionStatus, fraudStatus string) string {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "accept" || fraudStatus == "" {
			return domain.PaymentStatusPaid
		}
		return domain.PaymentStatusPending
	case "settlement":
		return domain.PaymentStatusPaid
	case "deny", "cancel", "expire", "failure":
		return domain.PaymentStatusFailed
	default:
		return domain.PaymentStatusPending
	}
}
