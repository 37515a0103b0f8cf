// Package grpcsvc публикует чекаут как gRPC сервис checkout.v1.CheckoutService.
package grpcsvc

import (
	"context"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/service/checkout"
	checkoutv1 "github.com/vladislavdragonenkov/checkout/proto/checkout/v1"
)

// ServiceName — полное имя gRPC сервиса чекаута (для grpc health).
var ServiceName = checkoutv1.CheckoutService_ServiceDesc.ServiceName

// CheckoutService реализует checkoutv1.CheckoutServiceServer поверх оркестратора чекаута.
type CheckoutService struct {
	checkoutv1.UnimplementedCheckoutServiceServer

	checkout checkout.Finalizer
	logger   *log.Entry
}

// NewCheckoutService конструирует сервис с зависимостями.
func NewCheckoutService(finalizer checkout.Finalizer, logger *log.Entry) *CheckoutService {
	if logger == nil {
		logger = log.New().WithField("component", "grpc-checkout")
	}
	return &CheckoutService{checkout: finalizer, logger: logger}
}

// Register регистрирует сервис на gRPC сервере.
func (s *CheckoutService) Register(registrar grpc.ServiceRegistrar) {
	checkoutv1.RegisterCheckoutServiceServer(registrar, s)
}

// FinalizeCheckout запускает чекаут корзины клиента.
// В proto3 нулевой id неотличим от незаданного, поэтому 0 отклоняется.
func (s *CheckoutService) FinalizeCheckout(ctx context.Context, req *checkoutv1.FinalizeCheckoutRequest) (*checkoutv1.FinalizeCheckoutResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.GetCartId() == 0 {
		return nil, status.Error(codes.InvalidArgument, "cart_id is required")
	}
	if req.GetCustomerId() == 0 {
		return nil, status.Error(codes.InvalidArgument, "customer_id is required")
	}

	result, err := s.checkout.FinalizeCheckout(ctx, req.GetCartId(), req.GetCustomerId())
	if err != nil {
		if domain.KindOf(err) == "" {
			s.logger.WithError(err).WithFields(log.Fields{
				"cart_id":     req.GetCartId(),
				"customer_id": req.GetCustomerId(),
			}).Error("checkout failed with internal error")
		}
		return nil, StatusFromError(err)
	}

	return &checkoutv1.FinalizeCheckoutResponse{
		Success:       result.Success,
		TransactionId: result.TransactionID,
		Message:       result.Message,
		Total:         result.Total.StringFixed(2),
	}, nil
}

// CodeForError сопоставляет вид ошибки с gRPC кодом.
func CodeForError(err error) codes.Code {
	switch domain.KindOf(err) {
	case domain.KindInvalidInput:
		return codes.InvalidArgument
	case domain.KindNotFound:
		return codes.NotFound
	case domain.KindDomain:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// StatusFromError превращает ошибку чекаута в gRPC статус. Внутренние детали наружу не уходят.
func StatusFromError(err error) error {
	code := CodeForError(err)
	if code == codes.Internal {
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, err.Error())
}
