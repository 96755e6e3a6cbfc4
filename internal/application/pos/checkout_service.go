package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/audit"
	"github.com/retailpos/backend/internal/domain/printing"
	"github.com/retailpos/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// CheckoutService finalizes sales. A completed sale persists an order,
// records an activity entry, stages a receipt, and ends the session. If
// the order cannot be persisted the sale aborts and the session keeps
// its cart untouched; audit and receipt failures are logged but do not
// roll the sale back.
type CheckoutService struct {
	sessions  *SessionService
	orders    trade.OrderRepository
	auditor   audit.Recorder
	receipts  printing.Stage
	logger    *zap.Logger
	storeName string
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(sessions *SessionService, orders trade.OrderRepository, auditor audit.Recorder, receipts printing.Stage, logger *zap.Logger, storeName string) *CheckoutService {
	return &CheckoutService{
		sessions:  sessions,
		orders:    orders,
		auditor:   auditor,
		receipts:  receipts,
		logger:    logger,
		storeName: storeName,
	}
}

// CompleteSale finalizes the active session's sale
func (s *CheckoutService) CompleteSale(ctx context.Context) (*CheckoutResponse, error) {
	session, err := s.sessions.ActiveSession()
	if err != nil {
		return nil, err
	}

	orderNumber, err := s.orders.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewOrderFromSession(orderNumber, session)
	if err != nil {
		return nil, err
	}
	order.ClearDomainEvents()

	if err := s.orders.Save(ctx, order); err != nil {
		s.logger.Error("order persistence failed, sale aborted",
			zap.String("order_number", orderNumber),
			zap.String("session_id", session.ID.String()),
			zap.Error(err))
		return nil, err
	}

	entry := audit.NewActivityLog(
		audit.ActivitySaleCompleted,
		fmt.Sprintf("Sale completed for %s (%d items)", order.CustomerName, order.ItemCount()),
		order.OrderNumber,
		order.TotalAmount,
	)
	if err := s.auditor.Record(ctx, entry); err != nil {
		s.logger.Warn("activity log write failed",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}

	receiptStaged := true
	if err := s.receipts.Put(ctx, s.buildReceipt(order)); err != nil {
		receiptStaged = false
		s.logger.Warn("receipt staging failed",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}

	if err := s.sessions.End(ctx, session.ID); err != nil {
		s.logger.Warn("session close after sale failed",
			zap.String("session_id", session.ID.String()), zap.Error(err))
	}

	return &CheckoutResponse{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.CustomerName,
		TotalAmount:   order.TotalAmount.StringFixed(2),
		ItemCount:     order.ItemCount(),
		ReceiptStaged: receiptStaged,
	}, nil
}

func (s *CheckoutService) buildReceipt(order *trade.Order) *printing.ReceiptPayload {
	lines := make([]printing.ReceiptLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, printing.ReceiptLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	return &printing.ReceiptPayload{
		ID:           uuid.New(),
		OrderNumber:  order.OrderNumber,
		CustomerName: order.CustomerName,
		Lines:        lines,
		TotalAmount:  order.TotalAmount,
		StoreName:    s.storeName,
		IssuedAt:     time.Now(),
	}
}
