package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
	"backoffice/internal/validator"

	"github.com/shopspring/decimal"
)

// 注文の作成（Order Builder）と参照。
type OrderUsecase struct {
	tx       repo.TransactionManager
	clock    Clock
	ids      IDGenerator
	notifier *LedgerNotifier
}

func NewOrderUsecase(tx repo.TransactionManager, clock Clock, ids IDGenerator, notifier *LedgerNotifier) *OrderUsecase {
	return &OrderUsecase{tx: tx, clock: clock, ids: ids, notifier: notifier}
}

type OrderLineInput struct {
	ProductID string
	Quantity  int64
}

type BuildOrderInput struct {
	CustomerID string
	Lines      []OrderLineInput
	// 空ならレジストリ先頭のステータス
	InitialStatus string
	Deposit       decimal.Decimal
}

type ListOrdersInput struct {
	ExcludeDeleted bool
	CustomerID     string
	Status         string
}

type orderCreatedPayload struct {
	OrderID     string `json:"order_id"`
	CustomerID  string `json:"customer_id"`
	TotalAmount string `json:"total_amount"`
	AmountPaid  string `json:"amount_paid"`
	Status      string `json:"status"`
}

// 同じ商品の行は数量を合算し、最初に出てきた位置に残す。
func mergeLines(lines []OrderLineInput) ([]OrderLineInput, error) {
	merged := make([]OrderLineInput, 0, len(lines))
	pos := make(map[string]int, len(lines))
	for _, l := range lines {
		id := strings.TrimSpace(l.ProductID)
		if id == "" {
			return nil, validationError("product_id required")
		}
		if l.Quantity <= 0 {
			return nil, validationError("quantity must be > 0")
		}
		if i, ok := pos[id]; ok {
			if merged[i].Quantity > math.MaxInt64-l.Quantity {
				return nil, validationError("quantity too large")
			}
			merged[i].Quantity += l.Quantity
			continue
		}
		pos[id] = len(merged)
		merged = append(merged, OrderLineInput{ProductID: id, Quantity: l.Quantity})
	}
	return merged, nil
}

// Build は現在の商品価格から注文を組み立てて保存する。
// 注文と明細は1トランザクションで書き、途中で失敗したら何も残らない。
// 在庫は減らさない。
func (u *OrderUsecase) Build(ctx context.Context, in BuildOrderInput) (OrderOutput, error) {
	customerID := strings.TrimSpace(in.CustomerID)
	if customerID == "" {
		return OrderOutput{}, validationError("customer_id required")
	}
	if len(in.Lines) == 0 {
		return OrderOutput{}, validationError("at least one line required")
	}
	lines, err := mergeLines(in.Lines)
	if err != nil {
		return OrderOutput{}, err
	}
	if err := validator.Money("deposit", in.Deposit); err != nil {
		return OrderOutput{}, fromValidator(err)
	}

	var out OrderOutput
	var created model.Order

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := u.clock.Now()

		//単価スナップショット
		items := make([]model.OrderItem, 0, len(lines))
		total := decimal.Zero
		for i, l := range lines {
			p, err := r.Products().FindByID(ctx, l.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError("product " + l.ProductID)
			}
			if err != nil {
				return dbError(err)
			}
			it := model.OrderItem{
				Position:            i,
				ProductID:           p.ID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            l.Quantity,
				CreatedAt:           now,
			}
			items = append(items, it)
			total = total.Add(it.LineTotal())
		}

		//頭金は [0, total]。丸めずにエラー
		if in.Deposit.GreaterThan(total) {
			return validationError("deposit must be between 0 and %s", total.StringFixed(2))
		}

		status := strings.TrimSpace(in.InitialStatus)
		if status == "" {
			statuses, err := r.OrderStatuses().List(ctx)
			if err != nil {
				return dbError(err)
			}
			if len(statuses) == 0 {
				return validationError("initial status required: no order status registered")
			}
			status = statuses[0].Name
		}

		o, err := r.Orders().Create(ctx, model.Order{
			ID:          u.ids.NewID(),
			CustomerID:  customerID,
			TotalAmount: total,
			AmountPaid:  in.Deposit,
			Status:      status,
			Deleted:     false,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return dbError(err)
		}
		if err := r.OrderItems().CreateBulk(ctx, o.ID, items); err != nil {
			return dbError(err)
		}

		if err := writeAudit(ctx, r, now, model.AuditActionCreateOrder, model.AuditResourceOrder, o.ID, nil, o); err != nil {
			return dbError(err)
		}

		out, err = loadOrderOutput(ctx, r, o)
		if err != nil {
			return dbError(err)
		}
		created = o
		return nil
	})
	if err != nil {
		return OrderOutput{}, passOrDBError(err)
	}

	u.notifier.Notify(ctx, model.EventOrderCreated, created.ID, orderCreatedPayload{
		OrderID:     created.ID,
		CustomerID:  created.CustomerID,
		TotalAmount: created.TotalAmount.StringFixed(2),
		AmountPaid:  created.AmountPaid.StringFixed(2),
		Status:      created.Status,
	})
	return out, nil
}

func (u *OrderUsecase) Get(ctx context.Context, orderID string) (OrderOutput, error) {
	if strings.TrimSpace(orderID) == "" {
		return OrderOutput{}, validationError("invalid id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError("order")
		}
		if err != nil {
			return dbError(err)
		}
		out, err = loadOrderOutput(ctx, r, o)
		if err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, passOrDBError(err)
	}
	return out, nil
}

// List は削除済みも含めて新しい順に返す（ExcludeDeleted で除外）。
func (u *OrderUsecase) List(ctx context.Context, in ListOrdersInput) ([]OrderOutput, error) {
	var outs []OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().List(ctx, repo.OrderListFilter{
			IncludeDeleted: !in.ExcludeDeleted,
			CustomerID:     strings.TrimSpace(in.CustomerID),
			Status:         strings.TrimSpace(in.Status),
		})
		if err != nil {
			return err
		}
		outs, err = loadOrderOutputs(ctx, r, orders)
		return err
	})
	if err != nil {
		return []OrderOutput{}, dbError(err)
	}
	return outs, nil
}
