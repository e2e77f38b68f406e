package usecase

import (
	"context"
	"errors"
	"strings"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
	"backoffice/internal/validator"

	"github.com/shopspring/decimal"
)

// 作成済み注文の状態変更（ステータス・入金・論理削除）。
type LedgerUsecase struct {
	tx       repo.TransactionManager
	clock    Clock
	notifier *LedgerNotifier
}

func NewLedgerUsecase(tx repo.TransactionManager, clock Clock, notifier *LedgerNotifier) *LedgerUsecase {
	return &LedgerUsecase{tx: tx, clock: clock, notifier: notifier}
}

type statusChangedPayload struct {
	OrderID string `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

type paymentUpdatedPayload struct {
	OrderID     string `json:"order_id"`
	AmountPaid  string `json:"amount_paid"`
	TotalAmount string `json:"total_amount"`
	Remaining   string `json:"remaining"`
}

type orderDeletedPayload struct {
	OrderID string `json:"order_id"`
}

// 更新対象の注文を取る。削除済みは変更させない。
func findLiveOrder(ctx context.Context, r repo.TxRepos, orderID string) (model.Order, error) {
	o, err := r.Orders().FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, notFoundError("order")
	}
	if err != nil {
		return model.Order{}, dbError(err)
	}
	if o.Deleted {
		return model.Order{}, validationError("order is deleted")
	}
	return o, nil
}

// SetStatus はラベルを置き換える。レジストリに無い名前も受け付ける。
func (u *LedgerUsecase) SetStatus(ctx context.Context, orderID, status string) (OrderOutput, error) {
	status = strings.TrimSpace(status)
	if err := validator.Required("status", status); err != nil {
		return OrderOutput{}, fromValidator(err)
	}

	var out OrderOutput
	var from string
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := findLiveOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		from = before.Status

		now := u.clock.Now()
		if err := r.Orders().UpdateStatus(ctx, orderID, status, now); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError("order")
			}
			return dbError(err)
		}
		after := before
		after.Status = status
		after.UpdatedAt = now

		if err := writeAudit(ctx, r, now, model.AuditActionUpdateOrderStatus, model.AuditResourceOrder, orderID, before, after); err != nil {
			return dbError(err)
		}
		out, err = loadOrderOutput(ctx, r, after)
		if err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, passOrDBError(err)
	}

	u.notifier.Notify(ctx, model.EventStatusChanged, orderID, statusChangedPayload{OrderID: orderID, From: from, To: status})
	return out, nil
}

// RecordPayment は入金累計を amount に置き換える（加算ではない）。
func (u *LedgerUsecase) RecordPayment(ctx context.Context, orderID string, amount decimal.Decimal) (OrderOutput, error) {
	if err := validator.Money("amount_paid", amount); err != nil {
		return OrderOutput{}, fromValidator(err)
	}

	var out OrderOutput
	var after model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := findLiveOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		if amount.GreaterThan(before.TotalAmount) {
			return validationError("amount_paid must be between 0 and %s", before.TotalAmount.StringFixed(2))
		}

		now := u.clock.Now()
		if err := r.Orders().UpdateAmountPaid(ctx, orderID, amount, now); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError("order")
			}
			return dbError(err)
		}
		after = before
		after.AmountPaid = amount
		after.UpdatedAt = now

		if err := writeAudit(ctx, r, now, model.AuditActionRecordPayment, model.AuditResourceOrder, orderID, before, after); err != nil {
			return dbError(err)
		}
		out, err = loadOrderOutput(ctx, r, after)
		if err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, passOrDBError(err)
	}

	u.notifier.Notify(ctx, model.EventPaymentUpdated, orderID, paymentUpdatedPayload{
		OrderID:     orderID,
		AmountPaid:  after.AmountPaid.StringFixed(2),
		TotalAmount: after.TotalAmount.StringFixed(2),
		Remaining:   after.Remaining().StringFixed(2),
	})
	return out, nil
}

// SoftDelete は削除フラグを立てるだけ。明細は残る。
// 既に削除済みなら何もしない。
func (u *LedgerUsecase) SoftDelete(ctx context.Context, orderID string) error {
	changed := false
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError("order")
		}
		if err != nil {
			return dbError(err)
		}
		if before.Deleted {
			return nil
		}

		now := u.clock.Now()
		if err := r.Orders().MarkDeleted(ctx, orderID, now); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError("order")
			}
			return dbError(err)
		}
		after := before
		after.Deleted = true
		after.UpdatedAt = now

		if err := writeAudit(ctx, r, now, model.AuditActionDeleteOrder, model.AuditResourceOrder, orderID, before, after); err != nil {
			return dbError(err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return passOrDBError(err)
	}

	if changed {
		u.notifier.Notify(ctx, model.EventOrderDeleted, orderID, orderDeletedPayload{OrderID: orderID})
	}
	return nil
}
