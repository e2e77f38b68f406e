package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
	"backoffice/internal/validator"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// 店舗設定と請求書表示。
type ShopUsecase struct {
	tx       repo.TransactionManager
	clock    Clock
	currency currency.Unit
	printer  *message.Printer
}

func NewShopUsecase(tx repo.TransactionManager, clock Clock, cur currency.Unit) *ShopUsecase {
	return &ShopUsecase{
		tx:       tx,
		clock:    clock,
		currency: cur,
		printer:  message.NewPrinter(language.English),
	}
}

type ShopInfoInput struct {
	Name          string
	Address       string
	Phone         string
	InvoiceFooter string
}

type InvoiceCustomer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type InvoiceLine struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// 請求書。金額は通貨コード付きの表示用文字列。
type InvoiceOutput struct {
	Shop       model.ShopInfo  `json:"shop"`
	Order      OrderOutput     `json:"order"`
	Customer   InvoiceCustomer `json:"customer"`
	Currency   string          `json:"currency"`
	Lines      []InvoiceLine   `json:"lines"`
	Total      string          `json:"total"`
	Paid       string          `json:"paid"`
	Remaining  string          `json:"remaining"`
	IssuedAt   time.Time       `json:"issued_at"`
	FooterText string          `json:"footer,omitempty"`
}

// 未設定なら空の設定を返す
func (u *ShopUsecase) GetShopInfo(ctx context.Context) (model.ShopInfo, error) {
	var out model.ShopInfo
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		out, err = getShopInfo(ctx, r)
		return err
	})
	if err != nil {
		return model.ShopInfo{}, dbError(err)
	}
	return out, nil
}

func getShopInfo(ctx context.Context, r repo.TxRepos) (model.ShopInfo, error) {
	info, err := r.ShopInfo().Get(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		return model.ShopInfo{ID: model.ShopInfoID}, nil
	}
	return info, err
}

func (u *ShopUsecase) UpdateShopInfo(ctx context.Context, in ShopInfoInput) (model.ShopInfo, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validator.Required("name", in.Name); err != nil {
		return model.ShopInfo{}, fromValidator(err)
	}

	var out model.ShopInfo
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cur, err := getShopInfo(ctx, r)
		if err != nil {
			return dbError(err)
		}
		next := model.ShopInfo{
			ID:            model.ShopInfoID,
			Name:          in.Name,
			Address:       strings.TrimSpace(in.Address),
			Phone:         strings.TrimSpace(in.Phone),
			InvoiceFooter: strings.TrimSpace(in.InvoiceFooter),
			UpdatedAt:     u.clock.Now(),
		}
		if err := r.ShopInfo().Save(ctx, next); err != nil {
			return dbError(err)
		}
		if err := writeAudit(ctx, r, next.UpdatedAt, model.AuditActionUpdateShopInfo, model.AuditResourceShop, "shop_info", cur, next); err != nil {
			return dbError(err)
		}
		out = next
		return nil
	})
	if err != nil {
		return model.ShopInfo{}, passOrDBError(err)
	}
	return out, nil
}

// Invoice は注文・顧客・店舗設定を組み合わせた表示用データ。削除済み注文も出せる。
func (u *ShopUsecase) Invoice(ctx context.Context, orderID string) (InvoiceOutput, error) {
	var out InvoiceOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError("order")
		}
		if err != nil {
			return dbError(err)
		}
		view, err := loadOrderOutput(ctx, r, o)
		if err != nil {
			return dbError(err)
		}
		shop, err := getShopInfo(ctx, r)
		if err != nil {
			return dbError(err)
		}

		cust := InvoiceCustomer{ID: o.CustomerID, Name: view.CustomerName}
		users, err := r.Users().FindByIDs(ctx, []string{o.CustomerID})
		if err != nil {
			return dbError(err)
		}
		if len(users) > 0 {
			c := users[0]
			cust.Phone = c.Phone
			cust.Address = c.Address
			if c.Email != nil {
				cust.Email = *c.Email
			}
		}

		lines := make([]InvoiceLine, 0, len(view.Items))
		for _, it := range view.Items {
			lines = append(lines, InvoiceLine{
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				UnitPrice:   u.formatAmount(it.UnitPrice.Decimal()),
				LineTotal:   u.formatAmount(it.LineTotal.Decimal()),
			})
		}

		out = InvoiceOutput{
			Shop:       shop,
			Order:      view,
			Customer:   cust,
			Currency:   u.currency.String(),
			Lines:      lines,
			Total:      u.formatAmount(o.TotalAmount),
			Paid:       u.formatAmount(o.AmountPaid),
			Remaining:  u.formatAmount(o.Remaining()),
			IssuedAt:   u.clock.Now(),
			FooterText: shop.InvoiceFooter,
		}
		return nil
	})
	if err != nil {
		return InvoiceOutput{}, passOrDBError(err)
	}
	return out, nil
}

// "EGP 1,234.50"
func (u *ShopUsecase) formatAmount(d decimal.Decimal) string {
	return u.printer.Sprintf("%s %v", u.currency, number.Decimal(d.InexactFloat64(), number.Scale(2)))
}
