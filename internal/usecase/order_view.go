package usecase

import (
	"context"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"github.com/samber/lo"
)

type OrderItemOutput struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   Money  `json:"unit_price"`
	Quantity    int64  `json:"quantity"`
	LineTotal   Money  `json:"line_total"`
}

// 表示用の注文。顧客名・商品名・ステータス色は読み取り時に結合する。
type OrderOutput struct {
	ID           string            `json:"id"`
	CustomerID   string            `json:"customer_id"`
	CustomerName string            `json:"customer_name,omitempty"`
	Items        []OrderItemOutput `json:"items"`
	TotalAmount  Money             `json:"total_amount"`
	AmountPaid   Money             `json:"amount_paid"`
	Remaining    Money             `json:"remaining"`
	Status       string            `json:"status"`
	StatusColor  model.StatusColor `json:"status_color,omitempty"`
	Deleted      bool              `json:"deleted"`
	CreatedAt    time.Time         `json:"created_at"`
}

// 注文の一覧に明細・顧客・商品・ステータスを結合する。
// 削除済みの商品・顧客も名前の解決には使う。
func loadOrderOutputs(ctx context.Context, r repo.TxRepos, orders []model.Order) ([]OrderOutput, error) {
	if len(orders) == 0 {
		return []OrderOutput{}, nil
	}

	orderIDs := lo.Map(orders, func(o model.Order, _ int) string { return o.ID })
	items, err := r.OrderItems().ListByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	productIDs := lo.Uniq(lo.Map(items, func(it model.OrderItem, _ int) string { return it.ProductID }))
	products, err := r.Products().FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	customerIDs := lo.Uniq(lo.Map(orders, func(o model.Order, _ int) string { return o.CustomerID }))
	customers, err := r.Users().FindByIDs(ctx, customerIDs)
	if err != nil {
		return nil, err
	}

	statuses, err := r.OrderStatuses().List(ctx)
	if err != nil {
		return nil, err
	}

	itemsByOrder := lo.GroupBy(items, func(it model.OrderItem) string { return it.OrderID })
	productByID := lo.KeyBy(products, func(p model.Product) string { return p.ID })
	customerByID := lo.KeyBy(customers, func(u model.User) string { return u.ID })
	colorByName := lo.SliceToMap(statuses, func(s model.OrderStatus) (string, model.StatusColor) { return s.Name, s.Color })

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out := toOrderOutput(o, itemsByOrder[o.ID], productByID)
		out.CustomerName = customerByID[o.CustomerID].Name
		out.StatusColor = colorByName[o.Status]
		outs = append(outs, out)
	}
	return outs, nil
}

func loadOrderOutput(ctx context.Context, r repo.TxRepos, o model.Order) (OrderOutput, error) {
	outs, err := loadOrderOutputs(ctx, r, []model.Order{o})
	if err != nil {
		return OrderOutput{}, err
	}
	return outs[0], nil
}

func toOrderOutput(o model.Order, items []model.OrderItem, products map[string]model.Product) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		name := it.ProductNameSnapshot
		if p, ok := products[it.ProductID]; ok && p.Name != "" {
			name = p.Name
		}
		outItems = append(outItems, OrderItemOutput{
			ProductID:   it.ProductID,
			ProductName: name,
			UnitPrice:   NewMoney(it.UnitPriceSnapshot),
			Quantity:    it.Quantity,
			LineTotal:   NewMoney(it.LineTotal()),
		})
	}

	return OrderOutput{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		Items:       outItems,
		TotalAmount: NewMoney(o.TotalAmount),
		AmountPaid:  NewMoney(o.AmountPaid),
		Remaining:   NewMoney(o.Remaining()),
		Status:      o.Status,
		Deleted:     o.Deleted,
		CreatedAt:   o.CreatedAt,
	}
}
