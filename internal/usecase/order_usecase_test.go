package usecase_test

import (
	"context"
	"math"
	"testing"
	"time"

	"backoffice/internal/domain/model"
	"backoffice/internal/usecase"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================
// Build
// =====================

func TestOrderUsecase_Build_SnapshotsPricesAndTotals(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "50.00", 5)
	b := env.mustProduct(t, "B", "20.00", 20)
	cust := env.mustCustomer(t, gofakeit.Name())

	out := env.mustOrder(t, cust.ID, "30", line(a.ID, 2), line(b.ID, 1))

	assert.Equal(t, "120.00", out.TotalAmount.String())
	assert.Equal(t, "30.00", out.AmountPaid.String())
	assert.Equal(t, "90.00", out.Remaining.String())
	assert.Equal(t, "Started", out.Status)
	assert.Equal(t, model.ColorBlue, out.StatusColor)
	assert.Equal(t, cust.Name, out.CustomerName)
	assert.False(t, out.Deleted)
	assert.Equal(t, baseTime, out.CreatedAt)

	got := make([]string, 0, len(out.Items))
	for _, it := range out.Items {
		got = append(got, it.ProductName+" x"+it.LineTotal.String())
	}
	if diff := cmp.Diff([]string{"A x100.00", "B x20.00"}, got); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}

	// 在庫は減らない
	pa, err := env.products.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), pa.Stock)

	assert.Equal(t, []model.LedgerEventType{model.EventOrderCreated}, env.pub.types())
}

func TestOrderUsecase_Build_MergesDuplicateLines(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "10.00", 1)
	b := env.mustProduct(t, "B", "1.50", 1)

	out := env.mustOrder(t, "cust-1", "0", line(a.ID, 1), line(b.ID, 2), line(a.ID, 3))

	require.Len(t, out.Items, 2)
	assert.Equal(t, a.ID, out.Items[0].ProductID)
	assert.Equal(t, int64(4), out.Items[0].Quantity)
	assert.Equal(t, b.ID, out.Items[1].ProductID)
	assert.Equal(t, int64(2), out.Items[1].Quantity)
	assert.Equal(t, "43.00", out.TotalAmount.String())
}

func TestOrderUsecase_Build_PriceChangeDoesNotAffectExistingOrder(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "10.00", 1)
	o := env.mustOrder(t, "cust-1", "0", line(a.ID, 2))

	_, err := env.products.Update(actorCtx(), a.ID, usecase.ProductInput{Name: "A2", Price: dec("99.99"), Stock: 1})
	require.NoError(t, err)

	got, err := env.orders.Get(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "20.00", got.TotalAmount.String())
	assert.Equal(t, "10.00", got.Items[0].UnitPrice.String())
	// 表示名は現在の商品名
	assert.Equal(t, "A2", got.Items[0].ProductName)
}

func TestOrderUsecase_Build_ValidationErrors(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "10.00", 1)

	cases := []struct {
		name string
		in   usecase.BuildOrderInput
	}{
		{"no customer", usecase.BuildOrderInput{Lines: []usecase.OrderLineInput{line(a.ID, 1)}}},
		{"no lines", usecase.BuildOrderInput{CustomerID: "c"}},
		{"zero quantity", usecase.BuildOrderInput{CustomerID: "c", Lines: []usecase.OrderLineInput{line(a.ID, 0)}}},
		{"negative quantity", usecase.BuildOrderInput{CustomerID: "c", Lines: []usecase.OrderLineInput{line(a.ID, -1)}}},
		{"empty product", usecase.BuildOrderInput{CustomerID: "c", Lines: []usecase.OrderLineInput{line("", 1)}}},
		{"negative deposit", usecase.BuildOrderInput{CustomerID: "c", Lines: []usecase.OrderLineInput{line(a.ID, 1)}, Deposit: dec("-1")}},
		{"deposit over total", usecase.BuildOrderInput{CustomerID: "c", Lines: []usecase.OrderLineInput{line(a.ID, 1)}, Deposit: dec("10.01")}},
		{"deposit precision", usecase.BuildOrderInput{CustomerID: "c", Lines: []usecase.OrderLineInput{line(a.ID, 1)}, Deposit: dec("1.001")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.orders.Build(actorCtx(), tc.in)
			assert.ErrorIs(t, err, usecase.ErrValidation)
		})
	}

	// 何も作られていない
	list, err := env.orders.List(context.Background(), usecase.ListOrdersInput{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, env.pub.types())
}

// 同じ商品の合算で数量があふれる
func TestOrderUsecase_Build_MergedQuantityOverflow(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "1.00", 1)

	_, err := env.orders.Build(actorCtx(), usecase.BuildOrderInput{
		CustomerID: "c",
		Lines:      []usecase.OrderLineInput{line(a.ID, math.MaxInt64), line(a.ID, 1)},
	})
	require.ErrorIs(t, err, usecase.ErrValidation)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, "quantity too large", he.Message)
}

func TestOrderUsecase_Build_DepositEqualToTotal(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "10.00", 1)

	out := env.mustOrder(t, "c", "20", line(a.ID, 2))
	assert.Equal(t, "0.00", out.Remaining.String())
}

func TestOrderUsecase_Build_MissingProduct_NothingWritten(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "10.00", 1)

	_, err := env.orders.Build(actorCtx(), usecase.BuildOrderInput{
		CustomerID: "c",
		Lines:      []usecase.OrderLineInput{line(a.ID, 1), line("missing", 1)},
	})
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 404, he.Status)

	list, err := env.orders.List(context.Background(), usecase.ListOrdersInput{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOrderUsecase_Build_DeletedProductIsNotFound(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "10.00", 1)
	require.NoError(t, env.products.Delete(actorCtx(), a.ID))

	_, err := env.orders.Build(actorCtx(), usecase.BuildOrderInput{CustomerID: "c", Lines: []usecase.OrderLineInput{line(a.ID, 1)}})
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestOrderUsecase_Build_InitialStatus(t *testing.T) {
	env := newEnv(t)
	a := env.mustProduct(t, "A", "10.00", 1)

	// レジストリが空で指定もない
	_, err := env.orders.Build(actorCtx(), usecase.BuildOrderInput{CustomerID: "c", Lines: []usecase.OrderLineInput{line(a.ID, 1)}})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	// 指定があればレジストリに無くてもそのまま
	out, err := env.orders.Build(actorCtx(), usecase.BuildOrderInput{
		CustomerID:    "c",
		Lines:         []usecase.OrderLineInput{line(a.ID, 1)},
		InitialStatus: "Custom",
	})
	require.NoError(t, err)
	assert.Equal(t, "Custom", out.Status)
	assert.Empty(t, out.StatusColor)
}

// =====================
// Get / List
// =====================

func TestOrderUsecase_Get_NotFound(t *testing.T) {
	env := newEnv(t)

	_, err := env.orders.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestOrderUsecase_List_NewestFirstTiesInInsertionOrder(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "1.00", 1)

	first := env.mustOrder(t, "c", "0", line(a.ID, 1))
	second := env.mustOrder(t, "c", "0", line(a.ID, 1))
	env.clock.Advance(time.Hour)
	newest := env.mustOrder(t, "c", "0", line(a.ID, 1))

	list, err := env.orders.List(context.Background(), usecase.ListOrdersInput{})
	require.NoError(t, err)

	ids := make([]string, 0, len(list))
	for _, o := range list {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{newest.ID, first.ID, second.ID}, ids)
}

func TestOrderUsecase_List_IncludesDeletedUnlessExcluded(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "1.00", 1)
	kept := env.mustOrder(t, "c", "0", line(a.ID, 1))
	gone := env.mustOrder(t, "c", "0", line(a.ID, 1))
	require.NoError(t, env.ledger.SoftDelete(actorCtx(), gone.ID))

	all, err := env.orders.List(context.Background(), usecase.ListOrdersInput{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	live, err := env.orders.List(context.Background(), usecase.ListOrdersInput{ExcludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, kept.ID, live[0].ID)
}
