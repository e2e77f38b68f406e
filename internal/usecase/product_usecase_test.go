package usecase_test

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
	"backoffice/internal/usecase"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductUsecase_CreateAndGet(t *testing.T) {
	env := newEnv(t)
	name := gofakeit.ProductName()

	p, err := env.products.Create(actorCtx(), usecase.ProductInput{
		Name:        "  " + name + "  ",
		Description: "desc",
		Price:       dec("12.5"),
		Stock:       7,
	})
	require.NoError(t, err)
	assert.Equal(t, name, p.Name)
	assert.Equal(t, "12.50", p.Price.String())

	got, err := env.products.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestProductUsecase_Validation(t *testing.T) {
	env := newEnv(t)

	cases := map[string]usecase.ProductInput{
		"no name":        {Price: dec("1"), Stock: 1},
		"negative price": {Name: "x", Price: dec("-1"), Stock: 1},
		"precision":      {Name: "x", Price: dec("1.234"), Stock: 1},
		"negative stock": {Name: "x", Price: dec("1"), Stock: -1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.products.Create(actorCtx(), in)
			assert.ErrorIs(t, err, usecase.ErrValidation)
		})
	}
}

func TestProductUsecase_DeleteHidesFromCatalog(t *testing.T) {
	env := newEnv(t)
	p := env.mustProduct(t, "A", "1", 1)

	deletedAt := baseTime.Add(2 * time.Hour)
	env.clock.Set(deletedAt)
	require.NoError(t, env.products.Delete(actorCtx(), p.ID))

	// 削除時刻は注入した時計から入る
	require.NoError(t, env.store.WithinTx(context.Background(), func(r repo.TxRepos) error {
		all, err := r.Products().FindByIDs(context.Background(), []string{p.ID})
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, deletedAt, all[0].DeletedAt.Time)
		return nil
	}))

	_, err := env.products.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	list, err := env.products.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, env.products.Delete(actorCtx(), p.ID), usecase.ErrNotFound)
}

func TestProductUsecase_UpdateInventory(t *testing.T) {
	env := newEnv(t)
	p := env.mustProduct(t, "A", "1", 10)

	require.NoError(t, env.products.UpdateInventory(actorCtx(), p.ID, 4, " recount "))
	require.NoError(t, env.products.UpdateInventory(actorCtx(), p.ID, 9, "delivery"))

	got, err := env.products.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.Stock)

	adjs, err := env.products.ListAdjustments(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, adjs, 2)
	assert.Equal(t, int64(5), adjs[0].Delta)
	assert.Equal(t, "delivery", adjs[0].Reason)
	assert.Equal(t, int64(-6), adjs[1].Delta)
	assert.Equal(t, "recount", adjs[1].Reason)
	assert.Equal(t, testActor, adjs[1].ActorUserID)

	action := model.AuditActionUpdateStock
	logs, err := env.audit.List(context.Background(), repo.AuditLogFilter{Action: &action})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.JSONEq(t, `{"stock":4}`, logs[0].BeforeJSON)
	assert.JSONEq(t, `{"stock":9}`, logs[0].AfterJSON)

	assert.Equal(t, []model.LedgerEventType{model.EventStockAdjusted, model.EventStockAdjusted}, env.pub.types())
}

func TestProductUsecase_UpdateInventory_Errors(t *testing.T) {
	env := newEnv(t)
	p := env.mustProduct(t, "A", "1", 10)

	assert.ErrorIs(t, env.products.UpdateInventory(actorCtx(), p.ID, -1, "x"), usecase.ErrValidation)
	assert.ErrorIs(t, env.products.UpdateInventory(actorCtx(), p.ID, 1, " "), usecase.ErrValidation)
	assert.ErrorIs(t, env.products.UpdateInventory(actorCtx(), "missing", 1, "x"), usecase.ErrNotFound)

	adjs, err := env.products.ListAdjustments(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, adjs)
}
