package usecase_test

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/usecase"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bucketView struct {
	Label  string
	Total  string
	Orders int
}

func viewBuckets(r usecase.SalesReport) []bucketView {
	out := make([]bucketView, 0, len(r.Buckets))
	for _, b := range r.Buckets {
		out = append(out, bucketView{Label: b.Label, Total: b.Total.String(), Orders: b.Orders})
	}
	return out
}

// =====================
// SalesByPeriod
// =====================

func TestReport_SalesByPeriod_Daily(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "10", 100)

	env.clock.Set(baseTime.AddDate(0, 0, -10)) // 範囲外
	env.mustOrder(t, "c", "0", line(a.ID, 9))
	env.clock.Set(baseTime.AddDate(0, 0, -6))
	env.mustOrder(t, "c", "0", line(a.ID, 1))
	env.clock.Set(baseTime.AddDate(0, 0, -1))
	env.mustOrder(t, "c", "0", line(a.ID, 2))
	env.mustOrder(t, "c", "0", line(a.ID, 3))
	env.clock.Set(baseTime)

	r, err := env.reports.SalesByPeriod(context.Background(), usecase.PeriodDaily)
	require.NoError(t, err)

	want := []bucketView{
		{"2026-03-04", "10.00", 1},
		{"2026-03-05", "0.00", 0},
		{"2026-03-06", "0.00", 0},
		{"2026-03-07", "0.00", 0},
		{"2026-03-08", "0.00", 0},
		{"2026-03-09", "50.00", 2},
		{"2026-03-10", "0.00", 0},
	}
	if diff := cmp.Diff(want, viewBuckets(r)); diff != "" {
		t.Fatalf("buckets mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "60.00", r.Total.String())
	assert.Equal(t, usecase.PeriodDaily, r.Period)
}

func TestReport_SalesByPeriod_Monthly(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "10", 100)

	env.clock.Set(time.Date(2025, time.April, 30, 23, 0, 0, 0, time.UTC))
	env.mustOrder(t, "c", "0", line(a.ID, 1))
	env.clock.Set(time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)) // 範囲外
	env.mustOrder(t, "c", "0", line(a.ID, 1))
	env.clock.Set(baseTime)
	env.mustOrder(t, "c", "0", line(a.ID, 2))

	r, err := env.reports.SalesByPeriod(context.Background(), usecase.PeriodMonthly)
	require.NoError(t, err)

	require.Len(t, r.Buckets, 12)
	assert.Equal(t, bucketView{"2025-04", "10.00", 1}, viewBuckets(r)[0])
	assert.Equal(t, bucketView{"2026-03", "20.00", 1}, viewBuckets(r)[11])
	assert.Equal(t, "30.00", r.Total.String())
}

func TestReport_SalesByPeriod_YearlyFromEarliestOrder(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "10", 100)

	env.clock.Set(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	env.mustOrder(t, "c", "0", line(a.ID, 1))
	env.clock.Set(baseTime)
	env.mustOrder(t, "c", "0", line(a.ID, 5))

	r, err := env.reports.SalesByPeriod(context.Background(), usecase.PeriodYearly)
	require.NoError(t, err)

	want := []bucketView{
		{"2024", "10.00", 1},
		{"2025", "0.00", 0},
		{"2026", "50.00", 1},
	}
	if diff := cmp.Diff(want, viewBuckets(r)); diff != "" {
		t.Fatalf("buckets mismatch (-want +got):\n%s", diff)
	}
}

func TestReport_SalesByPeriod_YearlyWithoutOrders(t *testing.T) {
	env := newEnv(t)

	r, err := env.reports.SalesByPeriod(context.Background(), usecase.PeriodYearly)
	require.NoError(t, err)
	assert.Equal(t, []bucketView{{"2026", "0.00", 0}}, viewBuckets(r))
}

func TestReport_SalesByPeriod_UsesConfiguredLocation(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	env := newEnv(t, withLocation(jst))
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "10", 100)

	// UTC では 3/9、JST では 3/10
	env.clock.Set(time.Date(2026, time.March, 9, 20, 0, 0, 0, time.UTC))
	env.mustOrder(t, "c", "0", line(a.ID, 1))
	env.clock.Set(baseTime)

	r, err := env.reports.SalesByPeriod(context.Background(), usecase.PeriodDaily)
	require.NoError(t, err)
	last := viewBuckets(r)[6]
	assert.Equal(t, bucketView{"2026-03-10", "10.00", 1}, last)
}

func TestReport_SalesByPeriod_InvalidPeriod(t *testing.T) {
	env := newEnv(t)

	_, err := env.reports.SalesByPeriod(context.Background(), usecase.ReportPeriod("weekly"))
	assert.ErrorIs(t, err, usecase.ErrValidation)

	p, err := usecase.ParseReportPeriod(" Monthly ")
	require.NoError(t, err)
	assert.Equal(t, usecase.PeriodMonthly, p)
}

func TestReport_SalesByPeriod_CachedUntilLedgerChanges(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "10", 100)
	env.mustOrder(t, "c", "0", line(a.ID, 1))

	first, err := env.reports.SalesByPeriod(context.Background(), usecase.PeriodDaily)
	require.NoError(t, err)
	again, err := env.reports.SalesByPeriod(context.Background(), usecase.PeriodDaily)
	require.NoError(t, err)
	assert.Equal(t, 1, env.cache.hits)
	assert.Equal(t, first.Total.String(), again.Total.String())

	env.mustOrder(t, "c", "0", line(a.ID, 2))
	after, err := env.reports.SalesByPeriod(context.Background(), usecase.PeriodDaily)
	require.NoError(t, err)
	assert.Equal(t, "30.00", after.Total.String())
}

// 集計中に台帳が変わったら、その結果はキャッシュに残さない
func TestReport_SalesByPeriod_DropsResultComputedAcrossInvalidate(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	a := env.mustProduct(t, "A", "10", 100)
	env.mustOrder(t, "c", "0", line(a.ID, 1))

	env.cache.afterGet = func() {
		env.cache.afterGet = nil
		env.mustOrder(t, "c", "0", line(a.ID, 2))
	}
	_, err := env.reports.SalesByPeriod(context.Background(), usecase.PeriodDaily)
	require.NoError(t, err)
	assert.Equal(t, 1, env.cache.staleSets)

	got, err := env.reports.SalesByPeriod(context.Background(), usecase.PeriodDaily)
	require.NoError(t, err)
	assert.Equal(t, 0, env.cache.hits)
	assert.Equal(t, "30.00", got.Total.String())
}

// =====================
// LowStock / Dashboard
// =====================

func TestReport_LowStock(t *testing.T) {
	env := newEnv(t)
	env.mustProduct(t, "Plenty", "1", 50)
	env.mustProduct(t, "Few", "1", 3)
	env.mustProduct(t, "Edge", "1", 10)
	env.mustProduct(t, "None", "1", 0)
	gone := env.mustProduct(t, "Gone", "1", 1)
	require.NoError(t, env.products.Delete(actorCtx(), gone.ID))

	// 既定の閾値 10（未満のみ）
	out, err := env.reports.LowStock(context.Background(), nil)
	require.NoError(t, err)
	names := make([]string, 0, len(out))
	for _, p := range out {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"None", "Few"}, names)

	th := int64(11)
	out, err = env.reports.LowStock(context.Background(), &th)
	require.NoError(t, err)
	assert.Len(t, out, 3)

	neg := int64(-1)
	_, err = env.reports.LowStock(context.Background(), &neg)
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestReport_Dashboard(t *testing.T) {
	env := newEnv(t)
	env.seedStatuses(t)
	cust := env.mustCustomer(t, "Customer")
	_, err := env.users.Create(actorCtx(), usecase.UserInput{Name: "Staff", Role: "staff"})
	require.NoError(t, err)
	a := env.mustProduct(t, "A", "10", 100)
	env.mustProduct(t, "B", "5", 1)

	env.mustOrder(t, cust.ID, "5", line(a.ID, 2))
	gone := env.mustOrder(t, cust.ID, "0", line(a.ID, 1))
	require.NoError(t, env.ledger.SoftDelete(actorCtx(), gone.ID))

	d, err := env.reports.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.Users)
	assert.Equal(t, int64(1), d.Customers)
	assert.Equal(t, int64(2), d.Products)
	assert.Equal(t, int64(1), d.Orders)
	assert.Equal(t, "20.00", d.TotalSales.String())
	assert.Equal(t, "5.00", d.TotalCollected.String())
	assert.Equal(t, "15.00", d.Outstanding.String())
	assert.Equal(t, int64(1), d.LowStock)
}
