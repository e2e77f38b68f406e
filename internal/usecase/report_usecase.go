package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"backoffice/internal/domain/model"
	"backoffice/internal/logging"
	repo "backoffice/internal/repository"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type ReportPeriod string

const (
	PeriodDaily   ReportPeriod = "daily"
	PeriodMonthly ReportPeriod = "monthly"
	PeriodYearly  ReportPeriod = "yearly"
)

const (
	dailyBuckets   = 7
	monthlyBuckets = 12
)

type ReportOptions struct {
	// 売上バケットの暦（nil なら UTC）
	Location          *time.Location
	LowStockThreshold int64
}

type SalesBucket struct {
	Label  string    `json:"label"`
	Start  time.Time `json:"start"`
	Total  Money     `json:"total"`
	Orders int       `json:"orders"`
}

type SalesReport struct {
	Period  ReportPeriod  `json:"period"`
	Buckets []SalesBucket `json:"buckets"`
	Total   Money         `json:"total"`
}

type Dashboard struct {
	Users          int64 `json:"users"`
	Customers      int64 `json:"customers"`
	Products       int64 `json:"products"`
	Orders         int64 `json:"orders"`
	TotalSales     Money `json:"total_sales"`
	TotalCollected Money `json:"total_collected"`
	Outstanding    Money `json:"outstanding"`
	LowStock       int64 `json:"low_stock"`
}

// 売上集計・在庫少・取引履歴・ダッシュボード。
type ReportUsecase struct {
	tx    repo.TransactionManager
	clock Clock
	cache ReportCache
	opts  ReportOptions
}

func NewReportUsecase(tx repo.TransactionManager, clock Clock, cache ReportCache, opts ReportOptions) *ReportUsecase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &ReportUsecase{tx: tx, clock: clock, cache: cache, opts: opts}
}

func ParseReportPeriod(s string) (ReportPeriod, error) {
	p := ReportPeriod(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PeriodDaily, PeriodMonthly, PeriodYearly:
		return p, nil
	}
	return "", validationError("period must be one of daily, monthly, yearly")
}

// 読み取り失敗はログに残して計算し直す。ok=false のときは保存もしない。
func (u *ReportUsecase) cached(ctx context.Context, key string, dst any) (gen int64, hit, ok bool) {
	if u.cache == nil {
		return 0, false, false
	}
	gen, hit, err := u.cache.Get(ctx, key, dst)
	if err != nil {
		logging.FromContext(ctx).Warn("report_cache_get_error", "key", key, "error", err)
		return 0, false, false
	}
	return gen, hit, true
}

func (u *ReportUsecase) store(ctx context.Context, key string, gen int64, v any) {
	if err := u.cache.Set(ctx, key, gen, v); err != nil {
		logging.FromContext(ctx).Warn("report_cache_set_error", "key", key, "error", err)
	}
}

// SalesByPeriod は削除されていない注文の合計を期間ごとに集計する。売上のない期間も 0 で含む。
func (u *ReportUsecase) SalesByPeriod(ctx context.Context, period ReportPeriod) (SalesReport, error) {
	if _, err := ParseReportPeriod(string(period)); err != nil {
		return SalesReport{}, err
	}

	now := u.clock.Now().In(u.opts.Location)
	key := "sales:" + string(period) + ":" + now.Format(time.DateOnly)

	var out SalesReport
	gen, hit, cacheable := u.cached(ctx, key, &out)
	if hit {
		return out, nil
	}

	var orders []model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		orders, err = r.Orders().List(ctx, repo.OrderListFilter{IncludeDeleted: false})
		return err
	})
	if err != nil {
		return SalesReport{}, dbError(err)
	}

	out = buildSalesReport(period, orders, now, u.opts.Location)
	if cacheable {
		u.store(ctx, key, gen, out)
	}
	return out, nil
}

func buildSalesReport(period ReportPeriod, orders []model.Order, now time.Time, loc *time.Location) SalesReport {
	var (
		starts []time.Time
		layout string
	)

	switch period {
	case PeriodDaily:
		layout = time.DateOnly
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		for i := dailyBuckets - 1; i >= 0; i-- {
			starts = append(starts, today.AddDate(0, 0, -i))
		}
	case PeriodMonthly:
		layout = "2006-01"
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		for i := monthlyBuckets - 1; i >= 0; i-- {
			starts = append(starts, month.AddDate(0, -i, 0))
		}
	case PeriodYearly:
		layout = "2006"
		first := now.Year()
		for _, o := range orders {
			first = min(first, o.CreatedAt.In(loc).Year())
		}
		for y := first; y <= now.Year(); y++ {
			starts = append(starts, time.Date(y, time.January, 1, 0, 0, 0, 0, loc))
		}
	}

	buckets := make([]SalesBucket, len(starts))
	sums := make([]decimal.Decimal, len(starts))
	index := make(map[string]int, len(starts))
	for i, s := range starts {
		label := s.Format(layout)
		buckets[i] = SalesBucket{Label: label, Start: s}
		sums[i] = decimal.Zero
		index[label] = i
	}

	total := decimal.Zero
	for _, o := range orders {
		if o.Deleted {
			continue
		}
		i, ok := index[o.CreatedAt.In(loc).Format(layout)]
		if !ok {
			continue
		}
		sums[i] = sums[i].Add(o.TotalAmount)
		buckets[i].Orders++
		total = total.Add(o.TotalAmount)
	}
	for i := range buckets {
		buckets[i].Total = NewMoney(sums[i])
	}

	return SalesReport{Period: period, Buckets: buckets, Total: NewMoney(total)}
}

// LowStock は stock < threshold の商品。threshold が nil なら設定値。
func (u *ReportUsecase) LowStock(ctx context.Context, threshold *int64) ([]ProductOutput, error) {
	t := u.opts.LowStockThreshold
	if threshold != nil {
		t = *threshold
	}
	if t < 0 {
		return []ProductOutput{}, validationError("threshold must be >= 0")
	}

	var products []model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		products, err = r.Products().ListLowStock(ctx, t)
		return err
	})
	if err != nil {
		return []ProductOutput{}, dbError(err)
	}

	//在庫の少ない順
	slices.SortStableFunc(products, func(a, b model.Product) int {
		if a.Stock != b.Stock {
			if a.Stock < b.Stock {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return toProductOutputs(products), nil
}

// TransactionHistory は削除済みを含む全注文（新しい順）。
func (u *ReportUsecase) TransactionHistory(ctx context.Context) ([]OrderOutput, error) {
	var out []OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().List(ctx, repo.OrderListFilter{IncludeDeleted: true})
		if err != nil {
			return err
		}
		out, err = loadOrderOutputs(ctx, r, orders)
		return err
	})
	if err != nil {
		return []OrderOutput{}, dbError(err)
	}
	return out, nil
}

func (u *ReportUsecase) Dashboard(ctx context.Context) (Dashboard, error) {
	const key = "dashboard"

	var out Dashboard
	gen, hit, cacheable := u.cached(ctx, key, &out)
	if hit {
		return out, nil
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		users, err := r.Users().Count(ctx, repo.UserListFilter{})
		if err != nil {
			return err
		}
		customer := model.RoleCustomer
		customers, err := r.Users().Count(ctx, repo.UserListFilter{Role: &customer})
		if err != nil {
			return err
		}
		products, err := r.Products().Count(ctx)
		if err != nil {
			return err
		}
		orders, err := r.Orders().List(ctx, repo.OrderListFilter{IncludeDeleted: false})
		if err != nil {
			return err
		}
		low, err := r.Products().ListLowStock(ctx, u.opts.LowStockThreshold)
		if err != nil {
			return err
		}

		sales := lo.Reduce(orders, func(acc decimal.Decimal, o model.Order, _ int) decimal.Decimal {
			return acc.Add(o.TotalAmount)
		}, decimal.Zero)
		collected := lo.Reduce(orders, func(acc decimal.Decimal, o model.Order, _ int) decimal.Decimal {
			return acc.Add(o.AmountPaid)
		}, decimal.Zero)

		out = Dashboard{
			Users:          users,
			Customers:      customers,
			Products:       products,
			Orders:         int64(len(orders)),
			TotalSales:     NewMoney(sales),
			TotalCollected: NewMoney(collected),
			Outstanding:    NewMoney(sales.Sub(collected)),
			LowStock:       int64(len(low)),
		}
		return nil
	})
	if err != nil {
		return Dashboard{}, dbError(err)
	}

	if cacheable {
		u.store(ctx, key, gen, out)
	}
	return out, nil
}
