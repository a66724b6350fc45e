package services

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestGetBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("no_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewReportService(db, time.UTC)
		user := testutil.CreateTestUser(t, db)

		balance, err := svc.GetBalance(ctx, user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "0", balance.Total)
	})

	t.Run("income_minus_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewReportService(db, time.UTC)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestExpense(t, db, user.ID, "200", date.AddDate(0, 0, 1))
		testutil.CreateTestTransaction(t, db, user.ID, testutil.SideJobCategoryID, testutil.IncomeTypeID, "500", date)
		testutil.CreateTestIncome(t, db, other.ID, "1000", date)

		balance, err := svc.GetBalance(ctx, user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "300", balance.Total)
	})

	t.Run("fractional_amounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewReportService(db, time.UTC)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestIncome(t, db, user.ID, "10.25", time.Now())
		testutil.CreateTestExpense(t, db, user.ID, "0.75", time.Now())

		balance, err := svc.GetBalance(ctx, user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "9.5", balance.Total)
	})
}

func TestMonthWindow(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)

	start, end := MonthWindow(time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC), loc)
	// 23:00 UTC on Feb 29 is already March 1 at UTC+3.
	if !start.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("unexpected start %v", start)
	}
	if !end.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("unexpected end %v", end)
	}

	start, end = MonthWindow(time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC), time.UTC)
	if start.Month() != time.December || end.Year() != 2025 || end.Month() != time.January {
		t.Errorf("unexpected year rollover window %v - %v", start, end)
	}
}

func TestGetMonthlySummary(t *testing.T) {
	ctx := context.Background()
	march := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewReportService(db, time.UTC)
		user := testutil.CreateTestUser(t, db)

		totals, err := svc.GetMonthlySummary(ctx, user.ID, march)
		testutil.AssertNoError(t, err)
		if len(totals) != 0 {
			t.Errorf("expected no rows, got %+v", totals)
		}
	})

	t.Run("only_current_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewReportService(db, time.UTC)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestIncome(t, db, user.ID, "100", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestIncome(t, db, user.ID, "50", time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC))
		testutil.CreateTestIncome(t, db, user.ID, "999", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestIncome(t, db, user.ID, "999", time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC))

		totals, err := svc.GetMonthlySummary(ctx, user.ID, march)
		testutil.AssertNoError(t, err)

		// No expenses this month, so only the income row is present.
		if len(totals) != 1 {
			t.Fatalf("expected 1 row, got %+v", totals)
		}
		if totals[0].Type != models.TypeNameIncome {
			t.Errorf("expected income row, got %s", totals[0].Type)
		}
		testutil.AssertDecimal(t, "150", totals[0].Amount)
	})

	t.Run("defaults_to_now", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := &reportService{db: db, loc: time.UTC, now: func() time.Time { return march }}
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestIncome(t, db, user.ID, "100", march)
		testutil.CreateTestExpense(t, db, user.ID, "40", march)

		totals, err := svc.GetMonthlySummary(ctx, user.ID, time.Time{})
		testutil.AssertNoError(t, err)
		if len(totals) != 2 {
			t.Fatalf("expected 2 rows, got %+v", totals)
		}
		testutil.AssertDecimal(t, "100", totals[0].Amount)
		testutil.AssertDecimal(t, "40", totals[1].Amount)
	})
}

func TestGetMonthlyByCategory(t *testing.T) {
	ctx := context.Background()
	march := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	db := testutil.SetupTestDB(t)
	svc := NewReportService(db, time.UTC)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestTransaction(t, db, user.ID, testutil.GroceriesCategoryID, testutil.ExpenseTypeID, "30", march)
	testutil.CreateTestTransaction(t, db, user.ID, testutil.GroceriesCategoryID, testutil.ExpenseTypeID, "20", march)
	testutil.CreateTestTransaction(t, db, user.ID, testutil.TransportCategoryID, testutil.ExpenseTypeID, "70", march)
	testutil.CreateTestTransaction(t, db, user.ID, testutil.OtherCategoryID, testutil.ExpenseTypeID, "5", march)
	testutil.CreateTestTransaction(t, db, user.ID, testutil.TransportCategoryID, testutil.ExpenseTypeID, "500", march.AddDate(0, -1, 0))
	testutil.CreateTestIncome(t, db, user.ID, "1000", march)

	expenses, err := svc.GetMonthlyByCategory(ctx, user.ID, models.TypeNameExpense, march)
	testutil.AssertNoError(t, err)

	if len(expenses) != 3 {
		t.Fatalf("expected 3 expense categories, got %+v", expenses)
	}
	if expenses[0].Category != "Транспорт" {
		t.Errorf("expected largest category first, got %s", expenses[0].Category)
	}
	testutil.AssertDecimal(t, "70", expenses[0].Amount)
	testutil.AssertDecimal(t, "50", expenses[1].Amount)
	if expenses[0].Color == nil {
		t.Error("expected a color for a seeded category")
	}
	if expenses[2].Color != nil {
		t.Errorf("expected no color for the uncolored category, got %q", *expenses[2].Color)
	}

	incomes, err := svc.GetMonthlyByCategory(ctx, user.ID, models.TypeNameIncome, march)
	testutil.AssertNoError(t, err)
	if len(incomes) != 1 || incomes[0].Category != "Зарплата" {
		t.Errorf("unexpected income breakdown %+v", incomes)
	}
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := NewReportService(db, time.UTC)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	day := func(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }
	testutil.CreateTestIncome(t, db, user.ID, "1000", day(1))
	testutil.CreateTestExpense(t, db, user.ID, "10", day(2))
	testutil.CreateTestExpense(t, db, user.ID, "20", day(3))
	testutil.CreateTestTransaction(t, db, user.ID, testutil.TransportCategoryID, testutil.ExpenseTypeID, "30", day(4))
	testutil.CreateTestTransaction(t, db, user.ID, testutil.SideJobCategoryID, testutil.IncomeTypeID, "40", day(5))
	testutil.CreateTestExpense(t, db, other.ID, "99", day(3))

	ptr := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name    string
		page    pagination.PageRequest
		filter  TransactionFilter
		wantIDs int
		check   func(t *testing.T, views []models.TransactionView)
	}{
		{
			name:    "no_filter_defaults",
			wantIDs: 5,
			check: func(t *testing.T, views []models.TransactionView) {
				if !views[0].Date.Equal(day(5)) {
					t.Errorf("expected newest first, got %v", views[0].Date)
				}
			},
		},
		{
			name:    "second_page",
			page:    pagination.PageRequest{Page: 2, Limit: 2},
			wantIDs: 2,
			check: func(t *testing.T, views []models.TransactionView) {
				if !views[0].Date.Equal(day(3)) {
					t.Errorf("expected day 3 at the top of page 2, got %v", views[0].Date)
				}
			},
		},
		{
			name:    "type_filter",
			filter:  TransactionFilter{TypeName: models.TypeNameExpense},
			wantIDs: 3,
		},
		{
			name:    "all_types_sentinel",
			filter:  TransactionFilter{TypeName: models.TypeNameAll},
			wantIDs: 5,
		},
		{
			name:    "date_range_inclusive",
			filter:  TransactionFilter{StartDate: ptr(day(2)), EndDate: ptr(day(4))},
			wantIDs: 3,
		},
		{
			name:    "categories",
			filter:  TransactionFilter{Categories: []string{"Продукты", "Транспорт"}},
			wantIDs: 3,
		},
		{
			name: "combined_and",
			filter: TransactionFilter{
				StartDate:  ptr(day(3)),
				TypeName:   models.TypeNameExpense,
				Categories: []string{"Продукты"},
			},
			wantIDs: 1,
			check: func(t *testing.T, views []models.TransactionView) {
				testutil.AssertDecimal(t, "20", views[0].Amount)
			},
		},
		{
			name:    "no_match",
			filter:  TransactionFilter{Categories: []string{"Nonexistent"}},
			wantIDs: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.ListTransactions(ctx, user.ID, tt.page, tt.filter)
			testutil.AssertNoError(t, err)

			if page.TotalCount != 5 {
				t.Errorf("expected unfiltered totalCount 5, got %d", page.TotalCount)
			}
			if len(page.Transactions) != tt.wantIDs {
				t.Fatalf("expected %d rows, got %d", tt.wantIDs, len(page.Transactions))
			}
			if page.Transactions == nil {
				t.Error("expected non-nil transactions slice")
			}
			if tt.check != nil {
				tt.check(t, page.Transactions)
			}
		})
	}

	page, err := svc.ListTransactions(ctx, user.ID, pagination.PageRequest{}, TransactionFilter{})
	testutil.AssertNoError(t, err)
	if page.Page != 1 || page.Limit != pagination.DefaultLimit || page.TotalPages != 1 {
		t.Errorf("unexpected page metadata %+v", page)
	}
}

func TestAggregatesAreExactForBinaryInexactAmounts(t *testing.T) {
	ctx := context.Background()
	march := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	db := testutil.SetupTestDB(t)
	svc := NewReportService(db, time.UTC)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestIncome(t, db, user.ID, "0.1", march)
	testutil.CreateTestIncome(t, db, user.ID, "0.2", march)
	testutil.CreateTestExpense(t, db, user.ID, "19.99", march)
	testutil.CreateTestTransaction(t, db, user.ID, testutil.TransportCategoryID, testutil.ExpenseTypeID, "0.1", march)
	testutil.CreateTestTransaction(t, db, user.ID, testutil.TransportCategoryID, testutil.ExpenseTypeID, "0.2", march)

	tests := []struct {
		name string
		want string
		got  func(t *testing.T) string
	}{
		{
			name: "balance",
			want: "-19.99",
			got: func(t *testing.T) string {
				balance, err := svc.GetBalance(ctx, user.ID)
				testutil.AssertNoError(t, err)
				return balance.Total.String()
			},
		},
		{
			name: "monthly_income",
			want: "0.3",
			got: func(t *testing.T) string {
				totals, err := svc.GetMonthlySummary(ctx, user.ID, march)
				testutil.AssertNoError(t, err)
				return totals[0].Amount.String()
			},
		},
		{
			name: "monthly_expense",
			want: "20.29",
			got: func(t *testing.T) string {
				totals, err := svc.GetMonthlySummary(ctx, user.ID, march)
				testutil.AssertNoError(t, err)
				return totals[1].Amount.String()
			},
		},
		{
			name: "category_groceries",
			want: "19.99",
			got: func(t *testing.T) string {
				totals, err := svc.GetMonthlyByCategory(ctx, user.ID, models.TypeNameExpense, march)
				testutil.AssertNoError(t, err)
				return totals[0].Amount.String()
			},
		},
		{
			name: "category_transport",
			want: "0.3",
			got: func(t *testing.T) string {
				totals, err := svc.GetMonthlyByCategory(ctx, user.ID, models.TypeNameExpense, march)
				testutil.AssertNoError(t, err)
				return totals[1].Amount.String()
			},
		},
		{
			name: "category_income",
			want: "0.3",
			got: func(t *testing.T) string {
				totals, err := svc.GetMonthlyByCategory(ctx, user.ID, models.TypeNameIncome, march)
				testutil.AssertNoError(t, err)
				return totals[0].Amount.String()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got(t); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
