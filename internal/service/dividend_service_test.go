package service_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fiitrack/fii-portfolio-backend/internal/api/request"
	"github.com/fiitrack/fii-portfolio-backend/internal/apperrors"
	"github.com/fiitrack/fii-portfolio-backend/internal/service"
	"github.com/fiitrack/fii-portfolio-backend/internal/testutil"
)

func setupDividendService(t *testing.T) (*service.DividendService, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return testutil.NewTestDividendService(t, db), db
}

func TestDividendService_MonthlySummary(t *testing.T) {
	t.Run("computes line total from units held on the cut-off date", func(t *testing.T) {
		svc, db := setupDividendService(t)

		user := testutil.NewUser().Build(t, db)
		fii := testutil.NewFii().WithTag("ABCD11").WithCutDay(15).Build(t, db)
		testutil.NewTransaction(user.ID, fii.ID).WithDate(t, "2024-01-10").WithQuantity(100).Build(t, db)
		testutil.NewDividend(user.ID, fii.ID).WithPaymentDate(t, "2024-01-25").WithAmountPerUnit("0.50").Build(t, db)

		summary, err := svc.MonthlySummary(user.ID, 2024, 1)
		if err != nil {
			t.Fatalf("MonthlySummary failed: %v", err)
		}

		if len(summary.Fiis) != 1 {
			t.Fatalf("Expected 1 fii bucket, got %d", len(summary.Fiis))
		}

		bucket := summary.Fiis[0]
		if bucket.FiiTag != "ABCD11" {
			t.Errorf("Expected tag ABCD11, got %s", bucket.FiiTag)
		}
		if len(bucket.Dividends) != 1 {
			t.Fatalf("Expected 1 dividend line, got %d", len(bucket.Dividends))
		}

		line := bucket.Dividends[0]
		if line.UnitsHeld != 100 {
			t.Errorf("Expected 100 units held, got %d", line.UnitsHeld)
		}
		if got := line.TotalAmount.StringFixed(2); got != "50.00" {
			t.Errorf("Expected line total 50.00, got %s", got)
		}
		if got := summary.Total.StringFixed(2); got != "50.00" {
			t.Errorf("Expected grand total 50.00, got %s", got)
		}
	})

	t.Run("buy after cut-off yields zero eligibility", func(t *testing.T) {
		svc, db := setupDividendService(t)

		user := testutil.NewUser().Build(t, db)
		fii := testutil.NewFii().WithCutDay(15).Build(t, db)
		testutil.NewTransaction(user.ID, fii.ID).WithDate(t, "2024-01-20").WithQuantity(100).Build(t, db)
		testutil.NewDividend(user.ID, fii.ID).WithPaymentDate(t, "2024-01-25").WithAmountPerUnit("0.50").Build(t, db)

		summary, err := svc.MonthlySummary(user.ID, 2024, 1)
		if err != nil {
			t.Fatalf("MonthlySummary failed: %v", err)
		}

		line := summary.Fiis[0].Dividends[0]
		if line.UnitsHeld != 0 {
			t.Errorf("Expected 0 units held, got %d", line.UnitsHeld)
		}
		if got := line.TotalAmount.StringFixed(2); got != "0.00" {
			t.Errorf("Expected line total 0.00, got %s", got)
		}
	})

	t.Run("fii without cut day yields zero units", func(t *testing.T) {
		svc, db := setupDividendService(t)

		user := testutil.NewUser().Build(t, db)
		fii := testutil.NewFii().Build(t, db) // no cut day
		testutil.NewTransaction(user.ID, fii.ID).WithDate(t, "2024-01-01").WithQuantity(500).Build(t, db)
		testutil.NewDividend(user.ID, fii.ID).WithPaymentDate(t, "2024-01-25").WithAmountPerUnit("1.00").Build(t, db)

		summary, err := svc.MonthlySummary(user.ID, 2024, 1)
		if err != nil {
			t.Fatalf("MonthlySummary failed: %v", err)
		}

		line := summary.Fiis[0].Dividends[0]
		if line.UnitsHeld != 0 {
			t.Errorf("Expected 0 units without a cut-day policy, got %d", line.UnitsHeld)
		}
		if got := summary.Total.StringFixed(2); got != "0.00" {
			t.Errorf("Expected total 0.00, got %s", got)
		}
	})

	t.Run("empty month returns empty list and zero total", func(t *testing.T) {
		svc, db := setupDividendService(t)

		user := testutil.NewUser().Build(t, db)

		summary, err := svc.MonthlySummary(user.ID, 2024, 6)
		if err != nil {
			t.Fatalf("MonthlySummary failed: %v", err)
		}

		if summary.Fiis == nil {
			t.Error("Expected non-nil fiis slice")
		}
		if len(summary.Fiis) != 0 {
			t.Errorf("Expected no fii buckets, got %d", len(summary.Fiis))
		}
		if got := summary.Total.StringFixed(2); got != "0.00" {
			t.Errorf("Expected total 0.00, got %s", got)
		}
	})

	t.Run("buckets appear in tag order with per-fii totals", func(t *testing.T) {
		svc, db := setupDividendService(t)

		user := testutil.NewUser().Build(t, db)
		fiiB := testutil.NewFii().WithTag("BBBB11").WithCutDay(10).Build(t, db)
		fiiA := testutil.NewFii().WithTag("AAAA11").WithCutDay(10).Build(t, db)

		testutil.NewTransaction(user.ID, fiiA.ID).WithDate(t, "2024-01-01").WithQuantity(10).Build(t, db)
		testutil.NewTransaction(user.ID, fiiB.ID).WithDate(t, "2024-01-01").WithQuantity(20).Build(t, db)

		// fiiB inserted first; tag ordering must still put fiiA first.
		testutil.NewDividend(user.ID, fiiB.ID).WithPaymentDate(t, "2024-01-20").WithAmountPerUnit("1.00").Build(t, db)
		testutil.NewDividend(user.ID, fiiA.ID).WithPaymentDate(t, "2024-01-15").WithAmountPerUnit("0.50").Build(t, db)
		testutil.NewDividend(user.ID, fiiA.ID).WithPaymentDate(t, "2024-01-28").WithAmountPerUnit("0.25").Build(t, db)

		summary, err := svc.MonthlySummary(user.ID, 2024, 1)
		if err != nil {
			t.Fatalf("MonthlySummary failed: %v", err)
		}

		if len(summary.Fiis) != 2 {
			t.Fatalf("Expected 2 fii buckets, got %d", len(summary.Fiis))
		}
		if summary.Fiis[0].FiiTag != "AAAA11" || summary.Fiis[1].FiiTag != "BBBB11" {
			t.Errorf("Expected tag order AAAA11, BBBB11, got %s, %s",
				summary.Fiis[0].FiiTag, summary.Fiis[1].FiiTag)
		}

		bucketA := summary.Fiis[0]
		if bucketA.DividendCount != 2 {
			t.Errorf("Expected 2 dividends for AAAA11, got %d", bucketA.DividendCount)
		}
		// 10 units * 0.50 + 10 units * 0.25
		if got := bucketA.TotalAmount.StringFixed(2); got != "7.50" {
			t.Errorf("Expected AAAA11 total 7.50, got %s", got)
		}

		// 20 units * 1.00 from BBBB11 on top
		if got := summary.Total.StringFixed(2); got != "27.50" {
			t.Errorf("Expected grand total 27.50, got %s", got)
		}
	})

	t.Run("dividends in adjacent months are excluded", func(t *testing.T) {
		svc, db := setupDividendService(t)

		user := testutil.NewUser().Build(t, db)
		fii := testutil.NewFii().WithCutDay(15).Build(t, db)
		testutil.NewTransaction(user.ID, fii.ID).WithDate(t, "2023-12-01").WithQuantity(10).Build(t, db)

		testutil.NewDividend(user.ID, fii.ID).WithPaymentDate(t, "2023-12-31").WithAmountPerUnit("1.00").Build(t, db)
		testutil.NewDividend(user.ID, fii.ID).WithPaymentDate(t, "2024-01-01").WithAmountPerUnit("2.00").Build(t, db)
		testutil.NewDividend(user.ID, fii.ID).WithPaymentDate(t, "2024-01-31").WithAmountPerUnit("3.00").Build(t, db)
		testutil.NewDividend(user.ID, fii.ID).WithPaymentDate(t, "2024-02-01").WithAmountPerUnit("4.00").Build(t, db)

		summary, err := svc.MonthlySummary(user.ID, 2024, 1)
		if err != nil {
			t.Fatalf("MonthlySummary failed: %v", err)
		}

		if len(summary.Fiis) != 1 || summary.Fiis[0].DividendCount != 2 {
			t.Fatalf("Expected exactly the 2 January dividends, got %+v", summary.Fiis)
		}
		if got := summary.Total.StringFixed(2); got != "50.00" {
			t.Errorf("Expected total 50.00, got %s", got)
		}
	})

	t.Run("soft-deleted dividends are excluded", func(t *testing.T) {
		svc, db := setupDividendService(t)

		user := testutil.NewUser().Build(t, db)
		fii := testutil.NewFii().WithCutDay(15).Build(t, db)
		testutil.NewTransaction(user.ID, fii.ID).WithDate(t, "2024-01-01").WithQuantity(10).Build(t, db)
		testutil.NewDividend(user.ID, fii.ID).WithPaymentDate(t, "2024-01-25").WithAmountPerUnit("1.00").Deleted().Build(t, db)

		summary, err := svc.MonthlySummary(user.ID, 2024, 1)
		if err != nil {
			t.Fatalf("MonthlySummary failed: %v", err)
		}

		if len(summary.Fiis) != 0 {
			t.Errorf("Expected no buckets, got %d", len(summary.Fiis))
		}
	})

	t.Run("repeated calls produce identical output", func(t *testing.T) {
		svc, db := setupDividendService(t)

		user := testutil.NewUser().Build(t, db)
		fiiA := testutil.NewFii().WithTag("AAAA11").WithCutDay(15).Build(t, db)
		fiiB := testutil.NewFii().WithTag("BBBB11").WithCutDay(5).Build(t, db)
		testutil.NewTransaction(user.ID, fiiA.ID).WithDate(t, "2024-01-01").WithQuantity(10).Build(t, db)
		testutil.NewTransaction(user.ID, fiiB.ID).WithDate(t, "2024-01-01").WithQuantity(20).Build(t, db)
		testutil.NewDividend(user.ID, fiiA.ID).WithPaymentDate(t, "2024-01-25").WithAmountPerUnit("0.50").Build(t, db)
		testutil.NewDividend(user.ID, fiiB.ID).WithPaymentDate(t, "2024-01-20").WithAmountPerUnit("0.75").Build(t, db)

		first, err := svc.MonthlySummary(user.ID, 2024, 1)
		if err != nil {
			t.Fatalf("MonthlySummary failed: %v", err)
		}
		second, err := svc.MonthlySummary(user.ID, 2024, 1)
		if err != nil {
			t.Fatalf("MonthlySummary failed: %v", err)
		}

		firstJSON, err := json.Marshal(first)
		if err != nil {
			t.Fatalf("Failed to marshal first summary: %v", err)
		}
		secondJSON, err := json.Marshal(second)
		if err != nil {
			t.Fatalf("Failed to marshal second summary: %v", err)
		}

		if string(firstJSON) != string(secondJSON) {
			t.Errorf("Expected identical summaries:\n%s\n%s", firstJSON, secondJSON)
		}
	})
}

func TestDividendService_CreateDividend(t *testing.T) {
	t.Run("caches com_date when the fii has a cut day", func(t *testing.T) {
		svc, db := setupDividendService(t)

		user := testutil.NewUser().Build(t, db)
		fii := testutil.NewFii().WithCutDay(15).Build(t, db)

		dividend, err := svc.CreateDividend(context.Background(), user.ID, request.CreateDividendRequest{
			FiiID:         fii.ID,
			PaymentDate:   "2024-01-25",
			AmountPerUnit: "0.50",
		})
		if err != nil {
			t.Fatalf("CreateDividend failed: %v", err)
		}

		if dividend.ComDate == nil {
			t.Fatal("Expected com_date to be cached")
		}
		if got := dividend.ComDate.String(); got != "2024-01-15" {
			t.Errorf("Expected com_date 2024-01-15, got %s", got)
		}
	})

	t.Run("leaves com_date empty without a cut day", func(t *testing.T) {
		svc, db := setupDividendService(t)

		user := testutil.NewUser().Build(t, db)
		fii := testutil.NewFii().Build(t, db)

		dividend, err := svc.CreateDividend(context.Background(), user.ID, request.CreateDividendRequest{
			FiiID:         fii.ID,
			PaymentDate:   "2024-01-25",
			AmountPerUnit: "0.50",
		})
		if err != nil {
			t.Fatalf("CreateDividend failed: %v", err)
		}

		if dividend.ComDate != nil {
			t.Errorf("Expected nil com_date, got %s", dividend.ComDate)
		}
	})

	t.Run("rejects unknown fii", func(t *testing.T) {
		svc, db := setupDividendService(t)

		user := testutil.NewUser().Build(t, db)

		_, err := svc.CreateDividend(context.Background(), user.ID, request.CreateDividendRequest{
			FiiID:         testutil.MakeID(),
			PaymentDate:   "2024-01-25",
			AmountPerUnit: "0.50",
		})
		if !errors.Is(err, apperrors.ErrFiiNotFound) {
			t.Errorf("Expected ErrFiiNotFound, got %v", err)
		}
	})
}

func TestDividendService_UpdateDividend(t *testing.T) {
	t.Run("refreshes com_date when the payment date moves", func(t *testing.T) {
		svc, db := setupDividendService(t)

		user := testutil.NewUser().Build(t, db)
		fii := testutil.NewFii().WithCutDay(31).Build(t, db)
		dividend := testutil.NewDividend(user.ID, fii.ID).WithPaymentDate(t, "2024-01-25").Build(t, db)

		newDate := "2024-02-10"
		updated, err := svc.UpdateDividend(context.Background(), user.ID, dividend.ID, request.UpdateDividendRequest{
			PaymentDate: &newDate,
		})
		if err != nil {
			t.Fatalf("UpdateDividend failed: %v", err)
		}

		if updated.ComDate == nil {
			t.Fatal("Expected com_date to be set")
		}
		// Day 31 clamps to the leap-February month end.
		if got := updated.ComDate.String(); got != "2024-02-29" {
			t.Errorf("Expected com_date 2024-02-29, got %s", got)
		}
	})
}

func TestDividendService_DeleteDividend(t *testing.T) {
	t.Run("soft delete removes dividend from reads", func(t *testing.T) {
		svc, db := setupDividendService(t)

		user := testutil.NewUser().Build(t, db)
		fii := testutil.NewFii().Build(t, db)
		dividend := testutil.NewDividend(user.ID, fii.ID).Build(t, db)

		if err := svc.DeleteDividend(context.Background(), user.ID, dividend.ID); err != nil {
			t.Fatalf("DeleteDividend failed: %v", err)
		}

		if _, err := svc.GetDividend(user.ID, dividend.ID); !errors.Is(err, apperrors.ErrDividendNotFound) {
			t.Errorf("Expected ErrDividendNotFound after delete, got %v", err)
		}

		testutil.AssertRowCount(t, db, "dividend", 1)
	})
}
