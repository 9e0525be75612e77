package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/fiitrack/fii-portfolio-backend/internal/api/request"
	"github.com/fiitrack/fii-portfolio-backend/internal/apperrors"
	"github.com/fiitrack/fii-portfolio-backend/internal/service"
	"github.com/fiitrack/fii-portfolio-backend/internal/testutil"
)

func setupFiiService(t *testing.T) (*service.FiiService, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return testutil.NewTestFiiService(t, db), db
}

func TestFiiService_CreateFii(t *testing.T) {
	t.Run("normalizes tag to uppercase", func(t *testing.T) {
		svc, _ := setupFiiService(t)

		cutDay := 15
		fii, err := svc.CreateFii(context.Background(), request.CreateFiiRequest{
			Tag:    "abcd11",
			Name:   "Fundo ABCD",
			CutDay: &cutDay,
		})
		if err != nil {
			t.Fatalf("CreateFii failed: %v", err)
		}

		if fii.Tag != "ABCD11" {
			t.Errorf("Expected tag ABCD11, got %s", fii.Tag)
		}
		if fii.CutDay == nil || *fii.CutDay != 15 {
			t.Errorf("Expected cut day 15, got %v", fii.CutDay)
		}
	})

	t.Run("rejects duplicate tags", func(t *testing.T) {
		svc, db := setupFiiService(t)

		testutil.NewFii().WithTag("ABCD11").Build(t, db)

		_, err := svc.CreateFii(context.Background(), request.CreateFiiRequest{
			Tag:  "abcd11",
			Name: "Another",
		})
		if !errors.Is(err, apperrors.ErrTagTaken) {
			t.Errorf("Expected ErrTagTaken, got %v", err)
		}
	})
}

func TestFiiService_UpdateFii(t *testing.T) {
	t.Run("sets and clears the cut-day policy", func(t *testing.T) {
		svc, db := setupFiiService(t)

		fii := testutil.NewFii().Build(t, db)

		cutDay := 20
		updated, err := svc.UpdateFii(context.Background(), fii.ID, request.UpdateFiiRequest{
			CutDay: &cutDay,
		})
		if err != nil {
			t.Fatalf("UpdateFii failed: %v", err)
		}
		if updated.CutDay == nil || *updated.CutDay != 20 {
			t.Errorf("Expected cut day 20, got %v", updated.CutDay)
		}

		zero := 0
		updated, err = svc.UpdateFii(context.Background(), fii.ID, request.UpdateFiiRequest{
			CutDay: &zero,
		})
		if err != nil {
			t.Fatalf("UpdateFii failed: %v", err)
		}
		if updated.CutDay != nil {
			t.Errorf("Expected cut day cleared, got %v", *updated.CutDay)
		}
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		svc, _ := setupFiiService(t)

		name := "x"
		_, err := svc.UpdateFii(context.Background(), testutil.MakeID(), request.UpdateFiiRequest{
			Name: &name,
		})
		if !errors.Is(err, apperrors.ErrFiiNotFound) {
			t.Errorf("Expected ErrFiiNotFound, got %v", err)
		}
	})
}

func TestFiiService_DeleteFii(t *testing.T) {
	t.Run("soft delete hides the entry and frees the tag", func(t *testing.T) {
		svc, db := setupFiiService(t)

		fii := testutil.NewFii().WithTag("ABCD11").Build(t, db)

		if err := svc.DeleteFii(context.Background(), fii.ID); err != nil {
			t.Fatalf("DeleteFii failed: %v", err)
		}

		if _, err := svc.GetFii(fii.ID); !errors.Is(err, apperrors.ErrFiiNotFound) {
			t.Errorf("Expected ErrFiiNotFound after delete, got %v", err)
		}

		// The tag can be registered again.
		if _, err := svc.CreateFii(context.Background(), request.CreateFiiRequest{
			Tag:  "ABCD11",
			Name: "Recreated",
		}); err != nil {
			t.Errorf("Expected tag to be reusable after delete, got %v", err)
		}
	})
}

func TestFiiService_GetFiis(t *testing.T) {
	t.Run("filters by sector and orders by tag", func(t *testing.T) {
		svc, db := setupFiiService(t)

		testutil.NewFii().WithTag("BBBB11").WithSector("Logística").Build(t, db)
		testutil.NewFii().WithTag("AAAA11").WithSector("Logística").Build(t, db)
		testutil.NewFii().WithTag("CCCC11").WithSector("Shoppings").Build(t, db)

		fiis, err := svc.GetFiis("Logística", 0, 100)
		if err != nil {
			t.Fatalf("GetFiis failed: %v", err)
		}

		if len(fiis) != 2 {
			t.Fatalf("Expected 2 fiis, got %d", len(fiis))
		}
		if fiis[0].Tag != "AAAA11" || fiis[1].Tag != "BBBB11" {
			t.Errorf("Expected tag order AAAA11, BBBB11, got %s, %s", fiis[0].Tag, fiis[1].Tag)
		}
	})
}
