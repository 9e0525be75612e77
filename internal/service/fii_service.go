package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fiitrack/fii-portfolio-backend/internal/api/request"
	"github.com/fiitrack/fii-portfolio-backend/internal/apperrors"
	"github.com/fiitrack/fii-portfolio-backend/internal/model"
	"github.com/fiitrack/fii-portfolio-backend/internal/repository"
)

// FiiService handles the shared FII catalog, including the cut-day policy
// that drives dividend eligibility.
type FiiService struct {
	fiiRepo *repository.FiiRepository
}

// NewFiiService creates a new FiiService with the provided repository dependency.
func NewFiiService(fiiRepo *repository.FiiRepository) *FiiService {
	return &FiiService{fiiRepo: fiiRepo}
}

// GetFiis retrieves catalog entries, optionally filtered by sector.
func (s *FiiService) GetFiis(sector string, skip, limit int) ([]model.Fii, error) {
	return s.fiiRepo.GetFiis(sector, skip, limit)
}

// GetFii retrieves a single catalog entry by ID.
func (s *FiiService) GetFii(id string) (model.Fii, error) {
	return s.fiiRepo.GetFii(id)
}

// CreateFii adds a new catalog entry. Tags are normalized to uppercase and
// must be unique among non-deleted entries.
func (s *FiiService) CreateFii(ctx context.Context, req request.CreateFiiRequest) (*model.Fii, error) {
	tag := strings.ToUpper(strings.TrimSpace(req.Tag))

	if _, err := s.fiiRepo.GetFiiByTag(tag); err == nil {
		return nil, apperrors.ErrTagTaken
	} else if !errors.Is(err, apperrors.ErrFiiNotFound) {
		return nil, err
	}

	now := time.Now()
	fii := &model.Fii{
		ID:        uuid.New().String(),
		Tag:       tag,
		Name:      req.Name,
		Sector:    req.Sector,
		CutDay:    req.CutDay,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.fiiRepo.InsertFii(ctx, fii); err != nil {
		return nil, err
	}

	return fii, nil
}

// UpdateFii applies a partial update to a catalog entry. Setting cut_day
// changes eligibility for every dividend of this FII on the next read,
// past months included.
func (s *FiiService) UpdateFii(ctx context.Context, id string, req request.UpdateFiiRequest) (*model.Fii, error) {
	fii, err := s.fiiRepo.GetFii(id)
	if err != nil {
		return nil, err
	}

	if req.Tag != nil {
		tag := strings.ToUpper(strings.TrimSpace(*req.Tag))
		if tag != fii.Tag {
			if _, err := s.fiiRepo.GetFiiByTag(tag); err == nil {
				return nil, apperrors.ErrTagTaken
			} else if !errors.Is(err, apperrors.ErrFiiNotFound) {
				return nil, err
			}
			fii.Tag = tag
		}
	}
	if req.Name != nil {
		fii.Name = *req.Name
	}
	if req.Sector != nil {
		if *req.Sector == "" {
			fii.Sector = nil
		} else {
			fii.Sector = req.Sector
		}
	}
	if req.CutDay != nil {
		if *req.CutDay == 0 {
			fii.CutDay = nil
		} else {
			fii.CutDay = req.CutDay
		}
	}

	fii.UpdatedAt = time.Now()

	if err := s.fiiRepo.UpdateFii(ctx, &fii); err != nil {
		return nil, err
	}

	return &fii, nil
}

// DeleteFii soft deletes a catalog entry.
func (s *FiiService) DeleteFii(ctx context.Context, id string) error {
	return s.fiiRepo.SoftDeleteFii(ctx, id, time.Now())
}
