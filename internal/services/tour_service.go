package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"tourproof/internal/models/db_models"
	"tourproof/internal/models/response_models"
	"tourproof/internal/repositories"
	mem "tourproof/pkg/memcache"
	"tourproof/pkg/utils"
)

const maxPageSize = 100

type TourServiceInterface interface {
	CreateTour(ctx context.Context, owner uuid.UUID, imageRef, location string) (uint64, error)
	UpdateTour(ctx context.Context, tourID uint64, caller uuid.UUID, imageRef, location string) error
	DeactivateTour(ctx context.Context, tourID uint64, caller uuid.UUID) error
	GetTour(ctx context.Context, tourID uint64) (response_models.Tour, error)
	ListTours(ctx context.Context, page, pageSize int) ([]response_models.Tour, error)
}

type TourService struct {
	runner *ledgerRunner
	ledger repositories.LedgerRepository
	logger *zap.Logger
}

func NewTourService(
	ledger repositories.LedgerRepository,
	policy OperationsPolicy,
	locks *mem.KeyLocks,
	notifier NotificationServiceInterface,
	logger *zap.Logger,
) TourServiceInterface {
	return &TourService{
		runner: newLedgerRunner(ledger, policy, locks, notifier, logger),
		ledger: ledger,
		logger: logger,
	}
}

func (s *TourService) CreateTour(ctx context.Context, owner uuid.UUID, imageRef, location string) (uint64, error) {
	var tourID uint64
	err := s.runner.run(ctx, runOptions{operation: "create_tour", lockKey: lockTourCreation, gated: true, exclusiveSettings: true},
		func(ctx context.Context, m *mutation) error {
			if owner == uuid.Nil || imageRef == "" || location == "" {
				return utils.ErrInvalidParameters
			}

			settings := m.settings
			tour := &db_models.Tour{
				ID:       settings.NextTourID,
				OwnerID:  owner,
				ImageRef: imageRef,
				Location: location,
				Active:   true,
			}
			if err := m.tx.Tours().Create(ctx, tour); err != nil {
				return err
			}

			settings.NextTourID++
			if err := m.tx.Settings().Save(ctx, settings); err != nil {
				return err
			}

			tourID = tour.ID
			m.emit(tourCreatedEvent(tour))
			return nil
		})
	if err != nil {
		return 0, err
	}
	return tourID, nil
}

func (s *TourService) UpdateTour(ctx context.Context, tourID uint64, caller uuid.UUID, imageRef, location string) error {
	return s.runner.run(ctx, runOptions{operation: "update_tour", lockKey: tourLockKey(tourID), gated: true},
		func(ctx context.Context, m *mutation) error {
			tour, err := m.tx.Tours().LockByID(ctx, tourID)
			if err != nil {
				return err
			}
			if tour == nil {
				return utils.ErrTourNotFound
			}
			// a verified tour is frozen for every caller
			if tour.Verified {
				return utils.ErrTourAlreadyVerified
			}
			if tour.OwnerID != caller {
				return utils.ErrNotOwner
			}
			if imageRef == "" || location == "" {
				return utils.ErrInvalidParameters
			}

			tour.ImageRef = imageRef
			tour.Location = location
			if err := m.tx.Tours().Update(ctx, tour); err != nil {
				return err
			}
			m.emit(tourUpdatedEvent(tour))
			return nil
		})
}

// DeactivateTour clears the active flag. Calling it on an inactive tour
// succeeds and emits again.
func (s *TourService) DeactivateTour(ctx context.Context, tourID uint64, caller uuid.UUID) error {
	return s.runner.run(ctx, runOptions{operation: "deactivate_tour", lockKey: tourLockKey(tourID), gated: true},
		func(ctx context.Context, m *mutation) error {
			tour, err := m.tx.Tours().LockByID(ctx, tourID)
			if err != nil {
				return err
			}
			if tour == nil {
				return utils.ErrTourNotFound
			}
			if tour.OwnerID != caller {
				return utils.ErrNotOwner
			}

			tour.Active = false
			if err := m.tx.Tours().Update(ctx, tour); err != nil {
				return err
			}
			m.emit(tourDeactivatedEvent(tour))
			return nil
		})
}

func (s *TourService) GetTour(ctx context.Context, tourID uint64) (response_models.Tour, error) {
	tour, err := s.ledger.Tours().FindByID(ctx, tourID)
	if err != nil {
		return response_models.Tour{}, readFailed(s.logger, "get_tour", err)
	}
	if tour == nil {
		return response_models.Tour{}, utils.ErrTourNotFound
	}
	return toTourResponse(tour), nil
}

func (s *TourService) ListTours(ctx context.Context, page, pageSize int) ([]response_models.Tour, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, utils.ErrInvalidPageSize
	}

	tours, err := s.ledger.Tours().List(ctx, page, pageSize)
	if err != nil {
		return nil, readFailed(s.logger, "list_tours", err)
	}

	result := make([]response_models.Tour, 0, len(tours))
	for i := range tours {
		result = append(result, toTourResponse(&tours[i]))
	}
	return result, nil
}

func toTourResponse(tour *db_models.Tour) response_models.Tour {
	return response_models.Tour{
		ID:        tour.ID,
		Owner:     tour.OwnerID.String(),
		ImageRef:  tour.ImageRef,
		Location:  tour.Location,
		Upvotes:   tour.Upvotes,
		Verified:  tour.Verified,
		Active:    tour.Active,
		CreatedAt: utils.FormatUnixRFC3339(tour.CreatedAt),
		UpdatedAt: utils.FormatUnixRFC3339(tour.UpdatedAt),
	}
}
