package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"instabudget/internal/dto"
	"instabudget/internal/models"
	"instabudget/internal/utils"
)

type ProfileService struct {
	profiles ProfileStore
	clock    utils.Clock
	logger   *zap.Logger
}

func NewProfileService(profiles ProfileStore, clock utils.Clock, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		clock:    clock,
		logger:   logger,
	}
}

// Upsert creates or updates the profile. A fresh profile gets a budget
// cycle starting today; an existing cycle window is left untouched.
// Renewal runs before the profile is returned.
func (s *ProfileService) Upsert(ctx context.Context, req *dto.UpsertProfileRequest) (*models.Profile, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, &ValidationError{Message: "Invalid user_id"}
	}

	now := s.clock.Now()
	today := now.UTC().Format(dateLayout)

	profile := &models.Profile{
		UserID:            userID,
		FullName:          strings.TrimSpace(req.FullName),
		PreferredCurrency: strings.ToUpper(strings.TrimSpace(req.PreferredCurrency)),
		Occupation:        req.Occupation,
		Age:               req.Age,
		Timezone:          req.Timezone,
		CycleDuration:     "monthly",
		BudgetAutoRenew:   true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if req.BudgetAutoRenew != nil {
		profile.BudgetAutoRenew = *req.BudgetAutoRenew
	}

	existing, err := s.profiles.GetByUserID(ctx, userID)
	if err == nil && existing.CycleStartDate != nil && existing.CycleEndDate != nil {
		profile.CycleStartDate = existing.CycleStartDate
		profile.CycleEndDate = existing.CycleEndDate
	} else {
		end, err := addDays(today, models.CycleDays)
		if err != nil {
			return nil, err
		}
		profile.CycleStartDate = &today
		profile.CycleEndDate = &end
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	return s.renewCycle(ctx, profile)
}

// Get fetches the profile, running cycle renewal first so callers always
// see a current window.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.renewCycle(ctx, profile)
}

// renewCycle advances an expired budget cycle by exactly one step:
// newStart = end + 1 day, newEnd = newStart + 30 days. No-op when
// auto-renew is off, no end date is set, or the end date is today or
// later.
func (s *ProfileService) renewCycle(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if !profile.BudgetAutoRenew || profile.CycleEndDate == nil {
		return profile, nil
	}

	today := s.clock.Now().UTC().Format(dateLayout)
	if *profile.CycleEndDate >= today {
		return profile, nil
	}

	newStart, err := addDays(*profile.CycleEndDate, 1)
	if err != nil {
		return nil, err
	}
	newEnd, err := addDays(newStart, models.CycleDays)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.UpdateCycle(ctx, profile.UserID, newStart, newEnd); err != nil {
		return nil, fmt.Errorf("failed to renew cycle: %w", err)
	}

	s.logger.Info("Budget cycle renewed",
		zap.String("user_id", profile.UserID.String()),
		zap.String("cycle_start", newStart),
		zap.String("cycle_end", newEnd),
	)

	profile.CycleStartDate = &newStart
	profile.CycleEndDate = &newEnd
	return profile, nil
}

func addDays(date string, days int) (string, error) {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return parsed.AddDate(0, 0, days).Format(dateLayout), nil
}
