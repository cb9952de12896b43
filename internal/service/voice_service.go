package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"instabudget/internal/dto"
	"instabudget/internal/utils"
)

type VoiceService struct {
	ai       AIClient
	scans    *ScanService
	profiles ProfileStore
	clock    utils.Clock
	logger   *zap.Logger
}

func NewVoiceService(ai AIClient, scans *ScanService, profiles ProfileStore, clock utils.Clock, logger *zap.Logger) *VoiceService {
	return &VoiceService{
		ai:       ai,
		scans:    scans,
		profiles: profiles,
		clock:    clock,
		logger:   logger,
	}
}

const voicePromptTemplate = `Listen to this voice note. The speaker describes a purchase or expense.

Today's date is %s (UTC).

If the note does not describe any spending or income, return exactly:
{"is_transaction": false, "reason": "<one or two words describing what the note is about>"}

Otherwise return ONLY this JSON object:
{
  "is_transaction": true,
  "merchant": "<merchant or a short description of where the money went>",
  "total_amount": <amount as a number>,
  "currency": "<ISO 4217 code if mentioned, otherwise null>",
  "category": "<exactly one of: %s>",
  "transaction_date": "<YYYY-MM-DD; resolve words like yesterday relative to today's date; use today's date if unspecified>",
  "items": [],
  "notes": "<anything else worth keeping, or null>"
}

Return ONLY the JSON. No markdown fences, no commentary.`

// ScanVoice runs a voice note through the model and normalizes the
// answer. The audio is not kept, only the resulting transaction matters.
// timezone is an optional IANA name used to correct the model answering
// "today" in UTC terms for callers west of UTC.
func (v *VoiceService) ScanVoice(ctx context.Context, userID uuid.UUID, filename string, data []byte, isAuto bool, timezone string) (*dto.ScanResponse, error) {
	now := v.clock.Now()
	utcToday := now.UTC().Format(dateLayout)
	localToday := utcToday
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, &ValidationError{Message: "Invalid timezone", Details: timezone}
		}
		localToday = now.In(loc).Format(dateLayout)
	}

	prompt := fmt.Sprintf(voicePromptTemplate, utcToday, strings.Join(categoryNames(), ", "))

	raw, err := v.ai.GenerateWithMedia(ctx, prompt, data, filename)
	if err != nil {
		return nil, err
	}

	payload, err := normalizeVoice(raw, userID, v.fallbackCurrency(ctx, userID), utcToday, localToday)
	if err != nil {
		return nil, err
	}

	return v.scans.dispatch(ctx, payload, isAuto)
}

func (v *VoiceService) fallbackCurrency(ctx context.Context, userID uuid.UUID) string {
	profile, err := v.profiles.GetByUserID(ctx, userID)
	if err != nil || profile.PreferredCurrency == "" {
		return defaultCurrency
	}
	return profile.PreferredCurrency
}
