// Package progress is the typed view over the durable tutorial keys.
//
// Key names are stable: a reload must find what an earlier process wrote.
// A missing key always means "default", and values that fail to parse are
// treated as missing rather than reported.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/circlet/internal/store"
	"github.com/abhisek/circlet/internal/usertype"
)

// Persisted key names.
const (
	KeyUserType                = "tutorial_user_type"
	KeyCompletedFlows          = "tutorial_completed_flows"
	KeySkipped                 = "tutorial_skipped"
	KeyJustCompletedOnboarding = "just_completed_onboarding"
	KeyProgress                = "tutorial_progress"
)

// Keys returns every key this package owns.
func Keys() []string {
	return []string{
		KeyUserType,
		KeyCompletedFlows,
		KeySkipped,
		KeyJustCompletedOnboarding,
		KeyProgress,
	}
}

// Progress is the in-flight record of a tutorial session. It is replaced
// wholesale on every write.
type Progress struct {
	FlowID           string    `json:"flowId"`
	CurrentStepIndex int       `json:"currentStepIndex"`
	CompletedSteps   []string  `json:"completedSteps"`
	StartedAt        time.Time `json:"startedAt"`
	LastAccessed     time.Time `json:"lastAccessed"`
}

// Store reads and writes tutorial state through a KV.
type Store struct {
	kv     store.KV
	logger *zap.Logger
}

// New wraps kv. A nil logger discards the malformed-record warnings.
func New(kv store.KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger}
}

// UserType returns the stored user type. ok is false when nothing valid is
// stored.
func (s *Store) UserType(ctx context.Context) (t usertype.Type, ok bool, err error) {
	raw, found, err := s.kv.Get(ctx, KeyUserType)
	if err != nil {
		return "", false, fmt.Errorf("read user type: %w", err)
	}
	if !found {
		return "", false, nil
	}
	t, err = usertype.Parse(raw)
	if err != nil {
		s.discard(KeyUserType, err)
		return "", false, nil
	}
	return t, true, nil
}

// SetUserType persists t.
func (s *Store) SetUserType(ctx context.Context, t usertype.Type) error {
	if !t.Valid() {
		return fmt.Errorf("set user type: %w: %q", usertype.ErrUnknown, string(t))
	}
	if err := s.kv.Set(ctx, KeyUserType, string(t)); err != nil {
		return fmt.Errorf("write user type: %w", err)
	}
	return nil
}

// CompletedFlows returns the user types whose tutorial has been completed,
// in completion order.
func (s *Store) CompletedFlows(ctx context.Context) ([]usertype.Type, error) {
	raw, found, err := s.kv.Get(ctx, KeyCompletedFlows)
	if err != nil {
		return nil, fmt.Errorf("read completed flows: %w", err)
	}
	if !found {
		return nil, nil
	}
	var completed []usertype.Type
	if err := json.Unmarshal([]byte(raw), &completed); err != nil {
		s.discard(KeyCompletedFlows, err)
		return nil, nil
	}
	return completed, nil
}

// IsCompleted reports whether t is in the completed set.
func (s *Store) IsCompleted(ctx context.Context, t usertype.Type) (bool, error) {
	completed, err := s.CompletedFlows(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(completed, t), nil
}

// MarkCompleted appends t to the completed set unless already present.
func (s *Store) MarkCompleted(ctx context.Context, t usertype.Type) error {
	completed, err := s.CompletedFlows(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(completed, t) {
		return nil
	}
	data, err := json.Marshal(append(completed, t))
	if err != nil {
		return fmt.Errorf("marshal completed flows: %w", err)
	}
	if err := s.kv.Set(ctx, KeyCompletedFlows, string(data)); err != nil {
		return fmt.Errorf("write completed flows: %w", err)
	}
	return nil
}

// Skipped reports the skip flag.
func (s *Store) Skipped(ctx context.Context) (bool, error) {
	return s.readBool(ctx, KeySkipped)
}

// SetSkipped records the skip flag.
func (s *Store) SetSkipped(ctx context.Context, skipped bool) error {
	return s.writeBool(ctx, KeySkipped, skipped)
}

// SetOnboardingCompleted raises the transient trigger consumed by
// ConsumeOnboardingCompleted.
func (s *Store) SetOnboardingCompleted(ctx context.Context) error {
	return s.writeBool(ctx, KeyJustCompletedOnboarding, true)
}

// ConsumeOnboardingCompleted reports whether the trigger was raised and
// deletes it. The key is removed whenever it is present, whatever its value.
func (s *Store) ConsumeOnboardingCompleted(ctx context.Context) (bool, error) {
	raw, found, err := s.kv.Get(ctx, KeyJustCompletedOnboarding)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", KeyJustCompletedOnboarding, err)
	}
	if !found {
		return false, nil
	}
	if err := s.kv.Delete(ctx, KeyJustCompletedOnboarding); err != nil {
		return false, fmt.Errorf("delete %s: %w", KeyJustCompletedOnboarding, err)
	}
	set, err := strconv.ParseBool(raw)
	if err != nil {
		s.discard(KeyJustCompletedOnboarding, err)
		return false, nil
	}
	return set, nil
}

// LoadProgress returns the in-flight record. ok is false when none is stored
// or the stored record is malformed.
func (s *Store) LoadProgress(ctx context.Context) (p Progress, ok bool, err error) {
	raw, found, err := s.kv.Get(ctx, KeyProgress)
	if err != nil {
		return Progress{}, false, fmt.Errorf("read progress: %w", err)
	}
	if !found {
		return Progress{}, false, nil
	}
	if err := validateProgress([]byte(raw)); err != nil {
		s.discard(KeyProgress, err)
		return Progress{}, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.discard(KeyProgress, err)
		return Progress{}, false, nil
	}
	return p, true, nil
}

// SaveProgress overwrites the in-flight record.
func (s *Store) SaveProgress(ctx context.Context, p Progress) error {
	if p.CompletedSteps == nil {
		p.CompletedSteps = []string{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := s.kv.Set(ctx, KeyProgress, string(data)); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	return nil
}

// ClearProgress removes the in-flight record.
func (s *Store) ClearProgress(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyProgress); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

// ClearTutorialData removes the completed set, the skip flag and the
// in-flight record. The user type and onboarding trigger are kept.
func (s *Store) ClearTutorialData(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyCompletedFlows, KeySkipped, KeyProgress); err != nil {
		return fmt.Errorf("clear tutorial data: %w", err)
	}
	return nil
}

// ClearAll removes every key in Keys.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.kv.Delete(ctx, Keys()...); err != nil {
		return fmt.Errorf("clear all: %w", err)
	}
	return nil
}

func (s *Store) readBool(ctx context.Context, key string) (bool, error) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		s.discard(key, err)
		return false, nil
	}
	return v, nil
}

func (s *Store) writeBool(ctx context.Context, key string, v bool) error {
	if err := s.kv.Set(ctx, key, strconv.FormatBool(v)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) discard(key string, err error) {
	s.logger.Warn("discarding malformed tutorial record",
		zap.String("key", key),
		zap.Error(err),
	)
}
