package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"photo-review-api/config"
	"photo-review-api/models"
)

const (
	// MaxStrikes is the number of strikes before a timeout is imposed.
	MaxStrikes = 3
	// StrikeTimeoutDuration is how long a timed-out user is suspended.
	StrikeTimeoutDuration = 7 * 24 * time.Hour
)

// StrikeStatus describes a user's current standing. Expiry is evaluated
// lazily against stored timestamps on every read and write; there is no
// background job clearing timeouts.
type StrikeStatus struct {
	Strikes        int        `json:"strikes"`
	IsTimedOut     bool       `json:"is_timed_out"`
	TimeoutUntil   *time.Time `json:"timeout_until,omitempty"`
	LastStrikeDate *time.Time `json:"last_strike_date,omitempty"`
}

type StrikeService struct {
	db *gorm.DB
}

func NewStrikeService(db *gorm.DB) *StrikeService {
	if db == nil {
		db = config.DB
	}
	return &StrikeService{db: db}
}

// AddStrike records a strike for a rejected review.
//
// If the user is already timed out and the timeout has not expired, this is a
// no-op and the existing state is returned. If the stored timeout has expired,
// the rejection starts a new cycle at exactly one strike. Otherwise the count
// increments, and on reaching MaxStrikes a timeout of StrikeTimeoutDuration is
// imposed.
func (s *StrikeService) AddStrike(userID int) (StrikeStatus, error) {
	var user models.User
	if err := s.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return StrikeStatus{}, fmt.Errorf("user %d not found: %w", userID, err)
	}

	now := time.Now()

	// Expired timeout: this rejection becomes the first strike of a new cycle.
	if user.StrikeTimeout != nil && user.StrikeTimeout.Before(now) {
		updates := map[string]interface{}{
			"strikes":          1,
			"last_strike_date": now,
			"strike_timeout":   nil,
		}
		if err := s.db.Model(&models.User{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
			return StrikeStatus{}, err
		}
		return StrikeStatus{Strikes: 1, IsTimedOut: false, LastStrikeDate: &now}, nil
	}

	// Still timed out: don't stack strikes.
	if user.StrikeTimeout != nil {
		return StrikeStatus{
			Strikes:        user.Strikes,
			IsTimedOut:     true,
			TimeoutUntil:   user.StrikeTimeout,
			LastStrikeDate: user.LastStrikeDate,
		}, nil
	}

	newStrikes := user.Strikes + 1
	updates := map[string]interface{}{
		"strikes":          newStrikes,
		"last_strike_date": now,
	}

	if newStrikes >= MaxStrikes {
		timeoutUntil := now.Add(StrikeTimeoutDuration)
		updates["strike_timeout"] = timeoutUntil
		if err := s.db.Model(&models.User{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
			return StrikeStatus{}, err
		}
		log.Printf("User %d timed out until %s (%d strikes)", userID, timeoutUntil.Format(time.RFC3339), newStrikes)
		return StrikeStatus{Strikes: newStrikes, IsTimedOut: true, TimeoutUntil: &timeoutUntil, LastStrikeDate: &now}, nil
	}

	if err := s.db.Model(&models.User{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
		return StrikeStatus{}, err
	}
	log.Printf("User %d received strike %d/%d", userID, newStrikes, MaxStrikes)
	return StrikeStatus{Strikes: newStrikes, IsTimedOut: false, LastStrikeDate: &now}, nil
}

// IsUserTimedOut reports whether the user is suspended. An expired timeout is
// reset to a clean slate as a side effect of the check.
func (s *StrikeService) IsUserTimedOut(userID int) (StrikeStatus, error) {
	var user models.User
	if err := s.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return StrikeStatus{}, fmt.Errorf("user %d not found: %w", userID, err)
	}

	now := time.Now()

	if user.StrikeTimeout != nil && user.StrikeTimeout.Before(now) {
		updates := map[string]interface{}{
			"strikes":          0,
			"strike_timeout":   nil,
			"last_strike_date": nil,
		}
		if err := s.db.Model(&models.User{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
			return StrikeStatus{}, err
		}
		return StrikeStatus{Strikes: 0, IsTimedOut: false}, nil
	}

	if user.StrikeTimeout != nil {
		return StrikeStatus{
			Strikes:        user.Strikes,
			IsTimedOut:     true,
			TimeoutUntil:   user.StrikeTimeout,
			LastStrikeDate: user.LastStrikeDate,
		}, nil
	}

	return StrikeStatus{Strikes: user.Strikes, IsTimedOut: false, LastStrikeDate: user.LastStrikeDate}, nil
}

// GetUserStrikes returns the user's standing without mutating anything. An
// expired timeout reads as a clean slate even before the lazy reset runs.
func (s *StrikeService) GetUserStrikes(userID int) (StrikeStatus, error) {
	var user models.User
	if err := s.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return StrikeStatus{}, fmt.Errorf("user %d not found: %w", userID, err)
	}

	now := time.Now()

	if user.StrikeTimeout != nil && user.StrikeTimeout.Before(now) {
		return StrikeStatus{Strikes: 0, IsTimedOut: false}, nil
	}

	return StrikeStatus{
		Strikes:        user.Strikes,
		IsTimedOut:     user.StrikeTimeout != nil,
		TimeoutUntil:   user.StrikeTimeout,
		LastStrikeDate: user.LastStrikeDate,
	}, nil
}

// ResetStrikes unconditionally clears strikes and timeout state.
func (s *StrikeService) ResetStrikes(userID int) error {
	updates := map[string]interface{}{
		"strikes":          0,
		"strike_timeout":   nil,
		"last_strike_date": nil,
	}
	if err := s.db.Model(&models.User{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
		return err
	}
	log.Printf("Reset strikes for user %d", userID)
	return nil
}
