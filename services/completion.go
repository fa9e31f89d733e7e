package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sawahq/sawa/models"
	"github.com/sawahq/sawa/utils"
)

// The completion ledger holds at most one record per (user, subject,
// day). A repeat complete replaces the record in place; XP and the
// activity entry fire only when the slot was empty. Uncomplete empties
// the slot without clawing XP back, so a later complete counts as a
// fresh first completion.

// CompleteOpts describes one ledger completion. Exists and Write run
// inside the same transaction; Exists decides first-ness before Write
// upserts the record.
type CompleteOpts struct {
	UserID string
	Date   string
	XP     int
	Source string

	// Activity is appended only on a first completion; XPEarned is
	// filled in from XP.
	Activity *models.ActivityLog

	Exists func(tx *gorm.DB) (bool, error)
	Write  func(tx *gorm.DB) error
}

// CompleteResult reports what one complete call did.
type CompleteResult struct {
	First     bool      `json:"first"`
	XPAwarded int       `json:"xp_awarded"`
	Progress  *XPResult `json:"progress,omitempty"`
}

// CompleteOnce records a completion, granting XP exactly once per
// occupied slot. A failed write leaves the ledger and the XP counter
// untouched.
func CompleteOnce(db *gorm.DB, opts CompleteOpts) (*CompleteResult, error) {
	if opts.Exists == nil || opts.Write == nil {
		return nil, errors.New("completion requires Exists and Write")
	}

	result := &CompleteResult{}
	err := db.Transaction(func(tx *gorm.DB) error {
		existed, err := opts.Exists(tx)
		if err != nil {
			return err
		}
		if err := opts.Write(tx); err != nil {
			return err
		}
		if existed {
			return nil
		}
		result.First = true
		if opts.XP <= 0 {
			return nil
		}
		progress, err := grantXP(tx, opts.XP)
		if err != nil {
			return err
		}
		result.XPAwarded = opts.XP
		result.Progress = progress
		if opts.Activity != nil {
			opts.Activity.UserID = opts.UserID
			opts.Activity.XPEarned = opts.XP
			if err := tx.Create(opts.Activity).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.XPAwarded > 0 {
		utils.XPGranted.WithLabelValues(opts.Source).Add(float64(result.XPAwarded))
	}
	utils.PublishChange(opts.UserID, opts.Source, opts.Date)
	return result, nil
}

// Uncomplete empties a ledger slot. Previously granted XP stays.
func Uncomplete(db *gorm.DB, userID, source, date string, del func(tx *gorm.DB) error) error {
	if err := db.Transaction(del); err != nil {
		return err
	}
	utils.PublishChange(userID, source, date)
	return nil
}
