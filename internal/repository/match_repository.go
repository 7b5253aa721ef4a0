package repository

import (
	"errors"
	"time"

	"github.com/founderfit/cofounder-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MatchRepository interface {
	// CreateIfAbsent inserts a directed edge unless a live active edge for the
	// same ordered pair already exists. An active edge whose expiry has passed
	// is overwritten in place, so expired suggestions do not block the pair
	// forever. Returns true when the row was inserted or revived.
	CreateIfAbsent(tx *gorm.DB, match *model.Match, now time.Time) (bool, error)
	FindByID(id string) (*model.Match, error)
	FindActiveMirror(userID, candidateID uint) (*model.Match, error)
	// FindActiveMirrorForUpdate locks the mirror row for the duration of the
	// transaction, so two users responding "interested" at the same moment
	// serialize on each other's rows instead of both missing the mutual.
	FindActiveMirrorForUpdate(tx *gorm.DB, userID, candidateID uint) (*model.Match, error)
	FindActiveByUser(userID uint, now time.Time) ([]model.Match, error)
	LinkedUserIDs(userID uint, now time.Time) (map[uint]bool, error)
	// UpdateStatusIf transitions the row only when it is still in one of the
	// expected statuses; the RowsAffected result doubles as a compare-and-swap
	// so concurrent responders cannot double-apply a transition.
	UpdateStatusIf(tx *gorm.DB, matchID string, expected []model.MatchStatus, updates map[string]interface{}) (bool, error)
	TouchViewed(tx *gorm.DB, matchID string, at time.Time) error
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) CreateIfAbsent(tx *gorm.DB, match *model.Match, now time.Time) (bool, error) {
	// ON CONFLICT against the partial unique index on (user_id, candidate_id)
	// WHERE status is active. This is what makes the check-then-create of
	// mirror rows race-safe across concurrent RunMatching calls for two users
	// who are candidates of each other. A conflicting row that has already
	// expired is overwritten with the fresh suggestion (taking the new id and
	// score); a live row wins the conflict and nothing changes.
	res := tx.Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "user_id"}, {Name: "candidate_id"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{gorm.Expr("status IN ('suggested','viewed','interested','accepted')")}},
		DoUpdates: clause.AssignmentColumns([]string{
			"id", "status", "match_score", "compatibility", "expires_at",
			"viewed_at", "responded_at", "updated_at",
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			gorm.Expr("matches.expires_at IS NOT NULL AND matches.expires_at <= ?", now),
		}},
	}).Create(match)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *matchRepository) FindByID(id string) (*model.Match, error) {
	var match model.Match
	if err := r.db.First(&match, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// FindActiveMirror returns the candidate→user edge for a user→candidate edge,
// or nil when none is active.
func (r *matchRepository) FindActiveMirror(userID, candidateID uint) (*model.Match, error) {
	var match model.Match
	err := r.db.Where("user_id = ? AND candidate_id = ? AND status IN ?",
		candidateID, userID, model.ActiveStatuses()).First(&match).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) FindActiveMirrorForUpdate(tx *gorm.DB, userID, candidateID uint) (*model.Match, error) {
	var match model.Match
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND candidate_id = ? AND status IN ?",
			candidateID, userID, model.ActiveStatuses()).First(&match).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// FindActiveByUser lists non-terminal, non-expired matches. Expiry is a
// read-time filter; expired rows stay in place for history.
func (r *matchRepository) FindActiveByUser(userID uint, now time.Time) ([]model.Match, error) {
	var matches []model.Match
	err := r.db.Where("user_id = ? AND status IN ? AND (expires_at IS NULL OR expires_at > ?)",
		userID, model.ActiveStatuses(), now).
		Order("match_score DESC").Find(&matches).Error
	return matches, err
}

// LinkedUserIDs collects everyone connected to the user by a live active edge
// in either direction, for candidate-pool exclusion. Expired edges do not
// count; their pairs are eligible to be matched again.
func (r *matchRepository) LinkedUserIDs(userID uint, now time.Time) (map[uint]bool, error) {
	var rows []model.Match
	err := r.db.Select("user_id", "candidate_id").
		Where("(user_id = ? OR candidate_id = ?) AND status IN ? AND (expires_at IS NULL OR expires_at > ?)",
			userID, userID, model.ActiveStatuses(), now).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	linked := make(map[uint]bool, len(rows))
	for _, m := range rows {
		if m.UserID != userID {
			linked[m.UserID] = true
		}
		if m.CandidateID != userID {
			linked[m.CandidateID] = true
		}
	}
	return linked, nil
}

func (r *matchRepository) UpdateStatusIf(tx *gorm.DB, matchID string, expected []model.MatchStatus, updates map[string]interface{}) (bool, error) {
	res := tx.Model(&model.Match{}).
		Where("id = ? AND status IN ?", matchID, expected).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *matchRepository) TouchViewed(tx *gorm.DB, matchID string, at time.Time) error {
	return tx.Model(&model.Match{}).
		Where("id = ?", matchID).
		Update("viewed_at", at).Error
}
