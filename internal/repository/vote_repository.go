package repository

import (
	"context"

	"github.com/lshigami/Bulletin/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteRepository stores voter sets. Adding an existing member is a no-op
// decided by the store's primary key, so concurrent duplicates are safe.
type VoteRepository interface {
	AddQuestionVoter(ctx context.Context, questionID, userID uint) error
	AddAnswerVoter(ctx context.Context, answerID, userID uint) error
	CountQuestionVoters(ctx context.Context, questionID uint) (int64, error)
	CountAnswerVoters(ctx context.Context, answerID uint) (int64, error)
	AnswerVoterNames(ctx context.Context, answerIDs []uint) (map[uint][]string, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) AddQuestionVoter(ctx context.Context, questionID, userID uint) error {
	vote := model.QuestionVote{QuestionID: questionID, UserID: userID}
	return translate(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&vote).Error)
}

func (r *voteRepository) AddAnswerVoter(ctx context.Context, answerID, userID uint) error {
	vote := model.AnswerVote{AnswerID: answerID, UserID: userID}
	return translate(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&vote).Error)
}

func (r *voteRepository) CountQuestionVoters(ctx context.Context, questionID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.QuestionVote{}).Where("question_id = ?", questionID).Count(&n).Error
	return n, err
}

func (r *voteRepository) CountAnswerVoters(ctx context.Context, answerID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.AnswerVote{}).Where("answer_id = ?", answerID).Count(&n).Error
	return n, err
}

// AnswerVoterNames returns voter usernames per answer, in voting order.
func (r *voteRepository) AnswerVoterNames(ctx context.Context, answerIDs []uint) (map[uint][]string, error) {
	out := make(map[uint][]string, len(answerIDs))
	if len(answerIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		AnswerID uint
		Username string
	}
	err := r.db.WithContext(ctx).
		Table("answer_votes").
		Select("answer_votes.answer_id, users.username").
		Joins("JOIN users ON users.id = answer_votes.user_id").
		Where("answer_votes.answer_id IN ?", answerIDs).
		Order("answer_votes.created_at ASC, users.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.AnswerID] = append(out[row.AnswerID], row.Username)
	}
	return out, nil
}
