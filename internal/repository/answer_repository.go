package repository

import (
	"context"

	"github.com/lshigami/Bulletin/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	Create(ctx context.Context, answer *model.Answer) error
	FindByID(ctx context.Context, id uint) (*model.Answer, error)
	UpdateContent(ctx context.Context, answer *model.Answer) error
	Delete(ctx context.Context, id uint) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// Create fails with errorz.ErrNotFound when the question vanished meanwhile.
func (r *answerRepository) Create(ctx context.Context, answer *model.Answer) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(answer).Error)
}

func (r *answerRepository) FindByID(ctx context.Context, id uint) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.WithContext(ctx).Preload("Author").First(&answer, id).Error; err != nil {
		return nil, translate(err)
	}
	return &answer, nil
}

func (r *answerRepository) UpdateContent(ctx context.Context, answer *model.Answer) error {
	return r.db.WithContext(ctx).
		Model(&model.Answer{ID: answer.ID}).
		Select("content", "modify_date").
		Updates(map[string]interface{}{
			"content":     answer.Content,
			"modify_date": answer.ModifyDate,
		}).Error
}

func (r *answerRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("answer_id = ?", id).Delete(&model.AnswerVote{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Answer{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err)
}
