package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lshigami/Bulletin/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionSummary is one row of the question listing.
type QuestionSummary struct {
	ID             uint
	Subject        string
	AuthorID       uint
	AuthorUsername string
	CreateDate     time.Time
	ModifyDate     *time.Time
	AnswerCount    int64
	VoterCount     int64
}

// ListQuery selects a window of the listing. An empty Keyword lists everything.
type ListQuery struct {
	Keyword string
	Offset  int
	Limit   int
}

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	FindByIDWithAnswers(ctx context.Context, id uint) (*model.Question, error)
	UpdateContent(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query ListQuery) ([]QuestionSummary, int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(question).Error
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).Preload("Author").First(&question, id).Error; err != nil {
		return nil, translate(err)
	}
	return &question, nil
}

func (r *questionRepository) FindByIDWithAnswers(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.create_date ASC, answers.id ASC")
		}).
		Preload("Answers.Author").
		First(&question, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &question, nil
}

// UpdateContent writes subject, content and modify_date only.
func (r *questionRepository) UpdateContent(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).
		Model(&model.Question{ID: question.ID}).
		Select("subject", "content", "modify_date").
		Updates(map[string]interface{}{
			"subject":     question.Subject,
			"content":     question.Content,
			"modify_date": question.ModifyDate,
		}).Error
}

// Delete removes the question with its answers and every vote row in one
// transaction; the foreign keys cascade the same way if rows slip through.
func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		answerIDs := tx.Model(&model.Answer{}).Select("id").Where("question_id = ?", id)
		if err := tx.Where("answer_id IN (?)", answerIDs).Delete(&model.AnswerVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.QuestionVote{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Question{}, id)
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

// keywordFilter matches a question when the keyword occurs in its subject,
// content or author name, or in the content or author name of any answer.
// Filtering through an id subquery keeps each question once however many
// answers match.
const keywordFilter = `questions.id IN (
	SELECT q.id FROM questions q
	JOIN users qu ON qu.id = q.author_id
	LEFT JOIN answers a ON a.question_id = q.id
	LEFT JOIN users au ON au.id = a.author_id
	WHERE LOWER(q.subject) LIKE @kw ESCAPE '\'
	   OR LOWER(q.content) LIKE @kw ESCAPE '\'
	   OR LOWER(qu.username) LIKE @kw ESCAPE '\'
	   OR LOWER(a.content) LIKE @kw ESCAPE '\'
	   OR LOWER(au.username) LIKE @kw ESCAPE '\')`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *questionRepository) filtered(ctx context.Context, keyword string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Question{})
	if keyword != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
		q = q.Where(keywordFilter, sql.Named("kw", pattern))
	}
	return q
}

// List returns one page of summaries, newest first with id breaking ties,
// and the total number of matching questions.
func (r *questionRepository) List(ctx context.Context, query ListQuery) ([]QuestionSummary, int64, error) {
	var total int64
	if err := r.filtered(ctx, query.Keyword).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := []QuestionSummary{}
	if total == 0 || int64(query.Offset) >= total {
		return rows, total, nil
	}

	err := r.filtered(ctx, query.Keyword).
		Select(`questions.id, questions.subject, questions.author_id,
			users.username AS author_username,
			questions.create_date, questions.modify_date,
			(SELECT COUNT(*) FROM answers WHERE answers.question_id = questions.id) AS answer_count,
			(SELECT COUNT(*) FROM question_votes WHERE question_votes.question_id = questions.id) AS voter_count`).
		Joins("JOIN users ON users.id = questions.author_id").
		Order("questions.create_date DESC").
		Order("questions.id DESC").
		Offset(query.Offset).
		Limit(query.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
