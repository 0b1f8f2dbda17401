package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Bulletin/config"
	"github.com/lshigami/Bulletin/internal/access"
	"github.com/lshigami/Bulletin/internal/dto"
	"github.com/lshigami/Bulletin/internal/errorz"
	"github.com/lshigami/Bulletin/internal/markdown"
	"github.com/lshigami/Bulletin/internal/metrics"
	"github.com/lshigami/Bulletin/internal/model"
	"github.com/lshigami/Bulletin/internal/repository"
	"github.com/lshigami/Bulletin/internal/validation"
	"github.com/rs/zerolog/log"
)

type QuestionService interface {
	CreateQuestion(ctx context.Context, actor *model.User, req dto.QuestionRequest) (*dto.QuestionDetailDTO, error)
	GetQuestion(ctx context.Context, id uint) (*dto.QuestionDetailDTO, error)
	UpdateQuestion(ctx context.Context, actor *model.User, id uint, req dto.QuestionRequest) (*dto.QuestionDetailDTO, error)
	DeleteQuestion(ctx context.Context, actor *model.User, id uint) error
	ListQuestions(ctx context.Context, keyword string, page int) (*dto.QuestionPageDTO, error)
}

type questionService struct {
	repo     repository.QuestionRepository
	voteRepo repository.VoteRepository
	now      Clock
	pageSize int
}

func NewQuestionService(repo repository.QuestionRepository, voteRepo repository.VoteRepository, now Clock, cfg *config.Config) QuestionService {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	return &questionService{repo: repo, voteRepo: voteRepo, now: now, pageSize: pageSize}
}

func (s *questionService) CreateQuestion(ctx context.Context, actor *model.User, req dto.QuestionRequest) (*dto.QuestionDetailDTO, error) {
	if actor == nil {
		return nil, errorz.ErrUnauthenticated
	}
	in, err := validation.ValidateQuestion(validation.QuestionInput{Subject: req.Subject, Content: req.Content})
	if err != nil {
		return nil, err
	}

	question := model.Question{
		AuthorID:   actor.ID,
		Subject:    in.Subject,
		Content:    in.Content,
		CreateDate: s.now(),
	}
	if err := s.repo.Create(ctx, &question); err != nil {
		log.Error().Err(err).Uint("authorID", actor.ID).Msg("Failed to create question")
		return nil, fmt.Errorf("create question: %w", err)
	}
	metrics.QuestionsCreated.Inc()
	log.Info().Uint("questionID", question.ID).Uint("authorID", actor.ID).Msg("Question created")

	question.Author = *actor
	return toQuestionDetail(&question, 0, nil), nil
}

func (s *questionService) GetQuestion(ctx context.Context, id uint) (*dto.QuestionDetailDTO, error) {
	question, err := s.repo.FindByIDWithAnswers(ctx, id)
	if err != nil {
		return nil, err
	}
	voters, err := s.voteRepo.CountQuestionVoters(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count question voters: %w", err)
	}
	answerIDs := make([]uint, 0, len(question.Answers))
	for _, a := range question.Answers {
		answerIDs = append(answerIDs, a.ID)
	}
	answerVoters, err := s.voteRepo.AnswerVoterNames(ctx, answerIDs)
	if err != nil {
		return nil, fmt.Errorf("load answer voters: %w", err)
	}
	return toQuestionDetail(question, voters, answerVoters), nil
}

// UpdateQuestion checks, in order: existence, authorship, then the fields.
func (s *questionService) UpdateQuestion(ctx context.Context, actor *model.User, id uint, req dto.QuestionRequest) (*dto.QuestionDetailDTO, error) {
	question, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.AuthorizeMutation(actor, question); err != nil {
		log.Warn().Uint("questionID", id).Msg("Question edit refused: not the author")
		return nil, errorz.Refuse(err, question.ID, 0)
	}
	in, err := validation.ValidateQuestion(validation.QuestionInput{Subject: req.Subject, Content: req.Content})
	if err != nil {
		return nil, err
	}

	modified := s.now()
	question.Subject = in.Subject
	question.Content = in.Content
	question.ModifyDate = &modified
	if err := s.repo.UpdateContent(ctx, question); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to update question")
		return nil, fmt.Errorf("update question: %w", err)
	}
	return s.GetQuestion(ctx, id)
}

func (s *questionService) DeleteQuestion(ctx context.Context, actor *model.User, id uint) error {
	question, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.AuthorizeMutation(actor, question); err != nil {
		log.Warn().Uint("questionID", id).Msg("Question delete refused: not the author")
		return errorz.Refuse(err, question.ID, 0)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to delete question")
		return fmt.Errorf("delete question: %w", err)
	}
	log.Info().Uint("questionID", id).Msg("Question deleted with its answers")
	return nil
}

func (s *questionService) ListQuestions(ctx context.Context, keyword string, page int) (*dto.QuestionPageDTO, error) {
	keyword = strings.TrimSpace(keyword)
	if page < 1 {
		page = 1
	}
	offset := math.MaxInt
	if page-1 <= math.MaxInt/s.pageSize {
		offset = (page - 1) * s.pageSize
	}

	rows, total, err := s.repo.List(ctx, repository.ListQuery{Keyword: keyword, Offset: offset, Limit: s.pageSize})
	if err != nil {
		log.Error().Err(err).Str("keyword", keyword).Int("page", page).Msg("Failed to list questions")
		return nil, fmt.Errorf("list questions: %w", err)
	}

	items := make([]dto.QuestionSummaryDTO, 0, len(rows))
	for _, row := range rows {
		var item dto.QuestionSummaryDTO
		if err := copier.Copy(&item, &row); err != nil {
			return nil, fmt.Errorf("map question summary: %w", err)
		}
		item.Author = dto.UserSummary{ID: row.AuthorID, Username: row.AuthorUsername}
		items = append(items, item)
	}

	totalPages := int((total + int64(s.pageSize) - 1) / int64(s.pageSize))
	return &dto.QuestionPageDTO{
		Items:       items,
		Page:        page,
		PageSize:    s.pageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
		Keyword:     keyword,
	}, nil
}

func toQuestionDetail(q *model.Question, voters int64, answerVoters map[uint][]string) *dto.QuestionDetailDTO {
	var resp dto.QuestionDetailDTO
	copier.Copy(&resp, q)
	resp.Author = userSummary(q.Author)
	resp.ContentHTML = markdown.Render(q.Content)
	resp.VoterCount = voters
	resp.Answers = make([]dto.AnswerResponseDTO, 0, len(q.Answers))
	for i := range q.Answers {
		resp.Answers = append(resp.Answers, toAnswerResponse(&q.Answers[i], answerVoters[q.Answers[i].ID]))
	}
	return &resp
}
