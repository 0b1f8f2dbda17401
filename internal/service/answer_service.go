package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
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

type AnswerService interface {
	CreateAnswer(ctx context.Context, actor *model.User, questionID uint, req dto.AnswerRequest) (*dto.AnswerResponseDTO, error)
	GetAnswer(ctx context.Context, id uint) (*dto.AnswerResponseDTO, error)
	UpdateAnswer(ctx context.Context, actor *model.User, id uint, req dto.AnswerRequest) (*dto.AnswerResponseDTO, error)
	// DeleteAnswer returns the parent question id so callers can go back to it.
	DeleteAnswer(ctx context.Context, actor *model.User, id uint) (uint, error)
}

type answerService struct {
	repo         repository.AnswerRepository
	questionRepo repository.QuestionRepository
	voteRepo     repository.VoteRepository
	now          Clock
}

func NewAnswerService(repo repository.AnswerRepository, questionRepo repository.QuestionRepository, voteRepo repository.VoteRepository, now Clock) AnswerService {
	return &answerService{repo: repo, questionRepo: questionRepo, voteRepo: voteRepo, now: now}
}

func (s *answerService) CreateAnswer(ctx context.Context, actor *model.User, questionID uint, req dto.AnswerRequest) (*dto.AnswerResponseDTO, error) {
	if actor == nil {
		return nil, errorz.ErrUnauthenticated
	}
	if _, err := s.questionRepo.FindByID(ctx, questionID); err != nil {
		return nil, err
	}
	in, err := validation.ValidateAnswer(validation.AnswerInput{Content: req.Content})
	if err != nil {
		return nil, err
	}

	answer := model.Answer{
		QuestionID: questionID,
		AuthorID:   actor.ID,
		Content:    in.Content,
		CreateDate: s.now(),
	}
	if err := s.repo.Create(ctx, &answer); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to create answer")
		return nil, fmt.Errorf("create answer: %w", err)
	}
	metrics.AnswersCreated.Inc()
	log.Info().Uint("answerID", answer.ID).Uint("questionID", questionID).Msg("Answer created")

	answer.Author = *actor
	resp := toAnswerResponse(&answer, nil)
	return &resp, nil
}

func (s *answerService) GetAnswer(ctx context.Context, id uint) (*dto.AnswerResponseDTO, error) {
	answer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	voters, err := s.voteRepo.AnswerVoterNames(ctx, []uint{id})
	if err != nil {
		return nil, fmt.Errorf("load answer voters: %w", err)
	}
	resp := toAnswerResponse(answer, voters[id])
	return &resp, nil
}

func (s *answerService) UpdateAnswer(ctx context.Context, actor *model.User, id uint, req dto.AnswerRequest) (*dto.AnswerResponseDTO, error) {
	answer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.AuthorizeMutation(actor, answer); err != nil {
		log.Warn().Uint("answerID", id).Msg("Answer edit refused: not the author")
		return nil, errorz.Refuse(err, answer.QuestionID, answer.ID)
	}
	in, err := validation.ValidateAnswer(validation.AnswerInput{Content: req.Content})
	if err != nil {
		return nil, err
	}

	modified := s.now()
	answer.Content = in.Content
	answer.ModifyDate = &modified
	if err := s.repo.UpdateContent(ctx, answer); err != nil {
		log.Error().Err(err).Uint("answerID", id).Msg("Failed to update answer")
		return nil, fmt.Errorf("update answer: %w", err)
	}
	return s.GetAnswer(ctx, id)
}

func (s *answerService) DeleteAnswer(ctx context.Context, actor *model.User, id uint) (uint, error) {
	answer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := access.AuthorizeMutation(actor, answer); err != nil {
		log.Warn().Uint("answerID", id).Msg("Answer delete refused: not the author")
		return 0, errorz.Refuse(err, answer.QuestionID, answer.ID)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Uint("answerID", id).Msg("Failed to delete answer")
		return 0, fmt.Errorf("delete answer: %w", err)
	}
	log.Info().Uint("answerID", id).Uint("questionID", answer.QuestionID).Msg("Answer deleted")
	return answer.QuestionID, nil
}

func toAnswerResponse(a *model.Answer, voters []string) dto.AnswerResponseDTO {
	var resp dto.AnswerResponseDTO
	copier.Copy(&resp, a)
	resp.Author = userSummary(a.Author)
	resp.ContentHTML = markdown.Render(a.Content)
	if voters == nil {
		voters = []string{}
	}
	resp.Voters = voters
	resp.VoterCount = len(voters)
	return resp
}
