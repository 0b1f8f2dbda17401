package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/Bulletin/internal/dto"
	"github.com/lshigami/Bulletin/internal/errorz"
	"github.com/lshigami/Bulletin/internal/metrics"
	"github.com/lshigami/Bulletin/internal/model"
	"github.com/lshigami/Bulletin/internal/repository"
	"github.com/rs/zerolog/log"
)

// VoteService records recommendations. A user is a member of a post's voter
// set at most once and never of their own post's set.
type VoteService interface {
	VoteQuestion(ctx context.Context, actor *model.User, questionID uint) (*dto.VoteResponse, error)
	VoteAnswer(ctx context.Context, actor *model.User, answerID uint) (*dto.VoteResponse, error)
}

type voteService struct {
	repo         repository.VoteRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
}

func NewVoteService(repo repository.VoteRepository, questionRepo repository.QuestionRepository, answerRepo repository.AnswerRepository) VoteService {
	return &voteService{repo: repo, questionRepo: questionRepo, answerRepo: answerRepo}
}

func (s *voteService) VoteQuestion(ctx context.Context, actor *model.User, questionID uint) (*dto.VoteResponse, error) {
	if actor == nil {
		return nil, errorz.ErrUnauthenticated
	}
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question.AuthorID == actor.ID {
		metrics.Votes.WithLabelValues("question", "self").Inc()
		return nil, errorz.Refuse(errorz.ErrSelfVote, question.ID, 0)
	}
	if err := s.repo.AddQuestionVoter(ctx, question.ID, actor.ID); err != nil {
		return nil, s.voteFailed("question", question.ID, err)
	}
	count, err := s.repo.CountQuestionVoters(ctx, question.ID)
	if err != nil {
		return nil, fmt.Errorf("count question voters: %w", err)
	}
	metrics.Votes.WithLabelValues("question", "recorded").Inc()
	log.Info().Uint("questionID", question.ID).Uint("userID", actor.ID).Int64("voters", count).Msg("Question vote recorded")
	return &dto.VoteResponse{Voters: count}, nil
}

func (s *voteService) VoteAnswer(ctx context.Context, actor *model.User, answerID uint) (*dto.VoteResponse, error) {
	if actor == nil {
		return nil, errorz.ErrUnauthenticated
	}
	answer, err := s.answerRepo.FindByID(ctx, answerID)
	if err != nil {
		return nil, err
	}
	if answer.AuthorID == actor.ID {
		metrics.Votes.WithLabelValues("answer", "self").Inc()
		return nil, errorz.Refuse(errorz.ErrSelfVote, answer.QuestionID, answer.ID)
	}
	if err := s.repo.AddAnswerVoter(ctx, answer.ID, actor.ID); err != nil {
		return nil, s.voteFailed("answer", answer.ID, err)
	}
	count, err := s.repo.CountAnswerVoters(ctx, answer.ID)
	if err != nil {
		return nil, fmt.Errorf("count answer voters: %w", err)
	}
	metrics.Votes.WithLabelValues("answer", "recorded").Inc()
	log.Info().Uint("answerID", answer.ID).Uint("userID", actor.ID).Int64("voters", count).Msg("Answer vote recorded")
	return &dto.VoteResponse{Voters: count}, nil
}

func (s *voteService) voteFailed(target string, id uint, err error) error {
	if errors.Is(err, errorz.ErrNotFound) {
		return err
	}
	metrics.Votes.WithLabelValues(target, "error").Inc()
	log.Error().Err(err).Str("target", target).Uint("id", id).Msg("Failed to record vote")
	return fmt.Errorf("record %s vote: %w", target, err)
}
