package service

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/Bulletin/config"
	"github.com/lshigami/Bulletin/internal/auth"
	"github.com/lshigami/Bulletin/internal/repository"
	"github.com/lshigami/Bulletin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db        *gorm.DB
	questions QuestionService
	answers   AnswerService
	votes     VoteService
	accounts  AccountService
	issuer    *auth.TokenIssuer
}

func newFixture(t *testing.T, step time.Duration, bl *auth.Blacklist) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	clock := Clock(testutil.Clock(epoch, step))
	cfg := &config.Config{PageSize: 10}

	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	issuer := auth.NewTokenIssuer("test-secret", time.Hour, bl)

	accounts := NewAccountService(userRepo, issuer, clock).(*accountService)
	accounts.bcryptCost = bcrypt.MinCost

	return &fixture{
		db:        db,
		questions: NewQuestionService(questionRepo, voteRepo, clock, cfg),
		answers:   NewAnswerService(answerRepo, questionRepo, voteRepo, clock),
		votes:     NewVoteService(voteRepo, questionRepo, answerRepo),
		accounts:  accounts,
		issuer:    issuer,
	}
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{
		"":     1,
		"1":    1,
		"3":    3,
		" 2 ":  2,
		"0":    1,
		"-4":   1,
		"abc":  1,
		"2.5":  1,
		"1e3":  1,
		"9999": 9999,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParsePage(raw), "raw=%q", raw)
	}
}

func TestSystemClock_IsUTC(t *testing.T) {
	now := SystemClock()()
	assert.Equal(t, time.UTC, now.Location())
}

var ctx = context.Background()
