package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Bulletin/config"
	"github.com/lshigami/Bulletin/internal/auth"
	"github.com/lshigami/Bulletin/internal/dto"
	"github.com/lshigami/Bulletin/internal/middleware"
	"github.com/lshigami/Bulletin/internal/repository"
	"github.com/lshigami/Bulletin/internal/service"
	"github.com/lshigami/Bulletin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	clock := service.Clock(testutil.Clock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), time.Second))

	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	issuer := auth.NewTokenIssuer("controller-test", time.Hour, auth.NewBlacklist(nil))

	accounts := service.NewAccountService(userRepo, issuer, clock)
	votes := service.NewVoteService(voteRepo, questionRepo, answerRepo)
	r := &Router{
		Questions:    NewQuestionController(service.NewQuestionService(questionRepo, voteRepo, clock, &config.Config{PageSize: 10}), votes),
		Answers:      NewAnswerController(service.NewAnswerService(answerRepo, questionRepo, voteRepo, clock), votes),
		Accounts:     NewAccountController(accounts),
		Authenticate: middleware.Authenticate(issuer, accounts),
		Limit:        middleware.RateLimit(1000, 1000),
	}
	engine := gin.New()
	r.RegisterRoutes(engine)
	return engine
}

func do(t *testing.T, engine *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func signup(t *testing.T, engine *gin.Engine, username string) string {
	t.Helper()
	w := do(t, engine, http.MethodPost, "/api/v1/auth/signup", "", dto.SignupRequest{
		Username:  username,
		Email:     username + "@example.com",
		Password1: "correct-horse",
		Password2: "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.AuthResponse](t, w).AccessToken
}

func TestForumOverHTTP(t *testing.T) {
	engine := newTestRouter(t)
	alice := signup(t, engine, "alice")
	bob := signup(t, engine, "bob")

	w := do(t, engine, http.MethodPost, "/api/v1/questions", alice, dto.QuestionRequest{Subject: "Q", Content: "line one\nline two"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	q := decode[dto.QuestionDetailDTO](t, w)
	assert.Contains(t, q.ContentHTML, "<br")

	w = do(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/questions/%d/answers", q.ID), bob, dto.AnswerRequest{Content: "A"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	a := decode[dto.AnswerResponseDTO](t, w)
	assert.Equal(t, fmt.Sprintf("/api/v1/questions/%d#answer_%d", q.ID, a.ID), w.Header().Get("Location"))

	w = do(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/answers/%d/vote", a.ID), alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[dto.VoteResponse](t, w).Voters)

	w = do(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/answers/%d/vote", a.ID), alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[dto.VoteResponse](t, w).Voters)

	w = do(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/answers/%d/vote", a.ID), bob, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	refused := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, fmt.Sprintf("/api/v1/questions/%d#answer_%d", q.ID, a.ID), refused.Redirect)
	assert.NotEmpty(t, refused.Message)

	w = do(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/questions/%d", q.ID), bob, dto.QuestionRequest{Subject: "X", Content: "Y"})
	require.Equal(t, http.StatusForbidden, w.Code)
	denied := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, fmt.Sprintf("/api/v1/questions/%d", q.ID), denied.Redirect)
	assert.Equal(t, "no permission to modify this question", denied.Message)
	assert.Empty(t, denied.Fields)

	w = do(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/questions/%d", q.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[dto.QuestionDetailDTO](t, w)
	assert.Equal(t, "Q", detail.Subject)
	require.Len(t, detail.Answers, 1)
	assert.Equal(t, []string{"alice"}, detail.Answers[0].Voters)

	w = do(t, engine, http.MethodDelete, fmt.Sprintf("/api/v1/questions/%d", q.ID), alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api/v1/questions", decode[dto.RedirectResponse](t, w).Redirect)

	w = do(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/answers/%d", a.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMutationsRequireLogin(t *testing.T) {
	engine := newTestRouter(t)
	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/questions"},
		{http.MethodPut, "/api/v1/questions/1"},
		{http.MethodDelete, "/api/v1/questions/1"},
		{http.MethodPost, "/api/v1/questions/1/vote"},
		{http.MethodPost, "/api/v1/questions/1/answers"},
		{http.MethodPut, "/api/v1/answers/1"},
		{http.MethodDelete, "/api/v1/answers/1"},
		{http.MethodPost, "/api/v1/answers/1/vote"},
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodGet, "/api/v1/auth/me"},
	}
	for _, rt := range routes {
		w := do(t, engine, rt.method, rt.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", rt.method, rt.path)
		assert.Equal(t, middleware.LoginPath, decode[dto.ErrorResponse](t, w).Redirect)
	}

	w := do(t, engine, http.MethodPost, "/api/v1/questions", "not-a-token", dto.QuestionRequest{Subject: "s", Content: "c"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateQuestion_InvalidInput(t *testing.T) {
	engine := newTestRouter(t)
	token := signup(t, engine, "alice")

	w := do(t, engine, http.MethodPost, "/api/v1/questions", token, dto.QuestionRequest{Subject: "", Content: "c"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, "invalid input", body.Message)
	assert.Contains(t, body.Fields, "subject")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/questions", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	w = do(t, engine, http.MethodGet, "/api/v1/questions", "", nil)
	assert.EqualValues(t, 0, decode[dto.QuestionPageDTO](t, w).Total)
}

func TestGetQuestion_BadAndMissingIDs(t *testing.T) {
	engine := newTestRouter(t)

	w := do(t, engine, http.MethodGet, "/api/v1/questions/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, engine, http.MethodGet, "/api/v1/questions/0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, engine, http.MethodGet, "/api/v1/questions/77", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, engine, http.MethodGet, "/api/v1/answers/77", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListQuestions_Query(t *testing.T) {
	engine := newTestRouter(t)
	token := signup(t, engine, "alice")
	for i := 1; i <= 12; i++ {
		w := do(t, engine, http.MethodPost, "/api/v1/questions", token, dto.QuestionRequest{
			Subject: fmt.Sprintf("topic %d", i),
			Content: "body",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := do(t, engine, http.MethodGet, "/api/v1/questions?page=abc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[dto.QuestionPageDTO](t, w)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, "topic 12", page.Items[0].Subject)

	w = do(t, engine, http.MethodGet, "/api/v1/questions?page=2", "", nil)
	page = decode[dto.QuestionPageDTO](t, w)
	assert.Len(t, page.Items, 2)
	assert.False(t, page.HasNext)

	w = do(t, engine, http.MethodGet, "/api/v1/questions?page=9", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[dto.QuestionPageDTO](t, w).Items)

	w = do(t, engine, http.MethodGet, "/api/v1/questions?kw=TOPIC+1", "", nil)
	page = decode[dto.QuestionPageDTO](t, w)
	assert.EqualValues(t, 4, page.Total, "topic 1, 10, 11, 12")
	assert.Equal(t, "TOPIC 1", page.Keyword)
}

func TestAccountRoutes(t *testing.T) {
	engine := newTestRouter(t)
	signup(t, engine, "alice")

	w := do(t, engine, http.MethodPost, "/api/v1/auth/signup", "", dto.SignupRequest{
		Username: "alice", Email: "a@example.com", Password1: "correct-horse", Password2: "correct-horse",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[dto.ErrorResponse](t, w).Fields, "username")

	w = do(t, engine, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "alice", Password: "wrong-horse"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, engine, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "alice", Password: "correct-horse"})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode[dto.AuthResponse](t, w).AccessToken

	w = do(t, engine, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode[dto.UserResponse](t, w).Username)

	w = do(t, engine, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
