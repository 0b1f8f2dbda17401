package service

import (
	"testing"
	"time"

	"github.com/lshigami/Bulletin/internal/dto"
	"github.com/lshigami/Bulletin/internal/errorz"
	"github.com/lshigami/Bulletin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAnswer(t *testing.T) {
	f := newFixture(t, time.Minute, nil)
	alice := testutil.CreateUser(t, f.db, "alice")
	bob := testutil.CreateUser(t, f.db, "bob")
	q, err := f.questions.CreateQuestion(ctx, alice, dto.QuestionRequest{Subject: "S", Content: "C"})
	require.NoError(t, err)

	first, err := f.answers.CreateAnswer(ctx, bob, q.ID, dto.AnswerRequest{Content: "first"})
	require.NoError(t, err)
	second, err := f.answers.CreateAnswer(ctx, alice, q.ID, dto.AnswerRequest{Content: "second"})
	require.NoError(t, err)
	assert.Equal(t, q.ID, first.QuestionID)
	assert.Equal(t, "bob", first.Author.Username)
	assert.Equal(t, 0, first.VoterCount)
	assert.NotNil(t, first.Voters)

	detail, err := f.questions.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, detail.Answers, 2)
	assert.Equal(t, first.ID, detail.Answers[0].ID)
	assert.Equal(t, second.ID, detail.Answers[1].ID)
	assert.Equal(t, "alice", detail.Answers[1].Author.Username)
}

func TestCreateAnswer_Errors(t *testing.T) {
	f := newFixture(t, time.Minute, nil)
	alice := testutil.CreateUser(t, f.db, "alice")
	q, err := f.questions.CreateQuestion(ctx, alice, dto.QuestionRequest{Subject: "S", Content: "C"})
	require.NoError(t, err)

	_, err = f.answers.CreateAnswer(ctx, alice, q.ID+1, dto.AnswerRequest{Content: "x"})
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	_, err = f.answers.CreateAnswer(ctx, alice, q.ID+1, dto.AnswerRequest{Content: ""})
	assert.ErrorIs(t, err, errorz.ErrNotFound, "existence is checked before content")

	_, err = f.answers.CreateAnswer(ctx, alice, q.ID, dto.AnswerRequest{Content: " \n\t "})
	ve, ok := errorz.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "content")

	_, err = f.answers.CreateAnswer(ctx, nil, q.ID, dto.AnswerRequest{Content: "x"})
	assert.ErrorIs(t, err, errorz.ErrUnauthenticated)

	detail, err := f.questions.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Answers)
}

func TestUpdateAnswer(t *testing.T) {
	f := newFixture(t, time.Minute, nil)
	alice := testutil.CreateUser(t, f.db, "alice")
	bob := testutil.CreateUser(t, f.db, "bob")
	q, err := f.questions.CreateQuestion(ctx, alice, dto.QuestionRequest{Subject: "S", Content: "C"})
	require.NoError(t, err)
	a, err := f.answers.CreateAnswer(ctx, bob, q.ID, dto.AnswerRequest{Content: "draft"})
	require.NoError(t, err)

	_, err = f.answers.UpdateAnswer(ctx, alice, a.ID, dto.AnswerRequest{Content: "nope"})
	assert.ErrorIs(t, err, errorz.ErrPermissionDenied)
	n, ok := errorz.AsNotice(err)
	require.True(t, ok)
	assert.Equal(t, q.ID, n.QuestionID)
	assert.Equal(t, a.ID, n.AnswerID)

	got, err := f.answers.UpdateAnswer(ctx, bob, a.ID, dto.AnswerRequest{Content: "final"})
	require.NoError(t, err)
	assert.Equal(t, "final", got.Content)
	require.NotNil(t, got.ModifyDate)
	assert.True(t, got.ModifyDate.After(got.CreateDate))

	_, err = f.answers.UpdateAnswer(ctx, bob, a.ID+10, dto.AnswerRequest{Content: "x"})
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}

func TestDeleteAnswer(t *testing.T) {
	f := newFixture(t, time.Minute, nil)
	alice := testutil.CreateUser(t, f.db, "alice")
	bob := testutil.CreateUser(t, f.db, "bob")
	q, err := f.questions.CreateQuestion(ctx, alice, dto.QuestionRequest{Subject: "S", Content: "C"})
	require.NoError(t, err)
	a, err := f.answers.CreateAnswer(ctx, bob, q.ID, dto.AnswerRequest{Content: "bye"})
	require.NoError(t, err)
	_, err = f.votes.VoteAnswer(ctx, alice, a.ID)
	require.NoError(t, err)

	_, err = f.answers.DeleteAnswer(ctx, alice, a.ID)
	assert.ErrorIs(t, err, errorz.ErrPermissionDenied)

	questionID, err := f.answers.DeleteAnswer(ctx, bob, a.ID)
	require.NoError(t, err)
	assert.Equal(t, q.ID, questionID)

	_, err = f.answers.GetAnswer(ctx, a.ID)
	assert.ErrorIs(t, err, errorz.ErrNotFound)
	detail, err := f.questions.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Answers)
}
