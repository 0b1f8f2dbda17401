package database

import (
	"testing"
	"time"

	"github.com/lshigami/Bulletin/config"
	"github.com/lshigami/Bulletin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.Database{Driver: "oracle"})
	assert.Error(t, err)
}

func TestMigrate_CascadesAtTheStore(t *testing.T) {
	db, err := Open(config.Database{Driver: "sqlite", Name: "file:migrate_cascade?mode=memory&cache=shared&_foreign_keys=1"})
	require.NoError(t, err)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()
	require.NoError(t, Migrate(db))

	now := time.Now().UTC()
	alice := model.User{Username: "alice", Email: "a@example.com", PasswordHash: "x", DateJoined: now}
	bob := model.User{Username: "bob", Email: "b@example.com", PasswordHash: "x", DateJoined: now}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	q := model.Question{AuthorID: alice.ID, Subject: "s", Content: "c", CreateDate: now}
	require.NoError(t, db.Omit("Author").Create(&q).Error)
	a := model.Answer{QuestionID: q.ID, AuthorID: bob.ID, Content: "r", CreateDate: now}
	require.NoError(t, db.Omit("Author").Create(&a).Error)
	require.NoError(t, db.Create(&model.AnswerVote{AnswerID: a.ID, UserID: alice.ID}).Error)

	// raw delete bypasses the service so only the foreign keys act
	require.NoError(t, db.Exec("DELETE FROM questions WHERE id = ?", q.ID).Error)

	var answers, votes int64
	require.NoError(t, db.Model(&model.Answer{}).Count(&answers).Error)
	require.NoError(t, db.Model(&model.AnswerVote{}).Count(&votes).Error)
	assert.Zero(t, answers)
	assert.Zero(t, votes)
}

func TestMigrate_VoteKeyIsUnique(t *testing.T) {
	db, err := Open(config.Database{Driver: "sqlite", Name: "file:migrate_unique?mode=memory&cache=shared&_foreign_keys=1"})
	require.NoError(t, err)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()
	require.NoError(t, Migrate(db))

	now := time.Now().UTC()
	u := model.User{Username: "u", Email: "u@example.com", PasswordHash: "x", DateJoined: now}
	require.NoError(t, db.Create(&u).Error)
	q := model.Question{AuthorID: u.ID, Subject: "s", Content: "c", CreateDate: now}
	require.NoError(t, db.Omit("Author").Create(&q).Error)

	require.NoError(t, db.Create(&model.QuestionVote{QuestionID: q.ID, UserID: u.ID}).Error)
	assert.Error(t, db.Create(&model.QuestionVote{QuestionID: q.ID, UserID: u.ID}).Error)
}
