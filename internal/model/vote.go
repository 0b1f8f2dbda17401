package model

import "time"

// QuestionVote is one member of a question's voter set. The composite
// primary key makes (question, user) unique at the store.
type QuestionVote struct {
	QuestionID uint      `gorm:"primaryKey;autoIncrement:false" json:"question_id"`
	UserID     uint      `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// AnswerVote is one member of an answer's voter set.
type AnswerVote struct {
	AnswerID  uint      `gorm:"primaryKey;autoIncrement:false" json:"answer_id"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
