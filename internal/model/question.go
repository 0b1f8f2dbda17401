package model

import "time"

type Question struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	AuthorID   uint           `json:"author_id" gorm:"not null;index"`
	Author     User           `json:"author" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Subject    string         `json:"subject" gorm:"size:200;not null"`
	Content    string         `json:"content" gorm:"type:text;not null"`
	CreateDate time.Time      `json:"create_date" gorm:"not null;index"`
	ModifyDate *time.Time     `json:"modify_date,omitempty"`
	Answers    []Answer       `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Votes      []QuestionVote `json:"-" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// OwnerID reports the author allowed to modify the question.
func (q *Question) OwnerID() uint { return q.AuthorID }
