package model

import "time"

type Answer struct {
	ID         uint         `gorm:"primarykey" json:"id"`
	QuestionID uint         `json:"question_id" gorm:"not null;index"`
	AuthorID   uint         `json:"author_id" gorm:"not null;index"`
	Author     User         `json:"author" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Content    string       `json:"content" gorm:"type:text;not null"`
	CreateDate time.Time    `json:"create_date" gorm:"not null"`
	ModifyDate *time.Time   `json:"modify_date,omitempty"`
	Votes      []AnswerVote `json:"-" gorm:"foreignKey:AnswerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (a *Answer) OwnerID() uint { return a.AuthorID }
