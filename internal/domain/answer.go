package domain

type AnswerID int32

type Answer struct {
	ID         AnswerID   `json:"id" gorm:"primaryKey;autoIncrement"`
	Content    string     `json:"content" gorm:"not null"`
	QuestionID QuestionID `json:"question_id" gorm:"not null;index"`
	Question   *Question  `json:"-" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

type NewAnswer struct {
	Content    string     `json:"content"`
	QuestionID QuestionID `json:"question_id"`
}
