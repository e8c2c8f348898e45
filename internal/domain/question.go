package domain

import "gorm.io/datatypes"

type QuestionID int32

type Question struct {
	ID      QuestionID                  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title   string                      `json:"title" gorm:"not null"`
	Content string                      `json:"content" gorm:"not null"`
	Tags    datatypes.JSONSlice[string] `json:"tags"`
}

type NewQuestion struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Pagination holds the optional offset/limit query parameters of list
// endpoints.
type Pagination struct {
	Offset int
	Limit  int
}

const DefaultPageLimit = 100

func DefaultPagination() Pagination {
	return Pagination{Offset: 0, Limit: DefaultPageLimit}
}
