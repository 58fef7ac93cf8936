package entity

// Question is an entry of the FAQ bot corpus
type Question struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Question string `gorm:"type:text;not null" json:"question"`
}

func (Question) TableName() string {
	return "questions"
}
