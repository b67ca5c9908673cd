package model

type User struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:100;not null"`
	Email string `json:"email" gorm:"size:100;uniqueIndex;not null"`
}

func (User) TableName() string {
	return "user"
}
