package model

// Book copy conditions
const (
	ConditionGood    = "Good"
	ConditionDamaged = "Damaged"
	ConditionLost    = "Lost"
)

type BookTitle struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Title     string     `json:"title" gorm:"size:200;not null"`
	Author    string     `json:"author" gorm:"size:200;not null"`
	Publisher string     `json:"publisher" gorm:"size:100"`
	Year      int        `json:"year"`
	Category  string     `json:"category" gorm:"size:100"`
	Copies    []BookCopy `json:"copies,omitempty" gorm:"foreignKey:BookTitleID"`
}

func (BookTitle) TableName() string {
	return "book_title"
}

type BookCopy struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	BookTitleID uint       `json:"book_title_id" gorm:"not null"`
	Barcode     string     `json:"barcode" gorm:"size:50;uniqueIndex;not null"`
	Available   bool       `json:"available" gorm:"default:true"`
	Condition   string     `json:"condition" gorm:"size:100;default:Good"`
	BookTitle   *BookTitle `json:"book_title,omitempty" gorm:"foreignKey:BookTitleID"`
}

func (BookCopy) TableName() string {
	return "book_copy"
}

// BookCopyUpdate carries the mutable fields of a copy. Nil fields are
// left untouched.
type BookCopyUpdate struct {
	Available *bool   `json:"available"`
	Condition *string `json:"condition"`
}

// BookTitleSearchCriteria narrows down book title listings
type BookTitleSearchCriteria struct {
	Category string `form:"category"`
	Search   string `form:"search"`
}

// BookCopySearchCriteria narrows down book copy listings
type BookCopySearchCriteria struct {
	Available   *bool  `form:"available"`
	Condition   string `form:"condition"`
	BookTitleID uint   `form:"book_title_id"`
	Search      string `form:"search"`
}

// BookTitleStatistics summarizes copy availability for a title
type BookTitleStatistics struct {
	TotalCopies     int            `json:"total_copies"`
	AvailableCopies int            `json:"available_copies"`
	BorrowedCopies  int            `json:"borrowed_copies"`
	ConditionCounts map[string]int `json:"condition_counts"`
}
