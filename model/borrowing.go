package model

import "time"

// Borrowing status filters accepted by the listing endpoint
const (
	BorrowingStatusActive   = "active"
	BorrowingStatusReturned = "returned"
	BorrowingStatusOverdue  = "overdue"
)

type Borrowing struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	BookCopyID uint       `json:"book_copy_id" gorm:"not null"`
	UserID     uint       `json:"user_id" gorm:"not null"`
	BorrowDate time.Time  `json:"borrow_date" gorm:"autoCreateTime"`
	DueDate    *time.Time `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	Fine       float64    `json:"fine" gorm:"default:0"`
	BookCopy   *BookCopy  `json:"book_copy,omitempty" gorm:"foreignKey:BookCopyID"`
	User       *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Borrowing) TableName() string {
	return "borrowing"
}

// Overdue reports whether the borrowing is past its due date and unreturned.
func (b *Borrowing) Overdue(now time.Time) bool {
	return b.DueDate != nil && b.ReturnDate == nil && now.After(*b.DueDate)
}

// BorrowingSearchCriteria narrows down borrowing listings
type BorrowingSearchCriteria struct {
	Status string `form:"status"`
	UserID uint   `form:"user_id"`
}
