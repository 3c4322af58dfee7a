package models

import (
	"time"
)

type ExpenseCategory struct {
	ID    uint   `gorm:"column:id;primaryKey" json:"id"`
	GymID uint   `gorm:"column:gym_id;not null;index" json:"gym_id"`
	Name  string `gorm:"column:name;type:varchar(255);not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ExpenseCategory) TableName() string {
	return "expense_categories"
}

type Expense struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	GymID      uint      `gorm:"column:gym_id;not null;index" json:"gym_id"`
	CategoryID uint      `gorm:"column:category_id;not null" json:"category_id"`
	Amount     float64   `gorm:"column:amount;not null" json:"amount"`
	SpentAt    time.Time `gorm:"column:spent_at;not null" json:"spent_at"`
	Notes      string    `gorm:"column:notes;type:text" json:"notes"`

	Category *ExpenseCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}
