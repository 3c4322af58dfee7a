package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/response"
)

type ExpenseCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

type ExpenseRequest struct {
	CategoryID uint       `json:"category_id" binding:"required"`
	Amount     float64    `json:"amount" binding:"required,gt=0"`
	SpentAt    *time.Time `json:"spent_at"`
	Notes      string     `json:"notes"`
}

func ListExpenseCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		q := db.WithContext(c.Request.Context()).Model(&models.ExpenseCategory{}).
			Where("gym_id = ?", gymID).Order("name")
		respondList[*models.ExpenseCategory](c, q, pageFromQuery(c))
	}
}

func CreateExpenseCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req ExpenseCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		cat := &models.ExpenseCategory{GymID: gymID, Name: req.Name}
		if err := db.WithContext(c.Request.Context()).Create(cat).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, cat)
	}
}

func UpdateExpenseCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req ExpenseCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		cat, ok := takeScoped[models.ExpenseCategory](c, db, gymID, id)
		if !ok {
			return
		}
		cat.Name = req.Name
		if err := db.WithContext(c.Request.Context()).Save(cat).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, cat)
	}
}

func DeleteExpenseCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		deleteScoped[models.ExpenseCategory](c, db, gymID, id, "category deleted")
	}
}

func ListExpenses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		q := db.WithContext(c.Request.Context()).Model(&models.Expense{}).
			Preload("Category").Where("gym_id = ?", gymID).Order("spent_at DESC")
		if cat := c.Query("category_id"); cat != "" {
			q = q.Where("category_id = ?", cat)
		}
		respondList[*models.Expense](c, q, pageFromQuery(c))
	}
}

// CreateExpense records spend against a category of the same gym; a foreign
// category id reads as missing.
func CreateExpense(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req ExpenseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		if _, ok := takeScoped[models.ExpenseCategory](c, db, gymID, req.CategoryID); !ok {
			return
		}
		spentAt := time.Now()
		if req.SpentAt != nil {
			spentAt = *req.SpentAt
		}
		e := &models.Expense{
			GymID:      gymID,
			CategoryID: req.CategoryID,
			Amount:     req.Amount,
			SpentAt:    spentAt,
			Notes:      req.Notes,
		}
		if err := db.WithContext(c.Request.Context()).Create(e).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, e)
	}
}

func UpdateExpense(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req ExpenseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		e, ok := takeScoped[models.Expense](c, db, gymID, id)
		if !ok {
			return
		}
		if _, ok := takeScoped[models.ExpenseCategory](c, db, gymID, req.CategoryID); !ok {
			return
		}
		e.CategoryID = req.CategoryID
		e.Amount = req.Amount
		if req.SpentAt != nil {
			e.SpentAt = *req.SpentAt
		}
		e.Notes = req.Notes
		if err := db.WithContext(c.Request.Context()).Omit("Category").Save(e).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, e)
	}
}

func DeleteExpense(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		deleteScoped[models.Expense](c, db, gymID, id, "expense deleted")
	}
}

func RegisterExpenseRoutes(r gin.IRouter, db *gorm.DB) {
	r.GET("/expense-categories", ListExpenseCategories(db))
	r.POST("/expense-categories", CreateExpenseCategory(db))
	r.PUT("/expense-categories/:id", UpdateExpenseCategory(db))
	r.DELETE("/expense-categories/:id", DeleteExpenseCategory(db))

	r.GET("/expenses", ListExpenses(db))
	r.POST("/expenses", CreateExpense(db))
	r.PUT("/expenses/:id", UpdateExpense(db))
	r.DELETE("/expenses/:id", DeleteExpense(db))
}
