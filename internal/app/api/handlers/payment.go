package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/gymstack/gymhub/internal/models"
	"github.com/gymstack/gymhub/pkg/response"
	"github.com/gymstack/gymhub/pkg/tool"
	"github.com/gymstack/gymhub/pkg/types"
)

type CreatePaymentRequest struct {
	MemberID uint       `json:"member_id" binding:"required"`
	BranchID *uint      `json:"branch_id"`
	Amount   float64    `json:"amount" binding:"required,gt=0"`
	Method   string     `json:"method" binding:"omitempty,oneof=cash card transfer online"`
	PaidAt   *time.Time `json:"paid_at"`
	Notes    string     `json:"notes"`
}

type SearchPaymentsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from" binding:"gte=0"`
	Size      int                   `json:"size" binding:"gte=0,lte=200"`
	SortBy    string                `json:"sort_by" binding:"omitempty,oneof=id amount paid_at"`
	SortOrder string                `json:"sort_order" binding:"omitempty,oneof=asc desc"`
}

// paymentFilterColumns is the allow-list for client-supplied filter fields.
var paymentFilterColumns = []string{"member_id", "branch_id", "amount", "method", "paid_at"}

func ListPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		q := db.WithContext(c.Request.Context()).Model(&models.Payment{}).
			Where("gym_id = ?", gymID).Order("id DESC")
		if member := c.Query("member_id"); member != "" {
			q = q.Where("member_id = ?", member)
		}
		respondList[*models.Payment](c, q, pageFromQuery(c))
	}
}

// @Summary      Search payments
// @Description  Filterable, sortable payment listing within the effective gym.
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        request body SearchPaymentsRequest true "Filters, pagination and sorting"
// @Success      200 {object} types.Paged[models.Payment]
// @Router       /api/v1/payments/search [post]
func SearchPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req SearchPaymentsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		for _, f := range req.Filters {
			if !lo.Contains(paymentFilterColumns, f.Field) {
				response.BadRequest(c, "unknown filter field: "+f.Field)
				return
			}
		}

		order := "id DESC"
		if req.SortBy != "" {
			dir := "ASC"
			if req.SortOrder == "desc" {
				dir = "DESC"
			}
			order = req.SortBy + " " + dir
		}
		size := req.Size
		if size == 0 {
			size = 20
		}

		base := db.WithContext(c.Request.Context()).Model(&models.Payment{}).
			Where("gym_id = ?", gymID).
			Where(types.FiltersWhere{Filters: req.Filters})

		var total int64
		if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			response.Internal(c)
			return
		}
		var items []*models.Payment
		if err := base.Order(order).Offset(req.From).Limit(size).Find(&items).Error; err != nil {
			response.Internal(c)
			return
		}
		response.OK(c, types.Paged[*models.Payment]{Items: items, Total: total})
	}
}

func GetPayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		p, ok := takeScoped[models.Payment](c, db, gymID, id)
		if !ok {
			return
		}
		response.OK(c, p)
	}
}

// CreatePayment records a payment against a member of the effective gym. The
// receipt reference is generated server-side.
func CreatePayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		var req CreatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationFailed(c, err)
			return
		}
		var memberCount int64
		if err := db.WithContext(c.Request.Context()).Model(&models.Member{}).
			Where("id = ? AND gym_id = ?", req.MemberID, gymID).Count(&memberCount).Error; err != nil {
			response.Internal(c)
			return
		}
		if memberCount == 0 {
			response.NotFound(c)
			return
		}
		method := req.Method
		if method == "" {
			method = "cash"
		}
		paidAt := time.Now()
		if req.PaidAt != nil {
			paidAt = *req.PaidAt
		}
		p := &models.Payment{
			GymID:     gymID,
			MemberID:  req.MemberID,
			BranchID:  req.BranchID,
			Amount:    req.Amount,
			Method:    method,
			Reference: tool.GenerateUUIDV7(),
			PaidAt:    paidAt,
			Notes:     req.Notes,
		}
		if err := db.WithContext(c.Request.Context()).Create(p).Error; err != nil {
			response.Internal(c)
			return
		}
		response.Created(c, p)
	}
}

func DeletePayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, ok := requireScope(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		deleteScoped[models.Payment](c, db, gymID, id, "payment deleted")
	}
}

func RegisterPaymentRoutes(r gin.IRouter, db *gorm.DB) {
	r.GET("/payments", ListPayments(db))
	r.POST("/payments/search", SearchPayments(db))
	r.GET("/payments/:id", GetPayment(db))
	r.POST("/payments", CreatePayment(db))
	r.DELETE("/payments/:id", DeletePayment(db))
}
