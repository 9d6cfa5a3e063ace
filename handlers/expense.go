package handlers

import (
	"net/http"

	"coparent/db"
	"coparent/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ExpenseCreateRequest struct {
	Title    string  `json:"title" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Category string  `json:"category"`
	Date     int64   `json:"date" binding:"required"`
	FamilyID uint64  `json:"family_id" binding:"required"`
}

type ExpenseDeleteRequest struct {
	ID uint64 `json:"id" binding:"required"`
}

func ExpenseList(c *gin.Context, user *models.User) {
	expenses, err := models.ExpensesForUser(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func ExpenseCreate(c *gin.Context, user *models.User) {
	req := ExpenseCreateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		failValidation(c, err)
		return
	}
	if !user.IsMemberOf(req.FamilyID) {
		fail(c, models.ErrForbidden)
		return
	}
	expense := models.Expense{
		Title:       req.Title,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
		FamilyID:    req.FamilyID,
		CreatedByID: user.ID,
	}
	if err := db.Instance.Create(&expense).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func ExpenseDelete(c *gin.Context, user *models.User) {
	req := ExpenseDeleteRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		failValidation(c, err)
		return
	}
	var expense models.Expense
	if err := db.Instance.First(&expense, req.ID).Error; err != nil {
		fail(c, models.ErrNotFound)
		return
	}
	if !user.IsMemberOf(expense.FamilyID) {
		fail(c, models.ErrForbidden)
		return
	}
	if err := db.Instance.Delete(&expense).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": ""})
}
