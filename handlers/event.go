package handlers

import (
	"net/http"

	"coparent/db"
	"coparent/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type EventSaveRequest struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	StartDate   int64  `json:"start_date" binding:"required"`
	EndDate     int64  `json:"end_date" binding:"required"`
	Location    string `json:"location"`
	Type        string `json:"type" binding:"required"`
	FamilyID    uint64 `json:"family_id" binding:"required"`
}

type EventDeleteRequest struct {
	ID uint64 `json:"id" binding:"required"`
}

func EventList(c *gin.Context, user *models.User) {
	events, err := models.EventsForUser(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func EventCreate(c *gin.Context, user *models.User) {
	req := EventSaveRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		failValidation(c, err)
		return
	}
	if !user.IsMemberOf(req.FamilyID) {
		fail(c, models.ErrForbidden)
		return
	}
	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Location:    req.Location,
		Type:        req.Type,
		FamilyID:    req.FamilyID,
		CreatedByID: user.ID,
	}
	if err := db.Instance.Create(&event).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func EventSave(c *gin.Context, user *models.User) {
	req := EventSaveRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		failValidation(c, err)
		return
	}
	var event models.Event
	if err := db.Instance.First(&event, req.ID).Error; err != nil {
		fail(c, models.ErrNotFound)
		return
	}
	if !user.IsMemberOf(event.FamilyID) {
		fail(c, models.ErrForbidden)
		return
	}
	event.Title = req.Title
	event.Description = req.Description
	event.StartDate = req.StartDate
	event.EndDate = req.EndDate
	event.Location = req.Location
	event.Type = req.Type
	if err := db.Instance.Save(&event).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func EventDelete(c *gin.Context, user *models.User) {
	req := EventDeleteRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		failValidation(c, err)
		return
	}
	var event models.Event
	if err := db.Instance.First(&event, req.ID).Error; err != nil {
		fail(c, models.ErrNotFound)
		return
	}
	if !user.IsMemberOf(event.FamilyID) {
		fail(c, models.ErrForbidden)
		return
	}
	if err := db.Instance.Delete(&event).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": ""})
}
