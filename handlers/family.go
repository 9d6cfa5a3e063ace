package handlers

import (
	"net/http"

	"coparent/db"
	"coparent/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type FamilyCreateRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

type FamilyMemberInfo struct {
	UserID uint64 `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type FamilyInfo struct {
	ID      uint64             `json:"id"`
	Name    string             `json:"name"`
	Members []FamilyMemberInfo `json:"members"`
}

func FamilyCreate(c *gin.Context, user *models.User) {
	req := FamilyCreateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		failValidation(c, err)
		return
	}
	family, err := models.FamilyCreate(user, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, family)
}

// FamilyList returns the caller's families with their members
func FamilyList(c *gin.Context, user *models.User) {
	var families []models.Family
	err := db.Instance.
		Joins("join family_members on family_members.family_id = families.id").
		Where("family_members.user_id = ?", user.ID).
		Find(&families).Error
	if err != nil {
		fail(c, err)
		return
	}
	result := []FamilyInfo{}
	for _, family := range families {
		info := FamilyInfo{ID: family.ID, Name: family.Name, Members: []FamilyMemberInfo{}}
		rows, err := db.Instance.
			Table("family_members").
			Joins("join users on users.id = family_members.user_id").
			Select("users.id, users.name, users.email, family_members.role").
			Where("family_members.family_id = ?", family.ID).
			Rows()
		if err != nil {
			fail(c, err)
			return
		}
		for rows.Next() {
			member := FamilyMemberInfo{}
			if err = rows.Scan(&member.UserID, &member.Name, &member.Email, &member.Role); err != nil {
				continue
			}
			info.Members = append(info.Members, member)
		}
		rows.Close()
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}
