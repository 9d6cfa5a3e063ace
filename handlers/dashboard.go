package handlers

import (
	"net/http"
	"strconv"
	"time"

	"coparent/db"
	"coparent/models"

	"github.com/gin-gonic/gin"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// FamilyStats powers the household dashboard. Counts are real; the time
// share split is a placeholder until custody schedules are modelled.
type FamilyStats struct {
	Members            int64   `json:"members"`
	UpcomingEvents     int64   `json:"upcoming_events"`
	Documents          int64   `json:"documents"`
	ExpensesTotal      float64 `json:"expenses_total"`
	PendingInvitations int64   `json:"pending_invitations"`
	TimeSharePercent   int     `json:"time_share_percent"`
}

type cachedStats struct {
	stats     FamilyStats
	fetchedAt time.Time
}

const statsCacheTime = time.Minute

var statsCache = cmap.New[cachedStats]()

func loadFamilyStats(familyID uint64) (stats FamilyStats, err error) {
	key := strconv.FormatUint(familyID, 10)
	if cached, ok := statsCache.Get(key); ok && time.Since(cached.fetchedAt) < statsCacheTime {
		return cached.stats, nil
	}
	now := time.Now().Unix()
	if err = db.Instance.Model(&models.FamilyMember{}).
		Where("family_id = ?", familyID).Count(&stats.Members).Error; err != nil {
		return stats, err
	}
	if err = db.Instance.Model(&models.Event{}).
		Where("family_id = ? AND start_date > ?", familyID, now).Count(&stats.UpcomingEvents).Error; err != nil {
		return stats, err
	}
	if err = db.Instance.Model(&models.Document{}).
		Where("family_id = ?", familyID).Count(&stats.Documents).Error; err != nil {
		return stats, err
	}
	if err = db.Instance.Model(&models.Expense{}).
		Where("family_id = ?", familyID).
		Select("ifnull(sum(amount), 0)").Scan(&stats.ExpensesTotal).Error; err != nil {
		return stats, err
	}
	if err = db.Instance.Model(&models.Invitation{}).
		Where("family_id = ? AND status = ?", familyID, models.InvitationPending).
		Count(&stats.PendingInvitations).Error; err != nil {
		return stats, err
	}
	stats.TimeSharePercent = 50
	statsCache.Set(key, cachedStats{stats: stats, fetchedAt: time.Now()})
	return stats, nil
}

func DashboardStats(c *gin.Context, user *models.User) {
	familyID, err := strconv.ParseUint(c.Query("family_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: "family_id is required", Code: "VALIDATION_ERROR"})
		return
	}
	if !user.IsMemberOf(familyID) {
		fail(c, models.ErrForbidden)
		return
	}
	stats, err := loadFamilyStats(familyID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
