package handlers

import (
	"net/http"
	"reflect"
	"strconv"

	"coparent/db"
	"coparent/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// The admin gateway is a registry of typed CRUD handlers, one per resource.
// Routes are /admin/:resource[/:id], gated to ADMIN/SUPERADMIN by the router.

type adminResource interface {
	list(c *gin.Context)
	create(c *gin.Context)
	update(c *gin.Context, id uint64)
	remove(c *gin.Context, id uint64)
}

type crudResource[T any] struct {
	order string // optional default ordering
}

func (r crudResource[T]) list(c *gin.Context) {
	items := []T{}
	query := db.Instance
	if r.order != "" {
		query = query.Order(r.order)
	}
	if err := query.Find(&items).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (r crudResource[T]) create(c *gin.Context) {
	var item T
	if err := c.ShouldBindWith(&item, binding.JSON); err != nil {
		failValidation(c, err)
		return
	}
	if err := db.Instance.Create(&item).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r crudResource[T]) update(c *gin.Context, id uint64) {
	var item T
	if err := db.Instance.First(&item, id).Error; err != nil {
		fail(c, models.ErrNotFound)
		return
	}
	if err := c.ShouldBindWith(&item, binding.JSON); err != nil {
		failValidation(c, err)
		return
	}
	// The URL names the target row; an "id" in the body must not redirect
	// the write to another one
	reflect.ValueOf(&item).Elem().FieldByName("ID").SetUint(id)
	if err := db.Instance.Save(&item).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r crudResource[T]) remove(c *gin.Context, id uint64) {
	if err := db.Instance.Delete(new(T), id).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": ""})
}

var adminResources = map[string]adminResource{
	"users":       crudResource[models.User]{order: "created_at DESC"},
	"families":    crudResource[models.Family]{},
	"events":      crudResource[models.Event]{order: "start_date ASC"},
	"documents":   crudResource[models.Document]{order: "created_at DESC"},
	"expenses":    crudResource[models.Expense]{order: "date DESC"},
	"marketplace": crudResource[models.MarketplaceItem]{order: "featured DESC, created_at DESC"},
}

func adminResourceFrom(c *gin.Context) (adminResource, bool) {
	resource, ok := adminResources[c.Param("resource")]
	if !ok {
		c.JSON(http.StatusNotFound, Response{Error: "unknown resource", Code: "NOT_FOUND"})
	}
	return resource, ok
}

func adminResourceID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: "invalid id", Code: "VALIDATION_ERROR"})
		return 0, false
	}
	return id, true
}

func AdminList(c *gin.Context, user *models.User) {
	if resource, ok := adminResourceFrom(c); ok {
		resource.list(c)
	}
}

func AdminCreate(c *gin.Context, user *models.User) {
	if resource, ok := adminResourceFrom(c); ok {
		resource.create(c)
	}
}

func AdminUpdate(c *gin.Context, user *models.User) {
	resource, ok := adminResourceFrom(c)
	if !ok {
		return
	}
	if id, ok := adminResourceID(c); ok {
		resource.update(c, id)
	}
}

func AdminDelete(c *gin.Context, user *models.User) {
	resource, ok := adminResourceFrom(c)
	if !ok {
		return
	}
	if id, ok := adminResourceID(c); ok {
		resource.remove(c, id)
	}
}
