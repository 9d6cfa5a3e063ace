package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"

	"coparent/db"
	"coparent/models"
	"coparent/storage"
	"coparent/utils"

	"github.com/gin-gonic/gin"
)

func DocumentList(c *gin.Context, user *models.User) {
	familyIDs := models.FamilyIDsForUser(user.ID)
	documents := []models.Document{}
	if len(familyIDs) > 0 {
		err := db.Instance.
			Where("family_id IN ?", familyIDs).
			Order("created_at DESC").
			Find(&documents).Error
		if err != nil {
			fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, documents)
}

// DocumentUpload stores the file in the default bucket and its metadata in
// the database
func DocumentUpload(c *gin.Context, user *models.User) {
	familyID, err := strconv.ParseUint(c.PostForm("family_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: "family_id is required", Code: "VALIDATION_ERROR"})
		return
	}
	if !user.IsMemberOf(familyID) {
		fail(c, models.ErrForbidden)
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		failValidation(c, err)
		return
	}
	bucketStorage := storage.GetDefaultStorage()
	if bucketStorage == nil {
		c.JSON(http.StatusInternalServerError, Response{Error: "no storage configured", Code: "INTERNAL"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer file.Close()

	path := "family/" + strconv.FormatUint(familyID, 10) + "/" +
		utils.Rand16BytesToBase62() + filepath.Ext(fileHeader.Filename)
	size, err := bucketStorage.Save(path, file)
	if err != nil {
		fail(c, err)
		return
	}
	document := models.Document{
		Name:         fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Size:         size,
		Path:         path,
		BucketID:     bucketStorage.GetBucket().ID,
		FamilyID:     familyID,
		UploadedByID: user.ID,
	}
	if err = db.Instance.Create(&document).Error; err != nil {
		// The metadata is the source of truth, remove the orphaned file
		_ = bucketStorage.Delete(path)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, document)
}

func DocumentFetch(c *gin.Context, user *models.User) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: "id is required", Code: "VALIDATION_ERROR"})
		return
	}
	var document models.Document
	if err = db.Instance.Preload("Bucket").First(&document, id).Error; err != nil {
		fail(c, models.ErrNotFound)
		return
	}
	if !user.IsMemberOf(document.FamilyID) {
		fail(c, models.ErrForbidden)
		return
	}
	bucketStorage := storage.StorageFrom(&document.Bucket)
	if bucketStorage == nil {
		c.JSON(http.StatusInternalServerError, Response{Error: "bucket unavailable", Code: "INTERNAL"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+document.Name+`"`)
	if document.MimeType != "" {
		c.Header("Content-Type", document.MimeType)
	}
	bucketStorage.Serve(document.Path, c.Request, c.Writer)
}

func DocumentDelete(c *gin.Context, user *models.User) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: "id is required", Code: "VALIDATION_ERROR"})
		return
	}
	var document models.Document
	if err = db.Instance.Preload("Bucket").First(&document, id).Error; err != nil {
		fail(c, models.ErrNotFound)
		return
	}
	if !user.IsMemberOf(document.FamilyID) {
		fail(c, models.ErrForbidden)
		return
	}
	if err = db.Instance.Delete(&document).Error; err != nil {
		fail(c, err)
		return
	}
	if bucketStorage := storage.StorageFrom(&document.Bucket); bucketStorage != nil {
		_ = bucketStorage.Delete(document.Path)
	}
	c.JSON(http.StatusOK, gin.H{"error": ""})
}
