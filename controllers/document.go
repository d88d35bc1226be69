package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"document-approval-api/config"
	"document-approval-api/middleware"
	"document-approval-api/models"
	"document-approval-api/services"
	"document-approval-api/utils"
)

type DocumentController struct {
	lifecycle Lifecycle
	cfg       *config.Config
}

func NewDocumentController(lifecycle Lifecycle, cfg *config.Config) *DocumentController {
	return &DocumentController{lifecycle: lifecycle, cfg: cfg}
}

// Upload accepts a multipart PDF submission bound to a workflow. The file is
// stored under a generated name; the original filename survives as metadata.
func (ctl *DocumentController) Upload(c *gin.Context) {
	uploader := middleware.CurrentUser(c)

	title := utils.SanitizeInput(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	workflowID, err := strconv.Atoi(c.PostForm("workflow_id"))
	if err != nil || workflowID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workflow id"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if file.Size > ctl.cfg.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the upload size limit"})
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType != models.MimeTypePDF || strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF files are accepted"})
		return
	}

	if err := os.MkdirAll(ctl.cfg.UploadPath, os.ModePerm); err != nil {
		respondError(c, err)
		return
	}

	storedPath := filepath.Join(ctl.cfg.UploadPath, uuid.NewString()+".pdf")
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		respondError(c, err)
		return
	}

	doc, err := ctl.lifecycle.Submit(uploader, services.SubmitInput{
		Title:            title,
		OriginalFileName: file.Filename,
		FilePath:         storedPath,
		FileSize:         file.Size,
		MimeType:         mimeType,
		WorkflowID:       workflowID,
	})
	if err != nil {
		// The submission failed, so the stored file is orphaned.
		os.Remove(storedPath)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": doc})
}

// List returns the documents visible to the caller's role.
func (ctl *DocumentController) List(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	docs, err := ctl.lifecycle.ListForUser(caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// Get returns one document with its approval trail.
func (ctl *DocumentController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	caller := middleware.CurrentUser(c)
	doc, err := ctl.lifecycle.Get(id, caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// Download streams the stored PDF under its original filename.
func (ctl *DocumentController) Download(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	caller := middleware.CurrentUser(c)
	doc, err := ctl.lifecycle.Get(id, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := os.Stat(doc.FilePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stored file is missing"})
		return
	}
	c.FileAttachment(doc.FilePath, doc.OriginalFileName)
}
