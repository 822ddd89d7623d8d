package server

import (
	"context"
	"fmt"
	"net/http"

	app "assetmapper/src/app"

	"github.com/gin-gonic/gin"
)

type (
	AssetImporter interface {
		Import(ctx context.Context, prefix, tags string) ([]app.ImportResult, error)
	}

	ImportHandler struct {
		importer AssetImporter
	}

	PostImportBody struct {
		Prefix string `json:"prefix"`
		Tags   string `json:"tags"`
	}
)

// NewImportHandler returns a handler answering 404 when importer is nil.
func NewImportHandler(importer AssetImporter) *ImportHandler {
	return &ImportHandler{importer: importer}
}

func (i *ImportHandler) PostImport(c *gin.Context) {
	if i.importer == nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "error", "error": "import source is not configured"})
		return
	}

	var requestBody PostImportBody
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": "error", "error": fmt.Sprintf("can not parse import request: %v", err)})
		return
	}

	results, err := i.importer.Import(c.Request.Context(), requestBody.Prefix, requestBody.Tags)
	if err != nil {
		abortWithError(c, fmt.Errorf("import stopped after %d assets: %w", len(results), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "payload": results})
}
