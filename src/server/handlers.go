package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	app "assetmapper/src/app"

	"github.com/gin-gonic/gin"
)

type (
	AssetService interface {
		Get(ctx context.Context, id string) (*app.Asset, error)
		All(ctx context.Context, search string) ([]app.Asset, error)
		Create(ctx context.Context, content []byte, name string, opts app.CreateOptions) (app.CreateResult, error)
		CreateAtPath(ctx context.Context, content []byte, urlPath, tags string) (app.CreateResult, error)
		Update(ctx context.Context, id, tags string) (*app.Asset, error)
	}

	AppHandler struct {
		assets AssetService
	}

	PutAssetBody struct {
		Tags *string `json:"tags"`
	}
)

const (
	searchQueryParam = "q"
	assetFormFile    = "asset"
)

func NewHandler(assets AssetService) *AppHandler {
	return &AppHandler{assets: assets}
}

func (a *AppHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (a *AppHandler) GetAssetList(c *gin.Context) {
	assets, err := a.assets.All(c.Request.Context(), c.Query(searchQueryParam))
	if err != nil {
		abortWithError(c, fmt.Errorf("can not list assets: %w", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "payload": assets})
}

func (a *AppHandler) GetAsset(c *gin.Context) {
	id := assetID(c)
	if id == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": "error", "error": "no asset path"})
		return
	}
	asset, err := a.assets.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, fmt.Errorf("can not fetch asset %s: %w", id, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "payload": asset})
}

func (a *AppHandler) PostAsset(c *gin.Context) {
	file, header, err := c.Request.FormFile(assetFormFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "error", "error": fmt.Sprintf("can not find asset in request: %v", err)})
		return
	}
	defer file.Close()

	var buffer bytes.Buffer
	if _, err = io.Copy(&buffer, file); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error", "error": fmt.Sprintf("failed to read file: %v", err)})
		return
	}

	tags := c.PostForm("tags")
	var result app.CreateResult
	if urlPath := c.PostForm("url-path"); urlPath != "" {
		result, err = a.assets.CreateAtPath(c.Request.Context(), buffer.Bytes(), urlPath, tags)
	} else {
		name := c.PostForm("name")
		if name == "" {
			name = header.Filename
		}
		optimize, _ := strconv.ParseBool(c.PostForm("optimize"))
		result, err = a.assets.Create(c.Request.Context(), buffer.Bytes(), name, app.CreateOptions{Tags: tags, Optimize: optimize})
	}
	if err != nil {
		abortWithError(c, fmt.Errorf("can not create asset: %w", err))
		return
	}

	if result.Conflicted() {
		c.Data(http.StatusConflict, gin.MIMEJSON, result.Conflict)
		return
	}
	log.Printf("created asset %s", result.Asset.Path)
	c.JSON(http.StatusCreated, gin.H{"status": "success", "payload": result.Asset})
}

func (a *AppHandler) PutAsset(c *gin.Context) {
	id := assetID(c)
	var requestBody PutAssetBody
	if err := c.ShouldBindJSON(&requestBody); err != nil || requestBody.Tags == nil || id == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": "error", "error": "expected asset path and tags"})
		return
	}

	asset, err := a.assets.Update(c.Request.Context(), id, *requestBody.Tags)
	if err != nil {
		abortWithError(c, fmt.Errorf("can not update asset %s: %w", id, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "payload": asset})
}

func assetID(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("path"), "/")
}

// abortWithError reports upstream asset server failures as 502 and keeps
// the upstream status in the body. Other errors are only logged.
func abortWithError(c *gin.Context, err error) {
	log.Printf("%v", err)
	var httpErr *app.HTTPError
	if errors.As(err, &httpErr) {
		c.IndentedJSON(http.StatusBadGateway,
			gin.H{"message": "error", "error": err.Error(), "status": httpErr.StatusCode})
		return
	}
	c.IndentedJSON(http.StatusInternalServerError, gin.H{"message": "error", "error": "internal error"})
}
