package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/sbi-hub/internal/consts"
	"github.com/reusedev/sbi-hub/internal/modules/logs"
	"github.com/reusedev/sbi-hub/internal/modules/preference"
	"github.com/reusedev/sbi-hub/internal/modules/sbi"
	"github.com/reusedev/sbi-hub/internal/modules/thumbnail"
	"github.com/reusedev/sbi-hub/internal/service/http/handler/request"
	"github.com/reusedev/sbi-hub/internal/service/http/handler/response"
	"github.com/reusedev/sbi-hub/internal/service/http/middleware"
	"github.com/reusedev/sbi-hub/tools"
	"gorm.io/gorm"
)

func Search(c *gin.Context) {
	form := request.Search{}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	ret, ok := search(c, &form)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithData(ret))
}

// SearchPage serves the search itself, for clients that can only open a URL.
func SearchPage(c *gin.Context) {
	form := request.Search{}
	if err := c.ShouldBindQuery(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	ret, ok := search(c, &form)
	if !ok {
		return
	}
	if ret.Mode == consts.SearchModeLookup {
		c.Redirect(http.StatusFound, ret.URL)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(ret.Page))
}

// search writes the response itself when it returns false. A search that
// cannot be performed answers 204 and leaves the user where they are.
func search(c *gin.Context, form *request.Search) (*sbi.Result, bool) {
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return nil, false
	}
	ctx := c.Request.Context()
	requestId := c.GetString(middleware.RequestIdKey)

	prefs, err := preference.Resolve(ctx, deps.Preferences, form.ClientId, deps.DefaultPreferences)
	if err != nil {
		logs.Logger.Warn().Err(err).Str("request_id", requestId).Msg("search-Preferences")
		c.Status(http.StatusNoContent)
		return nil, false
	}
	ret, err := deps.Search.Search(ctx, sbi.Request{
		URL:       form.URL,
		Selected:  form.IsSelected(),
		ClientId:  form.ClientId,
		RequestId: requestId,
	}, prefs)
	switch {
	case err == nil:
		return ret, true
	case errors.Is(err, sbi.ErrImageUnavailable):
		logs.Logger.Warn().Err(err).Str("request_id", requestId).Msg("search-Search")
		c.Status(http.StatusNoContent)
	case errors.Is(err, sbi.ErrUnsupportedContentType), errors.Is(err, sbi.ErrInvalidEncoding):
		logs.Logger.Warn().Err(err).Str("request_id", requestId).Msg("search-Search")
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
	default:
		logs.Logger.Err(err).Str("request_id", requestId).Msg("search-Search")
		c.JSON(http.StatusInternalServerError, response.InternalError)
	}
	return nil, false
}

// multipartOverhead leaves room for the other form fields and boundaries.
const multipartOverhead = 1 << 20

func Upload(c *gin.Context) {
	if deps.MaxImageBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, deps.MaxImageBytes+multipartOverhead)
	}
	form := request.Upload{}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	}
	if deps.MaxImageBytes > 0 && form.File.Size > deps.MaxImageBytes {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(fmt.Sprintf("file larger than %d bytes", deps.MaxImageBytes)))
		return
	}
	file, err := form.File.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	defer file.Close()
	var r io.Reader = file
	if deps.MaxImageBytes > 0 {
		r = io.LimitReader(file, deps.MaxImageBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if deps.MaxImageBytes > 0 && int64(len(data)) > deps.MaxImageBytes {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(fmt.Sprintf("file larger than %d bytes", deps.MaxImageBytes)))
		return
	}

	builder := deps.Search.Builder()
	var payload string
	if form.Thumbnail {
		thumb, renderErr := thumbnail.RenderLimited(data, deps.Search.MaxPixels())
		if renderErr != nil {
			c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(renderErr.Error()))
			return
		}
		payload, err = builder.BuildUpload(thumb.DataURL, &thumb.Original)
	} else {
		mimeType := form.MimeType
		if mimeType == "" {
			mimeType = "image/" + tools.DetectImageType(data).String()
		}
		payload, err = builder.BuildUploadPayload(data, mimeType, form.Dimensions())
	}
	if err != nil {
		logs.Logger.Warn().Err(err).Str("request_id", c.GetString(middleware.RequestIdKey)).Msg("search-Upload")
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithData(response.Payload{URL: payload}))
}

func Lookup(c *gin.Context) {
	form := request.Lookup{}
	if err := c.ShouldBindQuery(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithData(response.Payload{URL: deps.Search.Builder().BuildLookup(form.ImageURL)}))
}

func GetRecord(c *gin.Context) {
	if deps.Recorder == nil {
		c.JSON(http.StatusNotImplemented, response.NotSupported("search history is disabled"))
		return
	}
	form := request.Record{}
	if err := c.ShouldBindQuery(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	}
	rec, err := deps.Recorder.Find(c.Request.Context(), form.RequestId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, response.ParamErrorWithMessage("record not found"))
		return
	}
	if err != nil {
		logs.Logger.Err(err).Str("request_id", form.RequestId).Msg("search-GetRecord")
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}
	var archiveURL string
	if archiver := deps.Recorder.Archiver(); archiver != nil && rec.ArchiveKey.Valid {
		archiveURL, err = archiver.URL(c.Request.Context(), rec.ArchiveKey.String, deps.URLExpires)
		if err != nil {
			logs.Logger.Err(err).Str("request_id", form.RequestId).Msg("search-GetRecord")
		}
	}
	c.JSON(http.StatusOK, response.SuccessWithData(response.NewRecord(rec, archiveURL)))
}
