package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/sbi-hub/internal/modules/thumbnail"
	"github.com/reusedev/sbi-hub/internal/service/http/handler/request"
	"github.com/reusedev/sbi-hub/internal/service/http/handler/response"
)

func ThumbnailSize(c *gin.Context) {
	form := request.ThumbnailSize{}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	dims, err := thumbnail.Size(form.Width, form.Height)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithData(dims))
}
