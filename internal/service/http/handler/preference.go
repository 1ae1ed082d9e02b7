package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/sbi-hub/internal/modules/logs"
	"github.com/reusedev/sbi-hub/internal/modules/preference"
	"github.com/reusedev/sbi-hub/internal/service/http/handler/request"
	"github.com/reusedev/sbi-hub/internal/service/http/handler/response"
)

func GetPreferences(c *gin.Context) {
	form := request.GetPreferences{}
	if err := c.ShouldBindQuery(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	prefs, err := preference.Resolve(c.Request.Context(), deps.Preferences, form.ClientId, deps.DefaultPreferences)
	if err != nil {
		logs.Logger.Err(err).Str("client_id", form.ClientId).Msg("preference-Get")
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithData(prefs))
}

func PutPreferences(c *gin.Context) {
	form := request.PutPreferences{}
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	}
	w, ok := deps.Preferences.(preference.Writer)
	if !ok {
		c.JSON(http.StatusNotImplemented, response.NotSupported("preferences are read-only"))
		return
	}
	if err := w.Set(c.Request.Context(), form.ClientId, form.Values); err != nil {
		logs.Logger.Err(err).Str("client_id", form.ClientId).Msg("preference-Put")
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}
	prefs, err := preference.Resolve(c.Request.Context(), deps.Preferences, form.ClientId, deps.DefaultPreferences)
	if err != nil {
		logs.Logger.Err(err).Str("client_id", form.ClientId).Msg("preference-Put")
		c.JSON(http.StatusInternalServerError, response.InternalError)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithData(prefs))
}
