package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/sbi-hub/internal/modules/hover"
	"github.com/reusedev/sbi-hub/internal/modules/logs"
	"github.com/reusedev/sbi-hub/internal/modules/preference"
	"github.com/reusedev/sbi-hub/internal/service/http/handler/request"
	"github.com/reusedev/sbi-hub/internal/service/http/handler/response"
	"github.com/reusedev/sbi-hub/internal/service/http/middleware"
)

// hoverPreferences answers 204 itself when the preferences cannot be read;
// the page then shows no icon.
func hoverPreferences(c *gin.Context, clientId string) (preference.Preferences, bool) {
	prefs, err := preference.Resolve(c.Request.Context(), deps.Preferences, clientId, deps.DefaultPreferences)
	if err != nil {
		logs.Logger.Warn().Err(err).Str("request_id", c.GetString(middleware.RequestIdKey)).Msg("hover-Preferences")
		c.Status(http.StatusNoContent)
		return preference.Preferences{}, false
	}
	return prefs, true
}

func HoverEligible(c *gin.Context) {
	form := request.HoverEligible{}
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	prefs, ok := hoverPreferences(c, form.ClientId)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithData(response.Eligible{Eligible: hover.Eligible(form.Image, prefs)}))
}

// HoverReplay runs a page's mouse events through an overlay and returns
// where the icon ended up.
func HoverReplay(c *gin.Context) {
	form := request.HoverReplay{}
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	}
	prefs, ok := hoverPreferences(c, form.ClientId)
	if !ok {
		return
	}
	overlay := &hover.Overlay{}
	for _, e := range form.Events {
		switch e.Type {
		case request.HoverEventMouseover:
			overlay.Mouseover(*e.Image, prefs)
		case request.HoverEventMouseout:
			overlay.Mouseout(*e.Point)
		}
	}
	c.JSON(http.StatusOK, response.SuccessWithData(response.NewOverlay(overlay)))
}

// HoverClick searches for the clicked image. Ctrl and middle clicks come
// back with selected=false for a background tab.
func HoverClick(c *gin.Context) {
	form := request.HoverClick{}
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamError)
		return
	}
	if err := form.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.ParamErrorWithMessage(err.Error()))
		return
	}
	req := hover.Click(form.Image, form.Modifiers)
	ret, ok := search(c, &request.Search{
		URL:      req.URL,
		Selected: &req.Selected,
		ClientId: form.ClientId,
	})
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithData(ret))
}
