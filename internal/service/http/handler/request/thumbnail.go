package request

type ThumbnailSize struct {
	Width  float64 `json:"width" form:"width"`
	Height float64 `json:"height" form:"height"`
}
