package hover

import (
	"slices"
	"strings"

	"github.com/reusedev/sbi-hub/internal/consts"
	"github.com/reusedev/sbi-hub/internal/modules/preference"
)

// Images on search result pages already link to a search.
var skippedClasses = []string{"rg_i", "th"}

const skippedIdPrefix = "imgthumb"

type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Image describes an <img> element as the page sees it.
type Image struct {
	Id      string   `json:"id"`
	Classes []string `json:"classes"`
	Src     string   `json:"src"` // absolute URL
	Bounds  Rect     `json:"bounds"`
	Hidden  bool     `json:"hidden"`
}

type Modifiers struct {
	Ctrl   bool `json:"ctrl"`
	Button int  `json:"button"`
}

// Request is what a click on the search icon asks for.
type Request struct {
	URL      string `json:"url"`
	Selected bool   `json:"selected"`
}

func Eligible(img Image, prefs preference.Preferences) bool {
	if prefs.HoverOption != consts.HoverMouseover {
		return false
	}
	for _, c := range img.Classes {
		if slices.Contains(skippedClasses, c) {
			return false
		}
	}
	if strings.HasPrefix(img.Id, skippedIdPrefix) {
		return false
	}
	if img.Bounds.Width < float64(prefs.HoverMinWidth) || img.Bounds.Height < float64(prefs.HoverMinHeight) {
		return false
	}
	return !img.Hidden
}

// Overlay tracks the search icon of one page. It is not safe for
// concurrent use; a page delivers its mouse events one at a time.
type Overlay struct {
	visible bool
	target  *Image
}

func (o *Overlay) Visible() bool {
	return o.visible
}

// Target returns the image the icon was last shown for.
func (o *Overlay) Target() (Image, bool) {
	if o.target == nil {
		return Image{}, false
	}
	return *o.target, true
}

// Mouseover shows the icon over img when it qualifies. An image that does
// not qualify leaves the current state alone.
func (o *Overlay) Mouseover(img Image, prefs preference.Preferences) bool {
	if !Eligible(img, prefs) {
		return false
	}
	o.target = &img
	o.visible = true
	return true
}

// Mouseout hides the icon once the pointer is on or past the target's edge.
// Leaving the image for the icon itself keeps it visible.
func (o *Overlay) Mouseout(p Point) {
	if o.target == nil {
		return
	}
	b := o.target.Bounds
	if p.Y <= b.Top || p.Y >= b.Top+b.Height ||
		p.X <= b.Left || p.X >= b.Left+b.Width {
		o.visible = false
	}
}

// Click builds the search request for target. Ctrl-click and middle-click
// open the result in the background, like they do for links.
func Click(target Image, mods Modifiers) Request {
	return Request{
		URL:      target.Src,
		Selected: !(mods.Ctrl || mods.Button&1 != 0),
	}
}
