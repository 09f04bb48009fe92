package mapview

import (
	"fmt"

	"github.com/tourist-map/internal/domain"
)

type popupState struct {
	open    bool
	content *PopupContent
}

// PopupController управляет попапами маркеров.
// У каждого маркера свой попап, одновременно открытых может быть несколько.
type PopupController struct{}

func NewPopupController() *PopupController {
	return &PopupController{}
}

func (c *PopupController) Show(h *MarkerHandle) {
	if h.popup.open {
		return
	}
	h.element.OpenPopup(c.content(h))
	h.popup.open = true
}

func (c *PopupController) Hide(h *MarkerHandle) {
	if !h.popup.open {
		return
	}
	h.element.ClosePopup()
	h.popup.open = false
}

func (c *PopupController) Toggle(h *MarkerHandle) {
	if h.popup.open {
		c.Hide(h)
		return
	}
	c.Show(h)
}

func (c *PopupController) IsOpen(h *MarkerHandle) bool {
	return h.popup.open
}

// content строится при первом показе
func (c *PopupController) content(h *MarkerHandle) PopupContent {
	if h.popup.content == nil {
		pc := BuildPopupContent(h.Item)
		h.popup.content = &pc
	}
	return *h.popup.content
}

// BuildPopupContent - краткая карточка элемента для попапа
func BuildPopupContent(item domain.MapItem) PopupContent {
	if item.Type == domain.MapItemRegion {
		r := item.Region
		return PopupContent{
			Title:       r.Name,
			Description: fmt.Sprintf("%d places", r.PlaceCount),
			DrillIn:     true,
			Count:       r.PlaceCount,
		}
	}

	p := item.Place
	content := PopupContent{
		Title: p.Name,
		Link:  p.DetailPath(),
	}
	if p.ShortDescription != nil {
		content.Description = *p.ShortDescription
	}
	if img := p.MainImage(); img != nil {
		content.Thumbnail = *img
	}
	return content
}
