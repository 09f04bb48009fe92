package mapview

import (
	"context"

	"github.com/tourist-map/internal/domain"
	"github.com/tourist-map/internal/pkg/errors"
	"github.com/tourist-map/internal/pkg/validator"
	"go.uber.org/zap"
)

// PlaceCreator - внешний сервис создания мест
type PlaceCreator interface {
	CreatePlace(ctx context.Context, draft domain.PlaceDraft) (domain.CreatedPlace, error)
}

// CreationContext связывает режим выбора точки с формой создания места.
// Методы вызываются из цикла карты.
type CreationContext struct {
	loop   *Loop
	picker *PickerMode
	logger *zap.Logger
	draft  domain.PlaceDraft
}

func NewCreationContext(loop *Loop, picker *PickerMode, citySlug string, logger *zap.Logger) *CreationContext {
	return &CreationContext{
		loop:   loop,
		picker: picker,
		logger: logger,
		draft:  domain.PlaceDraft{CitySlug: citySlug},
	}
}

// Begin включает выбор точки: каждый клик по карте задаёт координаты черновика
func (c *CreationContext) Begin() {
	c.picker.Enable(func(at domain.LatLng) {
		c.draft.SetLocation(at)
	})
}

// End выключает выбор точки, координаты черновика остаются
func (c *CreationContext) End() {
	c.picker.Disable()
}

// SetCity меняет город и сбрасывает выбранную точку
func (c *CreationContext) SetCity(citySlug string) {
	if citySlug == c.draft.CitySlug {
		return
	}
	c.draft.CitySlug = citySlug
	c.draft.ClearLocation()
	c.picker.Reset()
}

// Update - изменение полей формы
func (c *CreationContext) Update(fn func(d *domain.PlaceDraft)) {
	fn(&c.draft)
}

func (c *CreationContext) Draft() domain.PlaceDraft {
	return c.draft
}

// Submit проверяет черновик и отправляет его сервису создания.
// done вызывается в цикле карты.
func (c *CreationContext) Submit(ctx context.Context, creator PlaceCreator, done func(domain.CreatedPlace, error)) {
	if err := validator.Validate(c.draft); err != nil {
		done(domain.CreatedPlace{}, errors.ErrInvalidRequest.WithDetails(validator.FieldErrors(err)))
		return
	}

	draft := c.draft
	go func() {
		created, err := creator.CreatePlace(ctx, draft)
		if err != nil {
			c.logger.Error("Failed to create place",
				zap.String("city", draft.CitySlug),
				zap.String("name", draft.Name),
				zap.Error(err))
		}
		c.loop.Post(func() { done(created, err) })
	}()
}
