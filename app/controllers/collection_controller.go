package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/serializers"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/resource"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// CollectionController serves /collections.
type CollectionController struct {
	service *services.CatalogService
}

func NewCollectionController(db *gorm.DB, routes *router.Router) *CollectionController {
	return &CollectionController{service: services.NewCatalogService(db, routes)}
}

func (h *CollectionController) Index(w http.ResponseWriter, r *http.Request) {
	ctx.Wrap(h.index)(w, r)
}

func (h *CollectionController) Store(w http.ResponseWriter, r *http.Request) {
	ctx.Wrap(h.store)(w, r)
}

func (h *CollectionController) Show(w http.ResponseWriter, r *http.Request) {
	ctx.Wrap(h.show)(w, r)
}

func (h *CollectionController) Destroy(w http.ResponseWriter, r *http.Request) {
	ctx.Wrap(h.destroy)(w, r)
}

func (h *CollectionController) Update(w http.ResponseWriter, r *http.Request) {
	ctx.Wrap(func(c *ctx.Context) { h.save(c, false) })(w, r)
}

func (h *CollectionController) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	ctx.Wrap(func(c *ctx.Context) { h.save(c, true) })(w, r)
}

func (h *CollectionController) index(c *ctx.Context) {
	rows, err := h.service.Collections(c.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.Success(resource.Many(serializers.CollectionResource{}, rows))
}

func (h *CollectionController) store(c *ctx.Context) {
	var in serializers.CollectionInput
	if !c.BindJSON(&in) {
		return
	}
	row, err := h.service.CreateCollection(c.Context(), in)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.Created(resource.One(serializers.CollectionResource{}, row))
}

func (h *CollectionController) show(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		c.NotFound()
		return
	}
	row, err := h.service.Collection(c.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.Success(resource.One(serializers.CollectionResource{}, row))
}

func (h *CollectionController) save(c *ctx.Context, partial bool) {
	id, ok := c.ParamID("id")
	if !ok {
		c.NotFound()
		return
	}
	stored, err := h.service.CollectionModel(c.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}

	var in serializers.CollectionInput
	if partial {
		in = serializers.CollectionInputOf(stored)
	}
	if !c.BindJSON(&in) {
		return
	}
	row, err := h.service.UpdateCollection(c.Context(), id, in)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.Success(resource.One(serializers.CollectionResource{}, row))
}

func (h *CollectionController) destroy(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		c.NotFound()
		return
	}
	if err := h.service.DeleteCollection(c.Context(), id); err != nil {
		WriteError(c, err)
		return
	}
	c.NoContent()
}
