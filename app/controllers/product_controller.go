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

// ProductController serves /products.
type ProductController struct {
	service *services.CatalogService
	routes  *router.Router
}

func NewProductController(db *gorm.DB, routes *router.Router) *ProductController {
	return &ProductController{
		service: services.NewCatalogService(db, routes),
		routes:  routes,
	}
}

func (h *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	ctx.Wrap(h.index)(w, r)
}

func (h *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	ctx.Wrap(h.store)(w, r)
}

func (h *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	ctx.Wrap(h.show)(w, r)
}

func (h *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	ctx.Wrap(h.update)(w, r)
}

func (h *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	ctx.Wrap(h.destroy)(w, r)
}

func (h *ProductController) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	ctx.Wrap(h.partialUpdate)(w, r)
}

func (h *ProductController) transformer(c *ctx.Context) serializers.ProductResource {
	return serializers.ProductResource{Links: serializers.Links{Base: c.BaseURL(), Routes: h.routes}}
}

func (h *ProductController) index(c *ctx.Context) {
	rows, err := h.service.Products(c.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.Success(resource.Many(h.transformer(c), rows))
}

func (h *ProductController) store(c *ctx.Context) {
	var in serializers.ProductInput
	if !c.BindJSON(&in) {
		return
	}
	row, err := h.service.CreateProduct(c.Context(), in.Form())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.Created(resource.One(h.transformer(c), row))
}

func (h *ProductController) show(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		c.NotFound()
		return
	}
	row, err := h.service.Product(c.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.Success(resource.One(h.transformer(c), row))
}

// update replaces every writable field; missing required fields fail.
func (h *ProductController) update(c *ctx.Context) {
	h.save(c, false)
}

// partialUpdate binds the body over the stored product.
func (h *ProductController) partialUpdate(c *ctx.Context) {
	h.save(c, true)
}

func (h *ProductController) save(c *ctx.Context, partial bool) {
	id, ok := c.ParamID("id")
	if !ok {
		c.NotFound()
		return
	}
	stored, err := h.service.ProductModel(c.Context(), id)
	if err != nil {
		WriteError(c, err)
		return
	}

	var in serializers.ProductInput
	if partial {
		in = serializers.ProductInputOf(stored)
	}
	if !c.BindJSON(&in) {
		return
	}
	row, err := h.service.UpdateProduct(c.Context(), id, in.Form())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.Success(resource.One(h.transformer(c), row))
}

func (h *ProductController) destroy(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		c.NotFound()
		return
	}
	if err := h.service.DeleteProduct(c.Context(), id); err != nil {
		WriteError(c, err)
		return
	}
	c.NoContent()
}
