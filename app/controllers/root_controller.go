package controllers

import (
	"github.com/shashiranjanraj/storefront/app/serializers"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// RootController lists the API's top-level resources.
type RootController struct {
	routes *router.Router
}

func NewRootController(routes *router.Router) *RootController {
	return &RootController{routes: routes}
}

func (h *RootController) Index(c *ctx.Context) {
	links := serializers.Links{Base: c.BaseURL(), Routes: h.routes}
	c.Success(map[string]string{
		"products":    links.Named("products.index", nil),
		"collections": links.Named("collections.index", nil),
	})
}
