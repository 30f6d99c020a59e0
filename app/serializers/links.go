package serializers

import (
	"strconv"

	"github.com/shashiranjanraj/storefront/pkg/router"
)

// Links builds absolute URLs to named routes.
type Links struct {
	Base   string // scheme://host, no trailing slash
	Routes *router.Router
}

// Detail is the absolute URL of the named route for id, or "" when the
// route is not registered.
func (l Links) Detail(name string, id uint) string {
	return l.Named(name, map[string]string{"id": strconv.FormatUint(uint64(id), 10)})
}

func (l Links) Named(name string, params map[string]string) string {
	if l.Routes == nil {
		return ""
	}
	path, err := l.Routes.URL(name, params)
	if err != nil {
		return ""
	}
	return l.Base + path
}
