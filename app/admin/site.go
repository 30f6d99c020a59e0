// Package admin is the operator console: a JSON CRUD surface over every
// storefront model with changelists (search, sorting, filters,
// pagination), autocomplete for reference pickers, bulk actions and
// one-shot messages.
//
// Each model is declared once as a ModelAdmin and mounted by Site:
//
//	site := admin.NewSite(db, r, session.NewStore(config.MessageTTL()))
//	site.Register(r.Group("/admin", middleware.Authenticate, rbac.HasRole(...)))
package admin

import (
	"context"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/projector"
	"github.com/shashiranjanraj/storefront/app/serializers"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/resource"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/session"
)

const defaultPerPage = 100

// ModelAdmin declares how one model shows up in the console.
type ModelAdmin struct {
	Name          string // URL segment and route-name part, e.g. "products"
	Verbose       string
	VerbosePlural string
	Table         string

	ListDisplay  []string
	ListEditable []string
	Sortable     map[string]string // wire column -> SQL expression
	Ordering     []projector.SortField
	PerPage      int
	SearchFields []orm.SearchField
	Filters      []ListFilter
	Lookups      map[string]string // exact-match query parameters, e.g. customer__id
	Actions      []Action

	// AutocompleteFields maps a change-form reference field to the model
	// whose autocomplete view feeds its picker.
	AutocompleteFields map[string]string

	model  interface{} // pointer to the stored model, for counting
	list   lister
	editor editor
}

// Object is one row as the change form sees it.
type Object struct {
	ID   uint
	Str  string
	Data resource.Map
}

// Option is one autocomplete result.
type Option struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type lister interface {
	query(db *gorm.DB) *gorm.DB
	rows(q *gorm.DB, l serializers.Links) ([]resource.Map, error)
	options(q *gorm.DB) ([]Option, error)
}

// list binds a changelist to its projected row type R.
type list[R any] struct {
	base    func(db *gorm.DB) *gorm.DB
	columns func(l serializers.Links, row R) resource.Map
	option  func(row R) Option
}

func (b list[R]) query(db *gorm.DB) *gorm.DB { return b.base(db) }

func (b list[R]) rows(q *gorm.DB, l serializers.Links) ([]resource.Map, error) {
	var rows []R
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return collection.Map(rows, func(row R) resource.Map { return b.columns(l, row) }), nil
}

func (b list[R]) options(q *gorm.DB) ([]Option, error) {
	var rows []R
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return collection.Map(rows, b.option), nil
}

// Site holds the registered models and the services behind them.
type Site struct {
	db       *gorm.DB
	routes   *router.Router
	messages session.Store
	models   []*ModelAdmin

	catalog   *services.CatalogService
	customers *services.CustomerService
	orders    *services.OrderService
	reviews   *services.ReviewService
}

// NewSite builds the console with every storefront model registered.
func NewSite(db *gorm.DB, routes *router.Router, messages session.Store) *Site {
	s := &Site{
		db:        db,
		routes:    routes,
		messages:  messages,
		catalog:   services.NewCatalogService(db, routes),
		customers: services.NewCustomerService(db),
		orders:    services.NewOrderService(db, routes),
		reviews:   services.NewReviewService(db, routes),
	}
	s.models = []*ModelAdmin{
		s.productAdmin(),
		s.collectionAdmin(),
		s.customerAdmin(),
		s.orderAdmin(),
		s.reviewAdmin(),
	}
	return s
}

// Model returns the registered ModelAdmin called name.
func (s *Site) Model(name string) (*ModelAdmin, bool) {
	return collection.First(s.models, func(m *ModelAdmin) bool { return m.Name == name })
}

// Register mounts the console's routes on g. Route names are
// admin.<model>.<view>; admin.<model>.change is the detail route
// reference fields may link to.
func (s *Site) Register(g *router.Group) {
	g.Get("/", "admin.index", ctx.Wrap(s.index))

	for _, m := range s.models {
		m := m
		base := "/" + m.Name
		item := base + "/{id}"
		prefix := "admin." + m.Name

		g.Get(base, prefix+".changelist", ctx.Wrap(func(c *ctx.Context) { s.changelist(c, m) }))
		g.Post(base, prefix+".add", ctx.Wrap(func(c *ctx.Context) { s.add(c, m) }))
		g.Get(base+"/autocomplete", prefix+".autocomplete", ctx.Wrap(func(c *ctx.Context) { s.autocomplete(c, m) }))
		g.Post(base+"/actions", prefix+".actions", ctx.Wrap(func(c *ctx.Context) { s.action(c, m) }))
		g.Get(item, prefix+".change", ctx.Wrap(func(c *ctx.Context) { s.changeForm(c, m) }))
		g.Put(item, prefix+".save", ctx.Wrap(func(c *ctx.Context) { s.change(c, m) }))
		g.Delete(item, prefix+".delete", ctx.Wrap(func(c *ctx.Context) { s.delete(c, m) }))
	}

	g.Patch("/customers", "admin.customers.bulk_edit", ctx.Wrap(s.editMemberships))
}

func (s *Site) links(c *ctx.Context) serializers.Links {
	return serializers.Links{Base: c.BaseURL(), Routes: s.routes}
}

func (s *Site) index(c *ctx.Context) {
	l := s.links(c)
	out := make([]resource.Map, 0, len(s.models))
	for _, m := range s.models {
		out = append(out, resource.Map{
			"name":                m.Name,
			"verbose_name_plural": m.VerbosePlural,
			"changelist":          l.Named("admin."+m.Name+".changelist", nil),
			"add":                 l.Named("admin."+m.Name+".add", nil),
		})
	}
	c.Success(resource.Map{"models": out})
}

// owner keys the message store by the signed-in admin user.
func owner(r *http.Request) string {
	id, ok := middleware.UserIDFromCtx(r)
	if !ok {
		return "anonymous"
	}
	return strconv.FormatUint(uint64(id), 10)
}

// flash queues a message for the operator's next changelist read. A
// failing store loses the message, never the request.
func (s *Site) flash(c *ctx.Context, level, text string) {
	if err := s.messages.Add(c.Context(), owner(c.R), session.Message{Level: level, Text: text}); err != nil {
		logger.WithCtx(c.Context()).Warn("admin: message not stored", "error", err)
	}
}

func (s *Site) drain(ctx context.Context, r *http.Request) []session.Message {
	msgs, err := s.messages.Drain(ctx, owner(r))
	if err != nil {
		logger.WithCtx(ctx).Warn("admin: messages not read", "error", err)
	}
	if msgs == nil {
		msgs = []session.Message{}
	}
	return msgs
}
