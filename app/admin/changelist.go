package admin

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/projector"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/resource"
)

const autocompleteLimit = 20

// filterState is the restriction a changelist request selects: its
// filters, lookups and search term, without ordering or paging.
type filterState struct {
	scopes   []func(*gorm.DB) *gorm.DB
	selected map[string]string // parameter -> applied value
	search   string
}

func (f filterState) scope(db *gorm.DB) *gorm.DB {
	return chain(db, f.scopes)
}

func chain(db *gorm.DB, scopes []func(*gorm.DB) *gorm.DB) *gorm.DB {
	for _, sc := range scopes {
		db = sc(db)
	}
	return db
}

// filters reads the filter, lookup and q parameters of values. Values no
// filter recognises are dropped.
func (m *ModelAdmin) filters(values url.Values) filterState {
	st := filterState{selected: map[string]string{}, search: strings.TrimSpace(values.Get("q"))}

	for _, f := range m.Filters {
		v := values.Get(f.Parameter())
		if v == "" {
			continue
		}
		if sc := f.Scope(v); sc != nil {
			st.scopes = append(st.scopes, sc)
			st.selected[f.Parameter()] = v
		}
	}
	for _, param := range sortedKeys(m.Lookups) {
		v := values.Get(param)
		if v == "" {
			continue
		}
		if sc := exact(m.Lookups[param], v); sc != nil {
			st.scopes = append(st.scopes, sc)
			st.selected[param] = v
		}
	}
	if st.search != "" && len(m.SearchFields) > 0 {
		st.scopes = append(st.scopes, orm.Search(m.SearchFields, st.search))
	}
	return st
}

// order applies the requested ordering, the default when none applies, and
// the primary key as the final tie-break.
func (m *ModelAdmin) order(q *gorm.DB, raw string) (*gorm.DB, []string) {
	q, applied := projector.Order(q, projector.ParseSort(raw), m.Sortable)
	if len(applied) == 0 {
		q, applied = projector.Order(q, m.Ordering, m.Sortable)
	}

	names := make([]string, 0, len(applied))
	hasID := false
	for _, f := range applied {
		if f.Name == "id" {
			hasID = true
		}
		name := f.Name
		if f.Desc {
			name = "-" + name
		}
		names = append(names, name)
	}
	if !hasID {
		q = q.Order(m.Table + ".id ASC")
	}
	return q, names
}

func (m *ModelAdmin) perPage() int {
	if m.PerPage > 0 {
		return m.PerPage
	}
	return defaultPerPage
}

func (s *Site) changelist(c *ctx.Context, m *ModelAdmin) {
	values := c.R.URL.Query()
	st := m.filters(values)
	db := s.db.WithContext(c.Context())

	var total int64
	if err := db.Model(m.model).Scopes(st.scope).Count(&total).Error; err != nil {
		s.fail(c, fmt.Errorf("count %s: %w", m.Name, err))
		return
	}
	page := orm.NewPagination(c.QueryInt("p", 1), m.perPage(), total)

	q, ordering := m.order(m.list.query(db).Scopes(st.scope), values.Get("o"))
	rows, err := m.list.rows(q.Scopes(page.Scope()), s.links(c))
	if err != nil {
		s.fail(c, fmt.Errorf("list %s: %w", m.Name, err))
		return
	}

	filters, err := s.filterChoices(c, m, st)
	if err != nil {
		s.fail(c, err)
		return
	}

	actions := collection.Map(m.Actions, func(a Action) resource.Map {
		return resource.Map{"name": a.Name, "description": a.Description}
	})

	c.Success(resource.Map{
		"model":               m.Name,
		"verbose_name_plural": m.VerbosePlural,
		"columns":             m.ListDisplay,
		"editable":            append([]string{}, m.ListEditable...),
		"results":             rows,
		"count":               page.Total,
		"page":                page.Page,
		"num_pages":           page.LastPage,
		"per_page":            page.PerPage,
		"search":              st.search,
		"ordering":            ordering,
		"filters":             filters,
		"selected":            st.selected,
		"actions":             actions,
		"messages":            s.drain(c.Context(), c.R),
	})
}

func (s *Site) filterChoices(c *ctx.Context, m *ModelAdmin, st filterState) ([]resource.Map, error) {
	out := make([]resource.Map, 0, len(m.Filters))
	for _, f := range m.Filters {
		choices, err := f.Choices(c.Context(), s.db.WithContext(c.Context()))
		if err != nil {
			return nil, fmt.Errorf("filter %s choices: %w", f.Parameter(), err)
		}
		current := st.selected[f.Parameter()]

		entries := make([]resource.Map, 0, len(choices)+1)
		entries = append(entries, resource.Map{"value": "", "label": "All", "selected": current == ""})
		for _, ch := range choices {
			entries = append(entries, resource.Map{"value": ch.Value, "label": ch.Label, "selected": ch.Value == current})
		}
		out = append(out, resource.Map{
			"parameter": f.Parameter(),
			"title":     f.Title(),
			"choices":   entries,
		})
	}
	return out, nil
}

// autocomplete serves reference pickers: rows matching term on the
// model's search fields, in changelist order.
func (s *Site) autocomplete(c *ctx.Context, m *ModelAdmin) {
	q := m.list.query(s.db.WithContext(c.Context()))
	if term := strings.TrimSpace(c.Query("term")); term != "" && len(m.SearchFields) > 0 {
		q = q.Scopes(orm.Search(m.SearchFields, term))
	}
	q, _ = m.order(q, "")

	opts, err := m.list.options(q.Limit(autocompleteLimit))
	if err != nil {
		s.fail(c, fmt.Errorf("autocomplete %s: %w", m.Name, err))
		return
	}
	c.Success(opts)
}

// changelistURL is the changelist path with the filter parameters of
// values carried over.
func (s *Site) changelistURL(m *ModelAdmin, values url.Values) string {
	path, err := s.routes.URL("admin."+m.Name+".changelist", nil)
	if err != nil {
		path = "/admin/" + m.Name
	}
	keep := url.Values{}
	for k, vs := range values {
		if k == "p" {
			continue
		}
		for _, v := range vs {
			keep.Add(k, v)
		}
	}
	if len(keep) == 0 {
		return path
	}
	return path + "?" + keep.Encode()
}

// filteredLink narrows the changelist URL base to param=id. Count columns
// link through it.
func filteredLink(base, param string, id uint) string {
	if base == "" {
		return ""
	}
	return base + "?" + url.Values{param: {strconv.FormatUint(uint64(id), 10)}}.Encode()
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
