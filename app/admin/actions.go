package admin

import (
	"context"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/session"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// Action is a bulk operation over the selected rows of a changelist.
type Action struct {
	Name        string
	Description string
	Level       string // message level of the result
	// Run applies the action to every row matched by scope and returns how
	// many rows it covered.
	Run     func(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (int64, error)
	Message func(n int64) string
}

type actionInput struct {
	Action       *string `json:"action"        validate:"required"`
	Selected     []uint  `json:"selected"`
	SelectAcross bool    `json:"select_across"`
}

const msgNoSelection = "Items must be selected in order to perform actions on them. No items have been changed."

func (m *ModelAdmin) findAction(name string) (Action, bool) {
	return collection.First(m.Actions, func(a Action) bool { return a.Name == name })
}

// action runs a bulk action over the selected ids that also pass the
// changelist filters in the request's query string, then sends the
// operator back to that changelist.
func (s *Site) action(c *ctx.Context, m *ModelAdmin) {
	var in actionInput
	if !c.BindJSON(&in) {
		return
	}
	a, ok := m.findAction(*in.Action)
	if !ok {
		c.ValidationError(validate.Errors{"action": {"Select a valid choice. That choice is not one of the available choices."}})
		return
	}

	values := c.R.URL.Query()
	back := s.changelistURL(m, values)
	if !in.SelectAcross && len(in.Selected) == 0 {
		s.flash(c, session.Warning, msgNoSelection)
		c.Redirect(http.StatusSeeOther, back)
		return
	}

	st := m.filters(values)
	scopes := st.scopes
	if !in.SelectAcross {
		ids := collection.Unique(in.Selected)
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(m.Table+".id IN ?", ids)
		})
	}
	scope := func(db *gorm.DB) *gorm.DB { return chain(db, scopes) }

	n, err := a.Run(c.Context(), scope)
	if err != nil {
		s.fail(c, fmt.Errorf("action %s.%s: %w", m.Name, a.Name, err))
		return
	}
	metrics.RecordAdminAction(m.Name, a.Name, n)

	level := a.Level
	if level == "" {
		level = session.Success
	}
	s.flash(c, level, a.Message(n))
	c.Redirect(http.StatusSeeOther, back)
}
