package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/app/serializers"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/resource"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/session"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// badRequest marks a body that could not be read as a JSON object.
type badRequest struct{ err error }

func (e *badRequest) Error() string { return e.err.Error() }

type editor interface {
	get(ctx context.Context, l serializers.Links, id uint) (Object, error)
	add(r *http.Request, l serializers.Links) (Object, error)
	change(r *http.Request, l serializers.Links, id uint) (Object, error)
	remove(ctx context.Context, l serializers.Links, id uint) (Object, error)
}

// form binds a change form to its input type In and stored shape Out.
type form[In any, Out any] struct {
	load   func(ctx context.Context, id uint) (Out, error)
	create func(ctx context.Context, in In) (Out, error)
	update func(ctx context.Context, id uint, in In) (Out, error)
	delete func(ctx context.Context, id uint) error
	object func(l serializers.Links, out Out) Object
}

func (f form[In, Out]) get(ctx context.Context, l serializers.Links, id uint) (Object, error) {
	out, err := f.load(ctx, id)
	if err != nil {
		return Object{}, err
	}
	return f.object(l, out), nil
}

func (f form[In, Out]) bind(r *http.Request) (In, error) {
	var in In
	errs, err := bind.JSON(r, &in)
	if err != nil {
		return in, &badRequest{err: err}
	}
	if validate.HasErrors(errs) {
		return in, &services.ValidationError{Errors: errs}
	}
	return in, nil
}

func (f form[In, Out]) add(r *http.Request, l serializers.Links) (Object, error) {
	in, err := f.bind(r)
	if err != nil {
		return Object{}, err
	}
	out, err := f.create(r.Context(), in)
	if err != nil {
		return Object{}, err
	}
	return f.object(l, out), nil
}

// change replaces every field of row id; the row must exist before the
// body is read.
func (f form[In, Out]) change(r *http.Request, l serializers.Links, id uint) (Object, error) {
	if _, err := f.load(r.Context(), id); err != nil {
		return Object{}, err
	}
	in, err := f.bind(r)
	if err != nil {
		return Object{}, err
	}
	out, err := f.update(r.Context(), id, in)
	if err != nil {
		return Object{}, err
	}
	return f.object(l, out), nil
}

// remove deletes row id and returns it as it was.
func (f form[In, Out]) remove(ctx context.Context, l serializers.Links, id uint) (Object, error) {
	out, err := f.load(ctx, id)
	if err != nil {
		return Object{}, err
	}
	obj := f.object(l, out)
	if err := f.delete(ctx, id); err != nil {
		return Object{}, err
	}
	return obj, nil
}

// fail answers err: 400 for an unreadable body, otherwise the API's
// service error mapping.
func (s *Site) fail(c *ctx.Context, err error) {
	var bad *badRequest
	if errors.As(err, &bad) {
		c.Error(http.StatusBadRequest, bad.Error())
		return
	}
	controllers.WriteError(c, err)
}

func objectData(o Object) resource.Map {
	return resource.Map{"id": o.ID, "str": o.Str, "fields": o.Data}
}

func (s *Site) changeForm(c *ctx.Context, m *ModelAdmin) {
	id, ok := c.ParamID("id")
	if !ok {
		c.NotFound()
		return
	}
	l := s.links(c)
	obj, err := m.editor.get(c.Context(), l, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	data := objectData(obj)
	if len(m.AutocompleteFields) > 0 {
		pickers := resource.Map{}
		for field, target := range m.AutocompleteFields {
			pickers[field] = l.Named("admin."+target+".autocomplete", nil)
		}
		data["autocomplete"] = pickers
	}
	c.Success(data)
}

func (s *Site) add(c *ctx.Context, m *ModelAdmin) {
	obj, err := m.editor.add(c.R, s.links(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	msg := fmt.Sprintf("The %s “%s” was added successfully.", m.Verbose, obj.Str)
	s.flash(c, session.Success, msg)
	response.Write(c.W, http.StatusCreated, response.Envelope{Status: http.StatusCreated, Message: msg, Data: objectData(obj)})
}

func (s *Site) change(c *ctx.Context, m *ModelAdmin) {
	id, ok := c.ParamID("id")
	if !ok {
		c.NotFound()
		return
	}
	obj, err := m.editor.change(c.R, s.links(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	msg := fmt.Sprintf("The %s “%s” was changed successfully.", m.Verbose, obj.Str)
	s.flash(c, session.Success, msg)
	response.Write(c.W, http.StatusOK, response.Envelope{Status: http.StatusOK, Message: msg, Data: objectData(obj)})
}

func (s *Site) delete(c *ctx.Context, m *ModelAdmin) {
	id, ok := c.ParamID("id")
	if !ok {
		c.NotFound()
		return
	}
	obj, err := m.editor.remove(c.Context(), s.links(c), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	msg := fmt.Sprintf("The %s “%s” was deleted successfully.", m.Verbose, obj.Str)
	s.flash(c, session.Success, msg)
	response.Write(c.W, http.StatusOK, response.Envelope{Status: http.StatusOK, Message: msg})
}

type membershipRows struct {
	Rows []json.RawMessage `json:"rows" validate:"required"`
}

// editMemberships saves the customer changelist's editable membership
// column. Every row is validated before any is written.
func (s *Site) editMemberships(c *ctx.Context) {
	var in membershipRows
	if !c.BindJSON(&in) {
		return
	}

	errs := validate.Errors{}
	rows := make([]serializers.MembershipRow, len(in.Rows))
	for i, raw := range in.Rows {
		prefix := fmt.Sprintf("rows.%d", i)
		rowErrs, err := bind.Bytes(raw, &rows[i])
		if err != nil {
			errs.Add(prefix, "Invalid data. Expected a dictionary.")
			continue
		}
		errs.Merge(prefix+".", rowErrs)
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return
	}

	n, err := s.customers.UpdateMemberships(c.Context(), rows)
	if err != nil {
		s.fail(c, err)
		return
	}

	msg := fmt.Sprintf("%d customers were changed successfully.", n)
	if n == 1 {
		msg = "1 customer was changed successfully."
	}
	s.flash(c, session.Success, msg)
	response.Write(c.W, http.StatusOK, response.Envelope{Status: http.StatusOK, Message: msg, Data: resource.Map{"changed": n}})
}
