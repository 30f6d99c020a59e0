// Package validate provides struct-tag validation with field-keyed errors.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must be present (non-nil pointer) and not blank
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	date                parseable date (RFC3339 or 2006-01-02)
//	decimal=D,P         at most D digits in total and P after the point
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gte=N               number >= N
//	in=a,b,c            value must be one of the listed items
//
// Pointer fields model presence: a nil pointer is "not supplied", so
// `required` fails and every other rule is skipped.
//
//	type ProductInput struct {
//	    Title *string          `json:"title" validate:"required,max=255"`
//	    Price *decimal.Decimal `json:"price" validate:"required,decimal=6,2"`
//	}
package validate

import (
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Errors maps a wire field name to its messages.
type Errors map[string][]string

// Add appends msg to field's messages.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Has reports whether field already has at least one message.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Merge copies other into e, prefixing every key with prefix.
func (e Errors) Merge(prefix string, other Errors) {
	for field, msgs := range other {
		e[prefix+field] = append(e[prefix+field], msgs...)
	}
}

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+strings.Join(e[f], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors returns true when errs is non-empty.
func HasErrors(errs Errors) bool { return len(errs) > 0 }

// Struct validates all exported fields of v that carry a `validate` tag.
// The first failing rule per field is reported.
func Struct(v interface{}) Errors {
	errs := Errors{}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := JSONName(field)
		rules := splitRules(tag)
		value := rv.Field(i)
		present := false

		if value.Kind() == reflect.Ptr {
			if value.IsNil() {
				if hasRule(rules, "required") {
					errs.Add(name, fmt.Sprintf("The %s field is required.", name))
				}
				continue
			}
			value = value.Elem()
			present = true
		}

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			// A supplied pointer satisfies required unless it is a blank string.
			if rule == "required" && present && value.Kind() != reflect.String {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs.Add(name, msg)
				break
			}
		}
	}

	return errs
}

func applyRule(rule, field string, v reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "date":
		if _, err := ParseDate(raw); err != nil {
			return fmt.Sprintf("The %s is not a valid date.", field)
		}

	case "decimal":
		return checkDecimal(field, raw, param)

	case "min":
		n := mustParseFloat(param)
		if isNumeric(v) {
			if toFloat(v) < n {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else if float64(len([]rune(raw))) < n {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
	case "max":
		n := mustParseFloat(param)
		if isNumeric(v) {
			if toFloat(v) > n {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		} else if float64(len([]rune(raw))) > n {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
	case "gte":
		if toFloat(v) < mustParseFloat(param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
	case "in":
		for _, a := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(a) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}

	return ""
}

// checkDecimal enforces a DECIMAL(digits, places) column shape on raw.
func checkDecimal(field, raw, param string) string {
	maxDigits, maxPlaces, _ := strings.Cut(param, ",")
	digitsLimit, _ := strconv.Atoi(strings.TrimSpace(maxDigits))
	placesLimit, _ := strconv.Atoi(strings.TrimSpace(maxPlaces))

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Sprintf("The %s field must be a number.", field)
	}

	coef := new(big.Int).Abs(d.Coefficient()).String()
	places, digits := 0, len(coef)
	if exp := d.Exponent(); exp < 0 {
		places = int(-exp)
		if places > digits {
			digits = places
		}
	} else {
		digits += int(exp)
	}

	switch {
	case digits > digitsLimit:
		return fmt.Sprintf("The %s must not have more than %d digits in total.", field, digitsLimit)
	case places > placesLimit:
		return fmt.Sprintf("The %s must not have more than %d decimal places.", field, placesLimit)
	case digits-places > digitsLimit-placesLimit:
		return fmt.Sprintf("The %s must not have more than %d digits before the decimal point.", field, digitsLimit-placesLimit)
	}
	return ""
}

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}

// ParseDate parses s with the layouts accepted by the `date` rule.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as date", s)
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isNumeric(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return v.Type() == reflect.TypeOf(decimal.Decimal{})
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	f, _ := strconv.ParseFloat(fmt.Sprintf("%v", v.Interface()), 64)
	return f
}

func mustParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

// JSONName is the wire name of f: its json tag name or the lower-cased Go name.
func JSONName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	return name
}

// splitRules splits the validate tag by comma while keeping multi-value
// rule parameters intact:
// "required,in=B,S,G,max=1" → ["required", "in=B,S,G", "max=1"].
func splitRules(tag string) []string {
	var rules []string
	var current strings.Builder
	inParam := false

	multiValuePrefixes := []string{"in=", "decimal="}

	for i := 0; i < len(tag); i++ {
		ch := tag[i]
		if ch != ',' {
			current.WriteByte(ch)
			if !inParam {
				for _, pfx := range multiValuePrefixes {
					if strings.HasSuffix(current.String(), pfx) {
						inParam = true
						break
					}
				}
			}
			continue
		}
		if inParam && !looksLikeNewRule(tag[i+1:]) {
			current.WriteByte(ch)
			continue
		}
		rules = append(rules, current.String())
		current.Reset()
		inParam = false
	}
	if current.Len() > 0 {
		rules = append(rules, current.String())
	}
	return rules
}

func looksLikeNewRule(s string) bool {
	known := []string{
		"required", "nullable", "email", "date", "decimal=",
		"min=", "max=", "gte=", "in=",
	}
	for _, k := range known {
		if strings.HasPrefix(s, k) {
			return true
		}
	}
	return false
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}
