package serializers

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/storefront/pkg/router"
)

const (
	MsgNoURLMatch    = "Invalid hyperlink - No URL match."
	MsgLinkNotExists = "Invalid hyperlink - Object does not exist."
)

// MsgIDNotExists is the error for an integer reference with no target row.
func MsgIDNotExists(id uint) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

// Ref is a reference to another row, written either as an integer id or
// as a hyperlink to the target's detail route.
type Ref struct {
	ID   uint
	Link string
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	var id uint
	if err := json.Unmarshal(b, &id); err == nil {
		*r = Ref{ID: id}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("empty reference")
	}
	*r = Ref{Link: s}
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if r.Link != "" {
		return json.Marshal(r.Link)
	}
	return json.Marshal(r.ID)
}

func (Ref) InvalidMessage() string {
	return "Incorrect type. Expected URL string or integer id."
}

// IDRef references id directly.
func IDRef(id uint) *Ref { return &Ref{ID: id} }

// Resolve returns the id r points at. A hyperlink must match the named
// detail route (scheme and host are not compared); on failure msg is the
// field error to report.
func (r Ref) Resolve(routes *router.Router, routeName string) (id uint, msg string) {
	if r.Link == "" {
		return r.ID, ""
	}
	if n, err := strconv.ParseUint(r.Link, 10, 64); err == nil && n > 0 {
		return uint(n), ""
	}

	u, err := url.Parse(r.Link)
	if err != nil || routes == nil {
		return 0, MsgNoURLMatch
	}
	params, ok := routes.Resolve(routeName, u.Path)
	if !ok {
		return 0, MsgNoURLMatch
	}
	n, err := strconv.ParseUint(params["id"], 10, 64)
	if err != nil || n == 0 {
		return 0, MsgNoURLMatch
	}
	return uint(n), ""
}

// NotFoundMessage is the error for a reference that resolved but has no row.
func (r Ref) NotFoundMessage() string {
	if r.Link != "" {
		return MsgLinkNotExists
	}
	return MsgIDNotExists(r.ID)
}
