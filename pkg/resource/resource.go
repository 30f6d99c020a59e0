// Package resource holds the output side of serializers: a Transformer
// turns one model (or projected row) into the flat map written on the wire.
//
//	type CollectionResource struct{}
//	func (CollectionResource) ToMap(c projector.CollectionRow) resource.Map {
//	    return resource.Map{"id": c.ID, "title": c.Title, "products_count": c.ProductsCount}
//	}
//
//	response.Success(w, resource.Many(CollectionResource{}, rows))
package resource

// Map is the wire representation of one entity.
type Map = map[string]interface{}

// Transformer converts one value into a Map.
type Transformer[T any] interface {
	ToMap(v T) Map
}

// One transforms a single value.
func One[T any](t Transformer[T], v T) Map {
	return t.ToMap(v)
}

// Many transforms items in order. The result is never nil so an empty
// list encodes as [] rather than null.
func Many[T any](t Transformer[T], items []T) []Map {
	out := make([]Map, 0, len(items))
	for _, item := range items {
		out = append(out, t.ToMap(item))
	}
	return out
}
