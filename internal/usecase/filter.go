package usecase

import (
	"strings"

	"github.com/xavierca1/buyer-intake/internal/entity"
)

// BuyerFilter narrows a buyer collection. Search is a case-insensitive
// substring match over fullName, email and phone; the remaining facets are
// exact matches. All set constraints compose with AND; an empty facet means
// no constraint.
type BuyerFilter struct {
	Search       string
	City         string
	PropertyType string
	Status       string
	Timeline     string
}

// FilterBuyers reduces the collection to the records matching the filter,
// preserving the original relative order. It never sorts.
func FilterBuyers(buyers []entity.Buyer, f BuyerFilter) []entity.Buyer {
	matched := make([]entity.Buyer, 0, len(buyers))
	search := strings.ToLower(strings.TrimSpace(f.Search))

	for _, b := range buyers {
		if search != "" &&
			!strings.Contains(strings.ToLower(b.FullName), search) &&
			!strings.Contains(strings.ToLower(b.Email), search) &&
			!strings.Contains(b.Phone, search) {
			continue
		}
		if f.City != "" && b.City != f.City {
			continue
		}
		if f.PropertyType != "" && b.PropertyType != f.PropertyType {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.Timeline != "" && b.Timeline != f.Timeline {
			continue
		}
		matched = append(matched, b)
	}
	return matched
}
