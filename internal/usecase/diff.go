package usecase

import (
	"slices"

	"github.com/xavierca1/buyer-intake/internal/entity"
)

// diffBuyers lists the fields that changed between two versions of a record.
// Identity fields and the version token are not part of the diff.
func diffBuyers(before, after *entity.Buyer) map[string]entity.FieldChange {
	diff := make(map[string]entity.FieldChange)
	add := func(field string, b, a any) {
		if b != a {
			diff[field] = entity.FieldChange{Before: b, After: a}
		}
	}

	add("fullName", before.FullName, after.FullName)
	add("email", before.Email, after.Email)
	add("phone", before.Phone, after.Phone)
	add("city", before.City, after.City)
	add("propertyType", before.PropertyType, after.PropertyType)
	add("bhk", before.BHK, after.BHK)
	add("purpose", before.Purpose, after.Purpose)
	add("budgetMin", before.BudgetMin, after.BudgetMin)
	add("budgetMax", before.BudgetMax, after.BudgetMax)
	add("timeline", before.Timeline, after.Timeline)
	add("source", before.Source, after.Source)
	add("status", before.Status, after.Status)
	add("notes", before.Notes, after.Notes)
	if !slices.Equal(before.Tags, after.Tags) {
		diff["tags"] = entity.FieldChange{Before: before.Tags, After: after.Tags}
	}
	return diff
}
