package usecase

import (
	"fmt"
	"math"
	"net/mail"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/xavierca1/buyer-intake/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is the full set of field failures for one record.
// It implements error so use cases can hand it back through the normal error path.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msg := "validation failed: "
	for i, ve := range e {
		if i > 0 {
			msg += ", "
		}
		msg += ve.Field + " (" + ve.Message + ")"
	}
	return msg
}

// Messages renders each failure as "field: message", the form used in
// per-row import error reports.
func (e ValidationErrors) Messages() []string {
	out := make([]string, len(e))
	for i, ve := range e {
		out[i] = ve.Error()
	}
	return out
}

var phoneRegex = regexp.MustCompile(`^\d{10,15}$`)

// validateMode selects between the strict JSON input rules and the relaxed
// CSV row rules (empty bhk cell means absent, tags may be a comma-joined string).
type validateMode int

const (
	modeStrict validateMode = iota
	modeCSVRow
)

// fieldOrder fixes the order in which fields are checked so error attribution
// is deterministic regardless of map iteration order.
var fieldOrder = []string{
	"fullName", "email", "phone", "city", "propertyType", "bhk",
	"purpose", "budgetMin", "budgetMax", "timeline", "source",
	"status", "notes", "tags",
}

// ValidateBuyerCreate runs every field validator over the loosely-typed input,
// then the cross-field rules, and returns either a normalized buyer or the
// accumulated field errors. It never stops at the first failure.
func ValidateBuyerCreate(fields map[string]any) (*entity.Buyer, ValidationErrors) {
	return validateBuyer(fields, modeStrict)
}

// ValidateBuyerRow is the CSV variant: an empty bhk cell counts as absent and
// tags may arrive as a comma-separated string.
func ValidateBuyerRow(fields map[string]any) (*entity.Buyer, ValidationErrors) {
	return validateBuyer(fields, modeCSVRow)
}

// ValidateBuyerUpdate merges the provided fields over the existing record and
// re-validates the full merged view, cross-field rules included. A partial
// update can invalidate a standing invariant (e.g. switching propertyType to
// Apartment without supplying bhk), so nothing less than a full pass is safe.
func ValidateBuyerUpdate(existing *entity.Buyer, fields map[string]any) (*entity.Buyer, ValidationErrors) {
	merged := buyerFields(existing)
	for k, v := range fields {
		if v == nil {
			continue
		}
		merged[k] = v
	}
	return validateBuyer(merged, modeStrict)
}

func validateBuyer(fields map[string]any, mode validateMode) (*entity.Buyer, ValidationErrors) {
	var errs ValidationErrors
	fail := func(field, message string) {
		errs = append(errs, ValidationError{field, message})
	}

	b := &entity.Buyer{}

	for _, field := range fieldOrder {
		raw, present := fields[field]
		switch field {
		case "fullName":
			s, ok := asString(raw, present)
			if !ok {
				fail(field, "is required")
				continue
			}
			s = strings.TrimSpace(s)
			if len([]rune(s)) < 2 {
				fail(field, "Full name must be at least 2 characters")
				continue
			}
			b.FullName = s

		case "email":
			s, ok := asString(raw, present)
			if !ok || strings.TrimSpace(s) == "" {
				continue // optional, empty normalizes to absent
			}
			s = strings.TrimSpace(s)
			if _, err := mail.ParseAddress(s); err != nil {
				fail(field, "Invalid email")
				continue
			}
			b.Email = s

		case "phone":
			s, ok := asString(raw, present)
			if !ok {
				fail(field, "is required")
				continue
			}
			s = strings.TrimSpace(s)
			if !phoneRegex.MatchString(s) {
				fail(field, "Phone must be 10-15 digits")
				continue
			}
			b.Phone = s

		case "city":
			b.City = requireEnum(raw, present, field, entity.Cities, fail)
		case "propertyType":
			b.PropertyType = requireEnum(raw, present, field, entity.PropertyTypes, fail)
		case "purpose":
			b.Purpose = requireEnum(raw, present, field, entity.Purposes, fail)
		case "timeline":
			b.Timeline = requireEnum(raw, present, field, entity.Timelines, fail)
		case "source":
			b.Source = requireEnum(raw, present, field, entity.Sources, fail)

		case "bhk":
			s, ok := asString(raw, present)
			if !ok {
				continue // optional; conditional requirement is checked cross-field
			}
			if s == "" && mode == modeCSVRow {
				continue // empty cell means absent
			}
			if !slices.Contains(entity.BHKValues, s) {
				fail(field, enumMessage(entity.BHKValues))
				continue
			}
			b.BHK = s

		case "budgetMin":
			n, msg := asBudget(raw, present)
			if msg != "" {
				fail(field, msg)
				continue
			}
			b.BudgetMin = n

		case "budgetMax":
			n, msg := asBudget(raw, present)
			if msg != "" {
				fail(field, msg)
				continue
			}
			b.BudgetMax = n

		case "status":
			s, ok := asString(raw, present)
			if !ok {
				b.Status = entity.StatusNew
				continue
			}
			if s == "" && mode == modeCSVRow {
				// empty cell means absent, like bhk
				b.Status = entity.StatusNew
				continue
			}
			if !slices.Contains(entity.Statuses, s) {
				fail(field, enumMessage(entity.Statuses))
				continue
			}
			b.Status = s

		case "notes":
			s, ok := asString(raw, present)
			if !ok || s == "" {
				continue
			}
			if len([]rune(s)) > 1000 {
				fail(field, "must not exceed 1000 characters")
				continue
			}
			b.Notes = s

		case "tags":
			tags, msg := asTags(raw, present, mode)
			if msg != "" {
				fail(field, msg)
				continue
			}
			b.Tags = tags
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	// Cross-field pass. Runs only once every field is individually valid, in a
	// fixed order, so attribution stays deterministic.
	if b.BudgetMax < b.BudgetMin {
		errs = append(errs, ValidationError{"budgetMax", "Max budget must be >= Min budget"})
	}
	switch b.PropertyType {
	case "Apartment", "Villa":
		if b.BHK == "" {
			errs = append(errs, ValidationError{"bhk", "BHK is required for Apartment/Villa"})
		}
	default:
		// bhk is meaningless for non-residential unit types
		b.BHK = ""
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return b, nil
}

// buyerFields flattens a stored buyer back into the loosely-typed form the
// validator consumes, so updates can re-validate the merged view.
func buyerFields(b *entity.Buyer) map[string]any {
	fields := map[string]any{
		"fullName":     b.FullName,
		"phone":        b.Phone,
		"city":         b.City,
		"propertyType": b.PropertyType,
		"purpose":      b.Purpose,
		"budgetMin":    b.BudgetMin,
		"budgetMax":    b.BudgetMax,
		"timeline":     b.Timeline,
		"source":       b.Source,
		"status":       b.Status,
	}
	if b.Email != "" {
		fields["email"] = b.Email
	}
	if b.BHK != "" {
		fields["bhk"] = b.BHK
	}
	if b.Notes != "" {
		fields["notes"] = b.Notes
	}
	if len(b.Tags) > 0 {
		fields["tags"] = b.Tags
	}
	return fields
}

func asString(raw any, present bool) (string, bool) {
	if !present {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

func requireEnum(raw any, present bool, field string, domain []string, fail func(field, message string)) string {
	s, ok := asString(raw, present)
	if !ok || s == "" {
		fail(field, "is required")
		return ""
	}
	if !slices.Contains(domain, s) {
		fail(field, enumMessage(domain))
		return ""
	}
	return s
}

func enumMessage(domain []string) string {
	return "must be one of " + strings.Join(domain, ", ")
}

// asBudget coerces numeric-looking input (JSON numbers or CSV cells) to a
// non-negative integer.
func asBudget(raw any, present bool) (int, string) {
	if !present {
		return 0, "is required"
	}
	switch v := raw.(type) {
	case int:
		if v < 0 {
			return 0, "must be a non-negative integer"
		}
		return v, ""
	case int64:
		if v < 0 {
			return 0, "must be a non-negative integer"
		}
		return int(v), ""
	case float64:
		if v < 0 || v != math.Trunc(v) || v >= math.MaxInt {
			return 0, "must be a non-negative integer"
		}
		return int(v), ""
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return 0, "must be a non-negative integer"
		}
		return n, ""
	default:
		return 0, "must be a non-negative integer"
	}
}

func asTags(raw any, present bool, mode validateMode) ([]string, string) {
	if !present {
		return nil, ""
	}
	switch v := raw.(type) {
	case []string:
		return cleanTags(v), ""
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, "must be a list of strings"
			}
			tags = append(tags, s)
		}
		return cleanTags(tags), ""
	case string:
		if mode != modeCSVRow {
			return nil, "must be a list of strings"
		}
		if v == "" {
			return nil, ""
		}
		return cleanTags(strings.Split(v, ",")), ""
	default:
		return nil, "must be a list of strings"
	}
}

func cleanTags(in []string) []string {
	var tags []string
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
