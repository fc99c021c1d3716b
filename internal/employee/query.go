package employee

import (
	"sort"
	"strings"
)

// Sort directions accepted by the query engine.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

const defaultPageSize = 10

// Filter holds the optional predicates of a list query. All set
// clauses are ANDed together; numeric bounds are inclusive.
type Filter struct {
	NameContains  string   `json:"nameContains" form:"nameContains"`
	MinAge        *int     `json:"minAge" form:"minAge"`
	MaxAge        *int     `json:"maxAge" form:"maxAge"`
	Role          string   `json:"role" form:"role"`
	AttendanceMin *float64 `json:"attendanceMin" form:"attendanceMin"`
	AttendanceMax *float64 `json:"attendanceMax" form:"attendanceMax"`
}

// Matches reports whether a record passes every set clause.
func (f Filter) Matches(e Employee) bool {
	if f.NameContains != "" &&
		!strings.Contains(strings.ToLower(e.Name), strings.ToLower(f.NameContains)) {
		return false
	}
	if f.MinAge != nil && e.Age < *f.MinAge {
		return false
	}
	if f.MaxAge != nil && e.Age > *f.MaxAge {
		return false
	}
	if f.Role != "" && e.Role != f.Role {
		return false
	}
	if f.AttendanceMin != nil && e.Attendance < *f.AttendanceMin {
		return false
	}
	if f.AttendanceMax != nil && e.Attendance > *f.AttendanceMax {
		return false
	}
	return true
}

// Sort names a single order key. Unset direction means ascending.
type Sort struct {
	Field     string `json:"field" form:"field"`
	Direction string `json:"direction" form:"direction"`
}

// Query bundles the filter, sort and pagination arguments of a list
// request. Zero values normalize to page 1 with the default page size.
type Query struct {
	Filter   Filter `json:"filter"`
	SortBy   *Sort  `json:"sortBy"`
	Page     int    `json:"page" form:"page"`
	PageSize int    `json:"pageSize" form:"pageSize"`
}

// normalize clamps non-positive pagination values instead of rejecting
// them: page < 1 becomes 1, pageSize < 1 becomes the default. The
// clamp keeps Apply total for any input.
func (q Query) normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	return q
}

// Page is one slice of a filtered, sorted result set. Total counts the
// filtered records before pagination.
type Page struct {
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
	Items    []Employee `json:"items"`
}

// Apply runs filter, sort and offset pagination over an already
// materialized collection. It is a pure function: the input slice is
// never reordered or mutated, and equal sort keys keep their relative
// input order. With no sort given the result is ordered by date,
// newest first. An unknown sort field compares everything equal, which
// leaves the input order untouched.
func Apply(records []Employee, q Query) Page {
	q = q.normalize()

	filtered := make([]Employee, 0, len(records))
	for _, e := range records {
		if q.Filter.Matches(e) {
			filtered = append(filtered, e)
		}
	}

	field, desc := "date", true
	if q.SortBy != nil {
		field = q.SortBy.Field
		desc = strings.EqualFold(q.SortBy.Direction, SortDesc)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		c := compareField(filtered[i], filtered[j], field)
		if desc {
			return c > 0
		}
		return c < 0
	})

	total := len(filtered)
	start := (q.Page - 1) * q.PageSize
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}

	return Page{
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
		Items:    filtered[start:end],
	}
}

func compareField(a, b Employee, field string) int {
	switch field {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "age":
		return a.Age - b.Age
	case "class":
		return strings.Compare(a.Class, b.Class)
	case "attendance":
		return compareFloat(a.Attendance, b.Attendance)
	case "role":
		return strings.Compare(a.Role, b.Role)
	case "email":
		return strings.Compare(a.Email, b.Email)
	case "date":
		return a.Date.Compare(b.Date)
	case "flagged":
		return compareBool(a.Flagged, b.Flagged)
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}
