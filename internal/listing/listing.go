// Package listing implements the query convention shared by every list
// endpoint: equality and __neq/__ilike/__gte/__lte/__in operators on
// whitelisted columns, signed order_by fields (-id for descending), a
// free-text q parameter, and 1-based page/size pagination.
package listing

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultSize = 50
	MaxSize     = 200
)

// Page is the response envelope shared by all list endpoints.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Pages int   `json:"pages"`
}

// Options declares which columns an entity exposes to the convention.
type Options struct {
	// Filterable columns accept the filter operators. Sortable defaults to
	// the same set when nil.
	Filterable []string
	Sortable   []string
	// SearchColumn is the target of the free-text q parameter; empty
	// disables q.
	SearchColumn string
	// DefaultOrder applies when no order_by is given, e.g. "id desc".
	DefaultOrder string
	// Preloads are gorm associations loaded with each item.
	Preloads []string
}

var qSanitizer = regexp.MustCompile(`[^a-zA-Z0-9 \-_]`)

// reserved query keys handled outside the filter loop
var reservedKeys = map[string]bool{"page": true, "size": true, "q": true, "order_by": true}

// List runs the filtered, ordered, paginated query for T and returns the
// envelope. Unknown filter columns or operators produce an error the handler
// maps to 400.
func List[T any](db *gorm.DB, query url.Values, opts Options) (Page[T], error) {
	var page Page[T]

	scoped, err := applyFilters(db.Model(new(T)), query, opts)
	if err != nil {
		return page, err
	}

	if err := scoped.Count(&page.Total).Error; err != nil {
		return page, fmt.Errorf("count: %w", err)
	}

	scoped, err = applyOrder(scoped, query, opts)
	if err != nil {
		return page, err
	}

	page.Page, page.Size = pagination(query)
	for _, p := range opts.Preloads {
		scoped = scoped.Preload(p)
	}
	offset := (page.Page - 1) * page.Size
	if err := scoped.Limit(page.Size).Offset(offset).Find(&page.Items).Error; err != nil {
		return page, fmt.Errorf("find: %w", err)
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	page.Pages = int(math.Ceil(float64(page.Total) / float64(page.Size)))
	if page.Pages == 0 {
		page.Pages = 1
	}
	return page, nil
}

func applyFilters(db *gorm.DB, query url.Values, opts Options) (*gorm.DB, error) {
	allowed := make(map[string]bool, len(opts.Filterable))
	for _, c := range opts.Filterable {
		allowed[c] = true
	}

	for key, values := range query {
		if reservedKeys[key] || len(values) == 0 {
			continue
		}
		col, op := key, ""
		if i := strings.LastIndex(key, "__"); i > 0 {
			col, op = key[:i], key[i+2:]
		}
		if !allowed[col] {
			return nil, fmt.Errorf("unknown filter field %q", key)
		}
		value := values[0]
		switch op {
		case "":
			db = db.Where(col+" = ?", coerce(value))
		case "neq":
			db = db.Where(col+" <> ?", coerce(value))
		case "gte":
			db = db.Where(col+" >= ?", coerce(value))
		case "lte":
			db = db.Where(col+" <= ?", coerce(value))
		case "ilike":
			db = db.Where("LOWER("+col+") LIKE ?", "%"+strings.ToLower(value)+"%")
		case "in":
			parts := strings.Split(value, ",")
			in := make([]any, 0, len(parts))
			for _, p := range parts {
				in = append(in, coerce(strings.TrimSpace(p)))
			}
			db = db.Where(col+" IN ?", in)
		default:
			return nil, fmt.Errorf("unknown filter operator %q", key)
		}
	}

	if q := strings.TrimSpace(query.Get("q")); q != "" && opts.SearchColumn != "" {
		safe := qSanitizer.ReplaceAllString(q, "")
		db = db.Where("LOWER("+opts.SearchColumn+") LIKE ?", "%"+strings.ToLower(safe)+"%")
	}
	return db, nil
}

func applyOrder(db *gorm.DB, query url.Values, opts Options) (*gorm.DB, error) {
	sortable := opts.Sortable
	if sortable == nil {
		sortable = opts.Filterable
	}
	allowed := make(map[string]bool, len(sortable))
	for _, c := range sortable {
		allowed[c] = true
	}

	ordered := false
	for _, raw := range query["order_by"] {
		for _, field := range strings.Split(raw, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			dir := " ASC"
			if strings.HasPrefix(field, "-") {
				field = field[1:]
				dir = " DESC"
			}
			if !allowed[field] {
				return nil, fmt.Errorf("unknown order_by field %q", field)
			}
			db = db.Order(field + dir)
			ordered = true
		}
	}
	if !ordered && opts.DefaultOrder != "" {
		db = db.Order(opts.DefaultOrder)
	}
	return db, nil
}

func pagination(query url.Values) (page, size int) {
	page, size = 1, DefaultSize
	if v := query.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := query.Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= MaxSize {
			size = n
		}
	}
	return page, size
}

// coerce turns a query string into the narrowest Go type so the driver binds
// numeric and boolean comparisons correctly on both sqlite and postgres.
func coerce(v string) any {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v
}
