package query

import (
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"hr-admin/internal/shared/apperror"
)

// Reserved query keys; everything else in the bag is an equality filter.
const (
	keyLimit          = "limit"
	keyOffset         = "offset"
	keyOrder          = "order"
	keyRelations      = "relations"
	keySearchTerm     = "searchTerm"
	keySearchTermKeys = "searchTermKeys"
)

type OrderEntry struct {
	Field string `json:"id"`
	Desc  bool   `json:"desc"`
}

// Params is the flat, parsed form of a list request's query string.
type Params struct {
	Limit      int
	Offset     int
	Order      []OrderEntry
	SearchTerm string
	SearchKeys []string
	Relations  []string
	Filters    map[string]string
}

// Manifest adapts a Params bag to one entity: it maps relation query names
// to gorm association names and, when Filterable/Sortable are set, closes
// the unknown-field pass-through. No route sets them today; malformed field
// names fail at the storage layer, matching the source behavior.
type Manifest struct {
	Relations  map[string]string
	Filterable map[string]bool
	Sortable   map[string]bool
}

// Parse translates raw query values into Params. limit/offset must be
// non-negative integers; an absent limit means "no page bound".
func Parse(values url.Values) (Params, error) {
	p := Params{Filters: map[string]string{}}

	var err error
	if p.Limit, err = parseBound(values.Get(keyLimit)); err != nil {
		return Params{}, apperror.ErrInvalidInput
	}
	if p.Offset, err = parseBound(values.Get(keyOffset)); err != nil {
		return Params{}, apperror.ErrInvalidInput
	}

	for _, raw := range values[keyOrder] {
		entries, err := parseOrder(raw)
		if err != nil {
			return Params{}, apperror.ErrInvalidInput
		}
		p.Order = append(p.Order, entries...)
	}

	p.SearchTerm = values.Get(keySearchTerm)
	p.SearchKeys = splitMulti(values[keySearchTermKeys])
	p.Relations = splitMulti(values[keyRelations])

	for key, vals := range values {
		switch key {
		case keyLimit, keyOffset, keyOrder, keyRelations, keySearchTerm, keySearchTermKeys:
			continue
		}
		if len(vals) > 0 {
			p.Filters[key] = vals[0]
		}
	}

	return p, nil
}

func parseBound(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperror.ErrInvalidInput
	}
	return n, nil
}

// parseOrder accepts the JSON forms the table component sends
// ({"id":"x","desc":true} or an array of those) and the shorthand
// "field.desc" / "field.asc" / "field".
func parseOrder(raw string) ([]OrderEntry, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var entries []OrderEntry
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return nil, err
		}
		return entries, nil
	}
	if strings.HasPrefix(raw, "{") {
		var entry OrderEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, err
		}
		return []OrderEntry{entry}, nil
	}

	field, dir, found := strings.Cut(raw, ".")
	entry := OrderEntry{Field: field}
	if found {
		entry.Desc = dir == "desc"
	}
	return []OrderEntry{entry}, nil
}

func splitMulti(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Condition is one SQL predicate fragment with its bind arguments.
type Condition struct {
	Expr string
	Args []any
}

// Descriptor is the storage-ready form of a list query: AND conditions, an
// OR'd search group, order, page bounds, and eager-load names.
type Descriptor struct {
	Conds    []Condition
	Search   []Condition
	Order    []OrderEntry
	Limit    int
	Offset   int
	Preloads []string
}

// Build translates Params into a Descriptor using the entity's manifest.
// Filter conditions are emitted in sorted field order so identical
// parameter sets always produce identical descriptors.
func Build(p Params, m Manifest) (Descriptor, error) {
	d := Descriptor{Limit: p.Limit, Offset: p.Offset}

	fields := make([]string, 0, len(p.Filters))
	for field := range p.Filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if m.Filterable != nil && !m.Filterable[field] {
			return Descriptor{}, apperror.ErrInvalidInput
		}
		d.Conds = append(d.Conds, Condition{
			Expr: field + " = ?",
			Args: []any{p.Filters[field]},
		})
	}

	if p.SearchTerm != "" {
		for _, key := range p.SearchKeys {
			field, matcher, _ := strings.Cut(key, ".")
			if m.Filterable != nil && !m.Filterable[field] {
				return Descriptor{}, apperror.ErrInvalidInput
			}
			switch matcher {
			case "contains":
				d.Search = append(d.Search, Condition{
					Expr: field + " LIKE ?",
					Args: []any{"%" + p.SearchTerm + "%"},
				})
			default:
				d.Search = append(d.Search, Condition{
					Expr: field + " = ?",
					Args: []any{p.SearchTerm},
				})
			}
		}
	}

	for _, o := range p.Order {
		if m.Sortable != nil && !m.Sortable[o.Field] {
			return Descriptor{}, apperror.ErrInvalidInput
		}
		d.Order = append(d.Order, o)
	}

	for _, rel := range p.Relations {
		if name, ok := m.Relations[rel]; ok {
			d.Preloads = append(d.Preloads, name)
			continue
		}
		// unmapped relations pass through; the storage layer rejects them
		d.Preloads = append(d.Preloads, rel)
	}

	return d, nil
}

// Preloaded reports whether the named association is eagerly loaded.
func (d Descriptor) Preloaded(name string) bool {
	for _, p := range d.Preloads {
		if p == name {
			return true
		}
	}
	return false
}

// ApplyFilter adds the WHERE clauses only; used for the totalCount query,
// which ignores order and page bounds.
func (d Descriptor) ApplyFilter(db *gorm.DB) *gorm.DB {
	for _, c := range d.Conds {
		db = db.Where(c.Expr, c.Args...)
	}
	if len(d.Search) > 0 {
		exprs := make([]string, len(d.Search))
		var args []any
		for i, c := range d.Search {
			exprs[i] = c.Expr
			args = append(args, c.Args...)
		}
		db = db.Where("("+strings.Join(exprs, " OR ")+")", args...)
	}
	return db
}

// Apply adds filters, order, page bounds, and eager loads for the data
// query. A zero limit means unbounded.
func (d Descriptor) Apply(db *gorm.DB) *gorm.DB {
	db = d.ApplyFilter(db)
	for _, o := range d.Order {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		db = db.Order(o.Field + " " + dir)
	}
	if d.Limit > 0 {
		db = db.Limit(d.Limit)
	}
	if d.Offset > 0 {
		db = db.Offset(d.Offset)
	}
	for _, name := range d.Preloads {
		db = db.Preload(name)
	}
	return db
}

// CacheKey is a canonical rendering of Params; identical parameter sets
// produce identical keys regardless of map iteration order.
func (p Params) CacheKey() string {
	var b strings.Builder
	b.WriteString("limit=")
	b.WriteString(strconv.Itoa(p.Limit))
	b.WriteString("&offset=")
	b.WriteString(strconv.Itoa(p.Offset))
	for _, o := range p.Order {
		b.WriteString("&order=")
		b.WriteString(o.Field)
		if o.Desc {
			b.WriteString(".desc")
		} else {
			b.WriteString(".asc")
		}
	}
	b.WriteString("&searchTerm=")
	b.WriteString(p.SearchTerm)
	for _, k := range p.SearchKeys {
		b.WriteString("&searchTermKeys=")
		b.WriteString(k)
	}
	for _, r := range p.Relations {
		b.WriteString("&relations=")
		b.WriteString(r)
	}

	fields := make([]string, 0, len(p.Filters))
	for field := range p.Filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		b.WriteString("&")
		b.WriteString(field)
		b.WriteString("=")
		b.WriteString(p.Filters[field])
	}
	return b.String()
}
