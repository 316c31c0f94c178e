package routemap

// mapping is the immutable route-segment to entity-kind table. It is a
// package-level literal, initialized once at process start.
var mapping = map[string]string{
	"companies":         "company",
	"employees":         "employee",
	"users":             "user",
	"vacation-requests": "vacation_request",
}

// EntityFor resolves a route segment (e.g. "vacation-requests") to its
// entity kind ("vacation_request"). Unmapped routes pass through unchanged.
func EntityFor(route string) string {
	if entity, ok := mapping[route]; ok {
		return entity
	}
	return route
}
