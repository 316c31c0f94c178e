package config

// AppConfig is the static application descriptor: which roles exist and how
// they group into owner/tenant/customer tiers. It never changes at runtime.
type AppConfig struct {
	OwnerRoles      []string
	CustomerRoles   []string
	TenantRoles     []string
	TenantName      string
	ApplicationName string
}

func App() AppConfig {
	return AppConfig{
		OwnerRoles:      []string{"Owner"},
		CustomerRoles:   []string{"Guest"},
		TenantRoles:     []string{"Owner", "Admin", "Employee", "HR Manager"},
		TenantName:      "Company",
		ApplicationName: "HR Information System",
	}
}
