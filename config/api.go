package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Login must stay reachable without credentials; the menu is public.
	return []string{"/api/login", "/api/products"}
}
