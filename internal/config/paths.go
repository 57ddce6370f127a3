package config

import "path/filepath"

// ProjectConfigNames lists the project config file names in lookup order.
var ProjectConfigNames = []string{".chlog.yml", ".chlog.yaml", ".chlog.json"}

// FindProjectConfig returns the first project config file in dir, or "".
func FindProjectConfig(dir string) string {
	if dir == "" {
		dir = "."
	}
	for _, name := range ProjectConfigNames {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}
