package config

import "os"

// Warnings returns non-fatal notes about the loaded configuration
func (c *Config) Warnings() []string {
	var warnings []string

	if c.HasDatabase() && os.Getenv("DB_PASSWORD") == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if c.Environment == "prod" && c.LogLevel == "debug" {
		warnings = append(warnings, "LOG_LEVEL is debug in production - every frame event will be logged")
	}
	if c.Environment == "prod" && c.APIKey == "" {
		warnings = append(warnings, "API_KEY is empty - anyone can start and stop playbacks")
	}
	if !c.HasDatabase() {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			warnings = append(warnings, "CATALOG_PATH does not exist - reels will spin Mystery filler")
		}
	}
	return warnings
}
