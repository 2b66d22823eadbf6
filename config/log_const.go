package config

// Color constants for logger names
const (
	ColorGreen = "\033[32m"
	ColorCyan  = "\033[36m"
)
