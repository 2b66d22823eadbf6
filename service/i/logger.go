package i

// Logger is the leveled logger every component logs through.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
