package constants

const (
	MaxNameLen = 100

	// Date Layout
	DateFormat = "2006-01-02"
)
