package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthKeyFormat identifies a calendar month (YYYY-MM)
	MonthKeyFormat = "2006-01"

	// MonthLabelFormat is the human-readable month label sent to the summarizer
	MonthLabelFormat = "January 2006"

	// EntryDateFormat is how entry dates are rendered in summarizer requests
	EntryDateFormat = "January 2, 2006"

	// DisplayDateFormat is used by the history views
	DisplayDateFormat = "Monday, January 2, 2006"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"
)
