package utils

import (
	"time"
)

const documentDateLayout = "02.01.2006"

// FormatDocumentDate renders the day-month-year stamp written into generated documents.
func FormatDocumentDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.In(time.Local).Format(documentDateLayout)
}
