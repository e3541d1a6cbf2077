package utils

import (
	"strings"
	"time"
)

// dateLayouts cobre os formatos que os drivers devolvem para DATE/DATETIME
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
}

// ParseDBDate interpreta datas em texto vindas do banco.
// As datas zeradas do MySQL ("0000-00-00") são tratadas como ausentes (nil).
func ParseDBDate(value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasPrefix(value, "0000-00-00") {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}

	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return &t, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

// StartOfDay retorna a meia-noite do dia de t
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
