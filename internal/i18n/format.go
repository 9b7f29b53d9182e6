package i18n

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/mmynk/billed/internal/models"
)

var (
	ErrInvalidDate   = errors.New("invalid bill date")
	ErrUnknownStatus = errors.New("unknown bill status")
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate parses a raw bill date.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// FormatDate renders a raw bill date for tag.
// French: "1 Jui. 21". English: "Jun 1, 2021".
func FormatDate(raw string, tag language.Tag) (string, error) {
	t, err := ParseDate(raw)
	if err != nil {
		return "", err
	}
	return RenderDate(t, tag), nil
}

// RenderDate renders an already parsed date for tag.
func RenderDate(t time.Time, tag language.Tag) string {
	tag = Match(tag)
	month := printer(tag).Sprintf(fmt.Sprintf("month.%d", int(t.Month())))
	if tag == language.English {
		return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
	}
	return fmt.Sprintf("%d %s. %02d", t.Day(), month, t.Year()%100)
}

// FormatStatus returns the label for status in tag.
// Unknown statuses return the raw value along with ErrUnknownStatus.
func FormatStatus(status models.BillStatus, tag language.Tag) (string, error) {
	if !status.Known() {
		return string(status), fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	return printer(tag).Sprintf("status." + string(status)), nil
}
