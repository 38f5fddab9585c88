package cronparser

import (
	"fmt"
	"strings"
	"time"

	cron "github.com/netresearch/go-cron"
)

var _parser = cron.MustNewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Parse parses a five field cron spec or a descriptor such as @hourly. If tz
// is non-empty and the spec has no CRON_TZ=/TZ= prefix, the schedule is
// evaluated in tz, otherwise in UTC.
func Parse(spec, tz string) (cron.Schedule, error) {
	schedule, err := _parser.Parse(buildSpec(spec, tz))
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	return schedule, nil
}

// NextAfter returns the next cron occurrence strictly after `after`.
func NextAfter(spec, tz string, after time.Time) (time.Time, error) {
	schedule, err := Parse(spec, tz)
	if err != nil {
		return time.Time{}, err
	}

	return schedule.Next(after), nil
}

func buildSpec(spec, tz string) string {
	hasTZPrefix := strings.HasPrefix(spec, "CRON_TZ=") ||
		strings.HasPrefix(spec, "TZ=")

	if hasTZPrefix {
		return spec
	}

	if tz == "" {
		tz = "UTC"
	}

	return "CRON_TZ=" + tz + " " + spec
}
