package parsing

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tomasbot/matchday/internal/domain/event"
	"github.com/tomasbot/matchday/internal/domain/video"
)

// Coercion turns captured substrings into typed field values. A coercion
// failure is a per-field parse failure: the caller leaves the field unset
// and carries on with the entity.

var (
	seasonRegex  = regexp.MustCompile(`(\d{4})\s*[/-]\s*(\d{2,4})`)
	yearRegex    = regexp.MustCompile(`\d{4}`)
	numberRegex  = regexp.MustCompile(`\d+`)
	decimalRegex = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

var dateLayouts = []string{
	"02/01/2006",
	"02/01/06",
	"2006-01-02",
	"02.01.2006",
	"2 January 2006",
	"January 2, 2006",
}

func coerceInt64(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("coerce %q to int: %w", raw, err)
	}
	return value, nil
}

func coerceInt(raw string) (int, error) {
	value, err := coerceInt64(raw)
	return int(value), err
}

func coerceDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("coerce %q to date: no known layout matched", raw)
}

func coerceURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("coerce %q to url: %w", raw, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("coerce %q to url: missing scheme or host", raw)
	}
	return parsed, nil
}

func coerceSeason(raw string) (*event.Season, error) {
	if m := seasonRegex.FindStringSubmatch(raw); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		// Two-digit end years share the start year's century.
		if end < 100 {
			end += (start / 100) * 100
			if end < start {
				end += 100
			}
		}
		return event.NewSeason(start, end), nil
	}
	if m := yearRegex.FindString(raw); m != "" {
		start, _ := strconv.Atoi(m)
		return event.NewSeason(start, start), nil
	}
	return nil, fmt.Errorf("coerce %q to season: no year found", raw)
}

func coerceResolution(raw string) (video.Resolution, error) {
	resolution, ok := video.ParseResolution(raw)
	if !ok {
		return video.ResolutionUnknown, fmt.Errorf("coerce %q to resolution: unrecognized", raw)
	}
	return resolution, nil
}

func coercePart(raw string) (video.PartIdentifier, error) {
	part, ok := video.ParsePartIdentifier(strings.TrimSpace(raw))
	if !ok {
		return video.PartDefault, fmt.Errorf("coerce %q to part identifier: unrecognized", raw)
	}
	return part, nil
}

// coerceBitrate accepts plain bits-per-second or feed shorthand such as
// "4 Mbps" / "800 kbps".
func coerceBitrate(raw string) (int64, error) {
	match := decimalRegex.FindString(raw)
	if match == "" {
		return 0, fmt.Errorf("coerce %q to bitrate: no number found", raw)
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("coerce %q to bitrate: %w", raw, err)
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "mbps") || strings.Contains(lower, "mb/s"):
		value *= 1_000_000
	case strings.Contains(lower, "kbps") || strings.Contains(lower, "kb/s"):
		value *= 1_000
	}

	return int64(value), nil
}

// coerceLanguages splits a feed language list on the separators sources
// actually use.
func coerceLanguages(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == ',' || r == '&' || r == '+'
	})

	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

// coerceFileSize accepts "1.2 GB" / "700MB" style feed sizes and returns
// bytes.
func coerceFileSize(raw string) (int64, error) {
	match := decimalRegex.FindString(raw)
	if match == "" {
		return 0, fmt.Errorf("coerce %q to file size: no number found", raw)
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("coerce %q to file size: %w", raw, err)
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "gb"):
		value *= 1 << 30
	case strings.Contains(lower, "mb"):
		value *= 1 << 20
	case strings.Contains(lower, "kb"):
		value *= 1 << 10
	}

	return int64(value), nil
}
