package video

import "regexp"

// PartIdentifier tags which segment of an event a file covers. The numeric
// value is the fixed playback order; PartDefault marks files the source did
// not label and sorts outside the playback sequence.
type PartIdentifier int

const (
	PartDefault        PartIdentifier = -1
	PartPreMatch       PartIdentifier = 0
	PartFirstHalf      PartIdentifier = 1
	PartSecondHalf     PartIdentifier = 2
	PartExtraTime      PartIdentifier = 3
	PartTrophyCeremony PartIdentifier = 4
	PartPostMatch      PartIdentifier = 5
)

var partLabels = map[PartIdentifier]string{
	PartDefault:        "",
	PartPreMatch:       "Pre-Match",
	PartFirstHalf:      "1st Half",
	PartSecondHalf:     "2nd Half",
	PartExtraTime:      "Extra-Time/Penalties",
	PartTrophyCeremony: "Trophy Ceremony",
	PartPostMatch:      "Post-Match",
}

var partPatterns = []struct {
	part    PartIdentifier
	pattern *regexp.Regexp
}{
	{PartPreMatch, regexp.MustCompile(`(?i)^pre[- ]match$`)},
	{PartFirstHalf, regexp.MustCompile(`(?i)1 ?st half`)},
	{PartSecondHalf, regexp.MustCompile(`(?i)2 ?nd half`)},
	{PartExtraTime, regexp.MustCompile(`(?i)^extra[- ]time`)},
	{PartTrophyCeremony, regexp.MustCompile(`(?i)^trophy`)},
	{PartPostMatch, regexp.MustCompile(`(?i)^post[- ]match$`)},
}

func (p PartIdentifier) String() string {
	return partLabels[p]
}

// ParsePartIdentifier matches free text from a source feed against the
// known part labels. Unrecognized text maps to PartDefault.
func ParsePartIdentifier(s string) (PartIdentifier, bool) {
	for _, candidate := range partPatterns {
		if candidate.pattern.MatchString(s) {
			return candidate.part, true
		}
	}

	return PartDefault, false
}
