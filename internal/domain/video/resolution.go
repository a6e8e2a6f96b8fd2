package video

import "regexp"

// Resolution is the video quality of a file source. Higher values rank
// higher for best-source selection; the zero value means the source text
// carried no recognizable resolution and ranks lowest.
type Resolution int

const (
	ResolutionUnknown Resolution = iota
	ResolutionSD
	Resolution576p
	Resolution720p
	Resolution1080i
	Resolution1080p
	Resolution4K
)

type resolutionSpec struct {
	label   string
	width   int
	height  int
	pattern *regexp.Regexp
}

var resolutionSpecs = map[Resolution]resolutionSpec{
	Resolution4K:    {"4K", 3840, 2160, regexp.MustCompile(`.*4K.*`)},
	Resolution1080p: {"1080p", 1920, 1080, regexp.MustCompile(`.*1080p.*`)},
	Resolution1080i: {"1080i", 1920, 1080, regexp.MustCompile(`.*1080i.*`)},
	Resolution720p:  {"720p", 1280, 720, regexp.MustCompile(`.*720p.*`)},
	Resolution576p:  {"576p", 768, 576, regexp.MustCompile(`.*576p.*`)},
	ResolutionSD:    {"SD", 640, 480, regexp.MustCompile(`.*SD.*`)},
}

// rankedResolutions is ordered best-first so parsing prefers the most
// specific label ("1080p" before "SD").
var rankedResolutions = []Resolution{
	Resolution4K,
	Resolution1080p,
	Resolution1080i,
	Resolution720p,
	Resolution576p,
	ResolutionSD,
}

func (r Resolution) String() string {
	if spec, ok := resolutionSpecs[r]; ok {
		return spec.label
	}
	return "unknown"
}

func (r Resolution) Width() int  { return resolutionSpecs[r].width }
func (r Resolution) Height() int { return resolutionSpecs[r].height }

// ParseResolution maps free source text onto an enumerated resolution.
func ParseResolution(s string) (Resolution, bool) {
	for _, candidate := range rankedResolutions {
		if resolutionSpecs[candidate].pattern.MatchString(s) {
			return candidate, true
		}
	}

	return ResolutionUnknown, false
}
