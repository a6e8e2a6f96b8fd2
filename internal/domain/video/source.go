package video

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// FileSource is one quality variant of a playable event: a channel rip at
// a given resolution/bitrate/language carrying one file per event part.
type FileSource struct {
	ID                  string
	Channel             string
	Source              string
	Resolution          Resolution
	Languages           []string
	Bitrate             int64
	AudioChannels       int
	FileSize            int64
	ApproximateDuration string
	Files               []*File
}

// JoinedLanguages flattens the language list for comparison and display.
func (s *FileSource) JoinedLanguages() string {
	if s == nil {
		return ""
	}
	return strings.Join(s.Languages, " ")
}

func (s *FileSource) Validate() error {
	if s == nil {
		return fmt.Errorf("file source is required")
	}
	if len(s.Files) == 0 {
		return fmt.Errorf("file source has no files")
	}
	for _, f := range s.Files {
		if err := f.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func (s *FileSource) String() string {
	if s == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (%s) - %s, %d files",
		s.Channel, s.Resolution, s.JoinedLanguages(), len(s.Files))
}

// FileID derives a stable file identity from the external URL, so repeat
// parses of the same source text upsert instead of duplicating.
func FileID(externalURL *url.URL) string {
	if externalURL == nil {
		return ""
	}
	sum := md5.Sum([]byte(externalURL.String()))
	return hex.EncodeToString(sum[:])
}
