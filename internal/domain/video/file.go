package video

import (
	"fmt"
	"net/url"
	"time"
)

// defaultDuration is assumed for files whose stream metadata has not been
// probed yet (roughly one half plus stoppage).
const defaultDuration = 3012.541956

// StreamMetadata is the technical probe result for a resolved file.
type StreamMetadata struct {
	Duration   float64
	VideoCodec string
	AudioCodec string
}

// File is one playable segment of an event within a file source. The
// external URL points at the remote file server; the internal URL is
// filled in once a file-server plugin has resolved a direct link.
// Refresh mutates the file in place and stamps LastRefreshed.
type File struct {
	ID            string
	Part          PartIdentifier
	ExternalURL   *url.URL
	InternalURL   *url.URL
	Metadata      *StreamMetadata
	LastRefreshed time.Time
}

func NewFile(part PartIdentifier, externalURL *url.URL) *File {
	return &File{
		ID:          FileID(externalURL),
		Part:        part,
		ExternalURL: externalURL,
	}
}

// Duration returns the probed duration, or a sane default when the file
// has not been refreshed yet.
func (f *File) Duration() float64 {
	if f != nil && f.Metadata != nil && f.Metadata.Duration > 0 {
		return f.Metadata.Duration
	}
	return defaultDuration
}

func (f *File) Resolved() bool {
	return f != nil && f.InternalURL != nil
}

func (f *File) Validate() error {
	if f == nil {
		return fmt.Errorf("video file is required")
	}
	if f.ExternalURL == nil {
		return fmt.Errorf("video file external url is required")
	}

	return nil
}

func (f *File) String() string {
	if f == nil {
		return "<nil>"
	}
	external := ""
	if f.ExternalURL != nil {
		external = f.ExternalURL.String()
	}
	return fmt.Sprintf("%s - %s", f.Part, external)
}
