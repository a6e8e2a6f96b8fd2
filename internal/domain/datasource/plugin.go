package datasource

import (
	"context"
	"time"
)

// Window bounds one refresh cycle; zero values mean unbounded.
type Window struct {
	From time.Time
	To   time.Time
}

// Snapshot is a timestamped batch of raw text blocks fetched from one
// plugin invocation, one block per syndicated post. Payload encoding and
// block segmentation are the plugin's responsibility; the parsing
// pipeline never learns how blocks were fetched.
type Snapshot struct {
	FetchedAt time.Time
	Blocks    []string
}

// Plugin fetches raw entity text for the data sources configured against
// it. Implementations live at the system boundary (HTTP feeds, forums);
// enable/disable state is managed by the plugin service, not here.
type Plugin interface {
	ID() string
	Title() string
	Fetch(ctx context.Context, src DataSource, window Window) (Snapshot, error)
	// ValidateSource rejects configuration the plugin cannot serve.
	ValidateSource(src DataSource) error
}
