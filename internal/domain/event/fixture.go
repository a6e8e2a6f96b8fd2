package event

import (
	"fmt"
	"strings"
)

// Fixture is the position of an event within a season: a round number, a
// named stage ("Semi-Final"), or both.
type Fixture struct {
	Title  string
	Number int
}

func NewFixture(title string, number int) *Fixture {
	return &Fixture{Title: strings.TrimSpace(title), Number: number}
}

func (f *Fixture) Key() string {
	if f == nil {
		return ""
	}
	if f.Number > 0 {
		return fmt.Sprintf("%s-%d", f.Title, f.Number)
	}
	return f.Title
}

func (f *Fixture) String() string {
	if f == nil {
		return ""
	}
	if f.Title != "" && f.Number > 0 {
		return fmt.Sprintf("%s %d", f.Title, f.Number)
	}
	if f.Number > 0 {
		return fmt.Sprintf("Matchday %d", f.Number)
	}
	return f.Title
}
