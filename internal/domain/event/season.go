package event

import "fmt"

// Season is the competition year span an event belongs to, e.g. 2023/2024.
type Season struct {
	StartYear int
	EndYear   int
}

func NewSeason(startYear, endYear int) *Season {
	return &Season{StartYear: startYear, EndYear: endYear}
}

func (s *Season) String() string {
	if s == nil {
		return ""
	}
	if s.EndYear == 0 || s.EndYear == s.StartYear {
		return fmt.Sprintf("%d", s.StartYear)
	}
	return fmt.Sprintf("%d/%d", s.StartYear, s.EndYear)
}
