package controller

import "servicemap/internal/models"

// State is the loaded dataset. It is never mutated after construction;
// loading a new dataset replaces the whole State.
type State struct {
	services []models.ServiceRecord
	origin   string
	fallback bool
}

// NewState copies services into a new State.
func NewState(services []models.ServiceRecord, origin string, fallback bool) State {
	s := make([]models.ServiceRecord, len(services))
	copy(s, services)
	return State{services: s, origin: origin, fallback: fallback}
}

// Services returns a copy of the dataset.
func (s State) Services() []models.ServiceRecord {
	out := make([]models.ServiceRecord, len(s.services))
	copy(out, s.services)
	return out
}

func (s State) Len() int       { return len(s.services) }
func (s State) Origin() string { return s.origin }
func (s State) Fallback() bool { return s.fallback }

// Filter returns the records of type filter, or every record for "all".
func (s State) Filter(filter string) []models.ServiceRecord {
	if filter == models.FilterAll {
		return s.Services()
	}
	out := []models.ServiceRecord{}
	for _, rec := range s.services {
		if rec.Type == filter {
			out = append(out, rec)
		}
	}
	return out
}

// Search returns the records whose name or address contains term, ignoring case.
// The empty term matches everything; whitespace is part of the term.
func (s State) Search(term string) []models.ServiceRecord {
	if term == "" {
		return s.Services()
	}
	out := []models.ServiceRecord{}
	for _, rec := range s.services {
		if rec.Matches(term) {
			out = append(out, rec)
		}
	}
	return out
}
