// Package source fetches the services dataset from wherever it is published.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"servicemap/internal/models"
)

// ErrEmptyDocument is returned when a source yields no JSON at all.
var ErrEmptyDocument = errors.New("empty services document")

// Source loads the full dataset in one go.
type Source interface {
	// Name identifies the source in logs, e.g. "http:https://host/services.json".
	Name() string
	// Fetch returns every record. It must honor ctx for cancellation.
	Fetch(ctx context.Context) ([]models.ServiceRecord, error)
}

// Decode reads a JSON array of service records. Anything other than an array
// (including null) is rejected.
func Decode(r io.Reader) ([]models.ServiceRecord, error) {
	dec := json.NewDecoder(r)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("failed to decode services JSON: %w", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
		return nil, fmt.Errorf("services document must be a JSON array")
	}

	var records []models.ServiceRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode services JSON: %w", err)
	}
	return records, nil
}

// Chain tries each source in order and returns the first success.
type Chain []Source

func (c Chain) Name() string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name()
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

func (c Chain) Fetch(ctx context.Context) ([]models.ServiceRecord, error) {
	if len(c) == 0 {
		return nil, errors.New("no sources configured")
	}
	var errs []error
	for _, s := range c {
		records, err := s.Fetch(ctx)
		if err == nil {
			return records, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	return nil, errors.Join(errs...)
}
