// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/store"
)

// StoreProbe reads one document from the document store on every tick and
// reports reachability changes to OnChange. A missing document counts as
// reachable.
type StoreProbe struct {
	Documents  store.DocumentStore
	Collection string
	ID         string
	Interval   time.Duration
	Timeout    time.Duration

	// OnChange is called with the first result and then on every change.
	OnChange func(reachable bool)

	Logger *logger.Logger
}

func (p *StoreProbe) Run(ctx context.Context) error {
	if p.Interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	var last *bool
	for {
		reachable := p.probe(ctx)
		if last == nil || *last != reachable {
			p.Logger.Info().Bool("reachable", reachable).Msg("document store reachability changed")
			if p.OnChange != nil {
				p.OnChange(reachable)
			}
			last = &reachable
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (p *StoreProbe) probe(ctx context.Context) bool {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	_, err := p.Documents.Get(ctx, p.Collection, p.ID)
	if err == nil || errors.Is(err, store.ErrNotFound) {
		return true
	}

	p.Logger.Debug().Err(err).Str("func", "*StoreProbe.probe").Msg("document store probe failed")
	return false
}
