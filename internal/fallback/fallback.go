// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fallback

import (
	"context"

	"github.com/MKhiriev/report-desk/internal/logger"
)

// Policy carries the side channels used when a failure is absorbed.
type Policy struct {
	Logger   *logger.Logger
	Notifier Notifier
}

type options struct {
	silent bool
}

// Option tunes a single Do call.
type Option func(*options)

// Silent suppresses the notice of the call. Failures are still logged.
func Silent() Option {
	return func(o *options) { o.silent = true }
}

// Do runs fn. A caller-class error is returned together with fallback; any
// other failure is logged, reported through at most one notice and replaced
// by (fallback, nil).
func Do[T any](ctx context.Context, p Policy, op string, fn func(context.Context) (T, error), fallback T, opts ...Option) (T, error) {
	result, err := fn(ctx)
	if err == nil {
		return result, nil
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := p.Logger
	if log == nil {
		log = logger.FromContext(ctx)
	}

	class := Classify(err)
	var kind NoticeKind
	switch class {
	case ClassCaller:
		return fallback, err
	case ClassNetwork:
		log.Warn().Err(err).Str("op", op).Msg("remote store unreachable, using fallback")
		return fallback, nil
	case ClassAuth:
		log.Warn().Err(err).Str("op", op).Msg("remote store rejected credentials")
		kind = NoticeSignIn
	case ClassPermission:
		log.Warn().Err(err).Str("op", op).Msg("remote store denied access")
		kind = NoticeAccessDenied
	default:
		log.Error().Err(err).Str("op", op).Msg("unexpected remote store error")
		kind = NoticeFailure
	}

	if !o.silent && p.Notifier != nil {
		p.Notifier.Notify(ctx, NewNotice(kind, op))
	}
	return fallback, nil
}

// Run is Do for operations without a result. It reports true when fn
// succeeded and false when a failure was absorbed.
func Run(ctx context.Context, p Policy, op string, fn func(context.Context) error, opts ...Option) (bool, error) {
	return Do(ctx, p, op, func(ctx context.Context) (bool, error) {
		if err := fn(ctx); err != nil {
			return false, err
		}
		return true, nil
	}, false, opts...)
}
