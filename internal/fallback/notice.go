// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fallback

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/MKhiriev/report-desk/internal/logger"
)

// NoticeKind identifies the user-facing message of a Notice.
type NoticeKind string

const (
	NoticeSignIn       NoticeKind = "sign_in"
	NoticeAccessDenied NoticeKind = "access_denied"
	NoticeFailure      NoticeKind = "failure"
)

var noticeMessages = map[NoticeKind]string{
	NoticeSignIn:       "please sign in again",
	NoticeAccessDenied: "access denied",
	NoticeFailure:      "something went wrong, please try again later",
}

// Notice is a user-facing message about an absorbed failure.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Op      string     `json:"op"`
	Message string     `json:"message"`
}

// NewNotice builds the notice of kind for operation op.
func NewNotice(kind NoticeKind, op string) Notice {
	return Notice{Kind: kind, Op: op, Message: noticeMessages[kind]}
}

func (n Notice) String() string {
	return fmt.Sprintf("%s (%s)", n.Message, n.Op)
}

//go:generate mockgen -source=notice.go -destination=../mock/notifier_mock.go -package=mock

// Notifier delivers notices to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// LogNotifier writes notices to a logger.
type LogNotifier struct {
	Logger *logger.Logger
}

func (l LogNotifier) Notify(ctx context.Context, n Notice) {
	l.Logger.Info().Str("kind", string(n.Kind)).Str("op", n.Op).Msg(n.Message)
}

// WriterNotifier writes one line per notice to W, e.g. os.Stderr.
type WriterNotifier struct {
	mu sync.Mutex
	W  io.Writer
}

func (w *WriterNotifier) Notify(ctx context.Context, n Notice) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.W, "notice: %s\n", n)
}

// Collector accumulates the notices of one request.
type Collector struct {
	mu      sync.Mutex
	notices []Notice
}

// Notices returns a copy of the collected notices.
func (c *Collector) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notice(nil), c.notices...)
}

func (c *Collector) add(n Notice) {
	c.mu.Lock()
	c.notices = append(c.notices, n)
	c.mu.Unlock()
}

type collectorKey struct{}

// WithCollector returns a context carrying c.
func WithCollector(ctx context.Context, c *Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, c)
}

// CollectorFromContext returns the Collector carried by ctx, if any.
func CollectorFromContext(ctx context.Context) (*Collector, bool) {
	c, ok := ctx.Value(collectorKey{}).(*Collector)
	return c, ok && c != nil
}

// ContextNotifier appends notices to the Collector carried by the context.
// Notices raised outside a collecting context go to Fallback, when set.
type ContextNotifier struct {
	Fallback Notifier
}

func (c ContextNotifier) Notify(ctx context.Context, n Notice) {
	if collector, ok := CollectorFromContext(ctx); ok {
		collector.add(n)
		return
	}
	if c.Fallback != nil {
		c.Fallback.Notify(ctx, n)
	}
}
