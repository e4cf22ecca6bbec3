// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fallback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callerErr struct{}

func (callerErr) Error() string    { return "bad input" }
func (callerErr) Propagates() bool { return true }

type recordingNotifier struct {
	notices []Notice
}

func (r *recordingNotifier) Notify(ctx context.Context, n Notice) {
	r.notices = append(r.notices, n)
}

func failing[T any](err error) func(context.Context) (T, error) {
	return func(context.Context) (T, error) {
		var zero T
		return zero, err
	}
}

// ── Classify ─────────────────────────────────────────────────────────────────

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Class
	}{
		{"nil", nil, ClassNone},
		{"caller", fmt.Errorf("wrap: %w", callerErr{}), ClassCaller},
		{"unavailable", fmt.Errorf("get: %w", store.ErrUnavailable), ClassNetwork},
		{"deadline", context.DeadlineExceeded, ClassNetwork},
		{"cancelled", context.Canceled, ClassNetwork},
		{"net error", &net.OpError{Op: "dial", Err: errors.New("boom")}, ClassNetwork},
		{"message offline", errors.New("client is Offline"), ClassNetwork},
		{"message refused", errors.New("dial tcp: connection refused"), ClassNetwork},
		{"auth", fmt.Errorf("x: %w", store.ErrUnauthenticated), ClassAuth},
		{"permission", fmt.Errorf("x: %w", store.ErrPermissionDenied), ClassPermission},
		{"not found is unknown", store.ErrNotFound, ClassUnknown},
		{"plain", errors.New("disk full"), ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "network", ClassNetwork.String())
	assert.Equal(t, "unknown", Class(42).String())
}

// ── Do ───────────────────────────────────────────────────────────────────────

func TestDo_Success(t *testing.T) {
	n := &recordingNotifier{}
	got, err := Do(context.Background(), Policy{Logger: logger.Nop(), Notifier: n}, "op",
		func(context.Context) (int, error) { return 7, nil }, -1)

	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Empty(t, n.notices)
}

func TestDo_CallerErrorPropagates(t *testing.T) {
	n := &recordingNotifier{}
	got, err := Do(context.Background(), Policy{Logger: logger.Nop(), Notifier: n}, "op", failing[int](callerErr{}), -1)

	assert.ErrorAs(t, err, &callerErr{})
	assert.Equal(t, -1, got)
	assert.Empty(t, n.notices)
}

func TestDo_NetworkIsSilent(t *testing.T) {
	n := &recordingNotifier{}
	got, err := Do(context.Background(), Policy{Logger: logger.Nop(), Notifier: n}, "op", failing[[]string](store.ErrUnavailable), []string{})

	require.NoError(t, err)
	assert.Equal(t, []string{}, got)
	assert.Empty(t, n.notices)
}

func TestDo_NoticeClasses(t *testing.T) {
	tests := []struct {
		err  error
		kind NoticeKind
	}{
		{store.ErrUnauthenticated, NoticeSignIn},
		{store.ErrPermissionDenied, NoticeAccessDenied},
		{errors.New("weird"), NoticeFailure},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			n := &recordingNotifier{}
			got, err := Do(context.Background(), Policy{Logger: logger.Nop(), Notifier: n}, "reports.list", failing[string](tt.err), "fallback")

			require.NoError(t, err)
			assert.Equal(t, "fallback", got)
			require.Len(t, n.notices, 1)
			assert.Equal(t, tt.kind, n.notices[0].Kind)
			assert.Equal(t, "reports.list", n.notices[0].Op)
			assert.NotEmpty(t, n.notices[0].Message)
		})
	}
}

func TestDo_Silent(t *testing.T) {
	n := &recordingNotifier{}
	_, err := Do(context.Background(), Policy{Logger: logger.Nop(), Notifier: n}, "op", failing[int](store.ErrPermissionDenied), 0, Silent())

	require.NoError(t, err)
	assert.Empty(t, n.notices)
}

func TestDo_NilNotifierAndLogger(t *testing.T) {
	got, err := Do(context.Background(), Policy{}, "op", failing[int](errors.New("weird")), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestRun(t *testing.T) {
	p := Policy{Logger: logger.Nop()}

	ok, err := Run(context.Background(), p, "op", func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Run(context.Background(), p, "op", func(context.Context) error { return store.ErrUnavailable })
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Run(context.Background(), p, "op", func(context.Context) error { return callerErr{} })
	assert.Error(t, err)
	assert.False(t, ok)
}

// ── notifiers ────────────────────────────────────────────────────────────────

func TestContextNotifier_Collects(t *testing.T) {
	c := &Collector{}
	ctx := WithCollector(context.Background(), c)

	ContextNotifier{}.Notify(ctx, NewNotice(NoticeSignIn, "a"))
	ContextNotifier{}.Notify(ctx, NewNotice(NoticeFailure, "b"))

	notices := c.Notices()
	require.Len(t, notices, 2)
	assert.Equal(t, "please sign in again", notices[0].Message)
	assert.Equal(t, "b", notices[1].Op)
}

func TestContextNotifier_FallbackOutsideRequest(t *testing.T) {
	rec := &recordingNotifier{}
	ContextNotifier{Fallback: rec}.Notify(context.Background(), NewNotice(NoticeAccessDenied, "x"))
	require.Len(t, rec.notices, 1)

	ContextNotifier{}.Notify(context.Background(), NewNotice(NoticeAccessDenied, "x"))
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	w := &WriterNotifier{W: &buf}
	w.Notify(context.Background(), NewNotice(NoticeAccessDenied, "users.ban"))

	assert.Equal(t, "notice: access denied (users.ban)\n", buf.String())
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	LogNotifier{Logger: logger.NewConsoleLogger("test", &buf)}.Notify(context.Background(), NewNotice(NoticeSignIn, "op"))
	assert.Contains(t, buf.String(), "please sign in again")
}
