package contact

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubSender struct {
	status  int
	err     error
	calls   atomic.Int32
	got     Fields
	release chan struct{}
	entered chan struct{}
}

func (s *stubSender) Send(_ context.Context, f Fields) (int, error) {
	s.calls.Add(1)
	s.got = f
	if s.entered != nil {
		close(s.entered)
	}
	if s.release != nil {
		<-s.release
	}
	return s.status, s.err
}

type event struct {
	kind string
	id   string
	msg  string
	d    time.Duration
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []event
}

func (n *recordingNotifier) Loading(msg string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event{kind: "loading", id: "t1", msg: msg})
	return "t1"
}

func (n *recordingNotifier) Success(id, msg string, d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event{kind: "success", id: id, msg: msg, d: d})
}

func (n *recordingNotifier) Error(id, msg string, d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event{kind: "error", id: id, msg: msg, d: d})
}

func (n *recordingNotifier) count(kind string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e.kind == kind {
			c++
		}
	}
	return c
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func fill(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.Change("name", "A"))
	require.NoError(t, c.Change("email", "b@c.com"))
	require.NoError(t, c.Change("message", "hi"))
}

func TestController_ValidationTracksEveryEdit(t *testing.T) {
	c := NewController(&stubSender{}, &recordingNotifier{})

	edits := []struct {
		field, value string
	}{
		{"name", "A"}, {"email", "x"}, {"message", "m"},
		{"email", ""}, {"email", "y"}, {"name", ""},
		{"message", ""}, {"name", "B"}, {"message", "again"},
	}
	for _, e := range edits {
		require.NoError(t, c.Change(e.field, e.value))
		f := c.Fields()
		want := f.Name != "" && f.Email != "" && f.Message != ""
		require.Equal(t, want, c.Validated(), "after %s=%q", e.field, e.value)
		require.Equal(t, want, c.CanSubmit())
	}
}

func TestController_UnknownField(t *testing.T) {
	c := NewController(&stubSender{}, &recordingNotifier{})
	err := c.Change("phone", "123")
	require.ErrorIs(t, err, ErrUnknownField)
	require.Equal(t, Fields{}, c.Fields())
}

func TestController_SubmitIncompleteMakesNoCall(t *testing.T) {
	s := &stubSender{status: http.StatusCreated}
	n := &recordingNotifier{}
	c := NewController(s, n)
	require.NoError(t, c.Change("name", "A"))

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrNotReady)
	require.Zero(t, s.calls.Load())
	require.Empty(t, n.events)
}

func TestController_SubmitSuccessClearsFields(t *testing.T) {
	s := &stubSender{status: http.StatusCreated}
	n := &recordingNotifier{}
	c := NewController(s, n, WithLogger(quietLogger()))
	fill(t, c)

	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, Delivered, out)
	require.Equal(t, Fields{Name: "A", Email: "b@c.com", Message: "hi"}, s.got)

	require.Equal(t, Fields{}, c.Fields())
	require.False(t, c.Validated())
	require.False(t, c.Submitting())
	require.False(t, c.CanSubmit())

	require.Equal(t, []event{
		{kind: "loading", id: "t1", msg: MsgSending},
		{kind: "success", id: "t1", msg: MsgDelivered, d: 3 * time.Second},
	}, n.events)
}

func TestController_SubmitFailureKeepsFields(t *testing.T) {
	cases := []struct {
		name   string
		sender *stubSender
	}{
		{"network error", &stubSender{err: errors.New("connection refused")}},
		{"server error", &stubSender{status: http.StatusInternalServerError}},
		{"ok but not created", &stubSender{status: http.StatusOK}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := &recordingNotifier{}
			c := NewController(tc.sender, n, WithLogger(quietLogger()))
			fill(t, c)

			out, err := c.Submit(context.Background())
			require.NoError(t, err)
			require.Equal(t, Failed, out)
			require.Equal(t, Fields{Name: "A", Email: "b@c.com", Message: "hi"}, c.Fields())
			require.True(t, c.CanSubmit())
			require.Equal(t, 1, n.count("error"))
			require.Zero(t, n.count("success"))
			require.Equal(t, event{kind: "error", id: "t1", msg: MsgFailed, d: ToastDuration}, n.events[1])
		})
	}
}

func TestController_DoubleSubmitSendsOnce(t *testing.T) {
	s := &stubSender{
		status:  http.StatusCreated,
		release: make(chan struct{}),
		entered: make(chan struct{}),
	}
	n := &recordingNotifier{}
	c := NewController(s, n, WithLogger(quietLogger()))
	fill(t, c)

	done := make(chan Outcome, 1)
	go func() {
		out, _ := c.Submit(context.Background())
		done <- out
	}()
	<-s.entered

	require.True(t, c.Submitting())
	require.False(t, c.CanSubmit())
	for i := 0; i < 5; i++ {
		_, err := c.Submit(context.Background())
		require.ErrorIs(t, err, ErrNotReady)
	}

	close(s.release)
	require.Equal(t, Delivered, <-done)
	require.EqualValues(t, 1, s.calls.Load())
	require.Equal(t, 1, n.count("loading"))
	require.Equal(t, 1, n.count("success"))
	require.False(t, c.Submitting())
}

func TestController_RetryAfterFailure(t *testing.T) {
	s := &stubSender{err: errors.New("offline")}
	c := NewController(s, &recordingNotifier{}, WithLogger(quietLogger()))
	fill(t, c)

	out, _ := c.Submit(context.Background())
	require.Equal(t, Failed, out)

	s.err = nil
	s.status = http.StatusCreated
	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, Delivered, out)
	require.EqualValues(t, 2, s.calls.Load())
}
