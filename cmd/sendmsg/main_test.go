package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/contact"
)

type stubSender struct {
	status int
	err    error
	calls  int
	got    contact.Fields
}

func (s *stubSender) Send(_ context.Context, f contact.Fields) (int, error) {
	s.calls++
	s.got = f
	return s.status, s.err
}

func init() { color.NoColor = true }

func TestRun_Delivered(t *testing.T) {
	var out bytes.Buffer
	s := &stubSender{status: http.StatusCreated}

	code := run(context.Background(), []string{"-name", "A", "-email", "b@c.com", "-message", "hi"}, &out, s)
	require.Zero(t, code)
	require.Equal(t, 1, s.calls)
	require.Equal(t, contact.Fields{Name: "A", Email: "b@c.com", Message: "hi"}, s.got)
	require.Contains(t, out.String(), contact.MsgSending)
	require.Contains(t, out.String(), contact.MsgDelivered)
}

func TestRun_Failed(t *testing.T) {
	var out bytes.Buffer
	s := &stubSender{err: errors.New("offline")}

	code := run(context.Background(), []string{"-name", "A", "-email", "b@c.com", "-message", "hi"}, &out, s)
	require.Equal(t, 1, code)
	require.Contains(t, out.String(), contact.MsgFailed)
}

func TestRun_Incomplete(t *testing.T) {
	var out bytes.Buffer
	s := &stubSender{status: http.StatusCreated}

	code := run(context.Background(), []string{"-name", "A"}, &out, s)
	require.Equal(t, 1, code)
	require.Zero(t, s.calls)
}
