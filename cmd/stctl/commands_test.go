package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/andresuchdata/streamtape-gateway/internal/service"
	"github.com/andresuchdata/streamtape-gateway/internal/streamtape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

type stubForwarder struct {
	endpoint string
	params   streamtape.Params
	result   string
}

func (s *stubForwarder) Forward(_ context.Context, _, endpoint string, params streamtape.Params) (json.RawMessage, error) {
	s.endpoint = endpoint
	s.params = params
	return json.RawMessage(s.result), nil
}

func run(t *testing.T, fwd *stubForwarder, args ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	a := &app{services: service.New(fwd), out: out}

	cliApp := &cli.App{Name: "stctl", Commands: commands(a)}
	require.NoError(t, cliApp.Run(append([]string{"stctl"}, args...)))
	return out.String()
}

func TestListCommand(t *testing.T) {
	fwd := &stubForwarder{result: `{"folders":[{"id":"f1","name":"movies"}],"files":[]}`}

	out := run(t, fwd, "list", "--folder", "root1")

	assert.Equal(t, "/file/listfolder", fwd.endpoint)
	assert.Equal(t, streamtape.Params{"folder": "root1"}, fwd.params)
	assert.JSONEq(t, `{"folders":[{"id":"f1","name":"movies"}],"files":[]}`, out)
}

func TestRemoteStatusCommand(t *testing.T) {
	fwd := &stubForwarder{result: `{}`}

	out := run(t, fwd, "remote", "status", "--limit", "3")

	assert.Equal(t, "/remotedl/status", fwd.endpoint)
	assert.Equal(t, streamtape.Params{"limit": 3}, fwd.params)
	assert.JSONEq(t, `{}`, out)
}

func TestUploadURLCommandHTTPOnly(t *testing.T) {
	fwd := &stubForwarder{result: `{"url":"https://up.example/ul/1","valid_until":"soon"}`}

	run(t, fwd, "upload-url", "--http-only")

	assert.Equal(t, streamtape.Params{"httponly": true}, fwd.params)
}

func TestMkdirRequiresName(t *testing.T) {
	a := &app{services: service.New(&stubForwarder{}), out: &bytes.Buffer{}}
	cliApp := &cli.App{
		Name:           "stctl",
		Commands:       commands(a),
		ExitErrHandler: func(*cli.Context, error) {},
	}

	err := cliApp.Run([]string{"stctl", "mkdir"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NAME")
}
