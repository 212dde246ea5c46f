package providers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os/exec"
	"time"

	"github.com/emandor/clt/internal/telemetry"
)

// HTTPTransport sends one request and never retries. Any HTTP response counts
// as a transport success; its body is left for the parser to judge.
type HTTPTransport struct {
	Client *http.Client
}

func (t *HTTPTransport) Invoke(ctx context.Context, r Request) (RawResponse, error) {
	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	method := r.Method
	if method == "" {
		method = http.MethodPost
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL, bytes.NewReader(r.Body))
	if err != nil {
		return RawResponse{}, fail(TransportError, err.Error())
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	log := telemetry.L().With().Str("transport", "http").Str("host", req.URL.Host).Logger()

	t0 := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		// url.Error embeds the full URL, which may carry a key in the query.
		detail := err.Error()
		if uerr := errors.Unwrap(err); uerr != nil {
			detail = uerr.Error()
		}
		log.Error().Str("err", detail).Msg("http_request_failed")
		return RawResponse{}, fail(TransportError, detail)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Msg("http_read_failed")
		return RawResponse{}, fail(TransportError, err.Error())
	}
	log.Debug().
		Int("status_code", resp.StatusCode).
		Int("body_len", len(raw)).
		Int("latency_ms", int(time.Since(t0)/time.Millisecond)).
		Msg("http_response")

	return RawResponse{Body: raw, Status: resp.StatusCode}, nil
}

// CommandTransport runs an external program once and captures its streams.
type CommandTransport struct {
	// Dir is the working directory; empty means the current one.
	Dir string
}

func (t *CommandTransport) Invoke(ctx context.Context, r Request) (RawResponse, error) {
	cmd := exec.CommandContext(ctx, r.Command, r.Args...)
	cmd.Dir = t.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log := telemetry.L().With().Str("transport", "command").Str("command", r.Command).Logger()

	t0 := time.Now()
	err := cmd.Run()
	raw := RawResponse{Body: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		log.Debug().
			Int("stdout_len", stdout.Len()).
			Int("latency_ms", int(time.Since(t0)/time.Millisecond)).
			Msg("command_done")
		return raw, nil
	case errors.As(err, &exitErr):
		raw.Status = exitErr.ExitCode()
		log.Error().Int("exit_code", raw.Status).Int("stderr_len", stderr.Len()).Msg("command_failed")
		return raw, fail(TransportError, stderr.String())
	default:
		raw.Status = -1
		log.Error().Err(err).Msg("command_start_failed")
		return raw, fail(TransportError, err.Error())
	}
}
