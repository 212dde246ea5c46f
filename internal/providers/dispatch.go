package providers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/emandor/clt/internal/telemetry"
)

// Query is one question addressed to one provider. Mode only matters for
// InteractiveAssistant.
type Query struct {
	Provider ID
	Question string
	Mode     string
}

type binding struct {
	provider  Provider
	transport Transport
}

// Dispatcher routes a query through the builder, transport and parser bound to
// its provider. It keeps no state between calls.
type Dispatcher struct {
	bindings map[ID]binding
	// DryRun builds the request but never sends it.
	DryRun bool
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{bindings: map[ID]binding{}}
}

// Register binds a provider to the transport that carries its requests,
// replacing any earlier binding for the same ID.
func (d *Dispatcher) Register(p Provider, t Transport) {
	d.bindings[p.Name()] = binding{provider: p, transport: t}
}

func (d *Dispatcher) Dispatch(ctx context.Context, q Query, creds Credentials) Result {
	res := Result{Provider: q.Provider, DispatchID: uuid.New().String()}
	log := telemetry.L().With().
		Str("dispatch_id", res.DispatchID).
		Str("provider", string(q.Provider)).
		Logger()

	b, ok := d.bindings[q.Provider]
	if !ok {
		log.Error().Msg("provider_not_registered")
		res.Failure = fail(UnknownProvider, "unknown provider "+string(q.Provider))
		return res
	}

	req := b.provider.Build(q.Question, creds, q.Mode)
	log.Debug().Int("question_len", len(q.Question)).Int("body_len", len(req.Body)).Msg("dispatch_start")

	if d.DryRun {
		log.Info().Bool("command", req.IsCommand()).Msg("dry_run_enabled")
		res.Answer = "simulated answer"
		return res
	}

	t0 := time.Now()
	raw, err := b.transport.Invoke(ctx, req)
	res.Latency = time.Since(t0)
	if err != nil {
		res.Failure = asFailure(err)
		log.Error().Str("kind", string(res.Failure.Kind)).Msg("transport_failed")
		return res
	}

	text, err := b.provider.Parse(raw)
	if err != nil {
		res.Failure = asFailure(err)
		log.Warn().
			Str("kind", string(res.Failure.Kind)).
			Int("status", raw.Status).
			Msg("parse_failed")
		return res
	}

	res.Answer = text
	log.Info().
		Int("len", len(text)).
		Int("latency_ms", int(res.Latency/time.Millisecond)).
		Msg("dispatch_done")
	return res
}

// Options configures the default provider set.
type Options struct {
	GeminiURL       string
	GeminiTextPath  string
	OpenAIURL       string
	OpenAIModel     string
	OpenAIMaxTokens int
	CopilotBin      string
	HTTP            *HTTPTransport
	Command         *CommandTransport
}

// Default wires the three known providers to their transports.
func Default(o Options) *Dispatcher {
	h := o.HTTP
	if h == nil {
		h = &HTTPTransport{}
	}
	cmd := o.Command
	if cmd == nil {
		cmd = &CommandTransport{}
	}

	d := NewDispatcher()
	d.Register(&Gemini{URL: o.GeminiURL, TextPath: o.GeminiTextPath}, h)
	d.Register(&OpenAI{URL: o.OpenAIURL, Model: o.OpenAIModel, MaxTokens: o.OpenAIMaxTokens}, h)
	d.Register(&Copilot{Bin: o.CopilotBin}, cmd)
	return d
}
