package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/emandor/clt/internal/providers"
	"github.com/emandor/clt/internal/telemetry"
)

var (
	ErrEmptyQuestion = errors.New("question is required")
	ErrModeRequired  = errors.New("copilot mode is required (e.g. suggest or explain)")
)

type Dispatcher interface {
	Dispatch(ctx context.Context, q providers.Query, creds providers.Credentials) providers.Result
}

// Runner prepares queries the way each provider expects them and prints the
// outcome.
type Runner struct {
	Dispatcher Dispatcher
	Creds      providers.Credentials
	Out        io.Writer
}

// Normalize trims the question and, for the assistant, lower-cases both the
// question and the mode.
func Normalize(q providers.Query) providers.Query {
	q.Question = strings.TrimSpace(q.Question)
	q.Mode = strings.TrimSpace(q.Mode)
	if q.Provider == providers.InteractiveAssistant {
		q.Question = strings.ToLower(q.Question)
		q.Mode = strings.ToLower(q.Mode)
	} else {
		q.Mode = ""
	}
	return q
}

func (r *Runner) Ask(ctx context.Context, q providers.Query) (providers.Result, error) {
	q = Normalize(q)
	if q.Question == "" {
		return providers.Result{}, ErrEmptyQuestion
	}
	if q.Provider == providers.InteractiveAssistant && q.Mode == "" {
		return providers.Result{}, ErrModeRequired
	}
	res := r.Dispatcher.Dispatch(ctx, q, r.Creds)
	fmt.Fprintln(r.Out, res.String())
	return res, nil
}

// AskAll sends the same question to every provider in parallel, each as an
// independent dispatch, and prints the results in menu order.
func (r *Runner) AskAll(ctx context.Context, question, mode string) ([]providers.Result, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}
	if strings.TrimSpace(mode) == "" {
		return nil, ErrModeRequired
	}

	results := make([]providers.Result, len(providers.All))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(providers.All))
	for i, id := range providers.All {
		g.Go(func() error {
			defer func() {
				if rec := recover(); rec != nil {
					log := telemetry.L()
					log.Error().Str("provider", string(id)).Interface("panic", rec).Msg("provider_panic")
					results[i] = providers.Result{
						Provider: id,
						Failure:  &providers.Failure{Kind: providers.TransportError, Detail: fmt.Sprint(rec)},
					}
				}
			}()
			q := Normalize(providers.Query{Provider: id, Question: question, Mode: mode})
			results[i] = r.Dispatcher.Dispatch(gctx, q, r.Creds)
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range results {
		fmt.Fprintf(r.Out, "%s: %s\n", Label(res.Provider), res.String())
	}
	return results, nil
}
