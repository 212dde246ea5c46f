package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/emandor/clt/internal/cli"
	"github.com/emandor/clt/internal/config"
	"github.com/emandor/clt/internal/credentials"
	"github.com/emandor/clt/internal/providers"
	"github.com/emandor/clt/internal/telemetry"
)

// errDispatchFailed means the failure was already printed as a result.
var errDispatchFailed = errors.New("dispatch failed")

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "clt",
		Short: "Ask Gemini, ChatGPT or GitHub Copilot a question",
		Long: "clt sends one question to one provider and prints the answer. " +
			"Without --question it shows the interactive menu.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAsk(cmd, v)
		},
	}

	f := cmd.Flags()
	f.StringP("provider", "p", "", "Provider: 1|gemini, 2|chatgpt, 3|copilot (default chatgpt)")
	f.StringP("question", "q", "", "Question to ask; prompts when empty")
	f.String("mode", "", "Copilot mode, e.g. suggest or explain; prompts when empty")
	f.Bool("all", false, "Ask every provider in parallel")
	f.Bool("dry-run", false, "Build requests without sending them")
	f.String("keys", "", "API key file, line 1 Gemini, line 2 OpenAI (default $CLT_KEYS_FILE or "+config.DefaultKeysFile+")")

	_ = v.BindPFlag("provider", f.Lookup("provider"))
	_ = v.BindPFlag("question", f.Lookup("question"))
	_ = v.BindPFlag("mode", f.Lookup("mode"))
	_ = v.BindPFlag("all", f.Lookup("all"))
	_ = v.BindPFlag("dry_run", f.Lookup("dry-run"))

	v.SetEnvPrefix("CLT")
	v.AutomaticEnv()
	return cmd
}

func runAsk(cmd *cobra.Command, v *viper.Viper) error {
	cfg := config.Load()
	telemetry.Init(telemetry.FromEnv(config.GetEnv))

	keysFile, _ := cmd.Flags().GetString("keys")
	if keysFile == "" {
		keysFile = cfg.KeysFile
	}
	creds, err := credentials.Resolve(keysFile, cfg.GeminiKey, cfg.OpenAIKey)
	if err != nil {
		return fmt.Errorf("loading API keys: %w", err)
	}

	d := providers.Default(cfg.ProviderOptions())
	d.DryRun = cfg.DryRun || v.GetBool("dry_run")

	out := cmd.OutOrStdout()
	r := &cli.Runner{Dispatcher: d, Creds: creds, Out: out}
	p := cli.NewPrompter(cmd.InOrStdin(), out)

	question := v.GetString("question")
	mode := v.GetString("mode")
	ctx := cmd.Context()

	if v.GetBool("all") {
		if question == "" {
			if question, err = p.Question(); err != nil {
				return err
			}
		}
		if mode == "" {
			if mode, err = readMode(p); err != nil {
				return err
			}
		}
		results, err := r.AskAll(ctx, question, mode)
		if err != nil {
			return err
		}
		for _, res := range results {
			if !res.OK() {
				return errDispatchFailed
			}
		}
		return nil
	}

	raw := v.GetString("provider")
	fromMenu := question == "" && raw == ""
	if fromMenu {
		if raw, err = p.Choose(); err != nil {
			return err
		}
	}
	id, ok := cli.ResolveProvider(raw)
	if !ok && (fromMenu || raw != "") {
		fmt.Fprintln(out, "Invalid selection, defaulting to ChatGPT.")
	}

	if question == "" {
		if question, err = p.Question(); err != nil {
			return err
		}
	}
	if id == providers.InteractiveAssistant && mode == "" {
		if mode, err = readMode(p); err != nil {
			return err
		}
	}

	res, err := r.Ask(ctx, providers.Query{Provider: id, Question: question, Mode: mode})
	if err != nil {
		return err
	}
	if !res.OK() {
		return errDispatchFailed
	}
	return nil
}

func readMode(p *cli.Prompter) (string, error) {
	m, err := p.Mode()
	if err != nil {
		return "", fmt.Errorf("%w: %v", cli.ErrModeRequired, err)
	}
	if m == "" {
		return "", cli.ErrModeRequired
	}
	return m, nil
}
