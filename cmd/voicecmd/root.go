package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"voicecmd/internal/command"
	"voicecmd/internal/config"
	"voicecmd/internal/db"
	"voicecmd/internal/interpreter"
	"voicecmd/internal/logging"
)

type rootOptions struct {
	output string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "voicecmd",
		Short:         "Classify assistant utterances into structured commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format: text, json or yaml")

	root.AddCommand(
		newClassifyCmd(opts),
		newMessageCmd(),
		newExamplesCmd(),
		newTablesCmd(opts),
		newAliasesCmd(opts),
	)
	return root
}

func newClassifyCmd(opts *rootOptions) *cobra.Command {
	var (
		confidence float64
		remote     bool
	)
	cmd := &cobra.Command{
		Use:   "classify [utterance...]",
		Short: "Classify an utterance and print the command and canonical message",
		Long: `Classifies a finalized utterance locally, or against a running
interpreter-server with --remote (INTERPRETER_BASE_URL). Local classification
includes the stored company aliases when DB_DSN is set.

Example:
  voicecmd classify "what's the price of tesla"
  voicecmd classify -o json go to alerts`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			var (
				result command.Command
				msg    string
			)
			if remote {
				cfg, err := config.LoadClientConfig()
				if err != nil {
					return err
				}
				ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout+time.Second)
				defer cancel()
				res, err := interpreter.NewClient(cfg.BaseURL, cfg.Timeout).Classify(ctx, text, confidence)
				if err != nil {
					return fmt.Errorf("remote classify: %w", err)
				}
				result, msg = res.Command, res.Message
			} else {
				interp, err := localInterpreter(cmd.Context())
				if err != nil {
					return err
				}
				result = interp.Classify(text, confidence)
				msg = command.ToMessage(result)
			}
			return printCommand(cmd.OutOrStdout(), opts.output, result, msg)
		},
	}
	cmd.Flags().Float64VarP(&confidence, "confidence", "c", 1.0, "confidence score to attach to the command")
	cmd.Flags().BoolVar(&remote, "remote", false, "classify via the interpreter-server")
	return cmd
}

// localInterpreter mirrors the server: built-in tables plus stored aliases.
func localInterpreter(ctx context.Context) (*command.Interpreter, error) {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return nil, err
	}
	if cfg.DBDSN == "" {
		return command.Default(), nil
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	defer func() { _ = logger.Sync() }()
	return db.LoadInterpreter(ctx, cfg.DBDSN, logger)
}

func newMessageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "message [command-json]",
		Short: "Render the canonical message for an encoded command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := command.Decode([]byte(args[0]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), command.ToMessage(c))
			return err
		},
	}
}

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Print the voice command help text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), command.HelpText())
			return err
		},
	}
}

func newTablesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the keyword registries and company gazetteer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			interp, err := localInterpreter(cmd.Context())
			if err != nil {
				return err
			}
			format := opts.output
			if format == "text" {
				format = "yaml"
			}
			return encode(cmd.OutOrStdout(), format, interp.Tables())
		},
	}
}

func printCommand(w io.Writer, format string, c command.Command, msg string) error {
	if format == "text" {
		meta := c.Metadata()
		_, err := fmt.Fprintf(w, "type:       %s\nintent:     %s\nconfidence: %g\nmessage:    %s\n", c.Type(), meta.Intent, meta.Confidence, msg)
		return err
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	var view map[string]any
	if err := json.Unmarshal(raw, &view); err != nil {
		return err
	}
	return encode(w, format, map[string]any{"command": view, "message": msg})
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
