package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stategraph/stategraph/demos"
	"github.com/stategraph/stategraph/pkg/stategraph/checkpoint"
	"github.com/stategraph/stategraph/pkg/stategraph/config"
	"github.com/stategraph/stategraph/pkg/stategraph/llm"
)

// runFlags holds the flags of the run command.
type runFlags struct {
	prompt     string
	thread     string
	dbPath     string
	provider   string
	configPath string
	logLevel   string
	mermaid    bool
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "stategraph",
		Short:         "Run the stategraph tutorial demos",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newListCmd(stdout))
	root.AddCommand(newRunCmd(stdin, stdout))
	return root
}

func newListCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available demos",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range demos.List() {
				fmt.Fprintf(stdout, "%d. %-18s %s\n", d.Number, d.Name, d.Description)
			}
			return nil
		},
	}
}

func newRunCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <number|name>",
		Short: "Run one demo by number or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			demo, ok := demos.Lookup(args[0])
			if !ok {
				listDemos(stdout)
				return fmt.Errorf("unknown demo: %s", args[0])
			}
			return runDemo(cmd, demo, flags, stdin, stdout)
		},
	}

	cmd.Flags().StringVarP(&flags.prompt, "prompt", "p", "", "run once with this prompt instead of the interactive loop")
	cmd.Flags().StringVar(&flags.thread, "thread", "1", "thread ID for checkpointed demos")
	cmd.Flags().StringVar(&flags.dbPath, "db", "", "SQLite checkpoint path (default: in-memory store)")
	cmd.Flags().StringVar(&flags.provider, "provider", "anthropic", "chat provider: anthropic, openai, or mock")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "optional YAML config with provider settings")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&flags.mermaid, "mermaid", false, "print the demo graph as Mermaid source and exit")
	return cmd
}

func listDemos(stdout io.Writer) {
	fmt.Fprintln(stdout, "Available demos:")
	for _, d := range demos.List() {
		fmt.Fprintf(stdout, "  %d. %s\n", d.Number, d.Name)
	}
}

func runDemo(cmd *cobra.Command, demo demos.Demo, flags *runFlags, stdin io.Reader, stdout io.Writer) error {
	deps, cleanup, err := buildDeps(flags, stdin, stdout)
	if err != nil {
		return err
	}
	defer cleanup()

	if flags.mermaid {
		graph, err := demo.Build(deps)
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, graph.Mermaid())
		return nil
	}

	printer := newPrinter(stdout)

	if flags.prompt != "" {
		return runOnce(cmd, demo, deps, flags.prompt, printer)
	}

	// Interactive loop: read prompts until quit/exit/q.
	scanner := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stdout, "\nUser: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if isQuit(input) {
			fmt.Fprintln(stdout, "Goodbye!")
			return nil
		}
		if err := runOnce(cmd, demo, deps, input, printer); err != nil {
			return err
		}
	}
}

func runOnce(cmd *cobra.Command, demo demos.Demo, deps demos.Deps, input string, printer *printer) error {
	// Stream each new message as nodes complete instead of waiting for
	// the final state. Every node appends one message, so the last
	// message of each snapshot is the new one.
	deps.OnUpdate = func(nodeID string, state any) {
		if s, ok := state.(demos.ChatState); ok {
			printer.printLast(s)
		}
	}

	_, err := demo.Run(cmd.Context(), deps, input)
	return err
}

// buildDeps assembles demo dependencies from flags, config, and
// environment.
func buildDeps(flags *runFlags, stdin io.Reader, stdout io.Writer) (demos.Deps, func(), error) {
	cfg := config.New(nil)
	if flags.configPath != "" {
		loaded, err := config.FromFile(flags.configPath)
		if err != nil {
			return demos.Deps{}, nil, err
		}
		cfg = loaded
	}

	chat, err := newChatClient(flags.provider, cfg)
	if err != nil {
		return demos.Deps{}, nil, err
	}

	search := newSearchClient(flags.provider, cfg)

	var store checkpoint.Store
	cleanup := func() {}
	if flags.dbPath != "" {
		sqlite, err := checkpoint.NewSQLiteStore(flags.dbPath)
		if err != nil {
			return demos.Deps{}, nil, err
		}
		store = sqlite
		cleanup = func() { sqlite.Close() }
	} else {
		store = checkpoint.NewMemoryStore()
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(flags.logLevel),
	}))

	scanner := bufio.NewScanner(stdin)
	prompter := demos.PrompterFunc(func(query string) (string, error) {
		fmt.Fprintf(stdout, "\nHuman assistance needed: %s\nHuman: ", query)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return strings.TrimSpace(scanner.Text()), nil
	})

	return demos.Deps{
		Chat:     chat,
		Search:   search,
		Store:    store,
		ThreadID: flags.thread,
		Prompter: prompter,
		Logger:   logger,
	}, cleanup, nil
}

func newChatClient(provider string, cfg config.Config) (llm.Client, error) {
	switch provider {
	case "anthropic":
		sub := cfg.Sub("anthropic")
		var opts []llm.AnthropicOption
		if model := sub.String("model", ""); model != "" {
			opts = append(opts, llm.WithAnthropicModel(model))
		}
		if base := sub.String("base_url", ""); base != "" {
			opts = append(opts, llm.WithAnthropicBaseURL(base))
		}
		return llm.NewAnthropic("", opts...), nil
	case "openai":
		sub := cfg.Sub("openai")
		var opts []llm.OpenAIOption
		if model := sub.String("model", ""); model != "" {
			opts = append(opts, llm.WithOpenAIModel(model))
		}
		if base := sub.String("base_url", ""); base != "" {
			opts = append(opts, llm.WithOpenAIBaseURL(base))
		}
		return llm.NewOpenAI("", opts...), nil
	case "mock":
		return llm.NewMockClient("This is a mock response; set --provider to talk to a real model."), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

func newSearchClient(provider string, cfg config.Config) llm.Client {
	if provider == "mock" {
		return llm.NewMockClient("Mock search results.")
	}
	sub := cfg.Sub("perplexity")
	var opts []llm.OpenAIOption
	if model := sub.String("model", ""); model != "" {
		opts = append(opts, llm.WithOpenAIModel(model))
	}
	return llm.NewPerplexity("", opts...)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func isQuit(input string) bool {
	switch strings.ToLower(input) {
	case "quit", "exit", "q":
		return true
	}
	return false
}
