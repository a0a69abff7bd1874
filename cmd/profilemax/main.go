package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"profilemax/internal/client"
	"profilemax/internal/domain"
	"profilemax/internal/repository"
)

const defaultServer = "http://localhost:8080"

var (
	errEmptyProfile   = errors.New("profile needs a bio or photos")
	errNoConversation = errors.New("conversation is empty")
	errAnalysisFailed = errors.New("analysis failed")
)

// app guarda el estado compartido por los subcomandos.
type app struct {
	v      *viper.Viper
	logger *zap.Logger
	out    io.Writer
	in     io.Reader
}

func main() {
	if err := newRootCommand(os.Stdout, os.Stdin).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red(userMessage(err)))
		os.Exit(1)
	}
}

// userMessage traduce los errores de los comandos al texto que ve el usuario.
func userMessage(err error) string {
	switch {
	case errors.Is(err, errEmptyProfile):
		return "Please add at least a bio or some photos."
	case errors.Is(err, errNoConversation):
		return "Please paste a conversation first."
	case errors.Is(err, errAnalysisFailed):
		return "Analysis failed. Check your API key or try again. (" + err.Error() + ")"
	default:
		return err.Error()
	}
}

func newRootCommand(out io.Writer, in io.Reader) *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop(), out: out, in: in}

	root := &cobra.Command{
		Use:           "profilemax",
		Short:         "Score and improve your dating profile from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
	}
	root.SetOut(out)
	root.SetIn(in)

	root.PersistentFlags().String("server", defaultServer, "profilemax API base URL")
	root.PersistentFlags().String("history-file", "", "path of the local history file")
	root.PersistentFlags().Duration("timeout", 90*time.Second, "request timeout")
	root.PersistentFlags().Bool("debug", false, "debug logging to stderr")
	_ = a.v.BindPFlags(root.PersistentFlags())

	a.v.SetEnvPrefix("PROFILEMAX")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	a.v.SetConfigName("profilemax")
	a.v.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		a.v.AddConfigPath(filepath.Join(dir, "profilemax"))
	}
	a.v.AddConfigPath(".")

	root.AddCommand(newAnalyzeCommand(a))
	root.AddCommand(newMessagesCommand(a))
	root.AddCommand(newHistoryCommand(a))
	return root
}

func (a *app) initialize() error {
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	if a.v.GetBool("debug") {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		a.logger = logger
	}
	return nil
}

func (a *app) client() *client.Client {
	return client.New(a.v.GetString("server"), a.v.GetDuration("timeout"), a.logger)
}

func (a *app) historyPath() (string, error) {
	if p := a.v.GetString("history-file"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve history path: %w", err)
	}
	return filepath.Join(dir, "profilemax", domain.HistoryStorageKey+".json"), nil
}

func (a *app) history() (*repository.FileHistoryRepository, error) {
	path, err := a.historyPath()
	if err != nil {
		return nil, err
	}
	return repository.OpenFileHistoryRepository(path)
}
