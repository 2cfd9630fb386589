package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kurihiro0119/unowned-components/internal/aggregator"
	"github.com/kurihiro0119/unowned-components/internal/analyzer"
	"github.com/kurihiro0119/unowned-components/internal/collector"
	"github.com/kurihiro0119/unowned-components/internal/config"
	apperrors "github.com/kurihiro0119/unowned-components/internal/errors"
	"github.com/kurihiro0119/unowned-components/internal/jira"
	"github.com/kurihiro0119/unowned-components/internal/report"
)

type options struct {
	cfgFile    string
	projectKey string
	cloudName  string
	outputJSON bool
	logLevel   string
	logOut     io.Writer
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "unowned-components",
		Short: "Jira components without lead report",
		Long: `A CLI tool that finds the components of a Jira project that have no lead
and counts the issues attributed to each of them.

Configuration is read from the environment (and an optional .env file):
CLOUD_NAME, PROJECT_KEY, JIRA_BASE_URL, JIRA_EMAIL, JIRA_API_TOKEN, JIRA_PAT,
JIRA_TIMEOUT, JIRA_RATE_LIMIT, LOG_LEVEL and OUTPUT_FORMAT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	componentsCmd := &cobra.Command{
		Use:   "components",
		Short: "List components without lead",
		Long:  `Print the IDs of the project's components that have no lead, one per line.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComponents(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&opts.projectKey, "project", "", "Jira project key (overrides PROJECT_KEY)")
	rootCmd.PersistentFlags().StringVar(&opts.cloudName, "cloud", "", "Jira cloud name (overrides CLOUD_NAME)")
	rootCmd.PersistentFlags().BoolVar(&opts.outputJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(componentsCmd)

	return rootCmd
}

func main() {
	if err := newRootCmd(&options{logOut: os.Stderr}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	cfg    *config.Config
	log    *logrus.Logger
	client *jira.Client
}

func setup(opts *options) (*app, error) {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.projectKey != "" {
		cfg.ProjectKey = opts.projectKey
	}
	if opts.cloudName != "" {
		cfg.CloudName = opts.cloudName
	}
	if opts.outputJSON {
		cfg.OutputFormat = config.OutputJSON
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	l := logrus.New()
	l.Out = opts.logOut
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	l.SetLevel(level)

	httpClient := jira.NewHTTPClient(jira.Credentials{
		Email:    cfg.Email,
		APIToken: cfg.APIToken,
		PAT:      cfg.PAT,
	}, cfg.Timeout)
	client := jira.NewClient(jira.NewLimitedDoer(httpClient, cfg.RateLimit), cfg.APIBaseURL())

	l.WithFields(logrus.Fields{
		"base_url": cfg.APIBaseURL(),
		"project":  cfg.ProjectKey,
	}).Debug("configured")

	return &app{cfg: cfg, log: l, client: client}, nil
}

// runAnalyze never fails the process for pipeline errors; they are printed on stdout.
func runAnalyze(cmd *cobra.Command, opts *options) error {
	rt, err := setup(opts)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), apperrors.UserMessage(err))
		return nil
	}

	renderer, err := report.New(rt.cfg.OutputFormat)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), apperrors.UserMessage(err))
		return nil
	}

	collLog := rt.log.WithField("component", "collector")
	coll := collector.NewJiraCollector(rt.client, collLog, collector.WithProgress(func(fetched, total int) {
		collLog.WithFields(logrus.Fields{
			"fetched": fetched,
			"total":   total,
		}).Info("searching issues")
	}))
	agg := aggregator.NewAggregator(coll, rt.log.WithField("component", "aggregator"))
	a := analyzer.New(
		coll,
		agg,
		renderer,
		cmd.OutOrStdout(),
		rt.cfg.ProjectKey,
		rt.log.WithField("component", "analyzer"),
	)

	_ = a.Run(cmd.Context())
	return nil
}

func runComponents(cmd *cobra.Command, opts *options) error {
	out := cmd.OutOrStdout()

	rt, err := setup(opts)
	if err != nil {
		fmt.Fprintln(out, apperrors.UserMessage(err))
		return nil
	}

	coll := collector.NewJiraCollector(rt.client, rt.log.WithField("component", "collector"))
	ids, err := coll.ComponentsWithoutLead(cmd.Context(), rt.cfg.ProjectKey)
	if err != nil {
		fmt.Fprintln(out, apperrors.UserMessage(err))
		return nil
	}
	if len(ids) == 0 {
		fmt.Fprintln(out, analyzer.NoComponentsNotice)
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}
	return nil
}
