package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spjmurray/tco/internal/config"
	"github.com/spjmurray/tco/internal/kube"
	"github.com/spjmurray/tco/internal/launcher"
	"github.com/spjmurray/tco/internal/runconfig"
	"github.com/spjmurray/tco/internal/suite"
	"github.com/spjmurray/tco/pkg/logging"
)

var (
	flagNamespace          string
	flagKubeconfig         string
	flagContexts           []string
	flagServiceAccount     string
	flagOperatorImage      string
	flagAdmissionImage     string
	flagServerImage        string
	flagServerUpgradeImage string
	flagSyncGatewayImage   string
	flagStorageClass       string
	flagRepo               string
	flagDockerServer       string
	flagDockerUsername     string
	flagDockerPassword     string
	flagSuite              aliasValue
	flagTests              []string
	flagVerbose            bool
	flagCollectLogs        bool
	flagTimeout            time.Duration
	flagRunnerSchema       string
)

// aliasValue is a pflag.Value accepting only the built-in suite aliases, so
// a typo dies at the parse boundary with the valid set in the message.
type aliasValue suite.Alias

// String implements pflag.Value.
func (v *aliasValue) String() string {
	return string(*v)
}

// Set implements pflag.Value.
func (v *aliasValue) Set(s string) error {
	if _, err := suite.Alias(s).Canonical(); err != nil {
		return err
	}

	*v = aliasValue(s)

	return nil
}

// Type implements pflag.Value.
func (v *aliasValue) Type() string {
	return "suite"
}

// completeSuiteFlag provides shell completion for the suite flag
func completeSuiteFlag(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return suite.Names(), cobra.ShellCompDirectiveDefault
}

// completeSchemaFlag provides shell completion for the runner-schema flag
func completeSchemaFlag(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return runconfig.Names(), cobra.ShellCompDirectiveDefault
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tco",
	Short: "Run Couchbase operator e2e tests in an easy to use manner",
	Long: `tco wraps the operator's e2e test runner for day to day development.
It merges built-in defaults, the static config at ~/.tco/config and the
command line, selects a suite by alias or wraps explicit tests in a
transient one, then drives the runner with everything it needs and relays
its exit code.`,
	Args: cobra.NoArgs,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid configuration, failed runs)
	SilenceUsage: true,
	RunE:         runRoot,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the root command and returns the process exit code. A run
// that completed but failed relays the runner's own code; every other
// failure is 1.
func Execute() int {
	rootCmd.SetVersionTemplate(`{{printf "tco version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *launcher.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}

		return 1
	}

	return 0
}

// overlayFromFlags captures only the flags the user explicitly set. A flag
// sitting at its built-in default takes no part in the merge, so it can
// never shadow a static file value.
func overlayFromFlags(flags *pflag.FlagSet) *config.Overlay {
	overlay := &config.Overlay{}

	if flags.Changed("namespace") {
		overlay.Namespace = &flagNamespace
	}

	if flags.Changed("kubeconfig") {
		overlay.Kubeconfig = &flagKubeconfig
	}

	if flags.Changed("context") {
		overlay.Contexts = flagContexts
	}

	if flags.Changed("service-account") {
		overlay.ServiceAccount = &flagServiceAccount
	}

	if flags.Changed("image") {
		overlay.OperatorImage = &flagOperatorImage
	}

	if flags.Changed("admission-controller-image") {
		overlay.AdmissionImage = &flagAdmissionImage
	}

	if flags.Changed("server-image") {
		overlay.ServerImage = &flagServerImage
	}

	if flags.Changed("server-upgrade-image") {
		overlay.ServerUpgradeImage = &flagServerUpgradeImage
	}

	if flags.Changed("sync-gateway-image") {
		overlay.SyncGatewayImage = &flagSyncGatewayImage
	}

	if flags.Changed("storage-class") {
		overlay.StorageClass = &flagStorageClass
	}

	if flags.Changed("repo") {
		overlay.RepoRoot = &flagRepo
	}

	if flags.Changed("docker-server") {
		overlay.DockerServer = &flagDockerServer
	}

	if flags.Changed("docker-username") {
		overlay.DockerUsername = &flagDockerUsername
	}

	if flags.Changed("docker-password") {
		overlay.DockerPassword = &flagDockerPassword
	}

	if flags.Changed("suite") {
		s := string(flagSuite)
		overlay.Suite = &s
	}

	if flags.Changed("test") {
		overlay.Tests = flagTests
	}

	if flags.Changed("verbose") {
		overlay.Verbose = &flagVerbose
	}

	if flags.Changed("collect-logs") {
		overlay.CollectLogs = &flagCollectLogs
	}

	if flags.Changed("timeout") {
		d := config.Duration(flagTimeout)
		overlay.Timeout = &d
	}

	if flags.Changed("runner-schema") {
		overlay.RunnerSchema = &flagRunnerSchema
	}

	return overlay
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(overlayFromFlags(cmd.Flags()))
	if err != nil {
		return err
	}

	level := logging.LevelInfo
	if cfg.Verbose {
		level = logging.LevelDebug
	}

	logging.Init(level, os.Stdout)
	logging.Debug("config", "Resolved configuration %+v", cfg)

	// Fail a bad context name here rather than minutes into cluster creation.
	if err := kube.ValidateContexts(cfg.Kubeconfig, cfg.Contexts); err != nil {
		return err
	}

	// Handle interrupts gracefully
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logging.Info("run", "Received interrupt, stopping the run")
		cancel()
	}()

	selection, err := suite.Select(cfg.Suite, cfg.Tests, cfg.RepoRoot)
	if err != nil {
		return err
	}

	// Transient files must outlive the runner; removal happens on every
	// exit path from here on, interrupts included.
	if selection.Transient != nil {
		logging.Debug("suite", "Transient suite definition at %s", selection.Transient.Path)

		defer func() {
			if err := selection.Transient.Remove(); err != nil {
				logging.Warn("suite", "%v", err)
			}
		}()
	}

	logging.Debug("suite", "Selected suite %s", selection.Name)

	schema, err := runconfig.Lookup(cfg.RunnerSchema)
	if err != nil {
		return err
	}

	rc := runconfig.Synthesize(cfg, selection.Name, schema)
	logging.Debug("runconfig", "Synthesized run config %+v", rc)

	emitted, transient, err := schema.Emit(rc)
	if err != nil {
		return err
	}

	if transient != nil {
		logging.Debug("runconfig", "Run config written to %s", transient.Path)

		defer func() {
			if err := transient.Remove(); err != nil {
				logging.Warn("runconfig", "%v", err)
			}
		}()
	}

	return launcher.New(cfg, emitted).Run(ctx)
}

func init() {
	rootCmd.AddCommand(newSuitesCmd())
	rootCmd.AddCommand(newVersionCmd())

	defaults := config.Default()
	flags := rootCmd.Flags()

	flags.StringVarP(&flagNamespace, "namespace", "n", defaults.Namespace, "Namespace the operator is installed into")
	flags.StringVarP(&flagKubeconfig, "kubeconfig", "k", defaults.Kubeconfig, "Kubeconfig the runner connects with")
	flags.StringArrayVarP(&flagContexts, "context", "c", nil, "Kubeconfig context per cluster role, the last replicated when fewer are given (repeatable)")
	flags.StringVarP(&flagServiceAccount, "service-account", "a", defaults.ServiceAccount, "Service account the operator runs as")
	flags.StringVarP(&flagOperatorImage, "image", "i", defaults.OperatorImage, "Operator image under test")
	flags.StringVarP(&flagAdmissionImage, "admission-controller-image", "I", defaults.AdmissionImage, "Admission controller image")
	flags.StringVarP(&flagRepo, "repo", "r", "", "Operator repository checkout the runner executes from")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVarP(&flagDockerServer, "docker-server", "S", "", "Private registry server")
	flags.StringVarP(&flagDockerUsername, "docker-username", "U", "", "Private registry username")
	flags.StringVarP(&flagDockerPassword, "docker-password", "P", "", "Private registry password")
	flags.StringVarP(&flagStorageClass, "storage-class", "C", defaults.StorageClass, "Storage class backing cluster volumes")
	flags.BoolVarP(&flagCollectLogs, "collect-logs", "l", false, "Collect cluster logs after the run")
	flags.StringVar(&flagServerImage, "server-image", defaults.ServerImage, "Server image the tests deploy")
	flags.StringVar(&flagServerUpgradeImage, "server-upgrade-image", defaults.ServerUpgradeImage, "Server image upgrade tests target")
	flags.StringVar(&flagSyncGatewayImage, "sync-gateway-image", defaults.SyncGatewayImage, "Sync gateway image for mobile tests")
	flags.VarP(&flagSuite, "suite", "s", "Suite alias to run, one of "+strings.Join(suite.Names(), ", "))
	flags.StringArrayVarP(&flagTests, "test", "t", nil, "Explicit test to run instead of a suite (repeatable)")
	flags.DurationVar(&flagTimeout, "timeout", defaults.Timeout, "Overall runner timeout")
	flags.StringVar(&flagRunnerSchema, "runner-schema", defaults.RunnerSchema, "Runner interface generation, one of "+strings.Join(runconfig.Names(), ", "))

	// Selecting a suite and naming tests on the same invocation is always
	// a mistake; the resolver checks the merged result again since either
	// half may arrive from the static file.
	rootCmd.MarkFlagsMutuallyExclusive("suite", "test")

	_ = rootCmd.RegisterFlagCompletionFunc("suite", completeSuiteFlag)
	_ = rootCmd.RegisterFlagCompletionFunc("runner-schema", completeSchemaFlag)
}
