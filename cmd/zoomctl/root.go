package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/kbukum/basiczoom/credential"
	"github.com/kbukum/basiczoom/logger"
	"github.com/kbukum/basiczoom/observability"
	"github.com/kbukum/basiczoom/validation"
	"github.com/kbukum/basiczoom/version"
	"github.com/kbukum/basiczoom/zoom"
)

// globalFlags are shared by every request command.
type globalFlags struct {
	configFile  string
	accessToken string
	telemetry   string
	debug       bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	gf := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Call the Zoom REST API",
		Long: `zoomctl sends authenticated requests to the Zoom REST API and prints the
response as JSON.

Credentials come from the config file (zoom.auth), ZOOM_* environment
variables such as ZOOM_AUTH_ACCOUNT_ID, or --access-token.`,
		Version:      version.GetShortVersion(),
		SilenceUsage: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetVersionTemplate(`{{printf "zoomctl version %s\n" .Version}}`)

	pf := cmd.PersistentFlags()
	pf.StringVar(&gf.configFile, "config", "", "path to config.yml")
	pf.StringVar(&gf.accessToken, "access-token", "", "use an existing OAuth access token instead of configured credentials")
	pf.StringVar(&gf.telemetry, "telemetry", "", "telemetry exporter: none, stdout or otlp")
	pf.BoolVar(&gf.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newGetCmd(gf),
		newWriteCmd(gf, "post", "Create a resource"),
		newWriteCmd(gf, "put", "Replace a resource"),
		newPatchCmd(gf),
		newDeleteCmd(gf),
		newVersionCmd(),
	)
	return cmd
}

// session is everything a request command needs for one invocation.
type session struct {
	client *zoom.Client
	log    *logger.Logger
	obs    *observability.Provider
}

func openSession(ctx context.Context, cmd *cobra.Command, gf *globalFlags) (*session, error) {
	if err := validation.New().
		OneOf("telemetry", gf.telemetry, []string{observability.ExporterNone, observability.ExporterStdout, observability.ExporterOTLP}).
		Err(); err != nil {
		return nil, err
	}

	cfg, err := loadConfig(gf.configFile)
	if err != nil {
		return nil, err
	}
	if gf.debug {
		cfg.Debug = true
	}
	if gf.telemetry != "" {
		cfg.Telemetry.Exporter = gf.telemetry
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.NewWithWriter(&cfg.Logging, cfg.Name, cmd.ErrOrStderr())

	obs, err := observability.Setup(ctx, cfg.Telemetry, cmd.ErrOrStderr(), log)
	if err != nil {
		return nil, err
	}

	opts := []zoom.Option{
		zoom.WithLogger(log),
		zoom.WithMeterProvider(obs.MeterProvider()),
		zoom.WithTracerProvider(obs.TracerProvider()),
	}
	if gf.accessToken != "" {
		// The flag wins over any credentials in the config or environment.
		sess, err := credential.NewSession(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: gf.accessToken}))
		if err != nil {
			_ = obs.Shutdown(ctx)
			return nil, err
		}
		opts = append(opts, zoom.WithCredential(sess))
	}

	client, err := zoom.New(cfg.Zoom, opts...)
	if err != nil {
		_ = obs.Shutdown(ctx)
		return nil, err
	}
	return &session{client: client, log: log, obs: obs}, nil
}

func (s *session) close(ctx context.Context) {
	s.client.Close()
	if err := s.obs.Shutdown(ctx); err != nil {
		s.log.Warn("telemetry shutdown failed", logger.Fields(logger.FieldError, err.Error()))
	}
}

// run opens a session, executes call and prints its result.
func run(cmd *cobra.Command, gf *globalFlags, call func(context.Context, *zoom.Client) (*zoom.Result, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := openSession(ctx, cmd, gf)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	res, err := call(ctx, s.client)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), res)
}

func printResult(w io.Writer, res *zoom.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
