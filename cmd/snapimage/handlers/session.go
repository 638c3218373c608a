// Package handlers implements the business logic for CLI commands.
//
// Each handler resolves credentials, opens a session holding the backend,
// logger and metrics registry, runs one reconciliation and renders the
// outcome. Factory variables can be replaced in tests.
package handlers

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/snapimage/internal/config"
	"github.com/imamik/snapimage/internal/logging"
	"github.com/imamik/snapimage/internal/platform/hcloud"
	"github.com/imamik/snapimage/internal/snapshot"
)

const appName = "snapimage"

var appVersion = "dev"

// SetVersion sets the version reported in the API user agent.
func SetVersion(v string) {
	appVersion = v
}

// GlobalOptions are the persistent flags shared by all commands.
type GlobalOptions struct {
	Token       string
	Credentials string
	Endpoint    string
	LogFile     string
	LogLevel    string
	LogFormat   string
	MetricsFile string
}

func (g GlobalOptions) credentialSource() config.CredentialSource {
	return config.CredentialSource{Token: g.Token, File: g.Credentials, Endpoint: g.Endpoint}
}

// Factory function variables - can be replaced in tests.
var (
	// newBackend creates the snapshot backend for resolved credentials.
	newBackend = func(creds *config.Credentials, timeouts *config.Timeouts) snapshot.Backend {
		return hcloud.NewRealClient(creds.Token,
			hcloud.WithEndpoint(creds.Endpoint),
			hcloud.WithTimeouts(timeouts),
			hcloud.WithApplication(appName, appVersion),
		)
	}

	// newLogger builds the process logger.
	newLogger = logging.New

	// isInteractive reports whether prompts can be shown.
	isInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// stdout receives rendered results.
	stdout io.Writer = os.Stdout
)

// session holds everything one invocation needs.
type session struct {
	backend     snapshot.Backend
	reconciler  *snapshot.Reconciler
	log         logr.Logger
	timeouts    *config.Timeouts
	registry    *prometheus.Registry
	metricsFile string
	closeLog    func()
}

func openSession(g GlobalOptions, src config.CredentialSource) (*session, error) {
	log, closeLog, err := newLogger(logging.Options{
		Level:  g.LogLevel,
		Format: g.LogFormat,
		Path:   g.LogFile,
	})
	if err != nil {
		return nil, err
	}

	creds, err := config.ResolveCredentials(src)
	if err != nil {
		closeLog()
		return nil, err
	}

	timeouts := config.LoadTimeouts()
	registry := prometheus.NewRegistry()
	backend := newBackend(creds, timeouts)

	s := &session{
		backend:     backend,
		log:         log,
		timeouts:    timeouts,
		registry:    registry,
		metricsFile: g.MetricsFile,
		closeLog:    closeLog,
	}
	s.reconciler = snapshot.NewReconciler(backend,
		snapshot.WithLogger(log),
		snapshot.WithPollInterval(timeouts.PollInterval),
		snapshot.WithMetrics(snapshot.NewMetrics(registry)),
	)
	return s, nil
}

// close writes the metrics file, if configured, and flushes the logger.
func (s *session) close() {
	if s.metricsFile != "" {
		if err := prometheus.WriteToTextfile(s.metricsFile, s.registry); err != nil {
			s.log.Error(err, "Failed to write metrics file", "path", s.metricsFile)
		}
	}
	s.closeLog()
}

// waitTimeout returns d, or the configured default when d is zero.
func (s *session) waitTimeout(d time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return s.timeouts.ImageWait
}

// reportError turns a failed report into the command's error.
func reportError(rep snapshot.Report) error {
	if !rep.Failed {
		return nil
	}
	if rep.Err != nil {
		return rep.Err
	}
	return errors.New(rep.Msg)
}
