// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"time"

	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/config"
	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/internal/igtf/reconcile"
	"github.com/ARGOeu-Metrics/argo-probe-igtf/src/logger"
	"github.com/olorin/nagiosplugin"
	"github.com/spf13/cobra"
)

var (
	hostname        string
	port            int
	warningDays     int
	criticalDays    int
	timeoutSeconds  int
	releaseSources  string
	dnListSources   string
	obsoleteSources string
	prevDNSources   string
	prevObsSources  string
	maxAgeHours     int
	certFile        string
	keyFile         string
	discoveryURL    string
	configFile      string
	debugMode       bool
	dumpTable       bool
)

// Execute runs the root command. On a completed probe the process
// exits with the monitoring-plugin code, so an error return only
// covers command-line handling itself.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	rootCmd := &cobra.Command{
		Use:           "check_ssl_ca",
		Short:         "Monitoring probe verifying the CA distribution a TLS server advertises",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			execProbe(cmd, log)
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&hostname, "hostname", "H", "", "host name of the TLS endpoint to probe")
	rootCmd.Flags().IntVarP(&port, "port", "p", 443, "port of the TLS endpoint")
	rootCmd.Flags().IntVarP(&warningDays, "warning", "w", 10, "days behind the current release before WARNING")
	rootCmd.Flags().IntVarP(&criticalDays, "critical", "c", 30, "days behind the current release before CRITICAL")
	rootCmd.Flags().IntVarP(&timeoutSeconds, "timeout", "t", 60, "overall probe timeout in seconds")
	rootCmd.Flags().StringVar(&releaseSources, "release", "", "comma-separated release descriptor sources (default: EGI repository)")
	rootCmd.Flags().StringVar(&dnListSources, "dn-list", "", "comma-separated DN list sources, %v is the release version")
	rootCmd.Flags().StringVar(&obsoleteSources, "obsolete-list", "", "comma-separated obsoleted DN list sources, %v is the release version")
	rootCmd.Flags().StringVar(&prevDNSources, "previous-dn-list", "", "explicit previous-release DN list sources")
	rootCmd.Flags().StringVar(&prevObsSources, "previous-obsolete-list", "", "explicit previous-release obsoleted list sources")
	rootCmd.Flags().IntVar(&maxAgeHours, "max-age", 0, "maximum age in hours for local list files, 0 disables")
	rootCmd.Flags().StringVarP(&certFile, "cert", "C", "", "client certificate file (PEM, DER or PKCS#7)")
	rootCmd.Flags().StringVarP(&keyFile, "key", "K", "", "client key file (default: the certificate file)")
	rootCmd.Flags().StringVar(&discoveryURL, "discovery", "", "HTTP URL whose WWW-Authenticate challenge names the endpoint")
	rootCmd.Flags().StringVar(&configFile, "config", "", "defaults file, JSON or YAML")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "print diagnostics to stderr")
	rootCmd.Flags().BoolVar(&dumpTable, "dump-table", false, "print the per-DN classification table to stderr")

	return rootCmd.ExecuteContext(ctx)
}

// resolveOptions merges the defaults file with explicit flag values.
// A flag set on the command line wins over the file.
func resolveOptions(cmd *cobra.Command) (Options, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Host:                        hostname,
		Port:                        cfg.Defaults.Port,
		Discovery:                   discoveryURL,
		CertFile:                    certFile,
		KeyFile:                     keyFile,
		WarningDays:                 cfg.Defaults.WarningDays,
		CriticalDays:                cfg.Defaults.CriticalDays,
		ReleaseSources:              cfg.Distribution.Release,
		DNListSources:               cfg.Distribution.DNList,
		ObsoleteListSources:         cfg.Distribution.ObsoleteList,
		PreviousDNListSources:       cfg.Distribution.PreviousDNList,
		PreviousObsoleteListSources: cfg.Distribution.PreviousObsoleteList,
		MaxAge:                      time.Duration(cfg.Distribution.MaxAgeHours) * time.Hour,
		Timeout:                     time.Duration(cfg.Defaults.Timeout) * time.Second,
	}

	fs := cmd.Flags()
	if fs.Changed("port") {
		opts.Port = port
	}
	if fs.Changed("warning") {
		opts.WarningDays = warningDays
	}
	if fs.Changed("critical") {
		opts.CriticalDays = criticalDays
	}
	if fs.Changed("timeout") {
		opts.Timeout = time.Duration(timeoutSeconds) * time.Second
	}
	if fs.Changed("release") {
		opts.ReleaseSources = releaseSources
	}
	if fs.Changed("dn-list") {
		opts.DNListSources = dnListSources
	}
	if fs.Changed("obsolete-list") {
		opts.ObsoleteListSources = obsoleteSources
	}
	if fs.Changed("previous-dn-list") {
		opts.PreviousDNListSources = prevDNSources
	}
	if fs.Changed("previous-obsolete-list") {
		opts.PreviousObsoleteListSources = prevObsSources
	}
	if fs.Changed("max-age") {
		opts.MaxAge = time.Duration(maxAgeHours) * time.Hour
	}
	return opts, nil
}

// execProbe runs the probe pipeline and emits the result in the
// monitoring-plugin format. It does not return to the caller on a
// completed probe; the plugin exit code is the contract.
func execProbe(cmd *cobra.Command, log logger.Logger) {
	debug := logger.NewDebugLogger()
	debug.SetEnabled(debugMode)

	check := nagiosplugin.NewCheck()
	defer check.Finish()

	opts, err := resolveOptions(cmd)
	if err != nil {
		check.AddResult(nagiosplugin.UNKNOWN, err.Error())
		check.Finish()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
	defer cancel()

	outcome := Run(ctx, opts, debug)
	outcome.Emit(check, opts, log)

	if outcome.Reconciled && dumpTable {
		if table := reconcile.RenderTable(outcome.Report); table != "" {
			log.Println(table)
		}
	}
}
