/*
Copyright 2025 Gosayram

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package cmd provides the command-line interface for the credential helper.
package cmd

import (
	"fmt"
	"os"

	dockercreds "github.com/docker/docker-credential-helpers/credentials"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Gosayram/gcrauth/internal/version"
	"github.com/Gosayram/gcrauth/pkg/config"
	"github.com/Gosayram/gcrauth/pkg/credentials"
	"github.com/Gosayram/gcrauth/pkg/gcr"
	"github.com/Gosayram/gcrauth/pkg/logging"
	"github.com/Gosayram/gcrauth/pkg/robot"
)

var (
	opts         = &config.Options{}
	logLevel     string
	logFormat    string
	logTimestamp bool

	helper *gcr.Helper
)

func init() {
	RootCmd.PersistentFlags().StringVarP(&logLevel, "verbosity", "v", logging.DefaultLevel,
		"Log level (trace, debug, info, warn, error, fatal, panic)")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.FormatText,
		"Log format (text, color, json)")
	RootCmd.PersistentFlags().BoolVar(&logTimestamp, "log-timestamp",
		logging.DefaultLogTimestamp, "Timestamp in log output")

	RootCmd.PersistentFlags().VarP(&opts.KeyFiles, "key-file", "k",
		"Path to a service account JSON key. Repeat for multiple accounts.")
	RootCmd.PersistentFlags().Var(&opts.Registries, "registry",
		"Extra registry host to produce credentials for.")
	RootCmd.PersistentFlags().BoolVar(&opts.DisableEnvCredentials, "no-env-credentials", false,
		"Disable credentials from GCRAUTH_* environment variables.")

	RootCmd.AddCommand(getCmd, storeCmd, eraseCmd, listCmd, versionCmd)
}

// RootCmd is the docker-credential-gcrauth entrypoint. The subcommands
// speak the docker credential helper protocol on stdin/stdout.
var RootCmd = &cobra.Command{
	Use:   "docker-credential-gcrauth",
	Short: "Docker credential helper backed by Google robot credentials",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := logging.Configure(logLevel, logFormat, logTimestamp); err != nil {
			return err
		}
		validateFlags()

		registry, err := buildRegistry(opts)
		if err != nil {
			return err
		}
		helper = gcr.NewHelper(registry, helperHosts(opts))
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
	SilenceUsage: true,
}

func validateFlags() {
	// Allow setting --key-file using an environment variable.
	if val, ok := os.LookupEnv("GCRAUTH_KEY_FILE"); ok {
		if err := opts.KeyFiles.Set(val); err != nil {
			logrus.Warnf("Failed to set key file from environment: %v", err)
		}
	}
	// Allow setting --registry using an environment variable.
	if val, ok := os.LookupEnv("GCRAUTH_REGISTRIES"); ok {
		if err := opts.Registries.Set(val); err != nil {
			logrus.Warnf("Failed to set registries from environment: %v", err)
		}
	}
}

// buildRegistry wires the credential providers: robot credentials from
// key files, the Container Registry converter on top of them, and the
// environment fallback last.
func buildRegistry(opts *config.Options) (*credentials.Registry, error) {
	fs := afero.NewOsFs()
	robots := make([]robot.Credentials, 0, len(opts.KeyFiles))
	for _, path := range opts.KeyFiles {
		c, err := robot.LoadServiceAccountKey(fs, path)
		if err != nil {
			return nil, err
		}
		logrus.Debugf("Loaded robot credential %s", c.ID())
		robots = append(robots, c)
	}

	registry := credentials.NewRegistry(robot.NewProvider(robots...))
	registry.Register(gcr.NewProvider(registry, gcr.DefaultModule(), opts.Registries...))
	if !opts.DisableEnvCredentials {
		registry.Register(credentials.NewEnvProvider())
	}
	return registry, nil
}

func helperHosts(opts *config.Options) []string {
	return append(append([]string{}, gcr.DefaultRegistries...), opts.Registries...)
}

func runHelper(action string) error {
	return dockercreds.HandleCommand(helper, action, os.Stdin, os.Stdout)
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print credentials for the server URL given on stdin",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runHelper("get")
	},
}

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Unsupported; credentials are derived, not stored",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runHelper("store")
	},
}

var eraseCmd = &cobra.Command{
	Use:   "erase",
	Short: "Unsupported; credentials are derived, not stored",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runHelper("erase")
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registry hosts that resolve to a credential",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runHelper("list")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.Info())
	},
}
