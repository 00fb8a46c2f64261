// File: cmd/openai-component/main.go
//
// CLI entry point: reads a prompt, runs it through the engine over the
// net/http host binding and prints the model's answer.

package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Aditya1404Sal/openai-component/component"
	"github.com/Aditya1404Sal/openai-component/control"
	"github.com/Aditya1404Sal/openai-component/hostio"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		model       string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "openai-component [prompt]",
		Short: "Answer a prompt through the OpenAI Responses API",
		Long: "Sends the prompt to the OpenAI Responses API and prints the " +
			"extracted output text. The API key is read from OPENAI_API_KEY.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := control.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if model != "" {
				cfg.Model = model
			}

			log := control.NewLogger(cfg.Logging)

			var met *control.Metrics
			if metricsAddr != "" {
				met = control.NewMetrics()
				go func() {
					log.WithField("addr", metricsAddr).Info("serving metrics")
					if err := http.ListenAndServe(metricsAddr, promhttp.Handler()); err != nil {
						log.WithError(err).Error("metrics listener stopped")
					}
				}()
			}

			host := hostio.NewHTTPClient(hostio.WithHTTPLogger(log))
			handler, err := component.NewHandler(cfg, host, host.Poller(),
				component.WithLogger(log), component.WithMetrics(met))
			if err != nil {
				return err
			}

			prompt := strings.Join(args, " ")
			text, err := handler.Respond(prompt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVarP(&model, "model", "m", "", "override the configured model")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	return cmd
}
