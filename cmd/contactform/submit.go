package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"contact-service/common/logger"
	"contact-service/internal/form"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errSubmitFailed = errors.New("submission failed")

func newSubmitCmd(v *viper.Viper) *cobra.Command {
	var (
		values  = map[string]*string{}
		asHTML  bool
		verbose bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the contact form",
		Long: `Submit the contact form exactly as the web page does and print the
message the page would show.

Examples:
  contactform submit --name Ana --email ana@x.io --message "Hello"
  contactform submit --name Ana --email ana@x.io --message "Hi" --html
  CONTACTFORM_ENDPOINT=http://localhost:8080/prod/contact contactform submit ...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := make(map[string]string, len(values))
			for id, p := range values {
				fields[id] = *p
			}

			level := "warn"
			if verbose {
				level = "debug"
			}
			log := logger.NewWithOptions(logger.Options{Level: level, Output: cmd.ErrOrStderr()})

			return runSubmit(cmd, submitOptions{
				endpoint: v.GetString("endpoint"),
				fields:   fields,
				asHTML:   asHTML,
				timeout:  timeout,
				logger:   log,
			})
		},
	}

	flags := cmd.Flags()
	for _, id := range form.FieldIDs {
		values[id] = flags.String(id, "", "form field "+id)
	}
	flags.String("endpoint", form.DefaultEndpoint, "contact endpoint URL (env CONTACTFORM_ENDPOINT)")
	flags.BoolVar(&asHTML, "html", false, "print the HTML fragment instead of plain text")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log request details to stderr")
	flags.DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")

	_ = v.BindPFlag("endpoint", flags.Lookup("endpoint"))
	_ = v.BindEnv("endpoint")

	return cmd
}

type submitOptions struct {
	endpoint string
	fields   map[string]string
	asHTML   bool
	timeout  time.Duration
	logger   *slog.Logger
}

// runSubmit drives the same handler as the browser against an in-memory view
// and prints what the response area would show.
func runSubmit(cmd *cobra.Command, opts submitOptions) error {
	view := form.NewMemoryView(opts.fields)
	client := form.NewClient(opts.endpoint, &http.Client{Timeout: opts.timeout})

	handler, err := form.NewHandler(view.View(), client, opts.logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	outcome := handler.Submit(ctx)

	out := cmd.OutOrStdout()
	if opts.asHTML {
		fmt.Fprintln(out, view.HTML())
	} else {
		fmt.Fprintln(out, outcome.Text)
		if outcome.SubmissionID != "" {
			fmt.Fprintf(out, "Submission ID: %s\n", outcome.SubmissionID)
		}
	}

	if !outcome.OK() {
		return fmt.Errorf("%w: %s", errSubmitFailed, outcome.Kind)
	}
	return nil
}
