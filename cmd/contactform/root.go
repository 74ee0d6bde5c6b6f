package main

import (
	"io"

	"contact-service/internal/app"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CONTACTFORM")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "contactform",
		Short:         "Contact form client",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(newSubmitCmd(v))
	root.AddCommand(newAdminTokenCmd(v))
	return root
}
