package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/magpielabs/magpie/internal/adapters/web"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis dashboard on localhost",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEnv, err := newEnv()
		if err != nil {
			return fail(err)
		}
		defer closeEnv()

		port := servePort
		if port == 0 {
			port = e.cfg.Port
		}

		srv := web.NewServer(e.store, e.runner)
		if err := srv.Start(port); err != nil {
			return fail(err)
		}
		defer srv.Stop()
		fmt.Printf("dashboard at %s (ctrl-c to stop)\n", srv.URL())

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "dashboard port (default from config)")
}
