package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tarefas/config"
	"tarefas/connection"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tarefas",
		Short:         "Task board with public links and comments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var (
		envFiles []string
		port     int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFiles...)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			return connection.StartServer(cfg)
		},
	}
	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "env files to load (default .env)")
	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on (overrides PORT)")
	return cmd
}
