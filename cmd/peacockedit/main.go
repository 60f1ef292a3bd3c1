// Command peacockedit is a save editor for Peacock, the Hitman World of
// Assassination server emulator. It serves the editing API the web
// frontend consumes, and offers small inspection subcommands for use
// straight from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"peacockedit/internal/config"
	"peacockedit/internal/editor"
	"peacockedit/internal/gamedata"
	"peacockedit/internal/locator"
	"peacockedit/internal/logging"
	"peacockedit/internal/profile"
	"peacockedit/internal/server"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		host  string
		port  int
		debug bool
	)

	root := &cobra.Command{
		Use:   "peacockedit",
		Short: "Save editor for the Peacock Hitman server emulator",
		Long: `peacockedit finds your local Peacock installation and serves a JSON API
for inspecting and editing player profiles: challenges, escalations,
mission stories, location mastery and Freelancer progress.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, debug)
		},
	}

	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Debug mode")
	root.Flags().StringVar(&host, "host", "", "Listen address (overrides config)")
	root.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides config)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the editing API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, debug)
		},
	}
	serveCmd.Flags().StringVar(&host, "host", "", "Listen address (overrides config)")
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides config)")

	root.AddCommand(serveCmd)
	root.AddCommand(newStatusCommand())
	root.AddCommand(newLocateCommand())
	root.AddCommand(newVersionCommand())

	return root
}

func runServe(host string, port int, debug bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if host != "" {
		cfg.Host = host
	}
	if port != 0 {
		cfg.Port = port
	}
	if debug {
		cfg.Debug = true
		logging.GetLogger().SetLevel(logging.DEBUG)
	}

	var locOpts locator.Options
	if cfg.PeacockPath != "" {
		// Config-pinned install path, unless PEACOCK_PATH overrides it.
		locOpts.Getenv = func(key string) string {
			if v := os.Getenv(key); v != "" {
				return v
			}
			if key == locator.EnvPathVar {
				return cfg.PeacockPath
			}
			return ""
		}
	}
	ed := editor.New(locator.NewWithOptions(locOpts), gamedata.NewLoader())
	srv := server.New(cfg, ed)

	if root, err := ed.Root(); err == nil {
		fmt.Printf("%s %s\n", green("Peacock installation:"), root)
	} else {
		fmt.Println(yellow("No Peacock installation found yet; the API will keep looking."))
	}
	fmt.Printf("%s http://%s\n", bold("Serving on"), srv.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the detected installation and its profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := locator.New()
			root, ok := loc.Find()
			if !ok {
				fmt.Println(red("No Peacock installation found."))
				fmt.Println("Set PEACOCK_PATH to point at your Peacock folder.")
				return nil
			}
			fmt.Printf("%s %s\n", green("Installation:"), root)

			store := profile.NewStore(root)
			paths, err := store.List()
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Println(yellow("No profiles found."))
				return nil
			}
			fmt.Printf("%s\n", bold(fmt.Sprintf("%d profile(s):", len(paths))))
			for _, path := range paths {
				doc, err := store.Read(path)
				if err != nil {
					fmt.Printf("  %s %s\n", profile.ID(path), red("(unreadable)"))
					continue
				}
				summary := profile.Summarize(path, doc)
				fmt.Printf("  %s  level %s, %s challenges, %s escalations\n",
					cyan(summary.ID),
					bold(fmt.Sprint(summary.Level)),
					bold(fmt.Sprint(summary.ChallengesCompleted)),
					bold(fmt.Sprint(summary.EscalationsCompleted)))
			}
			return nil
		},
	}
}

func newLocateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Print the detected Peacock installation path",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, ok := locator.New().Find()
			if !ok {
				return fmt.Errorf("no Peacock installation found; set PEACOCK_PATH")
			}
			fmt.Println(root)
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("peacockedit %s\n", server.Version)
		},
	}
}
