package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oralvis/oralvis/internal"
	"github.com/spf13/cobra"
)

var watchQuery string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the session list as it changes",
	Long: `Print the session list and reprint it whenever it changes.

Changes made through this process arrive via the store's own
subscription; changes made by another process are picked up by watching
the database file. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		sub, err := app.Repo.SubscribeSessions(ctx, internal.Query{Search: watchQuery})
		if err != nil {
			return fmt.Errorf("failed to subscribe: %w", err)
		}
		defer sub.Cancel()

		dbWatch, err := internal.WatchDatabase(app.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to watch database: %w", err)
		}
		defer dbWatch.Close()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		printSessionTable(sub.Initial)

		for {
			select {
			case snapshot, ok := <-sub.Snapshots:
				if !ok {
					return nil
				}
				fmt.Println()
				printSessionTable(snapshot)
			case <-dbWatch.Changes():
				var sessions []*internal.Session
				var err error
				if watchQuery == "" {
					sessions, err = app.Repo.GetAllSessions(ctx)
				} else {
					sessions, err = app.Repo.SearchSessions(ctx, watchQuery)
				}
				if err != nil {
					internal.LogWarn("requery after external change failed: %v", err)
					continue
				}
				fmt.Println()
				printSessionTable(sessions)
			case <-sigCh:
				return nil
			case <-ctx.Done():
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchQuery, "query", "", "Only follow sessions matching this substring")
}
