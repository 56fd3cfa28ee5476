package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "mailsnap",
	Short:        "Point-in-time backup of an LVM-backed mail store",
	Long:         `Mailsnap pauses the mail service, snapshots its logical volume, resumes the service and replicates the snapshot to a backup host.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	rootCmd.PersistentFlags().StringP("config", "c", "mailsnap.yaml", "site config file path")
}
