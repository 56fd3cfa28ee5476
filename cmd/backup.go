package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mailsnap/mailsnap/internal/backup"
	"github.com/mailsnap/mailsnap/internal/config"
	"github.com/mailsnap/mailsnap/internal/core"
	"github.com/mailsnap/mailsnap/internal/system"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the mail volume and replicate it to the backup host",
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := rootCmd.PersistentFlags().GetString("config")
		lvName, _ := cmd.Flags().GetString("lv-name")
		vgName, _ := cmd.Flags().GetString("vg-name")
		rsyncHost, _ := cmd.Flags().GetString("rsync-host")
		pushoverPath, _ := cmd.Flags().GetString("pushover")
		force, _ := cmd.Flags().GetBool("force")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		cfg, err := config.Load(configFile)
		if err != nil {
			pterm.Error.Printf("Failed to load config: %v\n", err)
			return err
		}

		ctx := core.NewSystemContext(dryRun)
		system.Detect(ctx)

		req := backup.Request{
			VGName:       vgName,
			LVName:       lvName,
			RsyncHost:    rsyncHost,
			PushoverPath: pushoverPath,
			Force:        force,
		}
		orch := backup.New(ctx, cfg, req)

		if dryRun {
			fmt.Println("🔍 [DRY-RUN MODE] No changes will be made to the system.")
		}
		fmt.Printf("📦 Backing up %s to %s\n\n", orch.Names().SourceLV, rsyncHost)

		if err := orch.Run(); err != nil {
			pterm.Error.Printf("Backup failed: %v\n", err)
			return err
		}

		fmt.Printf("\n🏁 Backup of %s completed.\n", orch.Names().SourceLV)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().String("lv-name", "", "name of the logical volume to snapshot")
	backupCmd.Flags().String("vg-name", "", "name of the containing volume group")
	backupCmd.Flags().StringP("rsync-host", "H", "", "rsync target host name")
	backupCmd.Flags().String("pushover", "", "pushover credentials file (user_key + MailBackup.token)")
	backupCmd.Flags().BoolP("force", "f", false, "forcibly remove an existing snapshot and/or mount point")
	backupCmd.Flags().BoolP("dry-run", "d", false, "show what would happen without changing anything")
	_ = backupCmd.MarkFlagRequired("lv-name")
	_ = backupCmd.MarkFlagRequired("vg-name")
	_ = backupCmd.MarkFlagRequired("rsync-host")
}
