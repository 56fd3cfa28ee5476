package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mailsnap/mailsnap/internal/backup"
	"github.com/mailsnap/mailsnap/internal/config"
	"github.com/mailsnap/mailsnap/internal/core"
	"github.com/mailsnap/mailsnap/internal/system"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run preflight validation without touching anything",
	Long:  `Verifies the source volume, the external tools, the mount point, leftover snapshots and the credentials file. Never stops the mail service and never clears leftovers, even with --force.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := rootCmd.PersistentFlags().GetString("config")
		lvName, _ := cmd.Flags().GetString("lv-name")
		vgName, _ := cmd.Flags().GetString("vg-name")
		rsyncHost, _ := cmd.Flags().GetString("rsync-host")
		pushoverPath, _ := cmd.Flags().GetString("pushover")
		force, _ := cmd.Flags().GetBool("force")

		pterm.DefaultHeader.Println("Mailsnap Check: Preflight")
		spinner, _ := pterm.DefaultSpinner.Start("Loading configuration & context...")

		cfg, err := config.Load(configFile)
		if err != nil {
			spinner.Fail("Failed to load config: " + err.Error())
			return err
		}

		ctx := core.NewSystemContext(true)
		system.Detect(ctx)
		spinner.Success("Configuration loaded")

		req := backup.Request{
			VGName:       vgName,
			LVName:       lvName,
			RsyncHost:    rsyncHost,
			PushoverPath: pushoverPath,
			Force:        force,
		}
		orch := backup.New(ctx, cfg, req)
		orch.SetReadOnly(true)

		pterm.Println()
		pterm.Println(pterm.FgCyan.Sprint("A backup run would perform:"))
		for _, line := range orch.Plan() {
			pterm.Printf("  %s %s\n", pterm.FgGreen.Sprint("+"), line)
		}
		pterm.Println()

		spinner, _ = pterm.DefaultSpinner.Start("Validating preconditions...")
		if err := orch.Validate(); err != nil {
			spinner.Fail("Preflight failed: " + err.Error())
			return err
		}
		spinner.Success("All preconditions hold")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().String("lv-name", "", "name of the logical volume to snapshot")
	checkCmd.Flags().String("vg-name", "", "name of the containing volume group")
	checkCmd.Flags().StringP("rsync-host", "H", "", "rsync target host name")
	checkCmd.Flags().String("pushover", "", "pushover credentials file (user_key + MailBackup.token)")
	checkCmd.Flags().BoolP("force", "f", false, "preview what --force would clear")
	_ = checkCmd.MarkFlagRequired("lv-name")
	_ = checkCmd.MarkFlagRequired("vg-name")
	_ = checkCmd.MarkFlagRequired("rsync-host")
}
