package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mailsnap/mailsnap/internal/config"
	"github.com/mailsnap/mailsnap/internal/crypto"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt [value]",
	Short: "Encrypt a secret for use in config files",
	Long: `Encrypts a value with the master key and prints the ENC[...] form,
ready to paste into mailsnap.yaml or the Pushover credentials file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value string
		if len(args) == 1 {
			value = args[0]
		} else {
			v, err := pterm.DefaultInteractiveTextInput.
				WithMask("*").
				WithDefaultText("Value to encrypt").
				Show()
			if err != nil {
				return err
			}
			value = v
		}

		key := config.MasterKey()
		if key == "" {
			pterm.Error.Println("No master key available. Set MAILSNAP_MASTER_KEY or create ~/.mailsnap/master.key.")
			return nil
		}

		encrypted, err := crypto.Encrypt(value, key)
		if err != nil {
			pterm.Error.Println("Encryption failed:", err)
			return err
		}

		pterm.Success.Println("Encrypted value:")
		pterm.Println(encrypted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
}
