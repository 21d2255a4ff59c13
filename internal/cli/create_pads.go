package cli

import (
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/u8slvn/otp-76/internal/config"
	"github.com/u8slvn/otp-76/internal/otp"
	"github.com/u8slvn/otp-76/internal/otpcrypto"
	"github.com/u8slvn/otp-76/internal/output"
	"github.com/u8slvn/otp-76/internal/parse"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// createPads is the raw --pads value; empty means the configured default.
	createPads string
	// createKeys is the raw --keys value; empty means the configured default.
	createKeys string
	// createFile overrides the configured pad file.
	createFile string
	// createEncrypt forces age encryption of the pad file.
	createEncrypt bool
)

// createPadsCmd generates a new pad collection.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var createPadsCmd = &cobra.Command{
	Use:   "create-pads",
	Short: "Generate a new collection of one-time pads",
	Long: `Generate a collection of one-time pads and write it to the pad file,
replacing any existing collection.

Each pad holds --keys groups of five random digits and a random five-digit id.
Both counts must be between 1 and 100.

Example:
  otp76 create-pads
  otp76 create-pads --pads 5 --keys 40
  otp76 create-pads --file ./pads.json --encrypt`,
	Args: cobra.NoArgs,
	RunE: runCreatePads,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(createPadsCmd)

	createPadsCmd.Flags().StringVar(&createPads, "pads", "", "number of pads to generate, 1-100 (default from config: 10)")
	createPadsCmd.Flags().StringVar(&createKeys, "keys", "", "number of key groups per pad, 1-100 (default from config: 20)")
	createPadsCmd.Flags().StringVar(&createFile, "file", "", "pad file to write (default from config)")
	createPadsCmd.Flags().BoolVar(&createEncrypt, "encrypt", false, "encrypt the pad file with a password")
}

// CreatePadsResponse is the JSON form of a create-pads result.
type CreatePadsResponse struct {
	File       string   `json:"file"`
	Encrypted  bool     `json:"encrypted"`
	KeysPerPad int      `json:"keys_per_pad"`
	Pads       []string `json:"pads"`
}

func runCreatePads(cmd *cobra.Command, _ []string) error {
	nbPads, err := countFlag(createPads, cfg.Generation.Pads)
	if err != nil {
		return err
	}
	nbKeys, err := countFlag(createKeys, cfg.Generation.Keys)
	if err != nil {
		return err
	}

	generator := otp.NewGenerator(otpcrypto.NewSource())
	pads, err := generator.GeneratePads(nbPads, nbKeys)
	if err != nil {
		logger.ErrorAttrs("pad generation failed", slog.Any("error", err))
		return err
	}
	logger.DebugAttrs("generated pads",
		slog.Int("pads", nbPads.Int()),
		slog.Int("keys", nbKeys.Int()),
	)

	encrypt := createEncrypt || cfg.Storage.Encrypt
	var password *otpcrypto.SecureBytes
	if encrypt {
		if password, err = newPassword(); err != nil {
			return err
		}
		defer password.Destroy()
		logger.DebugAttrs("encryption password ready", slog.Bool("mlocked", password.IsLocked()))
	}

	store := otp.NewFileStore(padsFilePath(createFile))
	if store.Exists() {
		logger.Debug("replacing existing pad file %s", store.Path())
	}
	collection := otp.NewCollection(pads...)
	if err := store.Save(collection, password); err != nil {
		return err
	}
	logger.DebugAttrs("saved pad file",
		slog.String("path", store.Path()),
		slog.Bool("encrypted", encrypt),
	)

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return output.WriteJSON(w, CreatePadsResponse{
			File:       store.Path(),
			Encrypted:  encrypt,
			KeysPerPad: nbKeys.Int(),
			Pads:       collection.IDs(),
		})
	}

	for _, pad := range pads {
		out(w, "Generated pad with id: %s\n", pad.ID())
	}
	outln(w)
	out(w, "Saved %d pads to %s\n", collection.Len(), store.Path())
	if encrypt {
		outln(w, "The pad file is encrypted. Keep your password safe.")
	}

	return nil
}

// countFlag validates a count flag, falling back to the configured value
// when the flag was not given.
func countFlag(raw string, fallback int) (parse.Count, error) {
	if raw == "" {
		raw = strconv.Itoa(fallback)
	}
	return parse.ParseCount(raw)
}

// padsFilePath returns override when set and the configured pad file otherwise.
func padsFilePath(override string) string {
	if override != "" {
		return config.ExpandPath(override)
	}
	return cfg.PadsFile()
}
