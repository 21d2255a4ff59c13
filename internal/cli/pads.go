package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/u8slvn/otp-76/internal/otp"
	"github.com/u8slvn/otp-76/internal/otpcrypto"
	"github.com/u8slvn/otp-76/internal/output"
	otperr "github.com/u8slvn/otp-76/pkg/errors"
)

// groupsPerLine is how many key groups pads show prints on one line.
const groupsPerLine = 5

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var padsFile string

// padsCmd is the parent command for pad collection operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var padsCmd = &cobra.Command{
	Use:   "pads",
	Short: "Inspect and manage the stored pad collection",
	Long:  `List, show and delete pads in the pad file written by create-pads.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var padsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored pads",
	Long: `List the id and size of every pad in the pad file, in generation order.

Example:
  otp76 pads list
  otp76 pads list -o json`,
	Args: cobra.NoArgs,
	RunE: runPadsList,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var padsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the key groups of a pad",
	Long: `Print the key material of the first pad with the given id.

Example:
  otp76 pads show 48213`,
	Args: cobra.ExactArgs(1),
	RunE: runPadsShow,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var padsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a pad once it has been used",
	Long: `Remove every pad with the given id from the pad file.

A one-time pad must never be reused; delete it after use.

Example:
  otp76 pads delete 48213`,
	Args: cobra.ExactArgs(1),
	RunE: runPadsDelete,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(padsCmd)
	padsCmd.AddCommand(padsListCmd)
	padsCmd.AddCommand(padsShowCmd)
	padsCmd.AddCommand(padsDeleteCmd)

	padsCmd.PersistentFlags().StringVar(&padsFile, "file", "", "pad file to read (default from config)")
}

// PadSummary describes one pad in list output.
type PadSummary struct {
	ID     string `json:"id"`
	Groups int    `json:"groups"`
}

// PadsListResponse is the JSON form of pads list.
type PadsListResponse struct {
	File string       `json:"file"`
	Pads []PadSummary `json:"pads"`
}

// PadResponse is the JSON form of pads show.
type PadResponse struct {
	ID     string   `json:"id"`
	Keys   []int    `json:"keys"`
	Groups []string `json:"groups"`
}

// PadsDeleteResponse is the JSON form of pads delete.
type PadsDeleteResponse struct {
	ID        string `json:"id"`
	Deleted   int    `json:"deleted"`
	Remaining int    `json:"remaining"`
}

func runPadsList(cmd *cobra.Command, _ []string) error {
	store, collection, password, err := openStore()
	if err != nil {
		return err
	}
	password.Destroy()

	summaries := make([]PadSummary, 0, collection.Len())
	for _, pad := range collection.Pads() {
		summaries = append(summaries, PadSummary{ID: pad.ID(), Groups: pad.Len() / otp.KeySize})
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return output.WriteJSON(w, PadsListResponse{File: store.Path(), Pads: summaries})
	}

	if collection.IsEmpty() {
		outln(w, "No pads found.")
		return nil
	}

	table := output.NewTable("ID", "GROUPS")
	for _, s := range summaries {
		table.AddRow(s.ID, strconv.Itoa(s.Groups))
	}
	if err := table.Render(w); err != nil {
		return err
	}
	outln(w)
	out(w, "%d pads in %s\n", collection.Len(), store.Path())

	return nil
}

func runPadsShow(cmd *cobra.Command, args []string) error {
	id := args[0]

	_, collection, password, err := openStore()
	if err != nil {
		return err
	}
	password.Destroy()

	pad, ok := collection.Get(id)
	if !ok {
		return padNotFound(collection, id)
	}

	groups := pad.Groups()
	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		keys := make([]int, 0, pad.Len())
		for _, k := range pad.Keys() {
			keys = append(keys, int(k))
		}
		return output.WriteJSON(w, PadResponse{ID: pad.ID(), Keys: keys, Groups: groups})
	}

	out(w, "Pad %s\n\n", pad.ID())
	for i := 0; i < len(groups); i += groupsPerLine {
		end := min(i+groupsPerLine, len(groups))
		outln(w, strings.Join(groups[i:end], " "))
	}

	return nil
}

func runPadsDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	store, collection, password, err := openStore()
	if err != nil {
		return err
	}
	defer password.Destroy()

	removed := collection.Delete(id)
	if removed == 0 {
		return padNotFound(collection, id)
	}

	if err := store.Save(collection, password); err != nil {
		return err
	}
	logger.DebugAttrs("deleted pad",
		slog.String("id", id),
		slog.Int("removed", removed),
		slog.Int("remaining", collection.Len()),
	)

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return output.WriteJSON(w, PadsDeleteResponse{ID: id, Deleted: removed, Remaining: collection.Len()})
	}

	out(w, "Deleted %d pad(s) with id %s, %d remaining\n", removed, id, collection.Len())
	return nil
}

// openStore loads the pad file, asking for a password when it is encrypted.
// The returned password is nil for a plain file; callers must Destroy it.
func openStore() (*otp.FileStore, *otp.Collection, *otpcrypto.SecureBytes, error) {
	store := otp.NewFileStore(padsFilePath(padsFile))

	encrypted, err := store.IsEncrypted()
	if err != nil {
		return nil, nil, nil, err
	}

	var password *otpcrypto.SecureBytes
	if encrypted {
		if password, err = existingPassword(); err != nil {
			return nil, nil, nil, err
		}
	}

	collection, err := store.Load(password)
	if err != nil {
		password.Destroy()
		return nil, nil, nil, err
	}
	logger.DebugAttrs("loaded pad file",
		slog.String("path", store.Path()),
		slog.Bool("encrypted", encrypted),
		slog.Int("pads", collection.Len()),
	)

	return store, collection, password, nil
}

// padNotFound builds the not-found error for id, suggesting close ids.
func padNotFound(c *otp.Collection, id string) error {
	err := otperr.WithDetails(otperr.ErrPadNotFound, map[string]string{"id": id})
	if candidates := c.Suggest(id); len(candidates) > 0 {
		return otperr.WithSuggestion(err, fmt.Sprintf("did you mean %s?", strings.Join(candidates, ", ")))
	}
	return otperr.WithSuggestion(err, "list stored pads with: otp76 pads list")
}
