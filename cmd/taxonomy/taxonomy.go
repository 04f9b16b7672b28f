// Package taxonomy manages the category tree, header alias and keyword file
package taxonomy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gagyebu/ledger-csv/cmd/root"
	"gagyebu/ledger-csv/internal/logging"
	"gagyebu/ledger-csv/internal/store"
	"gagyebu/ledger-csv/internal/taxonomy"

	"github.com/spf13/cobra"
)

var force bool

// Cmd groups the taxonomy subcommands
var Cmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Manage the category taxonomy file",
	Long: `Taxonomy writes, checks and prints the YAML file holding the (major, minor)
category tree, the header aliases and the ordered keyword table.`,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in taxonomy to the configured file",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		return RunInit(c.GetConfig().Taxonomy.File, force, c.GetLogger(), cmd.OutOrStdout())
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the taxonomy file and print its size",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		return RunValidate(c.GetConfig().Taxonomy.File, c.GetLogger(), cmd.OutOrStdout())
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the category tree in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(root.GetContainer().GetTables(), cmd.OutOrStdout())
	},
}

func init() {
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing taxonomy file")
	Cmd.AddCommand(initCmd, validateCmd, showCmd)
}

// RunInit saves the built-in tables to file. An existing file is only
// replaced with force.
func RunInit(file string, force bool, logger logging.Logger, w io.Writer) error {
	st := store.NewTaxonomyStore(file, logger)
	if existing, err := st.FindConfigFile(file); err == nil && !force {
		return fmt.Errorf("taxonomy file %s already exists (use --force to overwrite)", existing)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	path, err := st.SaveTaxonomy(taxonomy.Default())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "wrote %s\n", path)
	return err
}

// RunValidate loads file the way the commands do and prints what it holds.
func RunValidate(file string, logger logging.Logger, w io.Writer) error {
	tables, err := store.NewTaxonomyStore(file, logger).LoadTaxonomy()
	if err != nil {
		return err
	}

	minors := 0
	for _, major := range tables.Tree.Majors() {
		minors += len(tables.Tree.Minors(major))
	}
	_, err = fmt.Fprintf(w, "ok: %d majors, %d minors, %d header aliases, %d keywords\n",
		tables.Tree.Len(), minors, len(tables.Aliases), len(tables.Rules))
	return err
}

// RunShow prints one major per line followed by its minors.
func RunShow(tables taxonomy.Tables, w io.Writer) error {
	for _, b := range tables.Tree.Branches() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", b.Major, strings.Join(b.Minors, ", ")); err != nil {
			return err
		}
	}
	return nil
}
