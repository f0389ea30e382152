package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/taxonomy"
)

func newTaxonomyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "Inspect and validate skill taxonomies",
	}

	validateCmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a taxonomy JSON file against the taxonomy schema",
		Args:  cobra.ExactArgs(1),
		RunE:  runTaxonomyValidate,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the taxonomy in use as JSON",
		Args:  cobra.NoArgs,
		RunE:  runTaxonomyShow,
	}
	showCmd.Flags().String("taxonomy", "", "Path to a taxonomy JSON file (default: built-in)")

	cmd.AddCommand(validateCmd, showCmd)
	return cmd
}

func runTaxonomyValidate(cmd *cobra.Command, args []string) error {
	tax, err := taxonomy.Load(args[0])
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), //nolint:errcheck
		"Validation passed: %d skill categories (%d phrases), %d ATS categories (%d phrases), %d stopwords\n",
		len(tax.Skills), tax.Skills.PhraseCount(), len(tax.ATS), tax.ATS.PhraseCount(), len(tax.Stopwords))
	fmt.Fprintf(cmd.OutOrStdout(), "  Skill categories: %s\n", strings.Join(tax.Skills.Names(), ", ")) //nolint:errcheck
	fmt.Fprintf(cmd.OutOrStdout(), "  ATS categories:   %s\n", strings.Join(tax.ATS.Names(), ", "))    //nolint:errcheck
	return nil
}

func runTaxonomyShow(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.logger.Sync() //nolint:errcheck

	tax, err := rt.loadTaxonomy()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(tax, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal taxonomy: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
