package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/slidecat-go/pkg/slidecat"
	"github.com/ukaji3/slidecat-go/pkg/slidecat/models"
	"github.com/ukaji3/slidecat-go/pkg/slidecat/output"
)

// maxListedFiles is the number of split files listed in full.
const maxListedFiles = 10

func newSplitCmd(a *app) *cobra.Command {
	var (
		outputDir string
		chunkSize int
	)
	cmd := &cobra.Command{
		Use:   "split <input.pptx>",
		Short: "Split a presentation into single slides or chunks of slides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.cfg.Clone()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output-dir") {
				cfg.Split.OutputDir = outputDir
			}
			if cmd.Flags().Changed("chunk-size") {
				cfg.Split.ChunkSize = chunkSize
			}
			return runSplit(cmd.OutOrStdout(), args[0], cfg.Split.OutputDir, cfg.Split.ChunkSize, a.options(cfg))
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./slides", "Output directory for split files")
	cmd.Flags().IntVarP(&chunkSize, "chunk-size", "c", slidecat.DefaultChunkSize, "Number of slides per file")
	return cmd
}

func runSplit(w io.Writer, input, outDir string, chunkSize int, opts slidecat.Options) error {
	if chunkSize != slidecat.DefaultChunkSize {
		fmt.Fprintf(w, "Splitting %s into chunks of %d slides...\n", input, chunkSize)
	} else {
		fmt.Fprintf(w, "Splitting %s...\n", input)
	}

	files, err := slidecat.Split(input, outDir, chunkSize, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "✓ Successfully split into %d files\n", len(files))
	fmt.Fprintf(w, "  Output directory: %s\n", absPath(outDir))
	if len(files) <= maxListedFiles {
		for _, f := range files {
			fmt.Fprintf(w, "    - %s\n", filepath.Base(f))
		}
	} else {
		fmt.Fprintf(w, "    - %s\n", filepath.Base(files[0]))
		fmt.Fprintln(w, "    - ...")
		fmt.Fprintf(w, "    - %s\n", filepath.Base(files[len(files)-1]))
	}
	return nil
}

func newMergeCmd(a *app) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "merge <input.pptx>... -o <output.pptx>",
		Short: "Merge multiple presentations into one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.cfg.Clone()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Merging %d files...\n", len(args))
			for _, in := range args {
				fmt.Fprintf(w, "  - %s\n", filepath.Base(in))
			}

			out, err := slidecat.Merge(args, outputPath, a.options(cfg))
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "✓ Successfully merged into %s\n", absPath(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newExtractCmd(a *app) *cobra.Command {
	var (
		outputPath string
		r          slidecat.SlideRange
	)
	cmd := &cobra.Command{
		Use:   "extract <input.pptx> -o <output.pptx> -r <start-end>",
		Short: "Extract a range of slides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.cfg.Clone()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			end := "end"
			if !r.OpenEnded {
				end = fmt.Sprint(r.End)
			}
			fmt.Fprintf(w, "Extracting slides %d to %s from %s...\n", r.Start, end, args[0])

			out, err := slidecat.Extract(args[0], outputPath, r, a.options(cfg))
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "✓ Successfully extracted to %s\n", absPath(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")
	cmd.Flags().VarP(newRangeValue(&r), "range", "r", `Slide range to extract (e.g. "1-5" or "3-")`)
	_ = cmd.MarkFlagRequired("output")
	_ = cmd.MarkFlagRequired("range")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	var (
		verbose    bool
		reportPath string
		pretty     bool
	)
	cmd := &cobra.Command{
		Use:   "verify <input.pptx>",
		Short: "Verify a presentation and check for errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.cfg.Clone()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Verifying %s...\n", args[0])

			report := slidecat.Verify(args[0], a.options(cfg))
			if reportPath != "" {
				if err := writeReport(&report, reportPath, pretty); err != nil {
					return err
				}
			}
			if !report.Valid {
				fmt.Fprintln(cmd.ErrOrStderr(), "✗ File is invalid")
				return errors.New(report.Error)
			}
			printReport(w, &report, verbose)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed information for each slide")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write the report to a .json or .xlsx file")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print the JSON report")
	return cmd
}

func printReport(w io.Writer, report *models.VerificationReport, verbose bool) {
	fmt.Fprintln(w, "✓ File is valid")
	fmt.Fprintf(w, "  Total slides: %d\n", report.Slides)
	fmt.Fprintf(w, "  Slide layouts: %d\n", report.Layouts)
	fmt.Fprintf(w, "  Slide masters: %d\n", report.Masters)

	if verbose {
		fmt.Fprintln(w, "\n  Slide details:")
		for _, d := range report.SlideDetails {
			status := "✓"
			if d.Error != "" {
				status = "✗"
			}
			line := fmt.Sprintf("    %s Slide %d: %d shapes", status, d.Number, d.Shapes)
			if d.HasTitle {
				line += " (has title)"
			}
			if d.Error != "" {
				line += " - ERROR: " + d.Error
			}
			fmt.Fprintln(w, line)
		}
	}

	if broken := report.SlidesWithErrors(); len(broken) > 0 {
		fmt.Fprintf(w, "\n  Warning: %d slide(s) have errors\n", len(broken))
		for _, d := range report.SlideDetails {
			if d.Error != "" {
				fmt.Fprintf(w, "    - Slide %d: %s\n", d.Number, d.Error)
			}
		}
	}
}

func writeReport(report *models.VerificationReport, path string, pretty bool) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := output.ToJSON(report, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	case ".xlsx":
		if err := output.WriteXLSX(report, path); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s (must be .json or .xlsx)", path)
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
