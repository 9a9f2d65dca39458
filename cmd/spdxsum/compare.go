package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lfscan/spdx-summarizer/internal/archive"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a scan report against the contents of a source archive",
	Long:  "Compare parses an SPDX tag:value report and lists a zip or tar archive, then writes CSV listings of files found only in the archive, only in the report, and in both.",
	RunE:  runCompare,
}

var (
	compareReportFile  string
	compareArchiveFile string
	compareFossology   bool
	compareOutDir      string
)

func init() {
	compareCmd.Flags().StringVar(&compareReportFile, "report", "", "Path to SPDX tag:value report (required)")
	compareCmd.Flags().StringVar(&compareArchiveFile, "archive", "", "Path to zip or tar archive (required)")
	compareCmd.Flags().BoolVar(&compareFossology, "fossology", false, "Parse the FOSSology sentinel-delimited dialect")
	compareCmd.Flags().StringVar(&compareOutDir, "out-dir", ".", "Directory for the comparison CSV files")
	_ = compareCmd.MarkFlagRequired("report")
	_ = compareCmd.MarkFlagRequired("archive")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, _ []string) error {
	// the report parse and the archive listing are independent, so
	// run them concurrently
	var reportFiles []string
	var archiveFiles []string

	var g errgroup.Group
	g.Go(func() error {
		// keep report paths as written; archive members carry their
		// top-level directory, so stripping would break the match
		rows, _, err := loadReport(compareReportFile, compareFossology, false)
		if err != nil {
			return err
		}
		reportFiles = make([]string, len(rows))
		for i, row := range rows {
			reportFiles[i] = row.FileName
		}
		return nil
	})
	g.Go(func() error {
		var err error
		archiveFiles, err = archive.ListFiles(compareArchiveFile)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	comp := archive.Compare(reportFiles, archiveFiles)
	fmt.Printf("Archive only: %d files; report only: %d files; both: %d files.\n",
		len(comp.ArchiveOnly), len(comp.ReportOnly), len(comp.Both))

	buckets := map[string][]string{
		"archive_only.csv": comp.ArchiveOnly,
		"report_only.csv":  comp.ReportOnly,
		"both.csv":         comp.Both,
	}
	for name, filenames := range buckets {
		out := filepath.Join(compareOutDir, name)
		if err := archive.WriteFileListCSV(out, filenames); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", out)
	}
	return nil
}
