package cli

import (
	"github.com/spf13/cobra"

	"github.com/BartekS5/fdload/pkg/fdload"
)

type LoadOptions struct {
	MappingFile string
	BatchSize   int
	DryRun      bool
	Bucket      string
	Folder      string
	LogLevel    string
	LogFile     string
}

func NewLoadCmd() *cobra.Command {
	opts := &LoadOptions{}

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Append every mapped CSV object to its destination table",
		Long: `Connects to object storage and to the database, then loads
customers.csv, drivers.csv, restaurants.csv, orders.csv and order_items.csv
in that order. Missing objects are skipped; a file that fails to load is
reported and the next file is attempted. Connection failures abort the run
before any file is read.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runLoad(c.Context(), opts, c.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.MappingFile, "mapping", "m", "", "Path to a JSON or YAML mapping file (default: built-in food delivery mapping)")
	cmd.Flags().IntVarP(&opts.BatchSize, "batch-size", "b", fdload.DefaultBatchSize, "Rows per batch")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Read and convert every file without appending rows")
	cmd.Flags().StringVar(&opts.Bucket, "bucket", fdload.DefaultBucket, "Source bucket")
	cmd.Flags().StringVar(&opts.Folder, "folder", fdload.DefaultFolder, "Folder inside the bucket holding the CSV files")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default: LOG_LEVEL or warn)")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Also write log entries to this file")

	return cmd
}
