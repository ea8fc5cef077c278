// Package fdload holds the process-wide constants and sentinel errors
// shared by the loader's packages.
package fdload

// Exit codes returned by the fdload binary.
const (
	ExitSuccess            = 0  // Run completed, including runs where files were skipped or failed
	ExitGeneralError       = 1  // Unknown or unclassified error
	ExitUsageError         = 2  // CLI usage error (unknown flag, bad argument)
	ExitConfigError        = 10 // Invalid configuration or mapping file
	ExitStorageConnection  = 11 // Object store could not be reached
	ExitDatabaseConnection = 12 // Database could not be reached
)

const (
	// DefaultBucket is the bucket holding the food delivery dataset.
	DefaultBucket = "food-delivery-bucket-20250730"
	// DefaultFolder is the folder inside DefaultBucket the CSV files live in.
	DefaultFolder = "food_delivery_dataset"
	// DefaultBatchSize is the number of CSV rows appended per batch.
	DefaultBatchSize = 10000
)
