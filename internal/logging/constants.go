package logging

// Standard field names for structured log entries.
const (
	FieldFile        = "file_path"
	FieldCategory    = "category"
	FieldKeyword     = "keyword"
	FieldDescription = "description"
	FieldRule        = "rule"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldWorkers     = "workers"
	FieldDelimiter   = "delimiter"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldRow         = "row"
)
