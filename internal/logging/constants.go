package logging

// Field names shared by every component so log output stays greppable.
const (
	FieldFile       = "file_path"
	FieldSource     = "source"
	FieldRow        = "row"
	FieldColumn     = "column"
	FieldHeader     = "header"
	FieldCanonical  = "canonical"
	FieldMajor      = "major"
	FieldMinor      = "minor"
	FieldKeyword    = "keyword"
	FieldStrategy   = "strategy"
	FieldNotice     = "notice"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldCount      = "count"
	FieldMonth      = "month"
	FieldDelimiter  = "delimiter"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
