package logging

// Attribute keys shared by the logger and the log reader.
const (
	KeyDataset   = "dataset"
	KeyColumn    = "column"
	KeyComponent = "component"
	KeyError     = "error"
)
