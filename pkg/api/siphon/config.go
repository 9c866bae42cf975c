package siphon

// Config holds the settings of a subnet-siphon run. It can be stored as YAML.
type Config struct {
	OutputCSV     string `json:"outputCSV"`
	OutputText    string `json:"outputText"`
	Workers       int    `json:"workers,omitempty"`
	PartitionSize int    `json:"partitionSize"`
	ChunkSize     int    `json:"chunkSize"`
	BroadestFirst bool   `json:"broadestFirst,omitempty"`
	LogLevel      string `json:"logLevel,omitempty"`
}
