package model

// Source identifies who asked for a normalization.
type Source string

const (
	SourceAPI      Source = "api"
	SourceImporter Source = "importer"
	SourceCLI      Source = "cli"
)

func (s Source) String() string { return string(s) }

// Outcome classifies a normalization attempt.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeInvalid     Outcome = "invalid"
	OutcomeUnknownCode Outcome = "unknown_code" // kept, but without '+' prefix
)

func (o Outcome) String() string { return string(o) }

func (o Outcome) Valid() bool {
	return o == OutcomeOK || o == OutcomeInvalid || o == OutcomeUnknownCode
}
