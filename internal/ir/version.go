package ir

// Version constants for the instruction tree and interpreter.
const (
	// IRVersion is the instruction tree JSON schema version.
	IRVersion = "1"

	// EngineVersion is the interpreter version.
	EngineVersion = "0.1.0"
)
