package constants

// CLIName is the binary name used in user-facing output.
const CLIName = "liquidlint"

// ConfigFileName is the optional per-project configuration file.
const ConfigFileName = ".liquidlint.yml"

// LiquidFileExtension is the file extension of theme documents.
const LiquidFileExtension = ".liquid"

// MaxNameLength is the display-name length above which a warning is raised.
const MaxNameLength = 50

// MaxBlockCount is the max_blocks value above which a performance warning
// is raised, and the upper bound for list-picker limits.
const MaxBlockCount = 50
