package utils

const (
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "mapdoc failed"
	// ConfigFileName is the local configuration file looked up in the working directory.
	ConfigFileName = ".mapdoc.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".mapdoc"
	// GlobalConfigFileName is the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// DefaultOutputFileName is the document written when no output path is configured.
	DefaultOutputFileName = "project_analysis.md"
)
