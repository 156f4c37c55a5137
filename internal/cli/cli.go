// Package cli provides the mapdoc command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/mapdoc/internal/commands"
	"github.com/temirov/mapdoc/internal/config"
	"github.com/temirov/mapdoc/internal/ignore"
	"github.com/temirov/mapdoc/internal/services/clipboard"
	"github.com/temirov/mapdoc/internal/tokenizer"
	"github.com/temirov/mapdoc/internal/utils"
)

const (
	rootUse              = "mapdoc <path>"
	rootShortDescription = "generate a Markdown document describing a project"
	rootLongDescription  = `mapdoc walks a project directory and writes a single Markdown document with
project info, the README, an ASCII tree of the structure and the contents of
every text file. Paths matched by .gitignore, .mapignore or the built-in
denylists are left out.`
	rootUsageExample = `  # Document the current directory into project_analysis.md
  mapdoc .

  # Write to a custom file and skip extra directories and suffixes
  mapdoc ./service -o service.md --ignore-dirs dist,coverage --ignore-exts .lock

  # Report a token estimate and copy the result to the clipboard
  mapdoc . --tokens --clipboard`

	outputFlagName      = "output"
	outputFlagShorthand = "o"
	ignoreDirsFlagName  = "ignore-dirs"
	ignoreExtsFlagName  = "ignore-exts"
	noGitignoreFlagName = "no-gitignore"
	noMapignoreFlagName = "no-mapignore"
	configFlagName      = "config"
	tokensFlagName      = "tokens"
	modelFlagName       = "model"
	clipboardFlagName   = "clipboard"
	versionFlagName     = "version"

	outputFlagDescription      = "output Markdown file"
	ignoreDirsFlagDescription  = "additional directory names to exclude"
	ignoreExtsFlagDescription  = "additional file suffixes to exclude"
	noGitignoreFlagDescription = "do not read .gitignore"
	noMapignoreFlagDescription = "do not read .mapignore"
	configFlagDescription      = "configuration file to use instead of ./" + utils.ConfigFileName
	tokensFlagDescription      = "report a token estimate for the generated document"
	modelFlagDescription       = "tokenizer model used with --tokens"
	clipboardFlagDescription   = "copy the generated document to the clipboard"
	versionFlagDescription     = "display application version"

	versionTemplate        = "mapdoc version: %s\n"
	generatedMessageFormat = "Documentation generated: %s\n"
	tokensMessageFormat    = "Tokens: %d (%s)\n"

	errorConfigurationFormat = "load configuration: %w"
	errorTokenizerFormat     = "initialize tokenizer for %s: %w"

	warningTokenCountMessage = "unable to count tokens"
	warningClipboardMessage  = "unable to copy document to clipboard"
)

// errMissingPath is returned when no project path is given.
var errMissingPath = errors.New("project path is required")

// Dependencies are the collaborators the commands use for output and side effects.
type Dependencies struct {
	Logger           *zap.Logger
	Stdout           io.Writer
	Copier           clipboard.Copier
	WorkingDirectory string
}

// Execute runs the mapdoc application with the process arguments.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{
		Logger: logger,
		Stdout: os.Stdout,
		Copier: clipboard.NewService(),
	})
	rootCommand.SetArgs(joinFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// documentOptions holds the raw flag values of the root command.
type documentOptions struct {
	output      string
	ignoreDirs  []string
	ignoreExts  []string
	noGitignore bool
	noMapignore bool
	configPath  string
	tokens      bool
	model       string
	clipboard   bool
	showVersion bool
}

// runSettings is the result of layering flags over the configuration files.
type runSettings struct {
	output       string
	denylists    ignore.Denylists
	sources      config.RuleSources
	countTokens  bool
	model        string
	copyDocument bool
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Stdout == nil {
		dependencies.Stdout = os.Stdout
	}

	var options documentOptions
	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, err := fmt.Fprintf(dependencies.Stdout, versionTemplate, utils.GetApplicationVersion())
				return err
			}
			if len(arguments) == 0 {
				return errMissingPath
			}
			return runDocument(command, arguments[0], options, dependencies)
		},
	}

	bindDocumentFlags(rootCommand.Flags(), &options)
	rootCommand.PersistentFlags().BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand(dependencies))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// bindDocumentFlags registers the documentation flags on flagSet.
func bindDocumentFlags(flagSet *pflag.FlagSet, options *documentOptions) {
	flagSet.StringVarP(&options.output, outputFlagName, outputFlagShorthand, utils.DefaultOutputFileName, outputFlagDescription)
	flagSet.StringSliceVar(&options.ignoreDirs, ignoreDirsFlagName, nil, ignoreDirsFlagDescription)
	flagSet.StringSliceVar(&options.ignoreExts, ignoreExtsFlagName, nil, ignoreExtsFlagDescription)
	flagSet.BoolVar(&options.noGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	flagSet.BoolVar(&options.noMapignore, noMapignoreFlagName, false, noMapignoreFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerSwitchFlag(flagSet, &options.tokens, tokensFlagName, tokensFlagDescription)
	flagSet.StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	registerSwitchFlag(flagSet, &options.clipboard, clipboardFlagName, clipboardFlagDescription)
}

func runDocument(command *cobra.Command, projectPath string, options documentOptions, dependencies Dependencies) error {
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: dependencies.WorkingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return fmt.Errorf(errorConfigurationFormat, loadError)
	}
	settings := resolveSettings(command.Flags(), options, applicationConfiguration)

	generator, generatorError := commands.NewDocumentGenerator(commands.GenerateOptions{
		RootPath:   projectPath,
		OutputPath: settings.output,
		Sources:    settings.sources,
		Denylists:  settings.denylists,
		Logger:     dependencies.Logger,
	})
	if generatorError != nil {
		return generatorError
	}
	absoluteOutputPath, _, generateError := generator.GenerateFile(settings.output)
	if generateError != nil {
		return generateError
	}
	if _, err := fmt.Fprintf(dependencies.Stdout, generatedMessageFormat, absoluteOutputPath); err != nil {
		return err
	}

	if settings.countTokens {
		if err := reportTokens(dependencies, absoluteOutputPath, settings.model); err != nil {
			return err
		}
	}
	if settings.copyDocument {
		if err := clipboard.CopyDocument(dependencies.Copier, absoluteOutputPath); err != nil {
			dependencies.Logger.Warn(warningClipboardMessage, zap.String("path", absoluteOutputPath), zap.Error(err))
		}
	}
	return nil
}

// resolveSettings layers explicitly set flags over the loaded configuration.
// Directory and suffix additions from both sources are merged with the defaults.
func resolveSettings(flagSet *pflag.FlagSet, options documentOptions, applicationConfiguration config.ApplicationConfiguration) runSettings {
	settings := runSettings{
		output: options.output,
		denylists: ignore.DefaultDenylists().
			WithAdditions(applicationConfiguration.IgnoreDirs, applicationConfiguration.IgnoreExts).
			WithAdditions(options.ignoreDirs, options.ignoreExts),
		sources: config.RuleSources{
			UseGitignore: config.BoolOrDefault(applicationConfiguration.UseGitignore, true),
			UseMapignore: config.BoolOrDefault(applicationConfiguration.UseMapignore, true),
		},
		countTokens:  config.BoolOrDefault(applicationConfiguration.Tokens.Enabled, false),
		model:        options.model,
		copyDocument: config.BoolOrDefault(applicationConfiguration.Clipboard, false),
	}

	if !flagSet.Changed(outputFlagName) && applicationConfiguration.Output != "" {
		settings.output = applicationConfiguration.Output
	}
	if flagSet.Changed(noGitignoreFlagName) {
		settings.sources.UseGitignore = !options.noGitignore
	}
	if flagSet.Changed(noMapignoreFlagName) {
		settings.sources.UseMapignore = !options.noMapignore
	}
	if flagSet.Changed(tokensFlagName) {
		settings.countTokens = options.tokens
	}
	if !flagSet.Changed(modelFlagName) && applicationConfiguration.Tokens.Model != "" {
		settings.model = applicationConfiguration.Tokens.Model
	}
	if flagSet.Changed(clipboardFlagName) {
		settings.copyDocument = options.clipboard
	}
	return settings
}

func reportTokens(dependencies Dependencies, documentPath string, model string) error {
	counter, encodingName, counterError := tokenizer.NewCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		return fmt.Errorf(errorTokenizerFormat, model, counterError)
	}
	result, countError := tokenizer.CountFile(counter, documentPath)
	if countError != nil || !result.Counted {
		dependencies.Logger.Warn(warningTokenCountMessage, zap.String("path", documentPath), zap.Error(countError))
		return nil
	}
	_, err := fmt.Fprintf(dependencies.Stdout, tokensMessageFormat, result.Tokens, encodingName)
	return err
}
