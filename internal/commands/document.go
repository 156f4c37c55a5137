package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/mapdoc/internal/classifier"
	"github.com/temirov/mapdoc/internal/config"
	"github.com/temirov/mapdoc/internal/encoding"
	"github.com/temirov/mapdoc/internal/ignore"
	"github.com/temirov/mapdoc/internal/output"
	"github.com/temirov/mapdoc/internal/project"
	"github.com/temirov/mapdoc/internal/types"
)

const (
	errorLoadRulesFormat    = "loading ignore rules for %s: %w"
	errorBuildTreeFormat    = "building tree for %s: %w"
	errorWalkFormat         = "listing files in %s: %w"
	errorCreateOutputFormat = "creating output file %s: %w"
	errorCloseOutputFormat  = "closing output file %s: %w"
	errorAbsolutePathFormat = "getting absolute path for %s: %w"

	warningReadmeMessage = "unable to read README"
	warningFileMessage   = "unable to read file"
)

// GenerateOptions configures one document generation run.
type GenerateOptions struct {
	RootPath   string
	OutputPath string
	Sources    config.RuleSources
	Denylists  ignore.Denylists
	Classifier *classifier.Classifier
	Logger     *zap.Logger
	Now        func() time.Time
}

// DocumentGenerator assembles the Markdown document for one project root.
// Its rule set is loaded once at construction and never changes.
type DocumentGenerator struct {
	root       types.ValidatedPath
	rules      *ignore.RuleSet
	policy     ignore.Policy
	classifier classifier.Classifier
	logger     *zap.Logger
	now        func() time.Time
}

// NewDocumentGenerator resolves the root and reads its ignore files.
// A root that is missing or not a directory is reported as an error.
func NewDocumentGenerator(options GenerateOptions) (*DocumentGenerator, error) {
	validatedRoot, resolveError := project.ResolveRoot(options.RootPath)
	if resolveError != nil {
		return nil, resolveError
	}

	patterns, loadError := config.LoadRuleSources(validatedRoot.AbsolutePath, options.Sources)
	if loadError != nil {
		return nil, fmt.Errorf(errorLoadRulesFormat, validatedRoot.AbsolutePath, loadError)
	}
	ruleSet := ignore.NewRuleSet(patterns)

	var skipPaths []string
	if options.OutputPath != "" {
		absoluteOutputPath, absoluteError := filepath.Abs(options.OutputPath)
		if absoluteError != nil {
			return nil, fmt.Errorf(errorAbsolutePathFormat, options.OutputPath, absoluteError)
		}
		skipPaths = append(skipPaths, absoluteOutputPath)
	}

	fileClassifier := classifier.Default()
	if options.Classifier != nil {
		fileClassifier = *options.Classifier
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := options.Now
	if now == nil {
		now = time.Now
	}

	return &DocumentGenerator{
		root:  validatedRoot,
		rules: ruleSet,
		policy: ignore.Policy{
			Root:      validatedRoot.AbsolutePath,
			Rules:     ruleSet,
			Denylists: options.Denylists,
			SkipPaths: skipPaths,
		},
		classifier: fileClassifier,
		logger:     logger,
		now:        now,
	}, nil
}

// Patterns returns the active ignore patterns in evaluation order.
func (generator *DocumentGenerator) Patterns() []string {
	return generator.rules.Patterns()
}

// Generate writes the complete document to destination. Unreadable README and
// file contents become inline notices; only tree, walk and write failures are returned.
func (generator *DocumentGenerator) Generate(destination io.Writer) (types.ListingSummary, error) {
	var summary types.ListingSummary
	rootPath := generator.root.AbsolutePath
	markdownWriter := output.NewMarkdownWriter(destination)

	markdownWriter.WriteHeader(project.Describe(rootPath, generator.now()))

	if readmePath, found := project.FindReadme(rootPath); found {
		readmeContent, _, readmeError := encoding.DecodeFile(readmePath)
		if readmeError != nil {
			generator.logger.Warn(warningReadmeMessage, zap.String("path", readmePath), zap.Error(readmeError))
		}
		markdownWriter.WriteReadme(readmeContent, readmeError)
	}

	treeBuilder := TreeBuilder{Policy: generator.policy, Logger: generator.logger}
	treeLines, treeError := treeBuilder.Build(rootPath)
	if treeError != nil {
		return summary, fmt.Errorf(errorBuildTreeFormat, rootPath, treeError)
	}
	markdownWriter.WriteTree(treeLines)

	markdownWriter.WriteListingsHeading()
	walker := ListingWalker{Policy: generator.policy, Classifier: generator.classifier, Logger: generator.logger}
	walkError := walker.Walk(rootPath, func(entry types.FileEntry) error {
		summary.Add(entry)
		if !entry.IsText() {
			markdownWriter.WriteBinaryListing(entry)
			return nil
		}
		content, _, readError := encoding.DecodeFile(entry.AbsolutePath)
		if readError != nil {
			summary.FailedReads++
			generator.logger.Warn(warningFileMessage, zap.String("path", entry.AbsolutePath), zap.Error(readError))
		}
		markdownWriter.WriteTextListing(entry, content, readError)
		return nil
	})
	if walkError != nil {
		return summary, fmt.Errorf(errorWalkFormat, rootPath, walkError)
	}

	markdownWriter.WriteConclusion(summary)
	markdownWriter.WriteExcludedPatterns(generator.rules.Patterns())
	return summary, markdownWriter.Flush()
}

// GenerateFile writes the document to outputPath, creating or truncating it,
// and returns the absolute output path.
//
// #nosec G304
func (generator *DocumentGenerator) GenerateFile(outputPath string) (absoluteOutputPath string, summary types.ListingSummary, err error) {
	absoluteOutputPath, absoluteError := filepath.Abs(outputPath)
	if absoluteError != nil {
		return "", summary, fmt.Errorf(errorAbsolutePathFormat, outputPath, absoluteError)
	}
	outputFile, createError := os.Create(absoluteOutputPath)
	if createError != nil {
		return "", summary, fmt.Errorf(errorCreateOutputFormat, absoluteOutputPath, createError)
	}
	defer func() {
		if closeError := outputFile.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseOutputFormat, absoluteOutputPath, closeError)
		}
	}()

	summary, err = generator.Generate(outputFile)
	return absoluteOutputPath, summary, err
}
