package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/temirov/mapdoc/internal/commands"
	"github.com/temirov/mapdoc/internal/config"
	"github.com/temirov/mapdoc/internal/ignore"
	"github.com/temirov/mapdoc/internal/types"
)

const (
	structureHeading = "## Structure\n\n"
	listingsHeading  = "## File Listings\n\n"
	conclusionHead   = "## Conclusion\n\n"
)

var fixedNow = func() time.Time { return time.Date(2024, time.March, 5, 10, 0, 0, 0, time.Local) }

func writeProjectFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for relativePath, content := range files {
		absolutePath := filepath.Join(root, filepath.FromSlash(relativePath))
		if err := os.MkdirAll(filepath.Dir(absolutePath), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", relativePath, err)
		}
		if err := os.WriteFile(absolutePath, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", relativePath, err)
		}
	}
}

func newGenerator(t *testing.T, root string, outputPath string) *commands.DocumentGenerator {
	t.Helper()
	generator, err := commands.NewDocumentGenerator(commands.GenerateOptions{
		RootPath:   root,
		OutputPath: outputPath,
		Sources:    config.RuleSources{UseGitignore: true, UseMapignore: true},
		Denylists:  ignore.DefaultDenylists(),
		Now:        fixedNow,
	})
	if err != nil {
		t.Fatalf("NewDocumentGenerator: %v", err)
	}
	return generator
}

func generateDocument(t *testing.T, generator *commands.DocumentGenerator) (string, types.ListingSummary) {
	t.Helper()
	var buffer bytes.Buffer
	summary, err := generator.Generate(&buffer)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return buffer.String(), summary
}

// section returns the document text between two headings.
func section(t *testing.T, document string, startHeading string, endHeading string) string {
	t.Helper()
	startIndex := strings.Index(document, startHeading)
	endIndex := strings.Index(document, endHeading)
	if startIndex < 0 || endIndex < startIndex {
		t.Fatalf("section %q..%q not found in:\n%s", startHeading, endHeading, document)
	}
	return document[startIndex:endIndex]
}

func TestTreeBuilderOrdering(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{
		"b.py":     "print('b')\n",
		"a.py":     "print('a')\n",
		"sub/c.py": "print('c')\n",
	})

	builder := commands.TreeBuilder{Policy: ignore.Policy{Root: root, Denylists: ignore.DefaultDenylists()}}
	lines, err := builder.Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	expected := []string{
		"├── a.py",
		"├── b.py",
		"└── sub/",
		"    └── c.py",
	}
	if strings.Join(lines, "\n") != strings.Join(expected, "\n") {
		t.Fatalf("unexpected tree:\n%s\nwant:\n%s", strings.Join(lines, "\n"), strings.Join(expected, "\n"))
	}
}

func TestTreeBuilderNestedPrefixes(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{
		"main.go":          "package main\n",
		"alpha/one.txt":    "1",
		"alpha/deep/x.txt": "x",
		"beta/two.txt":     "2",
	})

	builder := commands.TreeBuilder{Policy: ignore.Policy{Root: root}}
	lines, err := builder.Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	expected := []string{
		"├── main.go",
		"├── alpha/",
		"│   ├── one.txt",
		"│   └── deep/",
		"│       └── x.txt",
		"└── beta/",
		"    └── two.txt",
	}
	if strings.Join(lines, "\n") != strings.Join(expected, "\n") {
		t.Fatalf("unexpected tree:\n%s", strings.Join(lines, "\n"))
	}
}

func TestTreeBuilderMissingRoot(t *testing.T) {
	builder := commands.TreeBuilder{}
	if _, err := builder.Build(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing root")
	}
}

func TestListingWalkerOrderAndClassification(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{
		"z.txt":            "zzz",
		"a.md":             "# a",
		"data.bin":         string(make([]byte, 64)),
		"pkg/inner.go":     "package pkg\n",
		"pkg/deep/x.yml":   "key: value\n",
		"__pycache__/m.py": "cached",
	})

	walker := commands.ListingWalker{
		Policy: ignore.Policy{Root: root, Denylists: ignore.DefaultDenylists()},
	}
	var visited []string
	var classifications []string
	err := walker.Walk(root, func(entry types.FileEntry) error {
		visited = append(visited, entry.RelativePath)
		classifications = append(classifications, entry.Classification)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	expectedOrder := []string{"a.md", "data.bin", "z.txt", "pkg/inner.go", "pkg/deep/x.yml"}
	if strings.Join(visited, ",") != strings.Join(expectedOrder, ",") {
		t.Fatalf("unexpected order %v", visited)
	}
	if classifications[1] != types.ClassificationBinary {
		t.Fatalf("expected data.bin to be binary, got %s", classifications[1])
	}
	for _, index := range []int{0, 2, 3, 4} {
		if classifications[index] != types.ClassificationText {
			t.Fatalf("expected %s to be text, got %s", visited[index], classifications[index])
		}
	}
}

func TestGenerateExcludesGitignoredDirectory(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{
		".gitignore":       "build/\n",
		"main.go":          "package main\n",
		"build/output.bin": "compiled",
		"build/notes.txt":  "notes",
	})

	document, _ := generateDocument(t, newGenerator(t, root, ""))
	if strings.Contains(document, "build/output.bin") || strings.Contains(document, "build/notes.txt") {
		t.Fatalf("ignored build files leaked into document:\n%s", document)
	}
	tree := section(t, document, structureHeading, listingsHeading)
	if strings.Contains(tree, "build") {
		t.Fatalf("ignored directory rendered in tree:\n%s", tree)
	}
	if !strings.Contains(document, "### main.go\n\n```go\npackage main\n\n```") {
		t.Fatalf("main.go listing missing:\n%s", document)
	}

	excludedIndex := strings.Index(document, "### Excluded Patterns")
	if excludedIndex < 0 {
		t.Fatalf("excluded patterns section missing")
	}
	footerLines := strings.Split(document[excludedIndex:], "\n")
	found := false
	for _, line := range footerLines {
		if line == "build/" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected literal build/ line in footer:\n%s", document[excludedIndex:])
	}
}

func TestGenerateHonorsMapignoreAndNegation(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{
		".mapignore": "# local rules\n!keep.log\n*.log\n",
		"keep.log":   "kept",
		"drop.log":   "dropped",
	})

	document, summary := generateDocument(t, newGenerator(t, root, ""))
	if !strings.Contains(document, "### keep.log") {
		t.Fatalf("negated file missing:\n%s", document)
	}
	if strings.Contains(document, "drop.log") {
		t.Fatalf("ignored file present:\n%s", document)
	}
	if summary.TotalFiles != 2 {
		t.Fatalf("expected .mapignore and keep.log, got %+v", summary)
	}
}

func TestGenerateWithoutIgnoreFiles(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{
		".gitignore": "*.txt\n",
		"notes.txt":  "notes",
	})

	generator, err := commands.NewDocumentGenerator(commands.GenerateOptions{
		RootPath: root,
		Now:      fixedNow,
	})
	if err != nil {
		t.Fatalf("NewDocumentGenerator: %v", err)
	}
	if len(generator.Patterns()) != 0 {
		t.Fatalf("expected no patterns, got %v", generator.Patterns())
	}
	document, _ := generateDocument(t, generator)
	if !strings.Contains(document, "### notes.txt") {
		t.Fatalf("notes.txt should be listed when .gitignore is disabled")
	}
	if strings.Contains(document, "### Excluded Patterns") {
		t.Fatalf("excluded patterns section should be omitted")
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{
		"README.md":     "# Demo\n",
		"cmd/main.go":   "package main\n",
		"docs/guide.md": "guide",
		"image.png":     string([]byte{0x89, 'P', 'N', 'G', 0, 0, 0, 0}),
	})
	outputPath := filepath.Join(root, "project_analysis.md")

	firstGenerator := newGenerator(t, root, outputPath)
	if _, _, err := firstGenerator.GenerateFile(outputPath); err != nil {
		t.Fatalf("first GenerateFile: %v", err)
	}
	firstContent, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read first output: %v", err)
	}

	secondGenerator := newGenerator(t, root, outputPath)
	absoluteOutputPath, _, err := secondGenerator.GenerateFile(outputPath)
	if err != nil {
		t.Fatalf("second GenerateFile: %v", err)
	}
	if absoluteOutputPath != outputPath {
		t.Fatalf("unexpected output path %s", absoluteOutputPath)
	}
	secondContent, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read second output: %v", err)
	}

	firstBody := section(t, string(firstContent), structureHeading, conclusionHead)
	secondBody := section(t, string(secondContent), structureHeading, conclusionHead)
	if firstBody != secondBody {
		t.Fatalf("tree and listings differ between runs:\n%s\n---\n%s", firstBody, secondBody)
	}
	if strings.Contains(secondBody, "project_analysis.md") {
		t.Fatalf("output document listed itself:\n%s", secondBody)
	}
}

func TestGenerateReadmeSection(t *testing.T) {
	testCases := []struct {
		name     string
		setup    func(t *testing.T, root string)
		expected string
	}{
		{
			name: "readme content",
			setup: func(t *testing.T, root string) {
				writeProjectFiles(t, root, map[string]string{"README.md": "Hello project"})
			},
			expected: "## README\n\nHello project\n\n",
		},
		{
			name: "unreadable readme",
			setup: func(t *testing.T, root string) {
				if err := os.Mkdir(filepath.Join(root, "README.md"), 0o755); err != nil {
					t.Fatalf("mkdir: %v", err)
				}
			},
			expected: "## README\n\n[Error reading README: ",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			root := t.TempDir()
			testCase.setup(t, root)
			document, _ := generateDocument(t, newGenerator(t, root, ""))
			if !strings.Contains(document, testCase.expected) {
				t.Fatalf("expected %q in:\n%s", testCase.expected, document)
			}
		})
	}
}

func TestGenerateReportsUndecodableFileInline(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{
		"bad.py":  string([]byte{0x81, 0x8d, 0xff, 0xfe, 0x00}),
		"good.py": "print('ok')\n",
		"z.txt":   "last",
	})

	document, summary := generateDocument(t, newGenerator(t, root, ""))
	badHeadingIndex := strings.Index(document, "### bad.py\n\n```py\n[Error reading file: ")
	if badHeadingIndex < 0 {
		t.Fatalf("inline read error missing for bad.py:\n%s", document)
	}
	for _, followingHeading := range []string{"### good.py\n\n```py\nprint('ok')\n", "### z.txt\n\n```txt\nlast\n"} {
		followingIndex := strings.Index(document, followingHeading)
		if followingIndex < badHeadingIndex {
			t.Fatalf("expected %q after bad.py:\n%s", followingHeading, document)
		}
	}
	if summary.FailedReads != 1 {
		t.Fatalf("expected one failed read, got %+v", summary)
	}
	if summary.TotalFiles != 3 || summary.TextFiles != 3 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if !strings.Contains(document, "unreadable: 1") {
		t.Fatalf("conclusion does not report the failed read:\n%s", document)
	}
}

func TestGenerateHeaderAndConclusion(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{
		"go.mod": "module example.com/demo\n\ngo 1.22\n",
		"blob":   string(make([]byte, 32)),
	})

	document, summary := generateDocument(t, newGenerator(t, root, ""))
	expectedFragments := []string{
		"# Project Documentation: " + filepath.Base(root) + "\n",
		"- **Go module**: example.com/demo (go 1.22, 0 requirements)\n",
		"- **Documentation generated**: 05.03.2024\n",
		"### blob\n\n```\n[Binary file]\n```\n",
		"Files listed: 2 (text: 1, binary: 1, unreadable: 0)",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(document, fragment) {
			t.Fatalf("expected %q in:\n%s", fragment, document)
		}
	}
	if summary.BinaryFiles != 1 || summary.TextFiles != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestSymlinkedDirectoryIsNotDescended(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{"real/file.txt": "content"})
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	document, summary := generateDocument(t, newGenerator(t, root, ""))
	tree := section(t, document, structureHeading, listingsHeading)
	if !strings.Contains(tree, "├── link/\n└── real/\n    └── file.txt") {
		t.Fatalf("unexpected tree:\n%s", tree)
	}
	if strings.Contains(document, "### link/file.txt") {
		t.Fatalf("symlinked directory was descended")
	}
	if summary.TotalFiles != 1 {
		t.Fatalf("expected one listed file, got %+v", summary)
	}
}

func TestNewDocumentGeneratorRejectsInvalidRoot(t *testing.T) {
	root := t.TempDir()
	filePath := filepath.Join(root, "file.txt")
	writeProjectFiles(t, root, map[string]string{"file.txt": "x"})

	testCases := []struct {
		name string
		path string
	}{
		{name: "missing", path: filepath.Join(root, "missing")},
		{name: "file", path: filePath},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := commands.NewDocumentGenerator(commands.GenerateOptions{RootPath: testCase.path}); err == nil {
				t.Fatalf("expected error for %s", testCase.path)
			}
		})
	}
}
