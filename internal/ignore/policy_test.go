package ignore_test

import (
	"testing"

	"github.com/temirov/mapdoc/internal/ignore"
)

func TestDefaultDenylistsAreIndependentCopies(t *testing.T) {
	first := ignore.DefaultDenylists()
	first.Directories[0] = "mutated"
	second := ignore.DefaultDenylists()
	if second.Directories[0] != ".git" {
		t.Fatalf("default denylists share storage: %v", second.Directories)
	}
}

func TestDenylistsWithAdditions(t *testing.T) {
	base := ignore.DefaultDenylists()
	extended := base.WithAdditions([]string{"dist", ".git", ""}, []string{".log"})
	if !extended.ExcludesDirectory("dist") {
		t.Fatalf("expected dist to be excluded")
	}
	if base.ExcludesDirectory("dist") {
		t.Fatalf("base denylists were modified")
	}
	if len(extended.Directories) != len(base.Directories)+1 {
		t.Fatalf("unexpected directories %v", extended.Directories)
	}
	if !extended.ExcludesFile("debug.log") {
		t.Fatalf("expected .log suffix to be excluded")
	}
	if extended.ExcludesFile("debug.txt") {
		t.Fatalf("expected .txt file to be kept")
	}
}

func TestPolicyExcludes(t *testing.T) {
	policy := ignore.Policy{
		Root:      projectRoot,
		Rules:     ignore.NewRuleSet([]string{"build/", "*.tmp", "!keep.tmp"}),
		Denylists: ignore.DefaultDenylists(),
		SkipPaths: []string{projectPath("project_analysis.md")},
	}
	testCases := []struct {
		name         string
		relativePath string
		isDirectory  bool
		expected     bool
	}{
		{name: "directory marker pattern prunes directory", relativePath: "build", isDirectory: true, expected: true},
		{name: "directory marker pattern ignores file of same name", relativePath: "build", isDirectory: false, expected: false},
		{name: "glob excludes file", relativePath: "src/scratch.tmp", isDirectory: false, expected: true},
		{name: "order keeps exclusion before negation", relativePath: "keep.tmp", isDirectory: false, expected: true},
		{name: "denied directory name", relativePath: "web/node_modules", isDirectory: true, expected: true},
		{name: "denied directory name applies to directories only", relativePath: "node_modules", isDirectory: false, expected: false},
		{name: "denied suffix", relativePath: "pkg/module.pyc", isDirectory: false, expected: true},
		{name: "denied suffix applies to files only", relativePath: "weird.so", isDirectory: true, expected: false},
		{name: "skip path", relativePath: "project_analysis.md", isDirectory: false, expected: true},
		{name: "ordinary file", relativePath: "main.go", isDirectory: false, expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := policy.Excludes(projectPath(testCase.relativePath), testCase.isDirectory)
			if actual != testCase.expected {
				t.Fatalf("Excludes(%s, dir=%t): expected %t, got %t", testCase.relativePath, testCase.isDirectory, testCase.expected, actual)
			}
		})
	}
}

func TestZeroPolicyExcludesNothing(t *testing.T) {
	var policy ignore.Policy
	if policy.Excludes(projectPath("anything.pyc"), false) {
		t.Fatalf("zero policy should exclude nothing")
	}
}
