package extractor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(lines ...string) string {
	return strings.Join(lines, "\n")
}

func TestExtractExamplesInstallSection(t *testing.T) {
	t.Parallel()

	readme := doc(
		"# My Chart",
		"",
		"## Installation",
		"",
		"```bash",
		"helm install my-release example/my-chart",
		"```",
	)

	examples := ExtractExamples(readme)
	require.Len(t, examples, 1)
	assert.Equal(t, "Install Chart", examples[0].Title)
	assert.Equal(t, "bash", examples[0].Language)
	assert.Equal(t, "helm install my-release example/my-chart", examples[0].Code)
}

func TestExtractExamplesTitles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		lang      string
		body      string
		wantTitle string
	}{
		{
			name:      "helm install",
			lang:      "bash",
			body:      "helm install foo example/foo",
			wantTitle: "Install Chart",
		},
		{
			name:      "helm upgrade",
			lang:      "sh",
			body:      "helm upgrade foo example/foo --version 2.0.0",
			wantTitle: "Upgrade Chart",
		},
		{
			name:      "helm repo add",
			lang:      "console",
			body:      "helm repo add example https://charts.example.com",
			wantTitle: "Add Helm Repository",
		},
		{
			name:      "helm uninstall",
			lang:      "shell",
			body:      "helm uninstall foo",
			wantTitle: "Uninstall Chart",
		},
		{
			name:      "helm delete",
			lang:      "bash",
			body:      "helm delete foo",
			wantTitle: "Uninstall Chart",
		},
		{
			name:      "kubectl",
			lang:      "bash",
			body:      "kubectl get pods -n example",
			wantTitle: "Kubectl Command",
		},
		{
			name:      "kubernetes manifest",
			lang:      "yaml",
			body:      "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: example",
			wantTitle: "Kubernetes Manifest",
		},
		{
			name:      "plain yaml",
			lang:      "yaml",
			body:      "replicaCount: 2",
			wantTitle: "YAML Configuration",
		},
		{
			name:      "fallback",
			lang:      "go",
			body:      "package main",
			wantTitle: "Code Example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			readme := doc(
				"## Usage",
				"",
				"```"+tt.lang,
				tt.body,
				"```",
			)
			examples := ExtractExamples(readme)
			require.Len(t, examples, 1)
			assert.Equal(t, tt.wantTitle, examples[0].Title)
		})
	}
}

func TestExtractExamplesHeadingRecognition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		heading string
		want    bool
	}{
		{name: "usage", heading: "## Usage", want: true},
		{name: "installation", heading: "### Installation", want: true},
		{name: "installing mixed case", heading: "## Installing the Chart", want: true},
		{name: "examples", heading: "## Examples", want: true},
		{name: "quick start", heading: "## Quick Start", want: true},
		{name: "quickstart joined", heading: "## Quickstart", want: true},
		{name: "getting started", heading: "## Getting Started", want: true},
		{name: "tldr", heading: "## TL;DR", want: true},
		{name: "configuration", heading: "## Configuration", want: true},
		{name: "deployment", heading: "## Deployment", want: true},
		{name: "prerequisites", heading: "## Prerequisites", want: true},
		{name: "setup", heading: "## Setup", want: true},
		{name: "uppercase", heading: "## USAGE", want: true},
		{name: "license", heading: "## License", want: false},
		{name: "contributing", heading: "## Contributing", want: false},
		{name: "uninstalling substring", heading: "## Values", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			readme := doc(
				tt.heading,
				"",
				"```bash",
				"helm install foo example/foo",
				"```",
			)
			examples := ExtractExamples(readme)
			if tt.want {
				assert.Len(t, examples, 1, "heading %q should open a section", tt.heading)
			} else {
				assert.Empty(t, examples, "heading %q should not open a section", tt.heading)
			}
		})
	}
}

func TestExtractExamplesOutsideSectionIgnored(t *testing.T) {
	t.Parallel()

	readme := doc(
		"# My Chart",
		"",
		"```bash",
		"helm install ignored example/ignored",
		"```",
		"",
		"## Usage",
		"",
		"```bash",
		"helm install kept example/kept",
		"```",
	)

	examples := ExtractExamples(readme)
	require.Len(t, examples, 1)
	assert.Contains(t, examples[0].Code, "kept")
}

func TestExtractExamplesSectionBoundaries(t *testing.T) {
	t.Parallel()

	t.Run("equal level heading closes section", func(t *testing.T) {
		t.Parallel()

		readme := doc(
			"## Usage",
			"",
			"```bash",
			"helm install inside example/inside",
			"```",
			"",
			"## License",
			"",
			"```bash",
			"helm install outside example/outside",
			"```",
		)

		examples := ExtractExamples(readme)
		require.Len(t, examples, 1)
		assert.Contains(t, examples[0].Code, "inside")
	})

	t.Run("shallower heading closes section", func(t *testing.T) {
		t.Parallel()

		readme := doc(
			"### Usage",
			"",
			"# Top",
			"",
			"```bash",
			"helm install outside example/outside",
			"```",
		)

		assert.Empty(t, ExtractExamples(readme))
	})

	t.Run("deeper unrecognized heading keeps section open", func(t *testing.T) {
		t.Parallel()

		readme := doc(
			"## Usage",
			"",
			"### With default values",
			"",
			"```bash",
			"helm install foo example/foo",
			"```",
		)

		examples := ExtractExamples(readme)
		assert.Len(t, examples, 1)
	})

	t.Run("nested recognized heading narrows the section", func(t *testing.T) {
		t.Parallel()

		readme := doc(
			"## Usage",
			"",
			"### Installation",
			"",
			"```bash",
			"helm install foo example/foo",
			"```",
			"",
			"### Notes",
			"",
			"```bash",
			"helm status foo",
			"```",
		)

		// The deeper Installation heading re-anchors the section at level 3,
		// so the equal-level Notes heading closes it.
		examples := ExtractExamples(readme)
		require.Len(t, examples, 1)
		assert.Contains(t, examples[0].Code, "helm install")
	})
}

func TestExtractExamplesDedupe(t *testing.T) {
	t.Parallel()

	readme := doc(
		"## Usage",
		"",
		"```bash",
		"helm install foo example/foo",
		"```",
		"",
		"Same command, different spacing:",
		"",
		"```bash",
		"helm   install  foo   example/foo",
		"```",
		"",
		"```bash",
		"helm upgrade foo example/foo",
		"```",
	)

	examples := ExtractExamples(readme)
	require.Len(t, examples, 2)
	// First occurrence wins and order is preserved.
	assert.Equal(t, "helm install foo example/foo", examples[0].Code)
	assert.Equal(t, "Upgrade Chart", examples[1].Title)
}

func TestExtractExamplesDescriptions(t *testing.T) {
	t.Parallel()

	t.Run("nearest prose line", func(t *testing.T) {
		t.Parallel()

		readme := doc(
			"## Installation",
			"",
			"Some earlier paragraph.",
			"",
			"Install the chart with default values:",
			"",
			"```bash",
			"helm install foo example/foo",
			"```",
		)

		examples := ExtractExamples(readme)
		require.Len(t, examples, 1)
		assert.Equal(t, "Install the chart with default values", examples[0].Description)
	})

	t.Run("no prose between heading and fence", func(t *testing.T) {
		t.Parallel()

		readme := doc(
			"## Installation",
			"```bash",
			"helm install foo example/foo",
			"```",
		)

		examples := ExtractExamples(readme)
		require.Len(t, examples, 1)
		assert.Empty(t, examples[0].Description)
	})

	t.Run("skips code looking lines", func(t *testing.T) {
		t.Parallel()

		readme := doc(
			"## Installation",
			"",
			"Run the following command.",
			"",
			"$ export KUBECONFIG=~/.kube/config",
			"",
			"```bash",
			"helm install foo example/foo",
			"```",
		)

		examples := ExtractExamples(readme)
		require.Len(t, examples, 1)
		assert.Equal(t, "Run the following command.", examples[0].Description)
	})

	t.Run("skips overlong lines", func(t *testing.T) {
		t.Parallel()

		readme := doc(
			"## Installation",
			"",
			"Short and useful.",
			"",
			strings.Repeat("x", 400),
			"",
			"```bash",
			"helm install foo example/foo",
			"```",
		)

		examples := ExtractExamples(readme)
		require.Len(t, examples, 1)
		assert.Equal(t, "Short and useful.", examples[0].Description)
	})

	t.Run("does not cross earlier code blocks lines", func(t *testing.T) {
		t.Parallel()

		readme := doc(
			"## Installation",
			"",
			"First step:",
			"",
			"```bash",
			"helm repo add example https://charts.example.com",
			"```",
			"",
			"```bash",
			"helm install foo example/foo",
			"```",
		)

		examples := ExtractExamples(readme)
		require.Len(t, examples, 2)
		// The second block has no prose of its own; the scan skips the
		// earlier block's lines and lands on the same paragraph.
		assert.Equal(t, "First step", examples[1].Description)
	})
}

func TestExtractExamplesFenceHandling(t *testing.T) {
	t.Parallel()

	t.Run("unterminated fence dropped", func(t *testing.T) {
		t.Parallel()

		readme := doc(
			"## Usage",
			"",
			"```bash",
			"helm install foo example/foo",
		)

		assert.Empty(t, ExtractExamples(readme))
	})

	t.Run("empty block dropped", func(t *testing.T) {
		t.Parallel()

		readme := doc(
			"## Usage",
			"",
			"```bash",
			"",
			"```",
		)

		assert.Empty(t, ExtractExamples(readme))
	})

	t.Run("heading inside fence is not a heading", func(t *testing.T) {
		t.Parallel()

		readme := doc(
			"## Usage",
			"",
			"```text",
			"# this is a shell comment, not a heading",
			"helm install foo example/foo",
			"```",
		)

		examples := ExtractExamples(readme)
		require.Len(t, examples, 1)
		assert.Contains(t, examples[0].Code, "shell comment")
	})

	t.Run("untagged shell block labeled bash", func(t *testing.T) {
		t.Parallel()

		readme := doc(
			"## Usage",
			"",
			"```",
			"$ helm install foo example/foo",
			"```",
		)

		examples := ExtractExamples(readme)
		require.Len(t, examples, 1)
		assert.Equal(t, "bash", examples[0].Language)
	})

	t.Run("untagged prose block labeled text", func(t *testing.T) {
		t.Parallel()

		readme := doc(
			"## Usage",
			"",
			"```",
			"some plain output",
			"```",
		)

		examples := ExtractExamples(readme)
		require.Len(t, examples, 1)
		assert.Equal(t, "text", examples[0].Language)
	})

	t.Run("language tag lowercased", func(t *testing.T) {
		t.Parallel()

		readme := doc(
			"## Usage",
			"",
			"```YAML",
			"replicaCount: 2",
			"```",
		)

		examples := ExtractExamples(readme)
		require.Len(t, examples, 1)
		assert.Equal(t, "yaml", examples[0].Language)
	})
}

func TestExtractExamplesCap(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("## Examples\n\n")
	for i := 0; i < MaxExamples+5; i++ {
		fmt.Fprintf(&b, "```bash\nhelm install release-%d example/chart\n```\n\n", i)
	}

	examples := ExtractExamples(b.String())
	require.Len(t, examples, MaxExamples)
	assert.Contains(t, examples[0].Code, "release-0")
	assert.Contains(t, examples[MaxExamples-1].Code, fmt.Sprintf("release-%d", MaxExamples-1))
}

func TestExtractExamplesEmptyInput(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ExtractExamples(""))
	assert.Nil(t, ExtractExamples("   \n\t\n"))
	assert.Empty(t, ExtractExamples("# Title\n\nProse only, no sections or code."))
}

func TestExtractExamplesIdempotent(t *testing.T) {
	t.Parallel()

	readme := doc(
		"## Installation",
		"",
		"Install the chart:",
		"",
		"```bash",
		"helm install foo example/foo",
		"```",
		"",
		"## Configuration",
		"",
		"```yaml",
		"replicaCount: 2",
		"```",
	)

	first := ExtractExamples(readme)
	second := ExtractExamples(readme)
	assert.Equal(t, first, second)
}
