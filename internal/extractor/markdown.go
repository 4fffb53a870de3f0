// Package extractor pulls usage examples out of chart documentation.
//
// The markdown extractor scans README text for sections whose headings look
// usage-related (installation, examples, quick start, ...), collects the
// fenced code blocks inside them, and infers a title and optional one-line
// description for each block. The values extractor does the same for
// commented values.yaml files. Both are heuristic line scans: malformed
// input yields fewer examples, never an error.
package extractor

import (
	"regexp"
	"strings"
)

const (
	// MaxExamples caps the number of examples returned per document.
	MaxExamples = 15

	maxDescriptionLength = 300
)

// sectionCategory tags why a heading opened a section. Categories keep the
// heading table declarative; they do not change extraction behavior today.
type sectionCategory string

const (
	categoryUsage         sectionCategory = "usage"
	categoryInstall       sectionCategory = "install"
	categoryExamples      sectionCategory = "examples"
	categoryQuickStart    sectionCategory = "quickstart"
	categoryConfiguration sectionCategory = "configuration"
	categoryDeploy        sectionCategory = "deploy"
	categoryPrerequisites sectionCategory = "prerequisites"
	categorySetup         sectionCategory = "setup"
)

// headingPattern maps a heading-text pattern to its section category.
type headingPattern struct {
	re       *regexp.Regexp
	category sectionCategory
}

// headingPatterns is the tagged pattern table consulted for every heading.
// First match wins.
var headingPatterns = []headingPattern{
	{regexp.MustCompile(`(?i)\busage\b`), categoryUsage},
	{regexp.MustCompile(`(?i)\binstall(ation|ing)?\b`), categoryInstall},
	{regexp.MustCompile(`(?i)\bexamples?\b`), categoryExamples},
	{regexp.MustCompile(`(?i)\bquick\s*start\b`), categoryQuickStart},
	{regexp.MustCompile(`(?i)\bgetting\s+started\b`), categoryQuickStart},
	{regexp.MustCompile(`(?i)\btl;?dr\b`), categoryQuickStart},
	{regexp.MustCompile(`(?i)\bconfigur(ation|ing|e)\b`), categoryConfiguration},
	{regexp.MustCompile(`(?i)\bdeploy(ment|ing)?\b`), categoryDeploy},
	{regexp.MustCompile(`(?i)\bprerequisites?\b`), categoryPrerequisites},
	{regexp.MustCompile(`(?i)\bsetup\b`), categorySetup},
}

var (
	headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)
	fenceRe   = regexp.MustCompile("^\\s{0,3}```\\s*([A-Za-z0-9+._-]*)\\s*$")

	yamlKeyLineRe = regexp.MustCompile(`^[A-Za-z0-9_."'-]+:(\s.*)?$`)
	cliPrefixRe   = regexp.MustCompile(`^(helm|kubectl|docker|git|curl|wget)\s`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// sectionState is the extractor's position in the document: either outside
// any recognized section, or inside one opened by a heading at a given level.
type sectionState struct {
	active   bool
	level    int
	category sectionCategory
	heading  int // line index of the opening heading
}

// close leaves the current section.
func (s *sectionState) close() {
	s.active = false
}

// open enters a section at the given heading level.
func (s *sectionState) open(level int, category sectionCategory, headingLine int) {
	s.active = true
	s.level = level
	s.category = category
	s.heading = headingLine
}

// matchHeading returns the category for a heading text, if any pattern matches.
func matchHeading(text string) (sectionCategory, bool) {
	for _, p := range headingPatterns {
		if p.re.MatchString(text) {
			return p.category, true
		}
	}
	return "", false
}

// ExtractExamples extracts up to MaxExamples usage examples from README
// markdown. Examples are deduplicated by whitespace-normalized code body,
// first occurrence wins, document order preserved.
func ExtractExamples(readme string) []Example {
	if strings.TrimSpace(readme) == "" {
		return nil
	}

	lines := strings.Split(readme, "\n")
	codeLine := make([]bool, len(lines))

	var (
		examples []Example
		seen     = make(map[string]struct{})
		section  sectionState

		inFence    bool
		fenceLang  string
		fenceOpen  int
		fenceLines []string
	)

	for i, line := range lines {
		if inFence {
			codeLine[i] = true
			if m := fenceRe.FindStringSubmatch(line); m != nil && m[1] == "" {
				inFence = false
				if section.active && len(examples) < MaxExamples {
					body := strings.Join(fenceLines, "\n")
					if example, ok := buildExample(body, fenceLang, lines, codeLine, fenceOpen, section.heading); ok {
						normalized := normalizeWhitespace(example.Code)
						if _, dup := seen[normalized]; !dup {
							seen[normalized] = struct{}{}
							examples = append(examples, example)
						}
					}
				}
				fenceLines = nil
				continue
			}
			fenceLines = append(fenceLines, line)
			continue
		}

		if m := fenceRe.FindStringSubmatch(line); m != nil {
			inFence = true
			fenceLang = m[1]
			fenceOpen = i
			fenceLines = nil
			codeLine[i] = true
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			level := len(m[1])
			text := m[2]

			// A heading at the section's level or shallower ends the
			// section, recognized or not.
			if section.active && level <= section.level {
				section.close()
			}
			if category, ok := matchHeading(text); ok {
				section.open(level, category, i)
			}
		}
	}
	// An unterminated trailing fence is silently dropped.

	return examples
}

// buildExample assembles an Example from a fenced block body, dropping
// blocks whose trimmed body is empty.
func buildExample(body, lang string, lines []string, codeLine []bool, fenceOpen, headingLine int) (Example, bool) {
	if strings.TrimSpace(body) == "" {
		return Example{}, false
	}

	language := normalizeLanguage(lang, body)
	return Example{
		Title:       inferTitle(language, body),
		Description: findDescription(lines, codeLine, fenceOpen, headingLine),
		Code:        body,
		Language:    language,
	}, true
}

// normalizeLanguage lowercases the fence tag; untagged blocks that look like
// shell commands are labeled bash, everything else text.
func normalizeLanguage(tag, body string) string {
	if tag != "" {
		return strings.ToLower(tag)
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "$") ||
			strings.HasPrefix(trimmed, "helm ") ||
			strings.HasPrefix(trimmed, "kubectl ") {
			return "bash"
		}
		break
	}
	return "text"
}

// shellLanguages are fence tags treated as shell for title inference.
var shellLanguages = map[string]struct{}{
	"bash": {}, "sh": {}, "shell": {}, "console": {}, "zsh": {}, "text": {},
}

// inferTitle derives a human-readable title from the block language and
// content using a fixed heuristic table, consulted in order.
func inferTitle(language, body string) string {
	lower := strings.ToLower(body)

	if _, shell := shellLanguages[language]; shell {
		switch {
		case strings.Contains(lower, "helm install"):
			return "Install Chart"
		case strings.Contains(lower, "helm upgrade"):
			return "Upgrade Chart"
		case strings.Contains(lower, "helm repo add"):
			return "Add Helm Repository"
		case strings.Contains(lower, "helm uninstall"), strings.Contains(lower, "helm delete"):
			return "Uninstall Chart"
		case strings.Contains(lower, "kubectl "):
			return "Kubectl Command"
		}
	}

	if language == "yaml" || language == "yml" {
		if strings.Contains(body, "apiVersion:") && strings.Contains(body, "kind:") {
			return "Kubernetes Manifest"
		}
		return "YAML Configuration"
	}

	return "Code Example"
}

// findDescription scans backward from the opening fence for the nearest
// prose line: non-empty, not a heading, not part of an earlier code block,
// under 300 characters, and not code-looking. The scan stays within the
// current section. Returns "" when no line qualifies.
func findDescription(lines []string, codeLine []bool, fenceOpen, headingLine int) string {
	for i := fenceOpen - 1; i > headingLine; i-- {
		if codeLine[i] {
			continue
		}
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || headingRe.MatchString(trimmed) {
			continue
		}
		if len(trimmed) >= maxDescriptionLength || looksLikeCode(trimmed) {
			continue
		}
		return strings.TrimSuffix(trimmed, ":")
	}
	return ""
}

// looksLikeCode rejects lines that are probably code rather than prose.
func looksLikeCode(line string) bool {
	if line == "" {
		return false
	}

	first := line[0]
	last := line[len(line)-1]
	for _, c := range []byte{'{', '}', '[', ']', '(', ')', ','} {
		if first == c || last == c {
			return true
		}
	}
	if strings.HasPrefix(line, "$") || strings.HasPrefix(line, ">") {
		return true
	}
	if yamlKeyLineRe.MatchString(line) {
		return true
	}
	return cliPrefixRe.MatchString(line)
}

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
