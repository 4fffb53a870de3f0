package extractor

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxValuesExamples caps the number of examples extracted from a values file.
const MaxValuesExamples = 5

var (
	commentLineRe = regexp.MustCompile(`^\s*#+\s?(.*)$`)
	keyValueRe    = regexp.MustCompile(`^\s*[A-Za-z0-9_."'-]+:.*$`)
)

// ExtractValuesExamples extracts annotated configuration examples from
// values.yaml text. Each contiguous run of comment lines immediately
// followed by one or more key/value lines forms one example: the comment
// text becomes the description, the first key (camelCase rendered as Title
// Case) the title. A blank line resets comment accumulation.
func ExtractValuesExamples(values string) []Example {
	if strings.TrimSpace(values) == "" {
		return nil
	}

	var (
		examples     []Example
		comments     []string
		codeLines    []string
		inKeyRun     bool
		firstKeyLine string
	)

	flush := func() {
		defer func() {
			comments = nil
			codeLines = nil
			inKeyRun = false
			firstKeyLine = ""
		}()

		if !inKeyRun || len(comments) == 0 || len(examples) >= MaxValuesExamples {
			return
		}
		examples = append(examples, Example{
			Title:       titleFromKey(firstKeyLine),
			Description: strings.TrimSpace(strings.Join(comments, " ")),
			Code:        strings.Join(codeLines, "\n"),
			Language:    "yaml",
		})
	}

	for _, line := range strings.Split(values, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			// Blank line: close any open example and reset accumulation.
			flush()

		case commentLineRe.MatchString(line):
			if inKeyRun {
				// A new comment run starts; the previous example is done.
				flush()
			}
			text := commentLineRe.FindStringSubmatch(line)[1]
			if strings.TrimSpace(text) != "" {
				comments = append(comments, strings.TrimSpace(text))
			}

		case keyValueRe.MatchString(line):
			if !inKeyRun {
				if len(comments) == 0 {
					// Uncommented keys are not worth surfacing.
					continue
				}
				inKeyRun = true
				firstKeyLine = trimmed
			}
			codeLines = append(codeLines, line)

		default:
			if inKeyRun {
				// Continuation lines (nested values, list items) belong to
				// the current run.
				codeLines = append(codeLines, line)
			} else {
				comments = nil
			}
		}

		if len(examples) >= MaxValuesExamples {
			break
		}
	}
	flush()

	return examples
}

// titleFromKey renders the first key of a run as a Title Case phrase:
// "imagePullPolicy" becomes "Image Pull Policy".
func titleFromKey(keyLine string) string {
	key, _, _ := strings.Cut(keyLine, ":")
	key = strings.Trim(strings.TrimSpace(key), `"'`)
	if key == "" {
		return "Configuration"
	}

	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.':
			b.WriteRune(' ')
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
