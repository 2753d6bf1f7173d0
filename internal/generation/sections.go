package generation

import (
	"regexp"
	"strings"
)

// Sections is the structured result of splitting raw narrative text into the
// fixed story schema. After Extract every field is guaranteed non-empty.
type Sections struct {
	Universe   string
	Act1       string
	Act2       string
	Act3       string
	Twist      string
	Characters []string
	Locations  []string
}

// minUsableLength is the threshold below which raw generator output is
// considered unusable and replaced wholesale with the canonical example.
const minUsableLength = 50

// Section tags used by the classification rules.
const (
	tagUniverse   = "universe"
	tagAct1       = "act1"
	tagAct2       = "act2"
	tagAct3       = "act3"
	tagTwist      = "twist"
	tagCharacters = "characters"
	tagLocations  = "locations"
)

// sectionRule classifies a paragraph's first line. Rules are evaluated
// top-to-bottom and the first match wins, so the slice order encodes the
// tie-break priority for ambiguous headers.
type sectionRule struct {
	tag    string
	match  func(firstLine string) bool
	labels []string // label prefixes stripped from the section body
}

var sectionRules = []sectionRule{
	{
		tag:    tagUniverse,
		match:  func(l string) bool { return strings.HasPrefix(l, "univers") },
		labels: []string{"Univers:"},
	},
	{
		tag:    tagAct1,
		match:  func(l string) bool { return strings.Contains(l, "acte i") && !strings.Contains(l, "acte ii") || strings.HasPrefix(l, "acte 1") },
		labels: []string{"Acte I:", "Acte 1:"},
	},
	{
		tag:    tagAct2,
		match:  func(l string) bool { return strings.Contains(l, "acte ii") && !strings.Contains(l, "acte iii") || strings.HasPrefix(l, "acte 2") },
		labels: []string{"Acte II:", "Acte 2:"},
	},
	{
		tag:    tagAct3,
		match:  func(l string) bool { return strings.Contains(l, "acte iii") || strings.HasPrefix(l, "acte 3") },
		labels: []string{"Acte III:", "Acte 3:"},
	},
	{
		tag:    tagTwist,
		match:  func(l string) bool { return strings.Contains(l, "twist") || strings.Contains(l, "retournement") },
		labels: []string{"Twist:", "Retournement:"},
	},
	{
		tag:    tagCharacters,
		match:  func(l string) bool { return strings.Contains(l, "personnage") },
		labels: []string{"Personnages:", "Personnage:"},
	},
	{
		tag:    tagLocations,
		match:  func(l string) bool { return strings.Contains(l, "lieu") },
		labels: []string{"Lieux:", "Lieu:"},
	},
}

var bracketEntryRe = regexp.MustCompile(`\[([^\]]+)\]`)

// ExtractSections splits raw narrative text into the fixed story schema.
// Unusable input (shorter than 50 characters) is replaced with the canonical
// example concept; missing sections are filled from the canned fallbacks, so
// no returned field is ever empty.
func ExtractSections(raw string) Sections {
	if len(strings.TrimSpace(raw)) < minUsableLength {
		raw = CanonicalExampleText
	}

	bodies := map[string]string{}
	currentTag := ""

	for _, paragraph := range splitParagraphs(raw) {
		firstLine := strings.ToLower(firstNonEmptyLine(paragraph))
		matched := false
		for _, rule := range sectionRules {
			if rule.match(firstLine) {
				bodies[rule.tag] = stripLabels(paragraph, rule.labels)
				currentTag = rule.tag
				matched = true
				break
			}
		}
		// Unlabeled paragraphs continue the open section.
		if !matched && currentTag != "" {
			bodies[currentTag] = bodies[currentTag] + "\n\n" + paragraph
		}
	}

	sections := Sections{
		Universe:   strings.TrimSpace(bodies[tagUniverse]),
		Act1:       strings.TrimSpace(bodies[tagAct1]),
		Act2:       strings.TrimSpace(bodies[tagAct2]),
		Act3:       strings.TrimSpace(bodies[tagAct3]),
		Twist:      strings.TrimSpace(bodies[tagTwist]),
		Characters: parseCharacterEntries(bodies[tagCharacters]),
		Locations:  parseLocationEntries(bodies[tagLocations]),
	}

	// Secondary recovery pass over the whole text for the list sections.
	if len(sections.Characters) == 0 {
		sections.Characters = extractBracketEntries(raw)
	}
	if len(sections.Locations) == 0 {
		sections.Locations = extractLabeledCommaList(raw, "lieux:")
	}

	applyFallbacks(&sections)
	return sections
}

func splitParagraphs(raw string) []string {
	var paragraphs []string
	for _, p := range strings.Split(raw, "\n\n") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}

func firstNonEmptyLine(paragraph string) string {
	for _, line := range strings.Split(paragraph, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func stripLabels(paragraph string, labels []string) string {
	for _, label := range labels {
		paragraph = strings.Replace(paragraph, label, "", 1)
	}
	return strings.TrimSpace(paragraph)
}

// parseCharacterEntries recovers one character per bracket-delimited group,
// falling back to line entries and then to a comma split.
func parseCharacterEntries(content string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	if entries := extractBracketEntries(content); len(entries) > 0 {
		return entries
	}
	if entries := lineEntries(content); len(entries) > 1 {
		return entries
	}
	return splitCommaList(content)
}

// parseLocationEntries recovers one location per line, falling back to a
// comma split for single-line content.
func parseLocationEntries(content string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	if entries := lineEntries(content); len(entries) > 1 {
		return entries
	}
	return splitCommaList(content)
}

// lineEntries treats each non-empty line as one entry, stripping leading
// list markers and surrounding brackets.
func lineEntries(content string) []string {
	var entries []string
	for _, line := range strings.Split(content, "\n") {
		entry := strings.TrimSpace(line)
		entry = strings.TrimPrefix(entry, "- ")
		entry = strings.TrimPrefix(entry, "* ")
		entry = strings.Trim(entry, "[]")
		entry = strings.TrimSpace(entry)
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

func extractBracketEntries(content string) []string {
	var entries []string
	for _, m := range bracketEntryRe.FindAllStringSubmatch(content, -1) {
		if entry := strings.TrimSpace(m[1]); entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// extractLabeledCommaList finds the given lowercase label anywhere in the
// text and comma-splits the remainder of its line.
func extractLabeledCommaList(raw, label string) []string {
	for _, line := range strings.Split(raw, "\n") {
		idx := strings.Index(strings.ToLower(line), label)
		if idx < 0 {
			continue
		}
		return splitCommaList(line[idx+len(label):])
	}
	return nil
}

func splitCommaList(content string) []string {
	var entries []string
	for _, part := range strings.Split(content, ",") {
		if entry := strings.TrimSpace(part); entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

func applyFallbacks(s *Sections) {
	if s.Universe == "" {
		s.Universe = FallbackUniverse
	}
	if s.Act1 == "" {
		s.Act1 = FallbackAct1
	}
	if s.Act2 == "" {
		s.Act2 = FallbackAct2
	}
	if s.Act3 == "" {
		s.Act3 = FallbackAct3
	}
	if s.Twist == "" {
		s.Twist = FallbackTwist
	}
	if len(s.Characters) == 0 {
		s.Characters = append([]string(nil), FallbackCharacters...)
	}
	if len(s.Locations) == 0 {
		s.Locations = append([]string(nil), FallbackLocations...)
	}
}
