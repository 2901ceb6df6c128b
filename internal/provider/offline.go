package provider

import (
	"context"
	"fmt"
	"hash/fnv"
	"regexp"
	"sort"
	"strings"
)

// Compile-time check.
var _ Generator = (*OfflineGenerator)(nil)

// OfflineGenerator is the deterministic fallback backend. It is pure and
// total: the same prompt and shape always produce the same payload, which is
// what makes offline operation and repeatable tests possible. All content is
// derived from keywords found in the prompt plus fixed phrase tables.
type OfflineGenerator struct{}

// NewOfflineGenerator returns the deterministic offline backend.
func NewOfflineGenerator() *OfflineGenerator {
	return &OfflineGenerator{}
}

// Config reports the offline backend identity.
func (g *OfflineGenerator) Config() Config {
	return Config{ID: IDOffline, Model: "rule-template", Live: false}
}

// Generate fills every shape field with a value derived from the prompt.
// It never fails.
func (g *OfflineGenerator) Generate(_ context.Context, prompt string, shape Shape) (map[string]any, error) {
	keywords := extractKeywords(prompt, 8)
	domain := inferDomain(prompt)

	payload := make(map[string]any, len(shape.Fields))
	for _, f := range shape.Fields {
		switch f.Kind {
		case FieldList:
			payload[f.Name] = listValue(f, keywords, domain)
		case FieldNumber:
			payload[f.Name] = numberValue(f, prompt)
		default:
			payload[f.Name] = textValue(f, keywords, domain)
		}
	}
	return payload, nil
}

// wordRe matches candidate keyword tokens.
var wordRe = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9-]+`)

// stopwords are tokens excluded from keyword ranking.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "into": true, "their": true, "they": true,
	"will": true, "would": true, "could": true, "should": true, "have": true,
	"has": true, "are": true, "was": true, "were": true, "been": true,
	"can": true, "app": true, "your": true, "our": true, "its": true,
	"who": true, "what": true, "when": true, "where": true, "how": true,
	"all": true, "any": true, "each": true, "use": true, "using": true,
	"section": true, "generate": true, "produce": true, "context": true,
	"field": true, "json": true, "return": true, "respond": true,
}

// extractKeywords ranks prompt tokens by frequency with an alphabetical
// tie-break so the result is stable for a given prompt.
func extractKeywords(text string, limit int) []string {
	counts := make(map[string]int)
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len(w) <= 2 || stopwords[w] {
			continue
		}
		counts[w]++
	}

	ranked := make([]string, 0, len(counts))
	for w := range counts {
		ranked = append(ranked, w)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	if len(ranked) == 0 {
		ranked = []string{"innovation", "blueprint"}
	}
	return ranked
}

// domainTriggers maps a domain label to tokens that indicate it.
var domainTriggers = []struct {
	domain   string
	triggers []string
}{
	{"Health & Wellness", []string{"health", "fitness", "wellness", "medical", "therapy", "care"}},
	{"Finance & Fintech", []string{"finance", "payment", "banking", "invoice", "budget", "crypto"}},
	{"Education & Learning", []string{"education", "learning", "course", "student", "tutor", "school"}},
	{"Commerce & Marketplaces", []string{"marketplace", "commerce", "shop", "retail", "booking", "delivery"}},
	{"Productivity & Collaboration", []string{"productivity", "workflow", "team", "collaboration", "schedule", "task"}},
	{"Pets & Local Services", []string{"dog", "pet", "walker", "groom", "local", "neighborhood"}},
}

// inferDomain picks the first domain whose trigger appears in the text,
// defaulting to a generic technology label.
func inferDomain(text string) string {
	lowered := strings.ToLower(text)
	for _, d := range domainTriggers {
		for _, t := range d.triggers {
			if strings.Contains(lowered, t) {
				return d.domain
			}
		}
	}
	return "Technology & Innovation"
}

// pick selects one option deterministically from the seed text.
func pick(seed string, options []string) string {
	h := fnv.New32a()
	h.Write([]byte(seed))
	return options[int(h.Sum32())%len(options)]
}

// textValue builds a single sentence for a text field.
func textValue(f Field, keywords []string, domain string) string {
	subject := strings.ReplaceAll(keywords[0], "-", " ")
	hint := f.Hint
	if hint == "" {
		hint = strings.ReplaceAll(f.Name, "_", " ")
	}
	opening := pick(f.Name+subject, []string{
		"A focused", "A pragmatic", "A differentiated", "A disciplined",
	})
	return fmt.Sprintf("%s %s approach for %s, centered on %s.",
		opening, strings.ToLower(hint), strings.ToLower(domain), subject)
}

// listValue builds three deterministic entries for a list field.
func listValue(f Field, keywords []string, domain string) []string {
	label := strings.ReplaceAll(f.Name, "_", " ")
	items := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		kw := keywords[i%len(keywords)]
		items = append(items, fmt.Sprintf("%s: %s leverage within %s",
			titleCase(label), strings.ReplaceAll(kw, "-", " "), strings.ToLower(domain)))
	}
	return items
}

// titleCase upper-cases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// numberValue derives a stable small number from the prompt and field name.
// The range (12-26) mirrors typical roadmap durations in weeks.
func numberValue(f Field, prompt string) float64 {
	h := fnv.New32a()
	h.Write([]byte(f.Name))
	h.Write([]byte(prompt))
	return float64(12 + int(h.Sum32())%15)
}
