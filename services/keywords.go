package services

import (
	"strings"
	"unicode"

	prose "github.com/jdkato/prose/v2"
)

// Generic terms that would otherwise overlap with nearly every prompt
// ("podcast", request verbs, pronouns). Matched against lowercased tokens.
var genericTerms = map[string]struct{}{
	"difference": {}, "comparison": {}, "podcast": {},
	"make": {}, "generate": {}, "you": {}, "can": {}, "produce": {},
	"me": {}, "explanation": {}, "topic": {}, "subject": {}, "matter": {},
	"he": {}, "him": {}, "her": {}, "they": {}, "them": {}, "their": {},
	"we": {}, "our": {},
}

// Penn Treebank tags for common and proper nouns.
var nounTags = map[string]struct{}{
	"NN": {}, "NNS": {}, "NNP": {}, "NNPS": {},
}

// ExtractKeywords turns a free-text prompt into the set of lowercased noun
// tokens considered topically significant. No stemming, no synonym expansion,
// no phrase detection. A pure function of its input: the tagger model and the
// denylist are fixed, so the same prompt always yields the same set.
//
// Empty input and prompts made of only generic/non-noun tokens both yield an
// empty set; callers must treat that as "no signal", never as a wildcard.
func ExtractKeywords(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil
	}

	var keywords []string
	seen := map[string]struct{}{}
	for _, tok := range doc.Tokens() {
		if _, ok := nounTags[tok.Tag]; !ok {
			continue
		}
		word := strings.ToLower(strings.TrimFunc(tok.Text, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}))
		if word == "" {
			continue
		}
		if _, generic := genericTerms[word]; generic {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}

	return keywords
}

// NormalizeKeywords lowercases and de-duplicates a keyword list before it is
// persisted, so lookups against the stored arrays stay case-insensitive.
func NormalizeKeywords(keywords []string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
