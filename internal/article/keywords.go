package article

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

var stopwords = map[string]struct{}{
	"le": {}, "la": {}, "les": {}, "de": {}, "du": {}, "des": {}, "un": {}, "une": {},
	"et": {}, "en": {}, "à": {}, "au": {}, "aux": {}, "pour": {}, "par": {}, "sur": {},
	"dans": {}, "qui": {}, "que": {}, "est": {}, "son": {}, "ses": {}, "ce": {},
	"cette": {}, "ces": {}, "mon": {}, "ma": {}, "mes": {}, "nous": {}, "vous": {},
	"il": {}, "elle": {}, "on": {}, "se": {}, "sa": {}, "ne": {}, "pas": {}, "ou": {},
	"ni": {}, "si": {}, "y": {}, "dont": {},
}

// SearchKeywords lists the words of the key phrase followed by the
// significant words of the title, lower-cased and de-duplicated.
func SearchKeywords(keyPhrase, title string) []string {
	keywords := strings.Fields(strings.ToLower(keyPhrase))

	for _, word := range wordPattern.FindAllString(strings.ToLower(title), -1) {
		if _, stop := stopwords[word]; stop {
			continue
		}
		if utf8.RuneCountInString(word) <= 2 {
			continue
		}
		keywords = append(keywords, word)
	}

	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, word := range keywords {
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}
