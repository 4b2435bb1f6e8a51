package analyzer

import (
	"sort"
	"strings"

	"github.com/bbalet/stopwords"
)

// TopKeywords extracts the most frequent title tokens: lowercased,
// stop words removed, tokens longer than 3 characters. Ties break
// alphabetically so the table is stable across runs.
func TopKeywords(titles []string, limit int) []KeywordCount {
	freq := make(map[string]int)
	for _, title := range titles {
		cleaned := stopwords.CleanString(strings.ToLower(title), "en", false)
		for _, token := range strings.Fields(cleaned) {
			token = strings.Trim(token, ".,:;!?\"'()[]")
			if len(token) > 3 {
				freq[token]++
			}
		}
	}

	keywords := make([]KeywordCount, 0, len(freq))
	for kw, count := range freq {
		keywords = append(keywords, KeywordCount{Keyword: kw, Count: count})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Keyword < keywords[j].Keyword
	})

	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords
}
