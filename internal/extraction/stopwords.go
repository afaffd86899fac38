package extraction

// stopwords is the English function-word list used to filter candidate terms
// and phrase edges. Domain-generic resume words (experience, team, ...) are
// not stopwords; the categorizer drops those later if nothing claims them.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "after", "again", "against", "all", "am", "an",
		"and", "any", "are", "aren't", "as", "at", "be", "because", "been",
		"before", "being", "below", "between", "both", "but", "by", "can",
		"cannot", "could", "did", "do", "does", "doing", "down", "during",
		"each", "few", "for", "from", "further", "had", "has", "have",
		"having", "he", "her", "here", "hers", "herself", "him", "himself",
		"his", "how", "i", "if", "in", "into", "is", "it", "its", "itself",
		"just", "me", "more", "most", "my", "myself", "no", "nor", "not",
		"now", "of", "off", "on", "once", "only", "or", "other", "our",
		"ours", "ourselves", "out", "over", "own", "per", "same", "she",
		"should", "so", "some", "such", "than", "that", "the", "their",
		"theirs", "them", "themselves", "then", "there", "these", "they",
		"this", "those", "through", "to", "too", "under", "until", "up",
		"upon", "very", "was", "we", "were", "what", "when", "where",
		"which", "while", "who", "whom", "why", "will", "with", "within",
		"would", "you", "your", "yours", "yourself", "yourselves",
	} {
		stopwords[w] = struct{}{}
	}
}

// isStopword reports whether a lowercased token is a stopword
func isStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

// isConnective marks the stopwords that may sit inside a multi-word term,
// as in "internet of things" or "time to market"
func isConnective(token string) bool {
	return token == "of" || token == "to"
}
