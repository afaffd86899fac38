package extraction

import "math"

// backgroundDocs is the notional corpus size behind backgroundDF. Terms
// absent from the table get the maximum IDF, so rare domain terms outrank
// boilerplate at equal frequency.
const backgroundDocs = 1000

// backgroundDF holds document frequencies for words that appear in most
// resumes and job descriptions. The numbers are coarse on purpose: the table
// only needs to rank boilerplate below domain vocabulary.
var backgroundDF = map[string]int{
	// near-universal resume and posting boilerplate
	"experience":    850,
	"work":          820,
	"working":       700,
	"team":          780,
	"teams":         520,
	"skills":        760,
	"years":         740,
	"development":   620,
	"knowledge":     600,
	"ability":       580,
	"strong":        560,
	"required":      540,
	"requirements":  520,
	"responsible":   500,
	"including":     490,
	"role":          480,
	"position":      460,
	"company":       450,
	"business":      440,
	"management":    430,
	"support":       420,
	"environment":   400,
	"understanding": 390,
	"excellent":     380,
	"good":          370,
	"related":       360,
	"relevant":      350,
	"new":           340,
	"using":         330,
	"used":          320,
	"use":           310,
	"based":         300,
	"well":          290,
	"plus":          280,
	"preferred":     270,
	"degree":        260,
	"education":     250,
	"bachelor":      240,
	"university":    230,
	"job":           220,
	"candidates":    210,
	"candidate":     200,
	"opportunity":   190,
	"benefits":      180,
	"salary":        170,

	// common but mildly informative
	"software":      420,
	"engineer":      400,
	"engineering":   380,
	"developer":     370,
	"senior":        350,
	"technical":     340,
	"technologies":  330,
	"tools":         320,
	"systems":       310,
	"solutions":     300,
	"applications":  290,
	"application":   280,
	"services":      270,
	"data":          420,
	"design":        330,
	"designed":      250,
	"build":         260,
	"built":         250,
	"building":      240,
	"develop":       230,
	"developed":     260,
	"implemented":   220,
	"implementation": 210,
	"projects":      300,
	"project":       310,
	"product":       280,
	"production":    230,
	"quality":       220,
	"performance":   240,
	"testing":       250,
	"test":          230,
	"process":       240,
	"processes":     220,
	"analysis":      230,
	"reporting":     200,
	"reports":       190,
	"documentation": 180,
	"integration":   190,
	"deployment":    170,
	"maintenance":   160,
	"monitoring":    150,
	"communication": 260,
	"collaboration": 200,
	"leadership":    220,
	"planning":      190,
	"customer":      230,
	"customers":     200,
	"client":        210,
	"clients":       200,
	"stakeholders":  180,
}

// maxIDF is the weight of a term the background table has never seen
var maxIDF = idfFor(0)

// idfFor converts a background document frequency into an IDF weight
func idfFor(df int) float64 {
	return math.Log(float64(1+backgroundDocs)/float64(1+df)) + 1
}

// tokenIDF returns the IDF weight for one lowercased token
func tokenIDF(token string) float64 {
	if df, ok := backgroundDF[token]; ok {
		return idfFor(df)
	}
	return maxIDF
}

// phraseIDF scores a phrase by its average component IDF, so boilerplate
// words drag a phrase down rather than riding on one rare token. Connective
// stopwords inside a phrase count at the floor weight.
func phraseIDF(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	sum := 0.0
	for _, tok := range tokens {
		if isStopword(tok) {
			sum += idfFor(backgroundDocs)
			continue
		}
		sum += tokenIDF(tok)
	}
	return sum / float64(len(tokens))
}
