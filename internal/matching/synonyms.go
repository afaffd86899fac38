package matching

// synonymGroups maps canonical skill terms to variant spellings that should
// resolve to the same taxonomy entry. Keys and variants are stored in
// normalized form (lowercase, punctuation reduced to `+ # .`).
var synonymGroups = map[string][]string{
	".net":             {"dotnet", "dot net", ".net framework", ".net core"},
	"angular":          {"angularjs", "angular.js"},
	"asp.net":          {"asp.net core", "asp.net mvc", "asp.net web api", "aspnet", "asp net"},
	"aws":              {"amazon web services"},
	"azure":            {"microsoft azure", "azure cloud"},
	"c#":               {"c sharp", "csharp"},
	"communication":    {"communication skills", "interpersonal skills"},
	"data modeling":    {"data modelling", "database modeling", "data model"},
	"data warehousing": {"data warehouse", "dwh", "data mart"},
	"docker":           {"containerization", "containers"},
	"entity framework": {"ef core", "entity framework core"},
	"etl":              {"etl processes", "etl pipelines", "data integration"},
	"excel":            {"microsoft excel", "ms excel", "spreadsheets"},
	"go":               {"golang", "go lang"},
	"javascript":       {"js", "ecmascript", "es6"},
	"kubernetes":       {"k8s", "container orchestration"},
	"linq":             {"language integrated query"},
	"machine learning": {"ml", "deep learning", "neural networks"},
	"node.js":          {"nodejs", "node js"},
	"oracle":           {"oracle database", "oracle db"},
	"power bi":         {"powerbi", "power bi desktop", "power bi service"},
	"problem solving":  {"analytical skills"},
	"python":           {"python3", "python 3", "py"},
	"react":            {"react.js", "reactjs"},
	"rest api":         {"restful api", "rest web services", "restful"},
	"sql":              {"sql server", "t sql", "tsql", "structured query language"},
	"tableau":          {"tableau desktop", "tableau server"},
	"typescript":       {"ts"},
	"vue":              {"vue.js", "vuejs"},
}

// variantCanonical is the reverse lookup, built once at init
var variantCanonical = make(map[string]string)

func init() {
	for canonical, variants := range synonymGroups {
		for _, v := range variants {
			variantCanonical[v] = canonical
		}
	}
}

// ExpandTerm returns alternative normalized spellings to try when a term
// itself does not resolve: the canonical form if the term is a known
// variant, followed by the sibling variants of its group. The input term is
// never included. Unknown terms expand to nothing.
func ExpandTerm(term string) []string {
	if canonical, ok := variantCanonical[term]; ok {
		out := []string{canonical}
		for _, v := range synonymGroups[canonical] {
			if v != term {
				out = append(out, v)
			}
		}
		return out
	}
	if variants, ok := synonymGroups[term]; ok {
		out := make([]string, len(variants))
		copy(out, variants)
		return out
	}
	return nil
}
