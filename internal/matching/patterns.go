package matching

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// techPatterns are markers for technical vocabulary. Patterns of three
// characters or fewer only match whole tokens; longer patterns match
// anywhere inside the term.
var techPatterns = []string{
	// languages
	"python", "java", "javascript", "typescript", "scala", "golang",
	"ruby", "php", "swift", "kotlin", "rust", "c#", "c++", ".net",
	"matlab", "sas", "spss", "vba",
	// web and app frameworks
	"react", "angular", "vue", "svelte", "node", "django", "flask",
	"spring", "express", "fastapi", "rails", "blazor", "razor",
	"xamarin", "html", "css", "jquery", "bootstrap",
	// data stores and query
	"sql", "mysql", "postgres", "mongodb", "oracle", "redis",
	"cassandra", "dynamodb", "elasticsearch", "snowflake", "redshift",
	"bigquery", "databricks", "nosql", "olap", "oltp", "dax", "mdx",
	"ssas", "ssis", "ssrs", "linq", "entity framework", "database",
	// business intelligence and data engineering
	"tableau", "power bi", "powerbi", "qlik", "looker", "cognos",
	"microstrategy", "alteryx", "excel", "etl", "warehouse",
	"analytics", "machine learning", "data science", "data engineering",
	"big data", "airflow", "kafka", "spark", "hadoop", "informatica",
	"talend", "ml", "ai",
	// cloud and operations
	"aws", "azure", "gcp", "cloud", "docker", "kubernetes", "k8s",
	"terraform", "ansible", "jenkins", "gitlab", "git", "ci cd",
	"devops", "grpc", "rabbitmq", "pipeline", "server",
	// protocols, architecture, tooling
	"api", "rest", "graphql", "soap", "mvc", "orm", "wcf", "webapi",
	"framework", "nunit", "xunit", "jira", "salesforce", "sap",
	"servicenow",
}

// softKeywords classify interpersonal and organizational skills by
// substring containment, so "communication skills" and "strong
// communication" both land on communication.
var softKeywords = []string{
	"leadership", "communication", "teamwork", "collaboration",
	"mentoring", "management", "planning", "organization",
	"problem solving", "critical thinking", "adaptability", "creativity",
	"presentation", "negotiation", "decision making",
	"strategic thinking", "analytical thinking", "interpersonal",
	"emotional intelligence",
}

// genericTerms are job-posting filler that should never count as a skill
var genericTerms = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"using", "experience", "knowledge", "ability", "working",
		"understanding", "strong", "good", "excellent", "proficient",
		"familiar", "expertise", "background", "years", "work", "team",
		"teams", "business", "performance", "support", "applications",
		"services", "quality", "technical", "skills", "required",
		"preferred", "must", "should", "will", "can", "able",
		"including", "related", "relevant", "various", "multiple",
		"several", "different", "new", "current", "existing", "future",
		"based", "driven", "focused", "oriented", "data", "tools",
		"technologies", "systems", "solutions", "processes", "projects",
		"development", "design", "implementation", "integration",
		"testing", "deployment", "maintenance", "documentation",
		"requirements", "analysis", "reporting", "monitoring",
	} {
		genericTerms[w] = struct{}{}
	}
}

var (
	// all-caps tokens like SSIS, DAX, or J2EE read as technical acronyms
	acronymRe = regexp.MustCompile(`^[A-Z][A-Z0-9+#]{1,5}$`)
	// version-ish tokens like es6, python 3, angular 9
	versionRe = regexp.MustCompile(`^[a-z]+(?:\.[a-z]+)? ?\d+(?:\.\d+)*$`)
	// dotted tool names like node.js or d3.js
	dottedRe = regexp.MustCompile(`^[a-z0-9]+\.[a-z]{2,4}$`)
)

// IsGeneric reports whether a normalized term is posting filler with no
// skill content
func IsGeneric(term string) bool {
	_, ok := genericTerms[term]
	return ok
}

// Categorize classifies a term the taxonomy could not resolve. Generic
// filler and sub-two-character terms are dropped, soft keywords are
// checked before technical patterns, and anything matching neither is
// reported unclassified.
func Categorize(term types.ExtractedTerm) (types.SkillCategory, bool) {
	normalized := term.Normalized
	if len(normalized) < 2 || IsGeneric(normalized) {
		return "", false
	}
	if isSoftTerm(normalized) {
		return types.CategorySoft, true
	}
	if isTechTerm(term) {
		return types.CategoryTechnical, true
	}
	return "", false
}

func isSoftTerm(normalized string) bool {
	for _, kw := range softKeywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

func isTechTerm(term types.ExtractedTerm) bool {
	normalized := term.Normalized
	tokens := strings.Fields(normalized)
	for _, pat := range techPatterns {
		if len(pat) <= 3 {
			for _, tok := range tokens {
				if tok == pat {
					return true
				}
			}
			continue
		}
		if strings.Contains(normalized, pat) {
			return true
		}
	}
	if versionRe.MatchString(normalized) || dottedRe.MatchString(normalized) {
		return true
	}
	// surface-form acronym check applies to single tokens only
	return term.Tokens <= 1 && acronymRe.MatchString(term.Text)
}
