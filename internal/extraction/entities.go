package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Canonical section names recognized in resume text
const (
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
)

// sectionHeadings maps heading phrases to canonical section names
var sectionHeadings = map[string]string{
	"summary":                 SectionSummary,
	"professional summary":    SectionSummary,
	"objective":               SectionSummary,
	"profile":                 SectionSummary,
	"about":                   SectionSummary,
	"about me":                SectionSummary,
	"experience":              SectionExperience,
	"work experience":         SectionExperience,
	"professional experience": SectionExperience,
	"employment":              SectionExperience,
	"employment history":      SectionExperience,
	"work history":            SectionExperience,
	"education":               SectionEducation,
	"academic background":     SectionEducation,
	"skills":                  SectionSkills,
	"technical skills":        SectionSkills,
	"core competencies":       SectionSkills,
	"key skills":              SectionSkills,
	"projects":                SectionProjects,
	"personal projects":       SectionProjects,
	"certifications":          SectionCertifications,
	"certificates":            SectionCertifications,
	"licenses":                SectionCertifications,
}

var monthNames = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var (
	emailRe  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe  = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
	linkRe   = regexp.MustCompile(`(?i)\bhttps?://\S+|\b(?:www\.)?(?:linkedin\.com|github\.com|gitlab\.com|bitbucket\.org)/\S+`)
	bulletRe = regexp.MustCompile(`^\s*[\-*•▪–—]\s+`)

	// "Jan 2020", "January 2020", "01/2020", or a bare year
	datePart = `(?:[A-Za-z]{3,9}\.?\s+\d{4}|\d{1,2}/\d{4}|\d{4})`
	rangeRe  = regexp.MustCompile(`(?i)(` + datePart + `)\s*(?:-|–|—|\bto\b|\buntil\b)\s*(` + datePart + `|present|current|now|ongoing)`)
)

// ParseEntities recovers the structural signals the dimension checkers need:
// detected sections, dated experience entries, contact markers, links, and
// raw size counts. It is regex-level parsing, so it tolerates any layout.
func ParseEntities(text string) types.ResumeEntities {
	var entities types.ResumeEntities
	if strings.TrimSpace(text) == "" {
		return entities
	}

	entities.WordCount = len(strings.Fields(text))
	entities.HasEmail = emailRe.MatchString(text)
	entities.HasPhone = hasPhone(stripLinkText(text))
	entities.Links = linkRe.FindAllString(text, -1)

	seen := make(map[string]struct{})
	var lastHeading, currentSection string
	sawLine := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !sawLine {
			sawLine = true
			if looksLikeName(trimmed) {
				entities.Name = trimmed
			}
		}

		if bulletRe.MatchString(line) {
			entities.BulletCount++
			entities.Bullets = append(entities.Bullets, bulletRe.ReplaceAllString(trimmed, ""))
		}

		if section, ok := matchSectionHeading(trimmed); ok {
			if _, dup := seen[section]; !dup {
				seen[section] = struct{}{}
				entities.Sections = append(entities.Sections, section)
			}
			currentSection = section
			lastHeading = ""
			continue
		}

		if m := rangeRe.FindStringSubmatch(trimmed); m != nil {
			exp := parseExperience(trimmed, m, lastHeading, currentSection)
			if exp != nil {
				entities.Experiences = append(entities.Experiences, *exp)
			}
		} else if !bulletRe.MatchString(line) && len(trimmed) <= 80 {
			// short plain lines are candidate role headings for a date
			// range on the next line
			lastHeading = trimmed
		}
	}

	return entities
}

// SectionText returns the body of one canonical section, from its heading
// to the next recognized heading. Empty when the section was not detected.
func SectionText(text, name string) string {
	var lines []string
	collecting := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if section, ok := matchSectionHeading(trimmed); ok {
			collecting = section == name
			continue
		}
		if collecting {
			lines = append(lines, line)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// looksLikeName accepts a short all-letter line of two to four words, the
// usual shape of the candidate name atop a resume
func looksLikeName(line string) bool {
	if len(line) > 60 {
		return false
	}
	if _, isHeading := matchSectionHeading(line); isHeading {
		return false
	}
	fields := strings.Fields(line)
	if len(fields) < 2 || len(fields) > 4 {
		return false
	}
	for _, f := range fields {
		for _, r := range f {
			if !unicode.IsLetter(r) && r != '.' && r != '-' && r != '\'' {
				return false
			}
		}
	}
	return true
}

// matchSectionHeading reports whether a line is a known section heading
func matchSectionHeading(line string) (string, bool) {
	if len(line) > 40 {
		return "", false
	}
	key := strings.ToLower(strings.TrimRight(line, ": "))
	section, ok := sectionHeadings[key]
	return section, ok
}

// parseExperience builds an experience entry from a matched date range
func parseExperience(line string, match []string, lastHeading, section string) *types.Experience {
	start, ok := parseDate(match[1], false)
	if !ok {
		return nil
	}

	exp := types.Experience{
		Start:    start,
		Raw:      match[0],
		Section:  section,
		StartRaw: match[1],
		EndRaw:   match[2],
	}
	switch strings.ToLower(match[2]) {
	case "present", "current", "now", "ongoing":
		exp.Current = true
	default:
		end, ok := parseDate(match[2], true)
		if !ok {
			return nil
		}
		exp.End = end
	}

	heading := strings.TrimSpace(strings.Replace(line, match[0], "", 1))
	heading = strings.Trim(heading, " \t|,–—-")
	if heading == "" {
		heading = lastHeading
	}
	exp.Heading = heading
	return &exp
}

// parseDate parses one side of a date range. Year-only values resolve to
// January for starts and December for ends.
func parseDate(s string, isEnd bool) (time.Time, bool) {
	s = strings.TrimSpace(strings.ToLower(strings.TrimRight(s, ".")))

	if i := strings.IndexByte(s, '/'); i > 0 {
		month, err := strconv.Atoi(s[:i])
		if err != nil || month < 1 || month > 12 {
			return time.Time{}, false
		}
		year, err := strconv.Atoi(s[i+1:])
		if err != nil || !plausibleYear(year) {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
	}

	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		year, err := strconv.Atoi(fields[0])
		if err != nil || !plausibleYear(year) {
			return time.Time{}, false
		}
		month := time.January
		if isEnd {
			month = time.December
		}
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
	case 2:
		prefix := fields[0]
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		month, ok := monthNames[prefix]
		if !ok {
			return time.Time{}, false
		}
		year, err := strconv.Atoi(fields[1])
		if err != nil || !plausibleYear(year) {
			return time.Time{}, false
		}
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
	default:
		return time.Time{}, false
	}
}

// plausibleYear filters out street numbers and zip codes that look like years
func plausibleYear(year int) bool {
	return year >= 1950 && year <= 2100
}

// stripLinkText removes URLs before phone detection so digit runs inside
// links do not count as phone numbers
func stripLinkText(text string) string {
	return linkRe.ReplaceAllString(text, " ")
}

// hasPhone requires at least nine digits in a candidate run, which keeps
// date ranges like "2019 - 2021" from reading as phone numbers
func hasPhone(text string) bool {
	for _, m := range phoneRe.FindAllString(text, -1) {
		digits := 0
		for _, r := range m {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 9 {
			return true
		}
	}
	return false
}
