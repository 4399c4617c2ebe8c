package normalize

import (
	"regexp"
	"strings"
)

var (
	punctuation = regexp.MustCompile(`[^a-z0-9\s]`)
	multiSpace  = regexp.MustCompile(`\s+`)
)

// TextRules holds the synonym and filler tables applied by NormalizeText.
// Both tables are domain data subject to revision, so they are carried as a
// value rather than baked into the function.
type TextRules struct {
	// Synonyms maps a single lowercase word to its canonical expansion,
	// which may be multi-word ("er" -> "emergency room").
	Synonyms map[string]string `yaml:"synonyms"`
	// Fillers are phrases stripped after synonym expansion. Order matters:
	// some fillers only become recognizable once abbreviations expand.
	Fillers []string `yaml:"fillers"`

	fillerRe []*regexp.Regexp
}

// DefaultTextRules returns the built-in synonym and filler tables.
func DefaultTextRules() TextRules {
	return NewTextRules(defaultSynonyms, defaultFillers)
}

// NewTextRules builds a TextRules with precompiled filler patterns.
func NewTextRules(synonyms map[string]string, fillers []string) TextRules {
	t := TextRules{Synonyms: synonyms, Fillers: fillers}
	t.compile()
	return t
}

func (t *TextRules) compile() {
	t.fillerRe = make([]*regexp.Regexp, len(t.Fillers))
	for i, f := range t.Fillers {
		t.fillerRe[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(f)) + `\b`)
	}
}

// NormalizeText produces the canonical comparison form of a charge
// description: lowercase, punctuation stripped, whitespace collapsed, word
// level synonym expansion, then filler-phrase removal. It never fails;
// garbage in yields a short or empty string out.
func (t *TextRules) NormalizeText(s string) string {
	if t.fillerRe == nil && len(t.Fillers) > 0 {
		t.compile()
	}

	s = strings.ToLower(strings.TrimSpace(s))
	s = punctuation.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	// Synonym expansion happens before filler removal: some fillers only
	// surface once abbreviations are expanded.
	words := strings.Split(s, " ")
	for i, w := range words {
		if canon, ok := t.Synonyms[w]; ok {
			words[i] = canon
		}
	}
	s = strings.Join(words, " ")

	for _, re := range t.fillerRe {
		s = re.ReplaceAllString(s, " ")
	}

	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var defaultSynonyms = map[string]string{
	"er":     "emergency room",
	"ed":     "emergency room",
	"ct":     "ct scan",
	"cat":    "ct scan",
	"mri":    "mri scan",
	"iv":     "intravenous",
	"inj":    "injection",
	"im":     "intramuscular",
	"lab":    "laboratory",
	"labs":   "laboratory",
	"rm":     "room",
	"bd":     "board",
	"obs":    "observation",
	"o2":     "oxygen",
	"rx":     "pharmacy",
	"med":    "medication",
	"meds":   "medication",
	"xray":   "x ray",
	"ekg":    "electrocardiogram",
	"ecg":    "electrocardiogram",
	"cbc":    "complete blood count",
	"bmp":    "basic metabolic panel",
	"cmp":    "comprehensive metabolic panel",
	"ua":     "urinalysis",
	"or":     "operating room",
	"anes":   "anesthesia",
	"recov":  "recovery",
	"surg":   "surgery",
	"w":      "with",
	"wo":     "without",
}

var defaultFillers = []string{
	"general classification",
	"nec",
	"nos",
	"not elsewhere classified",
	"not otherwise specified",
	"misc",
	"miscellaneous",
	"other",
	"charge",
	"charges",
	"fee",
	"fees",
	"hcpcs",
	"self admin",
}
