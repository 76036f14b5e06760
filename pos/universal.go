package pos

// Coarse universal classes.
const (
	ADJ   = "ADJ"
	ADP   = "ADP"
	ADV   = "ADV"
	AUX   = "AUX"
	CCONJ = "CCONJ"
	DET   = "DET"
	INTJ  = "INTJ"
	NOUN  = "NOUN"
	NUM   = "NUM"
	PART  = "PART"
	PRON  = "PRON"
	PROPN = "PROPN"
	PUNCT = "PUNCT"
	SYM   = "SYM"
	VERB  = "VERB"
	X     = "X"
)

var universal = map[string]string{
	"CC":    CCONJ,
	"CD":    NUM,
	"DT":    DET,
	"EX":    PRON,
	"FW":    X,
	"IN":    ADP,
	"JJ":    ADJ,
	"JJR":   ADJ,
	"JJS":   ADJ,
	"LS":    X,
	"MD":    AUX,
	"NN":    NOUN,
	"NNS":   NOUN,
	"NNP":   PROPN,
	"NNPS":  PROPN,
	"PDT":   DET,
	"POS":   PART,
	"PRP":   PRON,
	"PRP$":  PRON,
	"RB":    ADV,
	"RBR":   ADV,
	"RBS":   ADV,
	"RP":    ADP,
	"SYM":   SYM,
	"TO":    PART,
	"UH":    INTJ,
	"VB":    VERB,
	"VBD":   VERB,
	"VBG":   VERB,
	"VBN":   VERB,
	"VBP":   VERB,
	"VBZ":   VERB,
	"WDT":   DET,
	"WP":    PRON,
	"WP$":   PRON,
	"WRB":   ADV,
	".":     PUNCT,
	",":     PUNCT,
	":":     PUNCT,
	"``":    PUNCT,
	"''":    PUNCT,
	"-LRB-": PUNCT,
	"-RRB-": PUNCT,
	"HYPH":  PUNCT,
	"NFP":   PUNCT,
	"#":     SYM,
	"$":     SYM,
}

// Universal maps a Penn Treebank tag to its universal class. Unknown and
// unmapped tags map to X.
func Universal(tag string) string {
	if u, ok := universal[tag]; ok {
		return u
	}
	return X
}
