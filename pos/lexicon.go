package pos

// defaultLexicon maps lower case forms to "TAG:p" candidate lists, most
// likely tag first.
var defaultLexicon = map[string]string{
	// determiners
	"the": "DT", "a": "DT", "an": "DT", "this": "DT", "these": "DT", "those": "DT",
	"that": "DT:.5 IN:.3 WDT:.2", "every": "DT", "each": "DT", "some": "DT",
	"any": "DT", "no": "DT:.6 UH:.3 RB:.1", "all": "DT:.7 PDT:.3", "both": "DT:.6 CC:.4",
	"another": "DT",

	// pronouns
	"i": "PRP", "you": "PRP", "he": "PRP", "she": "PRP", "it": "PRP", "we": "PRP",
	"they": "PRP", "me": "PRP", "him": "PRP", "her": "PRP$:.6 PRP:.4", "us": "PRP",
	"them": "PRP", "my": "PRP$", "your": "PRP$", "his": "PRP$", "its": "PRP$",
	"our": "PRP$", "their": "PRP$", "myself": "PRP", "himself": "PRP",
	"herself": "PRP", "itself": "PRP", "themselves": "PRP",
	"who": "WP", "whom": "WP", "what": "WP:.8 WDT:.2", "which": "WDT", "whose": "WP$",
	"where": "WRB", "when": "WRB", "why": "WRB", "how": "WRB",

	// prepositions and conjunctions
	"of": "IN", "in": "IN", "on": "IN", "at": "IN", "by": "IN", "for": "IN",
	"with": "IN", "from": "IN", "to": "TO:.8 IN:.2", "into": "IN", "onto": "IN",
	"over": "IN", "under": "IN", "about": "IN", "after": "IN", "before": "IN",
	"between": "IN", "through": "IN", "during": "IN", "without": "IN",
	"within": "IN", "against": "IN", "among": "IN", "across": "IN",
	"behind": "IN", "near": "IN", "since": "IN", "until": "IN", "upon": "IN",
	"as": "IN", "like": "IN:.6 VB:.2 VBP:.2", "than": "IN", "if": "IN", "because": "IN",
	"and": "CC", "or": "CC", "but": "CC", "nor": "CC", "yet": "CC:.5 RB:.5",
	"so": "RB:.6 IN:.4",

	// modals and auxiliaries
	"can": "MD:.7 NN:.2 VB:.1", "could": "MD", "would": "MD", "should": "MD",
	"will": "MD:.9 NN:.1", "shall": "MD", "may": "MD:.8 NNP:.2", "might": "MD",
	"must": "MD", "wo": "MD", "ca": "MD",
	"be": "VB", "is": "VBZ", "am": "VBP", "are": "VBP", "was": "VBD", "were": "VBD",
	"been": "VBN", "being": "VBG", "have": "VBP:.6 VB:.4", "has": "VBZ",
	"had": "VBD:.6 VBN:.4", "do": "VBP:.6 VB:.4", "does": "VBZ", "did": "VBD",
	"done": "VBN",

	// clitics
	"'s": "POS:.5 VBZ:.5", "'re": "VBP", "'ve": "VBP", "'ll": "MD",
	"'d": "MD:.6 VBD:.4", "'m": "VBP", "n't": "RB",

	// common verbs
	"met": "VBD:.6 VBN:.4", "meet": "VB:.6 VBP:.4", "left": "VBD:.6 JJ:.2 NN:.2",
	"leave": "VB:.6 VBP:.4", "went": "VBD", "go": "VB:.6 VBP:.4", "goes": "VBZ",
	"gone": "VBN", "said": "VBD:.6 VBN:.4", "say": "VB:.6 VBP:.4", "says": "VBZ",
	"saw": "VBD", "seen": "VBN", "see": "VB:.6 VBP:.4", "came": "VBD",
	"come": "VB:.6 VBP:.4", "made": "VBD:.5 VBN:.5", "make": "VB:.6 VBP:.4",
	"took": "VBD", "taken": "VBN", "take": "VB:.6 VBP:.4", "gave": "VBD",
	"given": "VBN", "give": "VB:.6 VBP:.4", "got": "VBD:.6 VBN:.4",
	"get": "VB:.6 VBP:.4", "know": "VBP:.6 VB:.4", "knew": "VBD", "known": "VBN",
	"think": "VBP:.6 VB:.4", "thought": "VBD:.5 VBN:.3 NN:.2", "told": "VBD:.6 VBN:.4",
	"found": "VBD:.6 VBN:.4", "bought": "VBD:.6 VBN:.4", "ran": "VBD",
	"run": "VB:.5 NN:.3 VBP:.2", "wrote": "VBD", "written": "VBN",
	"sat": "VBD", "stood": "VBD", "began": "VBD", "begun": "VBN", "felt": "VBD:.6 VBN:.4",
	"kept": "VBD:.6 VBN:.4", "brought": "VBD:.6 VBN:.4", "held": "VBD:.6 VBN:.4",
	"lives": "VBZ:.6 NNS:.4", "works": "VBZ:.6 NNS:.4", "visited": "VBD:.6 VBN:.4",

	// adverbs
	"not": "RB", "very": "RB", "also": "RB", "never": "RB", "always": "RB",
	"often": "RB", "here": "RB", "there": "EX:.5 RB:.5", "now": "RB", "then": "RB",
	"too": "RB", "just": "RB", "only": "RB:.7 JJ:.3", "well": "RB:.6 JJ:.2 UH:.2",
	"up": "RP:.5 RB:.3 IN:.2", "down": "RP:.5 RB:.3 IN:.2", "out": "RP:.6 IN:.4",
	"again": "RB", "still": "RB", "soon": "RB", "yesterday": "NN", "today": "NN",
	"tomorrow": "NN",

	// adjectives
	"good": "JJ", "better": "JJR:.7 RBR:.3", "best": "JJS:.7 RBS:.3", "new": "JJ",
	"old": "JJ", "big": "JJ", "small": "JJ", "many": "JJ", "much": "JJ:.6 RB:.4",
	"more": "JJR:.6 RBR:.4", "most": "JJS:.6 RBS:.4", "other": "JJ",
	"first": "JJ:.7 RB:.3", "last": "JJ:.8 RB:.2", "same": "JJ", "great": "JJ",
	"long": "JJ", "little": "JJ", "young": "JJ", "bad": "JJ", "worse": "JJR", "worst": "JJS",
	"cold": "JJ", "happy": "JJ",

	// nouns
	"man": "NN", "men": "NNS", "woman": "NN", "women": "NNS", "child": "NN",
	"children": "NNS", "people": "NNS", "time": "NN", "year": "NN", "years": "NNS",
	"day": "NN", "days": "NNS", "dog": "NN", "cat": "NN", "house": "NN", "city": "NN", "fun": "NN",
	"country": "NN", "world": "NN", "side": "NN", "thing": "NN", "week": "NN",
	"company": "NN", "government": "NN", "president": "NN", "minister": "NN",

	// numbers
	"one": "CD", "two": "CD", "three": "CD", "four": "CD", "five": "CD", "six": "CD",
	"seven": "CD", "eight": "CD", "nine": "CD", "ten": "CD", "hundred": "CD",
	"thousand": "CD", "million": "CD", "billion": "CD",

	// interjections
	"yes": "UH:.7 RB:.3", "oh": "UH", "hello": "UH",

	// titles and abbreviations
	"dr.": "NNP", "mr.": "NNP", "mrs.": "NNP", "ms.": "NNP", "prof.": "NNP",
	"sen.": "NNP", "gov.": "NNP", "gen.": "NNP", "st.": "NNP", "inc.": "NNP",
	"corp.": "NNP", "ltd.": "NNP", "co.": "NNP", "u.s.": "NNP", "u.k.": "NNP",
	"u.n.": "NNP", "etc.": "FW", "vs.": "IN",

	// given names
	"john": "NNP", "mary": "NNP", "james": "NNP", "robert": "NNP", "michael": "NNP",
	"david": "NNP", "william": "NNP", "richard": "NNP", "peter": "NNP", "paul": "NNP",
	"susan": "NNP", "linda": "NNP", "elizabeth": "NNP", "sarah": "NNP", "anna": "NNP",
	"maria": "NNP", "george": "NNP", "thomas": "NNP",

	// calendar
	"january": "NNP", "february": "NNP", "march": "NNP:.7 NN:.2 VB:.1", "april": "NNP",
	"june": "NNP", "july": "NNP", "august": "NNP", "september": "NNP",
	"october": "NNP", "november": "NNP", "december": "NNP", "monday": "NNP",
	"tuesday": "NNP", "wednesday": "NNP", "thursday": "NNP", "friday": "NNP",
	"saturday": "NNP", "sunday": "NNP",
}
