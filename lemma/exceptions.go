package lemma

var defaultExceptions = map[string]map[string]string{
	Verb: {
		"is": "be", "am": "be", "are": "be", "was": "be", "were": "be",
		"been": "be", "being": "be", "'s": "be", "'re": "be", "'m": "be",
		"has": "have", "had": "have", "having": "have", "'ve": "have",
		"does": "do", "did": "do", "done": "do",
		"goes": "go", "went": "go", "gone": "go",
		"met": "meet", "left": "leave", "said": "say", "saw": "see", "seen": "see",
		"came": "come", "made": "make", "took": "take", "taken": "take",
		"gave": "give", "given": "give", "got": "get", "gotten": "get",
		"knew": "know", "known": "know", "thought": "think", "told": "tell",
		"found": "find", "bought": "buy", "ran": "run", "wrote": "write",
		"written": "write", "sat": "sit", "stood": "stand", "began": "begin",
		"begun": "begin", "felt": "feel", "kept": "keep", "brought": "bring",
		"held": "hold", "lives": "live",
		"'ll": "will", "'d": "would", "ca": "can", "wo": "will",
	},
	Noun: {
		"men": "man", "women": "woman", "children": "child", "people": "person",
		"feet": "foot", "teeth": "tooth", "mice": "mouse", "geese": "goose",
		"lives": "life", "wives": "wife", "knives": "knife", "leaves": "leaf",
		"data": "datum",
	},
	Adj: {
		"better": "good", "best": "good", "worse": "bad", "worst": "bad",
	},
	Adv: {
		"better": "well", "best": "well",
	},
	Any: {
		"n't": "not",
	},
}
