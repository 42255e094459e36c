package rerank

// baseStopwords is the built-in multilingual stopword set: high-frequency
// function words for English, Spanish, French, German, Italian, Portuguese,
// Dutch and Russian. Custom stopwords are unioned on top per invocation.
var baseStopwords = []string{
	// English
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "as", "is", "are", "was", "were", "be",
	"been", "being", "have", "has", "had", "do", "does", "did", "will",
	"would", "could", "should", "this", "that", "these", "those", "it",
	"its", "not", "no", "what", "which", "who", "when", "where", "why",
	"how", "all", "each", "any", "both", "more", "most", "other", "some",
	"such", "than", "then", "there", "can", "into", "about", "over",
	// Spanish
	"el", "la", "los", "las", "un", "una", "unos", "unas", "de", "del",
	"en", "y", "o", "que", "es", "son", "por", "para", "con", "su", "se",
	"al", "lo", "como", "pero", "sus", "le", "ya", "sin",
	// French
	"le", "les", "des", "une", "et", "ou", "est", "sont", "dans",
	"pour", "sur", "avec", "ce", "cette", "ces", "qui", "ne", "pas", "au",
	"aux", "il", "elle", "nous", "vous", "ils", "elles", "mais",
	// German
	"der", "die", "das", "ein", "eine", "einer", "eines", "und", "oder",
	"aber", "ist", "sind", "war", "waren", "im", "mit", "von", "zu",
	"den", "dem", "auf", "nicht", "als", "auch", "sich", "bei", "aus",
	// Italian
	"il", "gli", "uno", "di", "da", "che", "non", "per", "tra", "fra",
	"sono", "nel", "nella", "con", "come", "ma", "se", "anche",
	// Portuguese
	"os", "as", "um", "uma", "do", "da", "dos", "das", "em", "no", "na",
	"nos", "nas", "por", "para", "com", "mais", "mas", "ao", "seu", "sua",
	// Dutch
	"een", "het", "van", "aan", "met", "voor", "naar", "ook",
	"niet", "maar", "zijn", "wordt", "deze", "dit", "dat", "bij",
	// Russian
	"и", "в", "во", "не", "что", "он", "на", "я", "с", "со", "как", "а",
	"то", "все", "она", "так", "его", "но", "да", "ты", "к", "у", "же",
	"вы", "за", "бы", "по", "только", "ее", "мне", "было", "вот", "от",
	"меня", "еще", "нет", "о", "из", "ему", "или", "ни", "быть", "был",
	"него", "до", "вас", "нибудь", "уже", "для", "мы", "тебя", "их",
}

// stopwordSet is a case-insensitive token blocklist.
type stopwordSet map[string]struct{}

// newStopwordSet unions the built-in base set with custom words.
// Words are expected lowercased (tokenization lowercases first).
func newStopwordSet(custom []string) stopwordSet {
	set := make(stopwordSet, len(baseStopwords)+len(custom))
	for _, w := range baseStopwords {
		set[w] = struct{}{}
	}
	for _, w := range custom {
		set[w] = struct{}{}
	}
	return set
}

// Contains reports whether the token is a stopword.
func (s stopwordSet) Contains(token string) bool {
	_, ok := s[token]
	return ok
}
