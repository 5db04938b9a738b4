package domain

// Language identifies a submission language supported by the judge
type Language string

const (
	LanguageC          Language = "c"
	LanguageCPP        Language = "cpp"
	LanguageJava       Language = "java"
	LanguageJavaScript Language = "javascript"
	LanguagePython     Language = "python"
)

// languageEngineIDs maps each supported language to the execution engine
// identifier used by the external judge. The values are vendor specific.
var languageEngineIDs = map[Language]int{
	LanguageC:          50,
	LanguageCPP:        54,
	LanguageJava:       62,
	LanguageJavaScript: 63,
	LanguagePython:     71,
}

// EngineID returns the judge engine identifier for the language and whether
// the language is supported.
func (l Language) EngineID() (int, bool) {
	id, ok := languageEngineIDs[l]
	return id, ok
}

// SupportedLanguages returns the fixed set of languages the judge accepts.
func SupportedLanguages() []Language {
	langs := make([]Language, 0, len(languageEngineIDs))
	for lang := range languageEngineIDs {
		langs = append(langs, lang)
	}
	return langs
}
