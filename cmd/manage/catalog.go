package main

import (
	"linguista/internal/domain"
	"linguista/internal/service"
)

// sortingWeights moves popular languages to the top of language lists
var sortingWeights = map[string]int{
	"en": 3,
	"ru": 2, "fr": 2, "de": 2, "it": 2, "ja": 2, "ko": 2, "es": 2,
	"tr": 1, "ar": 1, "nl": 1, "ro": 1,
}

// interfaceLanguages are the languages the front-end is translated to
var interfaceLanguages = map[string]bool{"en": true, "ru": true}

type languageInfo struct {
	isocode   string
	name      string
	nameLocal string
	country   string
}

// languageTable lists the two-letter languages offered by Linguista
var languageTable = []languageInfo{
	{"af", "Afrikaans", "Afrikaans", "South Africa"},
	{"ar", "Arabic", "العربيّة", "Saudi Arabia"},
	{"az", "Azerbaijani", "Azərbaycanca", "Azerbaijan"},
	{"be", "Belarusian", "беларуская", "Belarus"},
	{"bg", "Bulgarian", "български", "Bulgaria"},
	{"bn", "Bengali", "বাংলা", "Bangladesh"},
	{"ca", "Catalan", "català", "Spain"},
	{"cs", "Czech", "česky", "Czech Republic"},
	{"da", "Danish", "dansk", "Denmark"},
	{"de", "German", "Deutsch", "Germany"},
	{"el", "Greek", "Ελληνικά", "Greece"},
	{"en", "English", "English", "United Kingdom"},
	{"es", "Spanish", "español", "Spain"},
	{"et", "Estonian", "eesti", "Estonia"},
	{"fa", "Persian", "فارسی", "Iran"},
	{"fi", "Finnish", "suomi", "Finland"},
	{"fr", "French", "français", "France"},
	{"ga", "Irish", "Gaeilge", "Ireland"},
	{"he", "Hebrew", "עברית", "Israel"},
	{"hi", "Hindi", "हिंदी", "India"},
	{"hr", "Croatian", "Hrvatski", "Croatia"},
	{"hu", "Hungarian", "Magyar", "Hungary"},
	{"hy", "Armenian", "հայերեն", "Armenia"},
	{"id", "Indonesian", "Bahasa Indonesia", "Indonesia"},
	{"is", "Icelandic", "Íslenska", "Iceland"},
	{"it", "Italian", "italiano", "Italy"},
	{"ja", "Japanese", "日本語", "Japan"},
	{"ka", "Georgian", "ქართული", "Georgia"},
	{"kk", "Kazakh", "Қазақ", "Kazakhstan"},
	{"ko", "Korean", "한국어", "South Korea"},
	{"ky", "Kyrgyz", "Кыргызча", "Kyrgyzstan"},
	{"lt", "Lithuanian", "Lietuviškai", "Lithuania"},
	{"lv", "Latvian", "latviešu", "Latvia"},
	{"mn", "Mongolian", "Монгол", "Mongolia"},
	{"nb", "Norwegian Bokmal", "norsk (bokmål)", "Norway"},
	{"nl", "Dutch", "Nederlands", "Netherlands"},
	{"pl", "Polish", "polski", "Poland"},
	{"pt", "Portuguese", "Português", "Portugal"},
	{"ro", "Romanian", "Română", "Romania"},
	{"ru", "Russian", "Русский", "Russia"},
	{"sk", "Slovak", "Slovensky", "Slovakia"},
	{"sl", "Slovenian", "Slovenščina", "Slovenia"},
	{"sq", "Albanian", "shqip", "Albania"},
	{"sr", "Serbian", "српски", "Serbia"},
	{"sv", "Swedish", "svenska", "Sweden"},
	{"sw", "Swahili", "Kiswahili", "Kenya"},
	{"th", "Thai", "ภาษาไทย", "Thailand"},
	{"tk", "Turkmen", "Türkmençe", "Turkmenistan"},
	{"tr", "Turkish", "Türkçe", "Turkey"},
	{"uk", "Ukrainian", "Українська", "Ukraine"},
	{"ur", "Urdu", "اردو", "Pakistan"},
	{"uz", "Uzbek", "oʻzbek tili", "Uzbekistan"},
	{"vi", "Vietnamese", "Tiếng Việt", "Vietnam"},
}

// builtinLanguages turns languageTable into domain languages.
// Every weighted language is open for learning.
func builtinLanguages() []domain.Language {
	langs := make([]domain.Language, 0, len(languageTable))
	for _, info := range languageTable {
		weight := sortingWeights[info.isocode]
		langs = append(langs, domain.Language{
			Name:               info.name,
			NameLocal:          info.nameLocal,
			Isocode:            info.isocode,
			Country:            info.country,
			Sorting:            weight,
			LearningAvailable:  weight > 0,
			InterfaceAvailable: interfaceLanguages[info.isocode],
		})
	}
	return langs
}

// builtinExercises are the exercises shipped with Linguista
var builtinExercises = []service.ExerciseInput{
	{
		Name: "Translator",
		Description: "Translate a word on time or in free mode from your native " +
			"language to the language you are learning and vice versa.",
		ConstraintDescription: "Only words with translations.",
		Available:             true,
	},
	{
		Name: "Associate",
		Description: "Remember the word by association on time or in free mode, " +
			"or choose the correct word association.",
		ConstraintDescription: "Only words with images.",
		Available:             false,
	},
}

// wordTypeTable lists word types with their display weight
var wordTypeTable = []struct {
	name    string
	sorting int
}{
	{"Noun", 3},
	{"Verb", 3},
	{"Adjective", 3},
	{"Adverb", 2},
	{"Pronoun", 1},
	{"Preposition", 2},
	{"Union", 1},
	{"Particle", 1},
	{"Participle", 2},
	{"Gerund", 2},
	{"Article", 1},
	{"Predicative", 1},
	{"Numeral", 2},
	{"Interjection", 1},
	{"Phrase", 3},
	{"Idiom", 1},
	{"Quote", 2},
	{"Collocation", 3},
	{"Proverb", 1},
}

func builtinWordTypes() []domain.WordType {
	types := make([]domain.WordType, 0, len(wordTypeTable))
	for _, t := range wordTypeTable {
		types = append(types, domain.WordType{Name: t.name, Sorting: t.sorting})
	}
	return types
}
