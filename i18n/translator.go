package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"missing_top_comment":  "no leading /* */ comment block",
		"malformed_json":       "descriptor is not valid JSON",
		"invalid_type":         "invalid type",
		"required":             "required property missing",
		"unknown_input_type":   "unknown input type",
		"invalid_range":        "invalid range",
		"duplicate_input_name": "duplicate input name",
		"empty_name":           "name must not be empty",
		"field_not_allowed":    "field not allowed for this input type",
		"invalid_enum":         "invalid enumeration",
		"unknown_key":          "unknown key",
		"duplicate_key":        "duplicate key",
		"truncated":            "truncated",
	},
	"ja": {
		"missing_top_comment":  "先頭の /* */ コメントブロックがありません",
		"malformed_json":       "記述子が正しい JSON ではありません",
		"invalid_type":         "型が不正です",
		"required":             "必須プロパティが不足しています",
		"unknown_input_type":   "未知の入力タイプです",
		"invalid_range":        "範囲が不正です",
		"duplicate_input_name": "入力名が重複しています",
		"empty_name":           "名前が空です",
		"field_not_allowed":    "この入力タイプでは使用できないフィールドです",
		"invalid_enum":         "列挙が不正です",
		"unknown_key":          "未知のキーです",
		"duplicate_key":        "キーが重複しています",
		"truncated":            "打ち切られました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	if msg, ok := dictionaries[t.lang][code]; ok {
		return msg
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
