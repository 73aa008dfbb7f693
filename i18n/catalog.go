// Package i18n renders problem.Problem message keys into human-readable
// text, English and Japanese at minimum, following the teacher's
// dictionary-Translator shape but negotiating the active locale with
// golang.org/x/text/language instead of a bare string switch.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Translator renders a message code with substitution parameters.
type Translator interface {
	Message(code string, data map[string]string) string
}

var supported = []language.Tag{
	language.English,
	language.Japanese,
}

var matcher = language.NewMatcher(supported)

// Resolve negotiates the best supported locale for the given preference
// list (e.g. parsed from a --locale flag or the Accept-Language header),
// falling back to English.
func Resolve(prefer ...string) Translator {
	tags := make([]language.Tag, 0, len(prefer))
	for _, p := range prefer {
		if t, err := language.Parse(p); err == nil {
			tags = append(tags, t)
		}
	}
	_, idx, _ := matcher.Match(tags...)
	return dictTranslator{lang: supported[idx]}
}

// English is the default Translator.
var English Translator = dictTranslator{lang: language.English}

type dictTranslator struct{ lang language.Tag }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var dict map[string]string
	if t.lang == language.Japanese {
		dict = ja
	} else {
		dict = en
	}
	tmpl, ok := dict[code]
	if !ok {
		return code
	}
	return expand(tmpl, data)
}

func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	var b strings.Builder
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] == '{' {
			if j := strings.IndexByte(tmpl[i:], '}'); j >= 0 {
				key := tmpl[i+1 : i+j]
				if v, ok := data[key]; ok {
					b.WriteString(v)
					i += j
					continue
				}
			}
		}
		b.WriteByte(tmpl[i])
	}
	return b.String()
}

var en = map[string]string{
	"type":               "instance type does not match expected type {expected}",
	"required":           "required property {name} is missing",
	"minLength":          "string must be at least {min} characters long",
	"maxLength":          "string must be at most {max} characters long",
	"pattern":            "string does not match pattern {pattern}",
	"minimum":            "value must be >= {limit}",
	"maximum":            "value must be <= {limit}",
	"exclusiveMinimum":   "value must be > {limit}",
	"exclusiveMaximum":   "value must be < {limit}",
	"multipleOf":         "value must be a multiple of {divisor}",
	"minItems":           "array must have at least {min} items",
	"maxItems":           "array must have at most {max} items",
	"uniqueItems":        "array items must be unique, duplicate found at index {index}",
	"minProperties":      "object must have at least {min} properties",
	"maxProperties":      "object must have at most {max} properties",
	"additionalItems":    "array has an unexpected item at index {index}",
	"false_schema":       "instance is not valid against a false schema",
	"enum":               "value does not match any allowed value",
	"const":              "value does not equal the expected constant",
	"not":                "instance must not be valid against the given schema",
	"oneOf.few":          "instance is not valid against any schema",
	"oneOf.many":         "instance is valid against more than one schema",
	"oneOf.none":         "instance is not valid against any schema",
	"anyOf":              "instance is not valid against any of the given schemas",
	"allOf":              "instance is not valid against all of the given schemas",
	"dependencies":       "property {dependant} requires missing property {missing}",
	"not.dependencies":   "property {dependant} must not be accompanied by property {required}",
	"format":             "string does not match format {format}",
	"contentEncoding":    "value is not valid {encoding}",
	"contentMediaType":   "decoded content is not valid {mediaType}",
	"minContains":        "array has fewer than {min} items matching the contains schema",
	"maxContains":        "array has more than {max} items matching the contains schema",
	"contains":           "array has no item matching the contains schema",
	"schema.dereference": "schema reference {ref} cannot be resolved",
	"propertyNames":      "property name {name} is not valid",
	"parse_error":        "malformed input",
	"truncated":          "input truncated",
	"duplicate_key":      "duplicate key {name}",
}

var ja = map[string]string{
	"type":               "インスタンスの型が期待される型 {expected} と一致しません",
	"required":           "必須プロパティ {name} がありません",
	"minLength":          "文字列は {min} 文字以上である必要があります",
	"maxLength":          "文字列は {max} 文字以下である必要があります",
	"pattern":            "文字列がパターン {pattern} に一致しません",
	"minimum":            "値は {limit} 以上である必要があります",
	"maximum":            "値は {limit} 以下である必要があります",
	"exclusiveMinimum":   "値は {limit} より大きい必要があります",
	"exclusiveMaximum":   "値は {limit} より小さい必要があります",
	"multipleOf":         "値は {divisor} の倍数である必要があります",
	"minItems":           "配列は {min} 個以上の要素が必要です",
	"maxItems":           "配列は {max} 個以下の要素が必要です",
	"uniqueItems":        "配列の要素は一意である必要があります。インデックス {index} で重複",
	"minProperties":      "オブジェクトは {min} 個以上のプロパティが必要です",
	"maxProperties":      "オブジェクトは {max} 個以下のプロパティが必要です",
	"additionalItems":    "配列のインデックス {index} に予期しない要素があります",
	"false_schema":       "インスタンスは false スキーマに対して有効ではありません",
	"enum":               "値は許可された値のいずれにも一致しません",
	"const":              "値は期待される定数と一致しません",
	"not":                "インスタンスは指定されたスキーマに対して有効であってはいけません",
	"oneOf.few":          "インスタンスはどのスキーマに対しても有効ではありません",
	"oneOf.many":         "インスタンスは複数のスキーマに対して有効です",
	"oneOf.none":         "インスタンスはどのスキーマに対しても有効ではありません",
	"anyOf":              "インスタンスはいずれのスキーマに対しても有効ではありません",
	"allOf":              "インスタンスはすべてのスキーマに対して有効ではありません",
	"dependencies":       "プロパティ {dependant} には {missing} が必要です",
	"not.dependencies":   "プロパティ {dependant} は {required} と同時に存在してはいけません",
	"format":             "文字列がフォーマット {format} に一致しません",
	"contentEncoding":    "値は有効な {encoding} ではありません",
	"contentMediaType":   "デコードされた内容は有効な {mediaType} ではありません",
	"minContains":        "配列内で contains スキーマに一致する要素が {min} 個未満です",
	"maxContains":        "配列内で contains スキーマに一致する要素が {max} 個を超えています",
	"contains":           "配列内に contains スキーマに一致する要素がありません",
	"schema.dereference": "スキーマ参照 {ref} を解決できません",
	"propertyNames":      "プロパティ名 {name} は無効です",
	"parse_error":        "入力が不正です",
	"truncated":          "入力が切り詰められました",
	"duplicate_key":      "キー {name} が重複しています",
}
