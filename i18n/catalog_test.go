package i18n

import "testing"

func TestEnglishMessageExpandsPlaceholders(t *testing.T) {
	msg := English.Message("required", map[string]string{"name": "billingAddress"})
	if msg != "required property billingAddress is missing" {
		t.Fatalf("got %q", msg)
	}
}

func TestEnglishMessageUnknownCodeFallsBackToCode(t *testing.T) {
	msg := English.Message("not_a_real_code", nil)
	if msg != "not_a_real_code" {
		t.Fatalf("expected the raw code back, got %q", msg)
	}
}

func TestResolveJapanese(t *testing.T) {
	tr := Resolve("ja")
	msg := tr.Message("required", map[string]string{"name": "name"})
	if msg == "" || msg == "required" {
		t.Fatalf("expected a localized japanese message, got %q", msg)
	}
}

func TestResolveFallsBackToEnglishForUnsupportedLocale(t *testing.T) {
	tr := Resolve("fr")
	msg := tr.Message("type", map[string]string{"expected": "string"})
	if msg != "instance type does not match expected type string" {
		t.Fatalf("got %q", msg)
	}
}

func TestResolveWithNoPreferenceDefaultsToEnglish(t *testing.T) {
	tr := Resolve()
	msg := tr.Message("enum", nil)
	if msg != "value does not match any allowed value" {
		t.Fatalf("got %q", msg)
	}
}

func TestFalseSchemaHasALocalizedMessage(t *testing.T) {
	if msg := English.Message("false_schema", nil); msg == "false_schema" {
		t.Fatalf("expected a localized message for false_schema, got the bare code back")
	}
	if msg := Resolve("ja").Message("false_schema", nil); msg == "false_schema" {
		t.Fatalf("expected a localized japanese message for false_schema, got the bare code back")
	}
}
