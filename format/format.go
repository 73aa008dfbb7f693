// Package format implements Draft-07's format attribute registry: a
// pluggable set of string validators keyed by format name, built directly
// on the relevant stdlib parser for each format (time.Parse, net/mail,
// net, net/url) since no third-party format validator appears anywhere in
// the retrieval pack (see DESIGN.md).
package format

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Attribute validates instance strings against one named format.
type Attribute interface {
	Valid(s string) bool
}

type funcAttribute func(string) bool

func (f funcAttribute) Valid(s string) bool { return f(s) }

var registry = map[string]Attribute{
	"date-time":             funcAttribute(isDateTime),
	"date":                  funcAttribute(isDate),
	"time":                  funcAttribute(isTime),
	"email":                 funcAttribute(isEmail),
	"idn-email":             funcAttribute(isEmail),
	"hostname":              funcAttribute(isHostname),
	"idn-hostname":          funcAttribute(isHostname),
	"ipv4":                  funcAttribute(isIPv4),
	"ipv6":                  funcAttribute(isIPv6),
	"uri":                   funcAttribute(isURI),
	"uri-reference":         funcAttribute(isURIReference),
	"iri":                   funcAttribute(isURI),
	"iri-reference":         funcAttribute(isURIReference),
	"uri-template":          funcAttribute(isURITemplate),
	"json-pointer":          funcAttribute(isJSONPointer),
	"relative-json-pointer": funcAttribute(isRelativeJSONPointer),
	"regex":                 funcAttribute(isRegex),
}

// Lookup returns the registered Attribute for name, if any.
func Lookup(name string) (Attribute, bool) {
	a, ok := registry[name]
	return a, ok
}

// Register adds or replaces a format attribute, letting a CLI config layer
// extend or override the built-in roster.
func Register(name string, a Attribute) { registry[name] = a }

// Names lists every currently registered format name.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}

func isDateTime(s string) bool {
	_, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		_, err = time.Parse(time.RFC3339, s)
	}
	return err == nil
}

func isDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func isTime(s string) bool {
	for _, layout := range []string{"15:04:05Z07:00", "15:04:05.999999999Z07:00", "15:04:05"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

var hostnameLabel = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)

func isHostname(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}
	labels := strings.Split(strings.TrimSuffix(s, "."), ".")
	for _, l := range labels {
		if !hostnameLabel.MatchString(l) {
			return false
		}
	}
	return true
}

func isIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil && !strings.Contains(s, ":")
}

func isIPv6(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && strings.Contains(s, ":")
}

func isURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func isURIReference(s string) bool {
	_, err := url.Parse(s)
	return err == nil
}

var uriTemplateExpr = regexp.MustCompile(`\{[^{}]*\}`)

func isURITemplate(s string) bool {
	rest := uriTemplateExpr.ReplaceAllString(s, "")
	if strings.ContainsAny(rest, "{}") {
		return false
	}
	_, err := url.Parse(rest)
	return err == nil
}

func isJSONPointer(s string) bool {
	if s == "" {
		return true
	}
	if !strings.HasPrefix(s, "/") {
		return false
	}
	for _, tok := range strings.Split(s[1:], "/") {
		for i := 0; i < len(tok); i++ {
			if tok[i] == '~' {
				if i+1 >= len(tok) || (tok[i+1] != '0' && tok[i+1] != '1') {
					return false
				}
			}
		}
	}
	return true
}

func isRelativeJSONPointer(s string) bool {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return false
	}
	if _, err := strconv.Atoi(s[:i]); err != nil {
		return false
	}
	rest := s[i:]
	if rest == "" {
		return true
	}
	if rest == "#" {
		return true
	}
	return isJSONPointer(rest)
}

func isRegex(s string) bool {
	_, err := regexp.Compile(s)
	return err == nil
}
