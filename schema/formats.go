// Credit to https://github.com/santhosh-tekuri/jsonschema
package schema

import (
	"errors"
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kaptinlin/ucl"
)

var (
	errIPv6NotEnclosed = errors.New("ipv6 address is not enclosed in brackets")
	errInvalidIPv6     = errors.New("invalid ipv6 address")
)

// Formats is the built-in registry of named format validators, consulted by
// evaluateFormat when a schema does not override the name via the owning
// Compiler's custom registry (spec.md §4.10).
var Formats = map[string]FormatValidator{
	"date-time":             IsDateTime,
	"date":                  IsDate,
	"time":                  IsTime,
	"duration":              IsDuration,
	"period":                IsPeriod,
	"hostname":              IsHostname,
	"email":                 IsEmail,
	"ip-address":            IsIPV4,
	"ipv4":                  IsIPV4,
	"ipv6":                  IsIPV6,
	"uri":                   IsURI,
	"iri":                   IsURI,
	"uri-reference":         IsURIReference,
	"uriref":                IsURIReference,
	"iri-reference":         IsURIReference,
	"uri-template":          IsURITemplate,
	"json-pointer":          IsJSONPointer,
	"relative-json-pointer": IsRelativeJSONPointer,
	"uuid":                  IsUUID,
	"regex":                 IsRegex,
}

func stringOf(v *ucl.Value) (string, bool) {
	if v.Tag() != ucl.String {
		return "", false
	}
	return v.Str(), true
}

// IsDateTime reports whether v is a valid RFC 3339 §5.6 date-time.
func IsDateTime(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	if len(s) < 20 {
		return false
	}
	if s[10] != 'T' && s[10] != 't' {
		return false
	}
	return isDateStr(s[:10]) && isTimeStr(s[11:])
}

// IsDate reports whether v is a valid RFC 3339 §5.6 full-date.
func IsDate(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	return isDateStr(s)
}

func isDateStr(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsTime reports whether v is a valid RFC 3339 §5.6 full-time.
func IsTime(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	return isTimeStr(s)
}

func isTimeStr(str string) bool {
	if len(str) < 9 || str[2] != ':' || str[5] != ':' {
		return false
	}
	isInRange := func(str string, min, max int) (int, bool) {
		n, err := strconv.Atoi(str)
		if err != nil {
			return 0, false
		}
		if n < min || n > max {
			return 0, false
		}
		return n, true
	}
	var h, m, s int
	var ok bool
	if h, ok = isInRange(str[0:2], 0, 23); !ok {
		return false
	}
	if m, ok = isInRange(str[3:5], 0, 59); !ok {
		return false
	}
	if s, ok = isInRange(str[6:8], 0, 60); !ok {
		return false
	}
	str = str[8:]

	if str[0] == '.' {
		str = str[1:]
		var numDigits int
		for str != "" {
			if str[0] < '0' || str[0] > '9' {
				break
			}
			numDigits++
			str = str[1:]
		}
		if numDigits == 0 {
			return false
		}
	}

	if len(str) == 0 {
		return false
	}

	if str[0] == 'z' || str[0] == 'Z' {
		if len(str) != 1 {
			return false
		}
	} else {
		if len(str) != 6 || str[3] != ':' {
			return false
		}
		var sign int
		switch str[0] {
		case '+':
			sign = -1
		case '-':
			sign = +1
		default:
			return false
		}
		var zh, zm int
		ok := false
		if zh, ok = isInRange(str[1:3], 0, 23); !ok {
			return false
		}
		if zm, ok = isInRange(str[4:6], 0, 59); !ok {
			return false
		}
		hm := (h*60 + m) + sign*(zh*60+zm)
		if hm < 0 {
			hm += 24 * 60
		}
		h, m = hm/60, hm%60
	}

	if s == 60 {
		if h != 23 || m != 59 {
			return false
		}
	}
	return true
}

// IsDuration reports whether v is a valid ISO 8601 duration (RFC 3339 appendix A).
func IsDuration(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	if len(s) == 0 || s[0] != 'P' {
		return false
	}
	s = s[1:]
	parseUnits := func() (units string, ok bool) {
		for len(s) > 0 && s[0] != 'T' {
			digits := false
			for len(s) != 0 {
				if s[0] < '0' || s[0] > '9' {
					break
				}
				digits = true
				s = s[1:]
			}
			if !digits || len(s) == 0 {
				return units, false
			}
			units += s[:1]
			s = s[1:]
		}
		return units, true
	}
	units, ok := parseUnits()
	if !ok {
		return false
	}
	if units == "W" {
		return len(s) == 0
	}
	if len(units) > 0 {
		if !strings.Contains("YMD", units) { //nolint:gocritic
			return false
		}
		if len(s) == 0 {
			return true
		}
	}
	if len(s) == 0 || s[0] != 'T' {
		return false
	}
	s = s[1:]
	units, ok = parseUnits()
	return ok && len(s) == 0 && len(units) > 0 && strings.Contains("HMS", units) //nolint:gocritic
}

// IsPeriod reports whether v is a valid ISO 8601 time interval.
func IsPeriod(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	slash := strings.IndexByte(s, '/')
	if slash == -1 {
		return false
	}
	start, end := s[:slash], s[slash+1:]
	startV, endV := ucl.NewString(start), ucl.NewString(end)
	if IsDateTime(startV) {
		return IsDateTime(endV) || IsDuration(endV)
	}
	return IsDuration(startV) && IsDateTime(endV)
}

// IsHostname reports whether v is a valid RFC 1034/1123 hostname.
func IsHostname(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	s = strings.TrimSuffix(s, ".")
	if len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if labelLen := len(label); labelLen < 1 || labelLen > 63 {
			return false
		}
		if label[0] == '-' {
			return false
		}
		if label[len(label)-1] == '-' {
			return false
		}
		for _, c := range label {
			if valid := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || (c == '-'); !valid {
				return false
			}
		}
	}
	return true
}

// IsEmail reports whether v is a valid RFC 5322 §3.4.1 address.
func IsEmail(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	if len(s) > 254 {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at == -1 {
		return false
	}
	local := s[0:at]
	domain := s[at+1:]
	if len(local) > 64 {
		return false
	}
	if len(domain) >= 2 && domain[0] == '[' && domain[len(domain)-1] == ']' {
		ip := domain[1 : len(domain)-1]
		if strings.HasPrefix(ip, "IPv6:") {
			return IsIPV6(ucl.NewString(strings.TrimPrefix(ip, "IPv6:")))
		}
		return IsIPV4(ucl.NewString(ip))
	}
	if !IsHostname(ucl.NewString(domain)) {
		return false
	}
	_, err := mail.ParseAddress(s)
	return err == nil
}

// IsIPV4 reports whether v is a valid dotted-quad IPv4 address.
func IsIPV4(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	groups := strings.Split(s, ".")
	if len(groups) != 4 {
		return false
	}
	for _, group := range groups {
		n, err := strconv.Atoi(group)
		if err != nil {
			return false
		}
		if n < 0 || n > 255 {
			return false
		}
		if n != 0 && group[0] == '0' {
			return false
		}
	}
	return true
}

// IsIPV6 reports whether v is a valid IPv6 address.
func IsIPV6(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	if !strings.Contains(s, ":") {
		return false
	}
	return net.ParseIP(s) != nil
}

// IsURI reports whether v is a valid absolute URI per RFC 3986.
func IsURI(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	u, err := urlParse(s)
	return err == nil && u.IsAbs()
}

func urlParse(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	hostname := u.Hostname()
	if strings.IndexByte(hostname, ':') != -1 {
		if strings.IndexByte(u.Host, '[') == -1 || strings.IndexByte(u.Host, ']') == -1 {
			return nil, errIPv6NotEnclosed
		}
		if !IsIPV6(ucl.NewString(hostname)) {
			return nil, errInvalidIPv6
		}
	}
	return u, nil
}

// IsURIReference reports whether v is a valid URI or relative-reference.
func IsURIReference(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	_, err := urlParse(s)
	return err == nil && !strings.Contains(s, `\`)
}

// IsURITemplate reports whether v is a minimally-valid RFC 6570 URI template.
func IsURITemplate(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	u, err := urlParse(s)
	if err != nil {
		return false
	}
	for _, item := range strings.Split(u.RawPath, "/") {
		depth := 0
		for _, ch := range item {
			switch ch {
			case '{':
				depth++
				if depth != 1 {
					return false
				}
			case '}':
				depth--
				if depth != 0 {
					return false
				}
			}
		}
		if depth != 0 {
			return false
		}
	}
	return true
}

// IsJSONPointer reports whether v is a valid JSON Pointer (not a URI fragment).
func IsJSONPointer(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	if s != "" && !strings.HasPrefix(s, "/") {
		return false
	}
	for _, item := range strings.Split(s, "/") {
		for i := 0; i < len(item); i++ {
			if item[i] == '~' {
				if i == len(item)-1 {
					return false
				}
				switch item[i+1] {
				case '0', '1':
				default:
					return false
				}
			}
		}
	}
	return true
}

// IsRelativeJSONPointer reports whether v is a valid Relative JSON Pointer.
func IsRelativeJSONPointer(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	if s == "" {
		return false
	}
	switch {
	case s[0] == '0':
		s = s[1:]
	case s[0] >= '0' && s[0] <= '9':
		for s != "" && s[0] >= '0' && s[0] <= '9' {
			s = s[1:]
		}
	default:
		return false
	}
	if s == "#" {
		return true
	}
	return IsJSONPointer(ucl.NewString(s))
}

// IsUUID reports whether v is a valid RFC 4122 UUID.
func IsUUID(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	parseHex := func(n int) bool {
		for n > 0 {
			if len(s) == 0 {
				return false
			}
			hex := (s[0] >= '0' && s[0] <= '9') || (s[0] >= 'a' && s[0] <= 'f') || (s[0] >= 'A' && s[0] <= 'F')
			if !hex {
				return false
			}
			s = s[1:]
			n--
		}
		return true
	}
	groups := []int{8, 4, 4, 4, 12}
	for i, numDigits := range groups {
		if !parseHex(numDigits) {
			return false
		}
		if i == len(groups)-1 {
			break
		}
		if len(s) == 0 || s[0] != '-' {
			return false
		}
		s = s[1:]
	}
	return len(s) == 0
}

// IsRegex reports whether v compiles as an RE2 regular expression.
func IsRegex(v *ucl.Value) bool {
	s, ok := stringOf(v)
	if !ok {
		return true
	}
	_, err := regexp.Compile(s)
	return err == nil
}
