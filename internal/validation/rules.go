// Package validation checks submitted field data against pipe-delimited rule
// strings, e.g. "required|max:64" or "numeric|regex:^[0-9]{5}$".
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Result reports the outcome of a validation run. Errors maps field names to
// their failure messages and is nil when everything passed.
type Result struct {
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors,omitempty"`
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate runs every rule list in rules against the matching entry of data.
// Fields absent from data are treated as empty. Rules other than required are
// skipped on empty input, so "numeric" alone never rejects a blank optional
// field.
func Validate(data map[string]string, rules map[string]string) *Result {
	res := &Result{Valid: true}
	for field, ruleList := range rules {
		value := data[field]
		for _, token := range strings.Split(ruleList, "|") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			if msg := apply(token, field, value); msg != "" {
				if res.Errors == nil {
					res.Errors = make(map[string][]string)
				}
				res.Errors[field] = append(res.Errors[field], msg)
				res.Valid = false
			}
		}
	}
	return res
}

// apply checks a single rule token and returns a failure message, or "" on
// pass.
func apply(token, field, value string) string {
	name, arg := token, ""
	if i := strings.IndexByte(token, ':'); i >= 0 {
		name, arg = token[:i], token[i+1:]
	}

	if name == "required" {
		if strings.TrimSpace(value) == "" {
			return fmt.Sprintf("The %s field is required.", field)
		}
		return ""
	}
	if value == "" {
		return ""
	}

	switch name {
	case "email":
		if !emailRe.MatchString(value) {
			return fmt.Sprintf("The %s field must be a valid email address.", field)
		}
	case "numeric":
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Sprintf("The %s field must be numeric.", field)
		}
	case "integer":
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}
	case "alpha":
		for _, r := range value {
			if !isAlpha(r) {
				return fmt.Sprintf("The %s field may only contain letters.", field)
			}
		}
	case "alpha_numeric":
		for _, r := range value {
			if !isAlpha(r) && (r < '0' || r > '9') {
				return fmt.Sprintf("The %s field may only contain letters and numbers.", field)
			}
		}
	case "boolean":
		switch value {
		case "0", "1", "true", "false":
		default:
			return fmt.Sprintf("The %s field must be a boolean value.", field)
		}
	case "url":
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Sprintf("The %s field must be a valid URL.", field)
		}
	case "in":
		for _, allowed := range strings.Split(arg, ",") {
			if value == strings.TrimSpace(allowed) {
				return ""
			}
		}
		return fmt.Sprintf("The %s field must be one of: %s.", field, arg)
	case "min":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return badRule(field, token)
		}
		if len([]rune(value)) < n {
			return fmt.Sprintf("The %s field must be at least %d characters.", field, n)
		}
	case "max":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return badRule(field, token)
		}
		if len([]rune(value)) > n {
			return fmt.Sprintf("The %s field may not exceed %d characters.", field, n)
		}
	case "regex":
		re, err := regexp.Compile(arg)
		if err != nil {
			return badRule(field, token)
		}
		if !re.MatchString(value) {
			return fmt.Sprintf("The %s field format is invalid.", field)
		}
	default:
		// Unknown tokens surface as errors so rule typos in field
		// definitions do not silently pass everything.
		return badRule(field, token)
	}
	return ""
}

func badRule(field, token string) string {
	return fmt.Sprintf("The %s field has an invalid validation rule %q.", field, token)
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
