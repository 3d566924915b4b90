package config

import (
	"os"
	"regexp"
	"sort"
)

// envTemplatePattern matches values of the exact form ${NAME}.
var envTemplatePattern = regexp.MustCompile(`^\$\{([^{}]+)\}$`)

// TemplateVar returns the variable name if value is a ${NAME} template.
func TemplateVar(value string) (string, bool) {
	m := envTemplatePattern.FindStringSubmatch(value)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// DetectEnvVars lists the variables referenced by ${NAME} templates in the
// entry's env values, sorted and without duplicates.
func DetectEnvVars(entry ServerEntry) []string {
	seen := make(map[string]bool)
	var vars []string
	for _, value := range entry.Env {
		name, ok := TemplateVar(value)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		vars = append(vars, name)
	}
	sort.Strings(vars)
	return vars
}

// ProcessEnvVars returns a copy of entry with templates replaced by the
// provided values. Templates without a provided value are kept verbatim.
func ProcessEnvVars(entry ServerEntry, values map[string]string) ServerEntry {
	result := entry.clone()
	if result.Env == nil {
		return result
	}

	for key, value := range result.Env {
		name, ok := TemplateVar(value)
		if !ok {
			continue
		}
		if provided, ok := values[name]; ok {
			result.Env[key] = provided
		}
	}
	return result
}

// MissingEnvVars returns the variables that were neither provided nor are set
// according to lookup. A nil lookup uses the process environment.
func MissingEnvVars(vars []string, provided map[string]string, lookup func(string) (string, bool)) []string {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var missing []string
	for _, name := range vars {
		if _, ok := provided[name]; ok {
			continue
		}
		if _, ok := lookup(name); ok {
			continue
		}
		missing = append(missing, name)
	}
	return missing
}
