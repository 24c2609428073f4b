package analyzer

import (
	"os"
	"regexp"
	"strings"
)

var (
	springMappingRe = regexp.MustCompile(`@(Get|Post|Put|Delete|Patch|Request)Mapping\s*(?:\(\s*(?:value\s*=\s*)?"([^"]*)")?`)
	jaxrsPathRe     = regexp.MustCompile(`@Path\s*\(\s*"([^"]*)"`)
)

// detectEndpoints finds Spring MVC and JAX-RS endpoint declarations in the
// given Java sources.
func detectEndpoints(root string, javaFiles []string) []Endpoint {
	endpoints := []Endpoint{}

	for _, rel := range javaFiles {
		raw, err := os.ReadFile(joinRoot(root, rel))
		if err != nil {
			continue
		}
		content := string(raw)

		for _, m := range springMappingRe.FindAllStringSubmatch(content, -1) {
			method := strings.ToUpper(m[1])
			if method == "REQUEST" {
				method = "ANY"
			}
			path := m[2]
			if path == "" {
				path = "/"
			}
			endpoints = append(endpoints, Endpoint{Method: method, Path: path, File: rel})
		}

		for _, m := range jaxrsPathRe.FindAllStringSubmatch(content, -1) {
			endpoints = append(endpoints, Endpoint{Method: "ANY", Path: m[1], File: rel})
		}
	}

	return endpoints
}
