package deploy

import (
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// Explanation Generation
// =============================================================================

// Explain derives a human-readable summary of what a document will deploy.
// This is a pure, deterministic function of the document - no second LLM call.
// Sections with no data are omitted; a document with nothing to report yields
// an empty string. Container names are sorted so the output does not depend
// on map iteration order.
func Explain(doc *Document) string {
	names := sortedContainerNames(doc)

	var sections []string

	if len(names) > 0 {
		sections = append(sections, fmt.Sprintf(
			"Containers: %d container(s) - %s",
			len(names), strings.Join(names, ", ")))
	}

	if len(doc.Networks) > 0 {
		sections = append(sections, fmt.Sprintf(
			"Networks: %d network(s) created for inter-container communication",
			len(doc.Networks)))
	}

	var ports []string
	for _, name := range names {
		for _, port := range doc.Containers[name].Ports {
			ports = append(ports, fmt.Sprintf("%s: %s", name, port))
		}
	}
	if len(ports) > 0 {
		sections = append(sections, "Exposed Ports: "+strings.Join(ports, ", "))
	}

	var deps []string
	for _, name := range names {
		for _, dep := range doc.Containers[name].DependsOn {
			deps = append(deps, fmt.Sprintf("%s depends on %s", name, dep))
		}
	}
	if len(deps) > 0 {
		sections = append(sections, "Dependencies: "+strings.Join(deps, ", "))
	}

	return strings.Join(sections, "\n\n")
}

// sortedContainerNames returns container names in lexical order.
func sortedContainerNames(doc *Document) []string {
	names := make([]string, 0, len(doc.Containers))
	for name := range doc.Containers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
