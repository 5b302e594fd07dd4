package deploy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Explain Tests
// =============================================================================

func TestExplain_SingleContainer(t *testing.T) {
	doc := &Document{
		Version: "1.0",
		Containers: map[string]ContainerSpec{
			"nginx": {Image: "nginx:latest", Ports: []string{"8080:80"}},
		},
	}

	explanation := Explain(doc)

	assert.Contains(t, explanation, "Containers: 1 container(s) - nginx")
	assert.Contains(t, explanation, "Exposed Ports: nginx: 8080:80")
	assert.NotContains(t, explanation, "Networks:")
	assert.NotContains(t, explanation, "Dependencies:")
}

func TestExplain_FullStack(t *testing.T) {
	doc := &Document{
		Version: "1.0",
		Containers: map[string]ContainerSpec{
			"web": {
				Image:     "nginx:latest",
				Ports:     []string{"80:80", "443:443"},
				DependsOn: []string{"db", "cache"},
			},
			"db":    {Image: "postgres:latest", Ports: []string{"5432:5432"}},
			"cache": {Image: "redis:alpine"},
		},
		Networks: map[string]NetworkSpec{
			"appnet": {Driver: "bridge"},
		},
	}

	explanation := Explain(doc)

	assert.Contains(t, explanation, "Containers: 3 container(s) - cache, db, web")
	assert.Contains(t, explanation, "Networks: 1 network(s) created for inter-container communication")

	// Every port mapping listed, no omissions.
	assert.Contains(t, explanation, "db: 5432:5432")
	assert.Contains(t, explanation, "web: 80:80")
	assert.Contains(t, explanation, "web: 443:443")

	// Every dependency pair listed.
	assert.Contains(t, explanation, "web depends on db")
	assert.Contains(t, explanation, "web depends on cache")

	// Exactly one line per section.
	assert.Equal(t, 1, strings.Count(explanation, "Containers:"))
	assert.Equal(t, 1, strings.Count(explanation, "Exposed Ports:"))
	assert.Equal(t, 1, strings.Count(explanation, "Dependencies:"))

	// Sections are joined by blank lines.
	assert.Len(t, strings.Split(explanation, "\n\n"), 4)
}

func TestExplain_NoContainersLineWhenEmpty(t *testing.T) {
	doc := &Document{
		Version:  "1.0",
		Networks: map[string]NetworkSpec{"net": {Driver: "bridge"}},
	}

	explanation := Explain(doc)

	assert.NotContains(t, explanation, "Containers:")
	assert.Contains(t, explanation, "Networks: 1 network(s)")
}

func TestExplain_EmptyDocument(t *testing.T) {
	assert.Equal(t, "", Explain(&Document{Version: "1.0"}))
}

func TestExplain_Deterministic(t *testing.T) {
	doc := &Document{
		Version: "1.0",
		Containers: map[string]ContainerSpec{
			"a": {Image: "alpine:latest"},
			"b": {Image: "alpine:latest"},
			"c": {Image: "alpine:latest"},
			"d": {Image: "alpine:latest"},
		},
	}

	first := Explain(doc)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Explain(doc))
	}
	assert.Contains(t, first, "a, b, c, d")
}
