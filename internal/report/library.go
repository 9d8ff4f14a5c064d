// Package report assembles narrative savings reports from a library of
// pre-written content blocks and a savings result.
package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed content_blocks.json
var defaultBlocks []byte

// errorPrefix marks blocks the generator failed to produce.
const errorPrefix = "ERROR:"

// Metadata describes how a block library was generated.
type Metadata struct {
	GeneratedAt string `json:"generated_at"`
	TotalBlocks int    `json:"total_blocks"`
	Errors      int    `json:"errors"`
	TotalTokens int    `json:"total_tokens"`
}

// Library is a block library in the generator's organized format. Every
// family maps block keys to markdown content.
type Library struct {
	Metadata             Metadata          `json:"metadata"`
	ExecutiveSummaries   map[string]string `json:"executive_summaries"`
	IndustryNarratives   map[string]string `json:"industry_narratives"`
	SolutionDescriptions map[string]string `json:"solution_descriptions"`
	CategoryAnchors      map[string]string `json:"category_anchors"`
	ImpactExplanations   map[string]string `json:"impact_explanations"`
	Synergies            map[string]string `json:"synergies"`
	Methodology          map[string]string `json:"methodology"`
	Roadmaps             map[string]string `json:"roadmaps"`
	StrategicBlocks      map[string]string `json:"strategic_blocks"`
	SalesEnablement      map[string]string `json:"sales_enablement"`
}

// DefaultLibrary returns the embedded block library.
func DefaultLibrary() *Library {
	lib, err := ParseLibrary(defaultBlocks)
	if err != nil {
		panic(fmt.Sprintf("embedded block library is invalid: %v", err))
	}
	return lib
}

// LoadLibrary reads a generated block library from path.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read block library: %w", err)
	}
	return ParseLibrary(data)
}

// ParseLibrary decodes a block library document.
func ParseLibrary(data []byte) (*Library, error) {
	var lib Library
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&lib); err != nil {
		return nil, fmt.Errorf("failed to parse block library: %w", err)
	}
	return &lib, nil
}

// Len returns the number of blocks across all families.
func (l *Library) Len() int {
	n := 0
	for _, family := range l.families() {
		n += len(family)
	}
	return n
}

// Block looks a key up in every family. Blocks the generator marked as
// failed are treated as absent.
func (l *Library) Block(key string) (string, bool) {
	for _, family := range l.families() {
		if content, ok := family[key]; ok {
			if strings.HasPrefix(strings.TrimSpace(content), errorPrefix) {
				return "", false
			}
			return strings.TrimSpace(content), true
		}
	}
	return "", false
}

func (l *Library) families() []map[string]string {
	return []map[string]string{
		l.ExecutiveSummaries,
		l.IndustryNarratives,
		l.SolutionDescriptions,
		l.CategoryAnchors,
		l.ImpactExplanations,
		l.Synergies,
		l.Methodology,
		l.Roadmaps,
		l.StrategicBlocks,
		l.SalesEnablement,
	}
}
