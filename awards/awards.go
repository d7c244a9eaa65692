// Package awards holds the award catalog: award types and their length rules,
// the extended award types that carry a citation, the role and unit pickers,
// and the example write-ups used to steer prompt style.
package awards

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Other is the selector value for a free-form award name.
	Other = "OTHER"
	// OtherRole is the selector value for a free-form role.
	OtherRole = "Others"
	// DefaultWordLimit applies to awards without a configured limit.
	DefaultWordLimit = 160
)

// Award describes one selectable award type.
type Award struct {
	Name      string `mapstructure:"name" json:"name"`
	WordLimit int    `mapstructure:"word_limit" json:"word_limit"`
	Extended  bool   `mapstructure:"extended" json:"extended"`
}

var defaultAwards = []Award{
	{Name: "CO Coin", WordLimit: 100},
	{Name: "RSM Coin", WordLimit: 100},
	{Name: "CTO Coin", WordLimit: 100, Extended: true},
	{Name: "FSM Coin", WordLimit: 100, Extended: true},
	{Name: "BSOM", WordLimit: 150},
}

var defaultRoles = []string{
	"Transport Operator (TO)",
	"Transport Supervisor",
	"Transport Leader",
	"Platoon Commander",
}

var defaultUnits = []string{
	"Alpha COY",
	"Khatib Node",
	"Charlie COY",
	"HQ COY",
	"Kranji Node",
	"Mandai Hill Node",
	"Light Transport COY",
	"Combat Sustainment COY",
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Catalog is the read-only award configuration shared by all sessions.
type Catalog struct {
	awards           []Award
	roles            []string
	units            []string
	examples         map[string][]string
	citationExamples map[string][]string
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(nil, nil, nil)
}

// New builds a catalog. Empty arguments fall back to the built-in lists.
func New(awardList []Award, roles, units []string) *Catalog {
	if len(awardList) == 0 {
		awardList = defaultAwards
	}
	if len(roles) == 0 {
		roles = defaultRoles
	}
	if len(units) == 0 {
		units = defaultUnits
	}
	return &Catalog{
		awards:           append([]Award(nil), awardList...),
		roles:            append([]string(nil), roles...),
		units:            append([]string(nil), units...),
		examples:         awardExamples,
		citationExamples: citationExamples,
	}
}

// Awards returns the configured award types, without the free-form entry.
func (c *Catalog) Awards() []Award {
	return append([]Award(nil), c.awards...)
}

// Names returns the award selector options, ending with Other.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.awards)+1)
	for _, a := range c.awards {
		names = append(names, a.Name)
	}
	return append(names, Other)
}

// Lookup finds a configured award by name.
func (c *Catalog) Lookup(name string) (Award, bool) {
	for _, a := range c.awards {
		if a.Name == name {
			return a, true
		}
	}
	return Award{}, false
}

// Rule returns the word-limit rule for an award, e.g. "100 words".
func (c *Catalog) Rule(name string) string {
	limit := DefaultWordLimit
	if a, ok := c.Lookup(name); ok && a.WordLimit > 0 {
		limit = a.WordLimit
	}
	return fmt.Sprintf("%d words", limit)
}

// IsExtended reports whether the award needs a citation and fitness fields.
func (c *Catalog) IsExtended(name string) bool {
	a, ok := c.Lookup(name)
	return ok && a.Extended
}

// ExtendedSet returns the names of all extended award types.
func (c *Catalog) ExtendedSet() map[string]bool {
	set := make(map[string]bool)
	for _, a := range c.awards {
		if a.Extended {
			set[a.Name] = true
		}
	}
	return set
}

// Roles returns the role selector options, ending with OtherRole.
func (c *Catalog) Roles() []string {
	return append(append([]string(nil), c.roles...), OtherRole)
}

func (c *Catalog) Units() []string {
	return append([]string(nil), c.units...)
}

// Examples returns example write-ups for an award, falling back to the
// generic Other examples.
func (c *Catalog) Examples(name string) []string {
	if ex, ok := c.examples[name]; ok {
		return ex
	}
	return c.examples[Other]
}

func (c *Catalog) CitationExamples(name string) []string {
	return c.citationExamples[name]
}

// FormatExamples renders the example block embedded in brief prompts.
// It returns "" when no examples are registered.
func (c *Catalog) FormatExamples(name string) string {
	return formatExamples("EXAMPLE WRITE-UPS FOR REFERENCE", c.Examples(name))
}

// FormatCitationExamples renders the example block embedded in citation prompts.
func (c *Catalog) FormatCitationExamples(name string) string {
	return formatExamples("EXAMPLE CITATIONS FOR REFERENCE", c.CitationExamples(name))
}

func formatExamples(header string, examples []string) string {
	if len(examples) == 0 {
		return ""
	}
	rule := strings.Repeat("=", 70)
	var sb strings.Builder
	sb.WriteString("\n\n" + header + ":\n")
	sb.WriteString(rule + "\n")
	for i, ex := range examples {
		fmt.Fprintf(&sb, "\nExample %d:\n%s\n", i+1, ex)
		if i < len(examples)-1 {
			sb.WriteString("\n" + strings.Repeat("-", 70) + "\n")
		}
	}
	sb.WriteString("\n" + rule)
	sb.WriteString("\nFollow the style, tone, and structure of these examples.\n")
	return sb.String()
}

// Months returns award month options ("January 2026" ...) for the year of now
// and the following year.
func Months(now time.Time) []string {
	out := make([]string, 0, 2*len(monthNames))
	for _, y := range []int{now.Year(), now.Year() + 1} {
		for _, m := range monthNames {
			out = append(out, fmt.Sprintf("%s %d", m, y))
		}
	}
	return out
}
