// Package display renders search results for the terminal.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	cyanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// PrintSearchResult renders matching stores, one block per store.
func PrintSearchResult(w io.Writer, result *models.SearchResult) {
	header := fmt.Sprintf("%d stores", result.Count)
	if result.PostalCode != "" {
		header += " near " + result.PostalCode
	}
	fmt.Fprintf(w, "\n%s: %s\n\n", headerStyle.Render("Confesercenti Vallo"), cyanStyle.Render(header))

	if result.Count == 0 {
		fmt.Fprintln(w, dimStyle.Render("  No stores match the search."))
		fmt.Fprintln(w)
		return
	}

	for _, s := range result.Stores {
		printStore(w, s)
		fmt.Fprintln(w)
	}
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintCategories renders the category list.
func PrintCategories(w io.Writer, categories []string) {
	fmt.Fprintf(w, "\n%s\n\n", titleStyle.Render("Categories:"))
	for _, c := range categories {
		fmt.Fprintf(w, "  %s\n", cyanStyle.Render(c))
	}
	fmt.Fprintln(w)
}

// PrintProvinces renders provinces as "SA  Salerno (Campania)".
func PrintProvinces(w io.Writer, provinces []models.Province) {
	fmt.Fprintf(w, "\n%s\n\n", titleStyle.Render(fmt.Sprintf("%d provinces:", len(provinces))))
	for _, p := range provinces {
		fmt.Fprintf(w, "  %s  %s %s\n", cyanStyle.Render(p.Code), p.Name, dimStyle.Render("("+p.Region+")"))
	}
	fmt.Fprintln(w)
}

// PrintPromotions renders promotions in the order given, one block each.
func PrintPromotions(w io.Writer, promotions []models.Promotion) {
	fmt.Fprintf(w, "\n%s\n\n", titleStyle.Render(fmt.Sprintf("%d active promotions:", len(promotions))))
	if len(promotions) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  No promotions running."))
		fmt.Fprintln(w)
		return
	}

	for _, p := range promotions {
		fmt.Fprintf(w, "  %s %s\n", titleStyle.Render(p.Name), dimStyle.Render(fmt.Sprintf("store #%d", p.StoreID)))
		if d := deref(p.Description); d != "" {
			fmt.Fprintf(w, "    %s\n", d)
		}
		if p.EndDate != nil {
			fmt.Fprintf(w, "    %s\n", tagStyle.Render("until "+p.EndDate.Format("02/01/2006")))
		}
		fmt.Fprintln(w)
	}
}

// PrintError prints a styled error message.
func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render(msg))
}

func printStore(w io.Writer, s models.Store) {
	tag := ""
	if c := deref(s.Category); c != "" {
		tag = tagStyle.Render("["+c+"]") + " "
	}
	fmt.Fprintf(w, "  %s%s %s\n", tag, titleStyle.Render(s.Name), dimStyle.Render(fmt.Sprintf("#%d", s.ID)))

	var place []string
	for _, part := range []*string{s.Address, s.PostalCode, s.City} {
		if v := deref(part); v != "" {
			place = append(place, v)
		}
	}
	location := strings.Join(place, ", ")
	if p := deref(s.Province); p != "" {
		location += " (" + p + ")"
	}
	if location != "" {
		fmt.Fprintf(w, "    %s\n", location)
	}

	var contact []string
	for _, part := range []*string{s.Phone, s.Email, s.Website} {
		if v := deref(part); v != "" {
			contact = append(contact, v)
		}
	}
	if len(contact) > 0 {
		fmt.Fprintf(w, "    %s\n", dimStyle.Render(strings.Join(contact, " | ")))
	}

	if d := deref(s.Description); d != "" {
		fmt.Fprintf(w, "    %s\n", dimStyle.Render(d))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
