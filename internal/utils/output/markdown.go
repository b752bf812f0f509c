package output

import (
	"fmt"
	"html"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/law-makers/toolscout/pkg/models"
)

// RecordsHTML renders records as an HTML table, names linked to their tool page
func RecordsHTML(records []models.ToolRecord) string {
	var sb strings.Builder
	sb.WriteString("<table><thead><tr><th>Name</th><th>Description</th><th>Categories</th><th>Pricing</th></tr></thead><tbody>")
	for _, r := range records {
		name := html.EscapeString(r.Name)
		if r.URL != "" {
			name = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(r.URL), name)
		}
		fmt.Fprintf(&sb, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			name,
			html.EscapeString(r.Description),
			html.EscapeString(r.Categories),
			html.EscapeString(r.Pricing))
	}
	sb.WriteString("</tbody></table>")
	return sb.String()
}

// RenderMarkdown converts records to a GitHub-flavored Markdown table
func RenderMarkdown(records []models.ToolRecord) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	table, err := converter.ConvertString(RecordsHTML(records))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("# AI Tools\n\n%d tools\n\n%s\n", len(records), table), nil
}

// SaveMarkdown writes records as a Markdown table to filepath
func SaveMarkdown(records []models.ToolRecord, filepath string) error {
	mdStr, err := RenderMarkdown(records)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, []byte(mdStr), 0644)
}
