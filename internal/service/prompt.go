package service

import (
	"fmt"
	"strings"

	"github.com/pageza/smart-kitchen/backend/internal/stock"
)

// Staples the provider may add on top of the submitted stock.
var Staples = []string{"salt", "pepper", "oil", "water"}

const recipePrompt = `You are a starred chef, expert in creative zero-waste cooking.
Here are the ingredients I have in my kitchen:
%s

Your goal is to create one delicious, doable recipe with these ingredients.
You may suggest adding a few basic staples (%s) if needed, but try to stick to the main stock.

Write the answer as HTML without <html> or <body> tags, only the content, so it can be embedded directly inside a div.
Use only these tags: <h3>, <h4>, <p>, <ul>, <li>, <strong>.
Be warm and precise, give complete steps, and give the recipe a creative title.`

// IngredientLines renders one "- name (quantity)" line per entry, in order.
func IngredientLines(snapshot stock.Snapshot) string {
	lines := make([]string, 0, len(snapshot))
	for _, entry := range snapshot {
		if entry.HasQuantity() {
			lines = append(lines, fmt.Sprintf("- %s (%s)", entry.Name, entry.Quantity))
		} else {
			lines = append(lines, "- "+entry.Name)
		}
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt renders the full provider prompt for a snapshot. The output
// depends only on the snapshot's entries and their order.
func BuildPrompt(snapshot stock.Snapshot) string {
	return fmt.Sprintf(recipePrompt, IngredientLines(snapshot), strings.Join(Staples, ", "))
}
