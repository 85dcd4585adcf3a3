package seed

import "github.com/pageza/recipeshare/backend/internal/types"

type demoRecipe struct {
	Title        string
	Description  string
	PrepTime     int
	CookTime     int
	ImageURL     string
	Tags         []string
	Ingredients  []map[string]interface{}
	Instructions []map[string]interface{}
}

func (d demoRecipe) input() *types.RecipeInput {
	tags := append([]string{}, d.Tags...)
	ingredients := append([]map[string]interface{}{}, d.Ingredients...)
	instructions := append([]map[string]interface{}{}, d.Instructions...)
	return &types.RecipeInput{
		Title:        &d.Title,
		Description:  &d.Description,
		PrepTime:     &d.PrepTime,
		CookTime:     &d.CookTime,
		ImageURL:     &d.ImageURL,
		Tags:         &tags,
		Ingredients:  &ingredients,
		Instructions: &instructions,
	}
}

func steps(texts ...string) []map[string]interface{} {
	out := make([]map[string]interface{}, len(texts))
	for i, text := range texts {
		out[i] = map[string]interface{}{"step": i + 1, "text": text}
	}
	return out
}

var demoRecipes = []demoRecipe{
	{
		Title:       "Classic Pancakes",
		Description: "Fluffy buttermilk pancakes for a slow Sunday.",
		PrepTime:    10,
		CookTime:    15,
		ImageURL:    "https://images.example.com/recipes/pancakes.jpg",
		Tags:        []string{"breakfast", "vegetarian"},
		Ingredients: []map[string]interface{}{
			{"name": "flour", "quantity": 200, "unit": "g"},
			{"name": "buttermilk", "quantity": 300, "unit": "ml"},
			{"name": "egg", "quantity": 2},
		},
		Instructions: steps("Whisk the dry ingredients.", "Stir in buttermilk and eggs.", "Fry ladlefuls until golden."),
	},
	{
		Title:       "Tomato Soup",
		Description: "Roasted tomato soup with basil.",
		PrepTime:    15,
		CookTime:    40,
		ImageURL:    "https://images.example.com/recipes/tomato-soup.jpg",
		Tags:        []string{"soup", "vegan"},
		Ingredients: []map[string]interface{}{
			{"name": "tomatoes", "quantity": 1, "unit": "kg"},
			{"name": "onion", "quantity": 1},
			{"name": "basil", "quantity": 1, "unit": "bunch"},
		},
		Instructions: steps("Roast tomatoes and onion.", "Blend with stock.", "Season and finish with basil."),
	},
	{
		Title:       "Spaghetti Aglio e Olio",
		Description: "Garlic, chili and olive oil. Dinner in fifteen minutes.",
		PrepTime:    5,
		CookTime:    10,
		ImageURL:    "https://images.example.com/recipes/aglio-olio.jpg",
		Tags:        []string{"pasta", "quick"},
		Ingredients: []map[string]interface{}{
			{"name": "spaghetti", "quantity": 400, "unit": "g"},
			{"name": "garlic", "quantity": 6, "unit": "cloves"},
			{"name": "chili flakes", "quantity": 1, "unit": "tsp"},
		},
		Instructions: steps("Boil the pasta.", "Gently fry garlic and chili in oil.", "Toss with pasta and some cooking water."),
	},
	{
		Title:       "Overnight Oats",
		Description: "No-cook oats prepared the night before.",
		PrepTime:    5,
		CookTime:    0,
		ImageURL:    "https://images.example.com/recipes/overnight-oats.jpg",
		Tags:        []string{"breakfast", "meal-prep"},
		Ingredients: []map[string]interface{}{
			{"name": "rolled oats", "quantity": 50, "unit": "g"},
			{"name": "milk", "quantity": 150, "unit": "ml"},
		},
		Instructions: steps("Combine everything in a jar.", "Refrigerate overnight."),
	},
	{
		Title:        "Chickpea Curry",
		Description:  "A weeknight curry from pantry staples.",
		PrepTime:     10,
		CookTime:     25,
		ImageURL:     "https://images.example.com/recipes/chickpea-curry.jpg",
		Tags:         []string{"vegan", "curry"},
		Ingredients:  []map[string]interface{}{{"name": "chickpeas", "quantity": 2, "unit": "cans"}, {"name": "coconut milk", "quantity": 400, "unit": "ml"}},
		Instructions: steps("Soften onion with spices.", "Add chickpeas and coconut milk.", "Simmer until thick."),
	},
	{
		Title:        "Banana Bread",
		Description:  "Uses up the brown bananas.",
		PrepTime:     15,
		CookTime:     60,
		ImageURL:     "https://images.example.com/recipes/banana-bread.jpg",
		Ingredients:  []map[string]interface{}{{"name": "banana", "quantity": 3}, {"name": "flour", "quantity": 250, "unit": "g"}},
		Instructions: steps("Mash bananas.", "Fold in remaining ingredients.", "Bake at 175C."),
	},
}
