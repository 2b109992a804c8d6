package quiz

import "github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"

var defaultQuestions = []entities.QuizQuestion{
	{
		ID:     1,
		Type:   entities.QuestionTypeSingle,
		Prompt: "What's your main reason for eating gluten-free?",
		Options: []string{
			"I have a Celiac disease diagnosis",
			"I suspect I have a non-celiac gluten sensitivity",
			"It is a wellness & lifestyle choice",
			"I'm an athlete looking for a performance edge.",
			"To support a friend or family member",
		},
		Info: &entities.Info{
			Title: "Personalized for You",
			Text:  "Atly tailors your experience based on your motivation so you get the most relevant tips, restaurants, and products for your gluten-free journey.",
		},
	},
	{
		ID:     2,
		Type:   entities.QuestionTypeMultiple,
		Prompt: "When choosing a place, what matters most to you?",
		Options: []string{
			"Staff knowledge & cross-contamination details",
			"Reviews from people with my condition",
			"Specific GF menu items",
			"The restaurant's overall rating & vibe",
		},
		Info: &entities.Info{
			Title: "Find Gluten-Free Places Fast",
			Text:  "Atly's map and reviews help you quickly discover safe gluten-free restaurants and stores, wherever you are.",
		},
	},
	{
		ID:     3,
		Type:   entities.QuestionTypeMultiple,
		Prompt: "Before today, where did you usually look for gluten-free friendly places?",
		Options: []string{
			"General map apps (e.g., Google Maps)",
			"Social media",
			"Dedicated gluten-free blogs or websites",
			"Recommendations from friends or community groups",
			"I don't have a go-to source",
		},
	},
	{
		ID:     4,
		Type:   entities.QuestionTypeMultiple,
		Prompt: "What types of places do you need help finding?",
		Options: []string{
			"Restaurants",
			"Cafes & Bakeries",
			"Bars & Pubs",
			"Grocery Stores",
			"Options while traveling",
		},
		Info: &entities.Info{
			Title: "Delicious Recipes & Tips",
			Text:  "Get access to a curated library of gluten-free recipes, meal plans, and cooking tips for every lifestyle.",
		},
	},
	{
		ID:     5,
		Type:   entities.QuestionTypeMultiple,
		Prompt: "What are you hoping to achieve?",
		Options: []string{
			"Reduce anxiety when dining out or ordering online",
			"Discover new & tasty gluten-free spots",
			"Save time on searching places to eat",
			"Make traveling easier",
		},
		Info: &entities.Info{
			Title: "Guidance at Every Step",
			Text:  "Whether you're new or experienced, Atly provides resources, guides, and community support tailored to your level.",
		},
	},
}

// Interstitial content keyed by Info.Title.
var defaultInfoContent = map[string]entities.InfoContent{
	"Personalized for You": {
		Icon:     "🎯",
		Title:    "Tailored Just for You",
		Subtitle: "Your gluten-free journey, personalized",
		Facts: []entities.InfoFact{
			{Icon: "🧬", Text: "Custom recommendations based on your condition"},
			{Icon: "📍", Text: "Local spots that match your safety requirements"},
			{Icon: "⚡", Text: "Save 2+ hours per week finding safe places", Highlight: "2+ hours"},
		},
		CTA: "Get personalized recommendations",
	},
	"Find Gluten-Free Places Fast": {
		Icon:     "🛡️",
		Title:    "Expert Vetted & Safety-First",
		Subtitle: "Places you can actually trust",
		Facts: []entities.InfoFact{
			{Icon: "👩‍⚕️", Text: "Vetted by celiac healthcare professionals"},
			{Icon: "🔍", Text: "Know which places are 100% gluten-free vs accommodating", Highlight: "100%"},
			{Icon: "📋", Text: "Every review moderated by real experts"},
		},
		CTA: "Find truly safe places near you",
	},
	"Delicious Recipes & Tips": {
		Icon:     "🌍",
		Title:    "Smart Search & Global Map",
		Subtitle: "From Paris bakeries to NYC brunch spots",
		Facts: []entities.InfoFact{
			{Icon: "🎛️", Text: "Smart filters by risk level, food type & vibe"},
			{Icon: "🗺️", Text: "270k+ verified locations growing daily", Highlight: "270k+"},
			{Icon: "🆓", Text: "Free trial with full map access"},
		},
		CTA: "Explore the global gluten-free map",
	},
	"Guidance at Every Step": {
		Icon:     "🤝",
		Title:    "Never Feel Lost Again",
		Subtitle: "Support for every stage of your journey",
		Facts: []entities.InfoFact{
			{Icon: "👥", Text: "24/7 community support from 50k+ members", Highlight: "50k+"},
			{Icon: "📖", Text: "Step-by-step guides for dining out safely"},
			{Icon: "🎓", Text: "95% of users feel more confident after 1 week", Highlight: "95%"},
		},
		CTA: "Join the community",
	},
}
