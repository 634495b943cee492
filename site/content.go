// Package site holds the static portfolio content and the entrance
// animation table the page script replays.
package site

const OwnerName = "Antsa Ratolojanahary"

type Stat struct {
	Value    int    `json:"value"`
	LabelKey string `json:"label_key"`
}

type Role struct {
	Role        string   `json:"role"`
	Company     string   `json:"company"`
	Period      string   `json:"period"`
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

type Education struct {
	Degree string `json:"degree"`
	Major  string `json:"major"`
	School string `json:"school"`
	Period string `json:"period"`
}

type GalleryItem struct {
	Image       string `json:"image"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	BorderColor string `json:"border_color"`
	Gradient    string `json:"gradient"`
}

type NavLink struct {
	Key  string `json:"key"`
	Href string `json:"href"`
}

// Content is everything the page renders besides translated strings.
type Content struct {
	Owner      string        `json:"owner"`
	Stats      []Stat        `json:"stats"`
	Skills     []string      `json:"skills"`
	About      []Role        `json:"about"`
	Experience []Role        `json:"experience"`
	Education  []Education   `json:"education"`
	Gallery    []GalleryItem `json:"gallery"`
	Navigation []NavLink     `json:"navigation"`
	Footer     []NavLink     `json:"footer"`
}

func DefaultContent() Content {
	return Content{
		Owner: OwnerName,
		Stats: []Stat{
			{Value: 55, LabelKey: "Hero.videosLabel"},
			{Value: 20, LabelKey: "Hero.timeSavedLabel"},
		},
		Skills: []string{
			"Post-production Video",
			"Visual Storytelling",
			"Adobe Premiere Pro",
			"Color Grading",
			"Sound Design",
			"Motion Design",
		},
		About: []Role{
			{
				Role:        "Video Editor",
				Company:     "AGLT",
				Period:      "Oct 2024 – Present",
				Description: "Editing videos for YouTube channels, specializing in real estate content for clients in Belgium and Canada. Creating short-form videos with dynamic editing for social media.",
			},
			{
				Role:        "Intern Journalist & Video Editor",
				Company:     "DRCC Vakinankaratra",
				Period:      "2022 – 2024",
				Description: "Full video journal editing: assembly, titling, audio mixing. Field journalism covering cultural and official events.",
			},
		},
		Experience: []Role{
			{
				Role:    "Video Editor",
				Company: "AGLT",
				Period:  "Oct 2024 – Present",
				Highlights: []string{
					"Edited 55+ videos for YouTube channels totaling 813 subscribers",
					"Reduced post-production time by 20% with custom templates",
					"Real estate video editing for clients in Belgium & Canada",
					"Short-form social media content with dynamic editing",
					"Color grading to make interiors warmer and more appealing",
				},
			},
			{
				Role:    "Intern Journalist & Video Editor",
				Company: "DRCC Vakinankaratra, Antsirabe",
				Period:  "2022 – 2024",
				Highlights: []string{
					"Full video journal editing: assembly, titling, audio mixing",
					"Field journalism, interviews & cultural event coverage",
				},
			},
		},
		Education: []Education{
			{
				Degree: "Bachelor in Communication",
				Major:  "Media & Journalism",
				School: "Adventist University Zurcher Sambaina",
				Period: "2022 – 2024",
			},
			{
				Degree: "Baccalaureate",
				Major:  "Series A2",
				School: "Lycee Catholique Sainte-Therese d'Antanifotsy",
				Period: "2021",
			},
		},
		Gallery: []GalleryItem{
			{"/static/images/gallery/image1.jpeg", "Golden Hour", "Landscape", "#d9d9d9", "linear-gradient(180deg, #f2f2f2, #e2e2e2)"},
			{"/static/images/gallery/image2.jpeg", "Depth of Field", "Macro", "#d9d9d9", "linear-gradient(165deg, #f0f0f0, #e0e0e0)"},
			{"/static/images/gallery/image3.jpeg", "Contrast", "Black & White", "#d9d9d9", "linear-gradient(195deg, #ebebeb, #dcdcdc)"},
			{"/static/images/gallery/image4.jpeg", "Reflections", "Architecture", "#d9d9d9", "linear-gradient(225deg, #f2f2f2, #e2e2e2)"},
			{"/static/images/gallery/image5.jpeg", "Raw Emotion", "Documentary", "#d9d9d9", "linear-gradient(180deg, #ebebeb, #dcdcdc)"},
			{"/static/images/gallery/image6.jpeg", "Textures", "Detail", "#d9d9d9", "linear-gradient(160deg, #f0f0f0, #e0e0e0)"},
			{"/static/images/gallery/image7.jpeg", "Vanishing Point", "Perspective", "#d9d9d9", "linear-gradient(200deg, #f2f2f2, #e2e2e2)"},
			{"/static/images/gallery/image8.jpeg", "Still Life", "Objects", "#d9d9d9", "linear-gradient(170deg, #ebebeb, #dcdcdc)"},
		},
		Navigation: []NavLink{
			{Key: "Navigation.about", Href: "#about"},
			{Key: "Navigation.experience", Href: "#experience"},
			{Key: "Navigation.portfolio", Href: "#portfolio"},
			{Key: "Navigation.contact", Href: "#contact"},
		},
		Footer: []NavLink{
			{Key: "Navigation.about", Href: "#about"},
			{Key: "Navigation.portfolio", Href: "#portfolio"},
			{Key: "Navigation.experience", Href: "#experience"},
			{Key: "Navigation.contact", Href: "#contact"},
		},
	}
}
