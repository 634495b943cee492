package site

const (
	SectionHero       = "hero"
	SectionAbout      = "about"
	SectionExperience = "experience"
	SectionGallery    = "gallery"
	SectionContact    = "contact"

	EaseOut   = "power3.out"
	EaseInOut = "power3.inOut"
	EaseSoft  = "power2.out"
)

// Animation is one entrance tween. Rows of the hero section run as a single
// timeline on page load, in table order, placed by Position. Every other row
// is scroll triggered when Trigger reaches Start.
type Animation struct {
	Section  string `json:"section"`
	Group    string `json:"group"`
	Trigger  string `json:"trigger,omitempty"`
	Start    string `json:"start,omitempty"`
	Position string `json:"position,omitempty"`

	// From values; zero means the property is not animated, except Opacity
	// which is always animated from 0 unless KeepOpacity is set.
	X           float64  `json:"x,omitempty"`
	Y           float64  `json:"y,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	ScaleX      *float64 `json:"scale_x,omitempty"`
	KeepOpacity bool     `json:"keep_opacity,omitempty"`
	Origin      string   `json:"transform_origin,omitempty"`

	Duration float64 `json:"duration"`
	Delay    float64 `json:"delay,omitempty"`
	Stagger  float64 `json:"stagger,omitempty"`
	Ease     string  `json:"ease"`
}

func zero() *float64 {
	v := 0.0
	return &v
}

// Animations is the full table, grouped by section in page order.
var Animations = []Animation{
	{Section: SectionHero, Group: "[data-animate='sidebar']", X: -20, Duration: 0.8, Ease: EaseOut},
	{Section: SectionHero, Group: "[data-animate='stats'] > div", Y: 30, Duration: 0.7, Stagger: 0.15, Ease: EaseOut, Position: "-=0.4"},
	{Section: SectionHero, Group: "[data-animate='heading']", Y: 80, Duration: 1, Ease: EaseOut, Position: "-=0.5"},
	{Section: SectionHero, Group: "[data-animate='subtitle']", Y: 20, Duration: 0.6, Ease: EaseOut, Position: "-=0.4"},
	{Section: SectionHero, Group: "[data-animate='image']", Scale: 1.1, Duration: 1.2, Ease: EaseSoft, Position: "0.3"},
	{Section: SectionHero, Group: "[data-animate='bottom']", Y: 20, Duration: 0.6, Stagger: 0.1, Ease: EaseOut, Position: "-=0.6"},

	{Section: SectionAbout, Group: "[data-about='heading']", Trigger: "[data-about='heading']", Start: "top 85%", Y: 60, Duration: 0.8, Ease: EaseOut},
	{Section: SectionAbout, Group: "[data-about='bio']", Trigger: "[data-about='bio']", Start: "top 85%", Y: 40, Duration: 0.7, Delay: 0.2, Ease: EaseOut},
	{Section: SectionAbout, Group: "[data-about='skill']", Trigger: "[data-about='skills']", Start: "top 80%", Y: 20, Duration: 0.5, Stagger: 0.08, Ease: EaseOut},
	{Section: SectionAbout, Group: "[data-about='experience']", Trigger: "[data-about='experience-list']", Start: "top 80%", Y: 40, Duration: 0.7, Stagger: 0.2, Ease: EaseOut},
	{Section: SectionAbout, Group: "[data-about='divider']", Trigger: "[data-about='divider']", Start: "top 85%", ScaleX: zero(), KeepOpacity: true, Origin: "left center", Duration: 1, Ease: EaseInOut},

	{Section: SectionExperience, Group: "[data-exp='heading']", Trigger: "[data-exp='heading']", Start: "top 85%", Y: 50, Duration: 0.8, Ease: EaseOut},
	{Section: SectionExperience, Group: "[data-exp='item']", Trigger: "[data-exp='timeline']", Start: "top 80%", X: -30, Duration: 0.7, Stagger: 0.25, Ease: EaseOut},
	{Section: SectionExperience, Group: "[data-exp='highlight']", Trigger: "[data-exp='timeline']", Start: "top 75%", Y: 15, Duration: 0.4, Stagger: 0.06, Ease: EaseOut},
	{Section: SectionExperience, Group: "[data-exp='edu']", Trigger: "[data-exp='education']", Start: "top 80%", Y: 30, Duration: 0.6, Stagger: 0.2, Ease: EaseOut},
	{Section: SectionExperience, Group: "[data-exp='divider']", Trigger: "[data-exp='divider']", Start: "top 85%", ScaleX: zero(), KeepOpacity: true, Origin: "left center", Duration: 1, Ease: EaseInOut},

	{Section: SectionGallery, Group: "[data-gallery='heading']", Trigger: "[data-gallery='heading']", Start: "top 85%", Y: 50, Duration: 0.8, Ease: EaseOut},
	{Section: SectionGallery, Group: "[data-gallery='grid']", Trigger: "[data-gallery='grid']", Start: "top 85%", Y: 40, Duration: 1, Ease: EaseOut},

	{Section: SectionContact, Group: "[data-contact='heading']", Trigger: "[data-contact='heading']", Start: "top 85%", Y: 50, Duration: 0.8, Ease: EaseOut},
	{Section: SectionContact, Group: "[data-contact='description']", Trigger: "[data-contact='description']", Start: "top 85%", Y: 40, Duration: 0.7, Delay: 0.2, Ease: EaseOut},
	{Section: SectionContact, Group: "[data-contact='field']", Trigger: "[data-contact='form']", Start: "top 80%", Y: 20, Duration: 0.5, Stagger: 0.1, Ease: EaseOut},
	{Section: SectionContact, Group: "[data-contact='submit']", Trigger: "[data-contact='form']", Start: "top 75%", Y: 20, Duration: 0.5, Delay: 0.3, Ease: EaseOut},
}

// AnimationsFor returns the rows of one section, or all rows when section
// is empty.
func AnimationsFor(section string) []Animation {
	if section == "" {
		return Animations
	}

	out := []Animation{}
	for _, a := range Animations {
		if a.Section == section {
			out = append(out, a)
		}
	}
	return out
}

// ScrollTriggered reports whether the row waits for its trigger to scroll
// into view.
func (a Animation) ScrollTriggered() bool {
	return a.Trigger != ""
}
