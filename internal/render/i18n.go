package render

// Languages with their own fixed display strings.
const (
	LangRO = "ro"
	LangEN = "en"
)

type messages struct {
	SearchPlaceholder string
	SearchLabel       string
	ExportButton      string
	ExportLabel       string
	ThemeToggle       string
	DaysLabel         string
	OptionalBadge     string
	NoneScheduled     string
	NoMatches         string
	ErrorTitle        string
	DetailTime        string
	DetailLocation    string
	DetailDescription string
	DetailSpeakers    string
	DetailOptional    string
	Close             string
}

var catalog = map[string]messages{
	LangRO: {
		SearchPlaceholder: "Caută activități...",
		SearchLabel:       "Caută activități",
		ExportButton:      "📅 Exportă calendarul",
		ExportLabel:       "Exportă în calendar",
		ThemeToggle:       "🎨 Temă",
		DaysLabel:         "Zile",
		OptionalBadge:     "Opțional",
		NoneScheduled:     "Nicio activitate programată.",
		NoMatches:         "Nicio activitate nu corespunde căutării.",
		ErrorTitle:        "❌ Programul nu a putut fi încărcat",
		DetailTime:        "⏰ Ora:",
		DetailLocation:    "📍 Locație:",
		DetailDescription: "Descriere:",
		DetailSpeakers:    "🎤 Vorbitori:",
		DetailOptional:    "📌 Această activitate este opțională",
		Close:             "Închide",
	},
	LangEN: {
		SearchPlaceholder: "Search activities...",
		SearchLabel:       "Search activities",
		ExportButton:      "📅 Export Calendar",
		ExportLabel:       "Export to calendar",
		ThemeToggle:       "🎨 Theme",
		DaysLabel:         "Days",
		OptionalBadge:     "Optional",
		NoneScheduled:     "No activities scheduled.",
		NoMatches:         "No activities found matching criteria.",
		ErrorTitle:        "❌ Unable to load schedule",
		DetailTime:        "⏰ Time:",
		DetailLocation:    "📍 Location:",
		DetailDescription: "Description:",
		DetailSpeakers:    "🎤 Speakers:",
		DetailOptional:    "📌 This activity is optional",
		Close:             "Close",
	},
}

// text returns the strings for lang. Anything other than English gets the
// Romanian defaults.
func text(lang string) messages {
	if m, ok := catalog[lang]; ok {
		return m
	}
	return catalog[LangRO]
}
