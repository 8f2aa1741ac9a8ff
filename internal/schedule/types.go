package schedule

// TypeFallback is the registry key used when an activity type is unknown.
const TypeFallback = "other"

// ActivityType is the presentation of an activity type.
type ActivityType struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// TypeRegistry maps activity type keys to their presentation.
type TypeRegistry map[string]ActivityType

var unknownType = ActivityType{Color: "#ccc", Icon: "📌"}

// Lookup returns the definition of key, falling back to "other" and then to
// a neutral grey pin.
func (r TypeRegistry) Lookup(key string) ActivityType {
	if t, ok := r[key]; ok {
		return t
	}
	if t, ok := r[TypeFallback]; ok {
		return t
	}
	return unknownType
}

// DefaultTypes returns the registry used when a document supplies none.
func DefaultTypes() TypeRegistry {
	return TypeRegistry{
		"logistics":  {Color: "#9CA3AF", Icon: "📋", Label: "Logistică"},
		"session":    {Color: "#3B82F6", Icon: "📖", Label: "Sesiune"},
		"meal":       {Color: "#F59E0B", Icon: "🍽️", Label: "Masă"},
		"break":      {Color: "#FDE68A", Icon: "☕", Label: "Pauză"},
		"worship":    {Color: "#8B5CF6", Icon: "🙏", Label: "Închinare"},
		"recreation": {Color: "#10B981", Icon: "⚽", Label: "Recreere"},
		"meeting":    {Color: "#EC4899", Icon: "👥", Label: "Întâlnire"},
		"other":      {Color: "#6B7280", Icon: "📌", Label: "Altele"},
	}
}
