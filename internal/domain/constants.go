package domain

// Default configuration values
const (
	DefaultSlotStepMinutes    = 30
	DefaultDurationMinutes    = 90
	DefaultLeadTimeMinutes    = 180
	DefaultRangeDays          = 14
	DefaultTimeZone           = "America/Los_Angeles"
	DefaultBlockingScope      = BlockingScopeEvent
	DefaultConfigurationTitle = "Book a session"
)

// DefaultAllowedDurations is the duration set used when a slug does not define its own.
var DefaultAllowedDurations = []int{60, 90, 120, 150}

// Business validation constants
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 240 // 4 hours
	MinLeadTimeMinutes = 0
	MaxLeadTimeMinutes = 10080 // 1 week
	MaxRangeDays       = 90
)

// Blocking scopes: whether a booked session blocks only its own time or the whole day.
const (
	BlockingScopeEvent = "event"
	BlockingScopeDay   = "day"
)

// Time format constants
const (
	TimeFormat        = "15:04"      // HH:MM
	TimeFormatSeconds = "15:04:05"   // HH:MM:SS
	DateFormat        = "2006-01-02" // YYYY-MM-DD
)

// Offer class names attached by the default styling rules.
const (
	ClassPromo     = "promo"
	ClassContainer = "container"
)
