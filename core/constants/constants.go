package constants

// Context keys
const (
	ContextTokenData = "token_data"
)

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Scheduling defaults
const (
	DefaultTimezone    = "America/Sao_Paulo"
	DefaultLocation    = "Escritório"
	DefaultSlotMinutes = 30
	MaxSlotMinutes     = 480

	// ActiveReservationKey is the sentinel stored on the single live
	// reservation of a conversation. A partial unique index on this value
	// enforces the one-active-per-conversation invariant.
	ActiveReservationKey = "ACTIVE"

	AlternativeLimit       = 5
	AlternativeHorizonDays = 14

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Settings keys consumed by the availability resolver
const (
	SettingTimezone        = "schedule_timezone"
	SettingSlotMinutes     = "schedule_slot_minutes"
	SettingLocations       = "schedule_locations"
	SettingWeeklyHours     = "schedule_weekly_hours"
	SettingExceptionDates  = "schedule_exception_dates"
	SettingDefaultLocation = "schedule_default_location"
)

// Cache keys
const (
	CacheKeyScheduleSettings = "settings:schedule"
	CacheKeyTokenBlacklist   = "auth:blacklist:"
)
