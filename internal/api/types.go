package api

// User is the authenticated account as returned by /api/auth/me.
type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Trip is a top-level itinerary. GetTrip returns it with nested stops;
// ListTrips returns it without them.
// Timestamps are kept as wire strings — the server emits ISO 8601 with or
// without a zone offset, so parsing is deferred to the display layer.
type Trip struct {
	ID          int    `json:"id"`
	UserID      int    `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Stops       []Stop `json:"stops,omitempty"`
}

// Stop is an ordered city visit within a trip.
type Stop struct {
	ID         int        `json:"id"`
	TripID     int        `json:"trip_id"`
	CityName   string     `json:"city_name"`
	Country    string     `json:"country"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	Order      int        `json:"order"`
	Activities []Activity `json:"activities,omitempty"`
}

// Activity is a costed event within a stop.
type Activity struct {
	ID       int     `json:"id"`
	StopID   int     `json:"stop_id"`
	Name     string  `json:"name"`
	Cost     float64 `json:"cost"`
	Duration int     `json:"duration,omitempty"` // minutes
	Category string  `json:"category,omitempty"`
}

// Budget is the server-computed cost aggregate for a trip.
type Budget struct {
	TripID         int        `json:"trip_id"`
	TotalCost      float64    `json:"total_cost"`
	StopsBreakdown []StopCost `json:"stops_breakdown,omitempty"`
}

// StopCost is one stop's share of a trip budget.
type StopCost struct {
	StopID    int     `json:"stop_id"`
	CityName  string  `json:"city_name"`
	TotalCost float64 `json:"total_cost"`
}

// SignupRequest creates an account.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TripCreate is the body for creating a trip. Dates are RFC 3339 timestamps.
type TripCreate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// TripUpdate carries only the fields to change; nil fields are omitted.
type TripUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

// StopCreate is the body for adding a stop to a trip.
type StopCreate struct {
	TripID    int    `json:"trip_id"`
	CityName  string `json:"city_name"`
	Country   string `json:"country"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Order     int    `json:"order"`
}

// StopUpdate carries only the fields to change.
type StopUpdate struct {
	CityName  *string `json:"city_name,omitempty"`
	Country   *string `json:"country,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Order     *int    `json:"order,omitempty"`
}

// ActivityCreate is the body for adding an activity to a stop.
type ActivityCreate struct {
	StopID   int     `json:"stop_id"`
	Name     string  `json:"name"`
	Cost     float64 `json:"cost"`
	Duration int     `json:"duration"`
	Category string  `json:"category,omitempty"`
}

// ActivityUpdate carries only the fields to change.
type ActivityUpdate struct {
	Name     *string  `json:"name,omitempty"`
	Cost     *float64 `json:"cost,omitempty"`
	Duration *int     `json:"duration,omitempty"`
	Category *string  `json:"category,omitempty"`
}
