package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	RoundsCount int `json:"rounds_count,omitempty"`
}

// JoinRoomRequest is the request body for joining a room
type JoinRoomRequest struct {
	JoinCode string `json:"join_code"`
}

// SetGamemasterRequest is the request body for handing the gamemaster role
// to another member
type SetGamemasterRequest struct {
	PlayerID string `json:"player_id"`
}

// UpdateNameRequest is the request body for changing a display name
type UpdateNameRequest struct {
	DisplayName string `json:"display_name"`
}

// UpdateSettingsRequest is the request body for updating room settings
type UpdateSettingsRequest struct {
	RoundsCount int `json:"rounds_count"`
}
