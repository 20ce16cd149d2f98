package dto

// SessionRowDTO is one entry of the rendered session list.
type SessionRowDTO struct {
	ID           int    `json:"id"`
	DomID        string `json:"dom_id"`
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
	MessageCount int    `json:"message_count"`
	Preview      string `json:"preview"`
	LastActive   string `json:"last_active" example:"3 minutes ago"`
	Selected     bool   `json:"selected"`
}

// MessageRowDTO is one rendered message of the selected session.
type MessageRowDTO struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
	Origin  Origin `json:"origin"`
	Align   string `json:"align" example:"right"`
	Time    string `json:"time" example:"Today 14:05"`
}

// NotificationDTO is the visible toast, if any.
type NotificationDTO struct {
	Message string `json:"message"`
}

// PaginationStateDTO exposes the loader state to the page.
type PaginationStateDTO struct {
	Cursor     int    `json:"cursor"`
	TotalPages *int   `json:"total_pages"`
	Loading    bool   `json:"loading"`
	HasMore    bool   `json:"has_more"`
	LastError  string `json:"last_error,omitempty"`
}

// FilterDTO echoes the criteria the view was rendered with.
type FilterDTO struct {
	Query string `json:"q"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// DashboardDTO is the complete view model returned to the browser.
type DashboardDTO struct {
	Sessions       []SessionRowDTO    `json:"sessions"`
	SelectedID     *int               `json:"selected_id"`
	Messages       []MessageRowDTO    `json:"messages"`
	Filter         FilterDTO          `json:"filter"`
	Pagination     PaginationStateDTO `json:"pagination"`
	Notification   *NotificationDTO   `json:"notification"`
	ObservedTarget string             `json:"observed_target"`
}
